package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/request"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

// LookupHandler serves the category, supplier and unit pick lists
type LookupHandler struct {
	lookupService *service.LookupService
}

func NewLookupHandler(lookupService *service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

func (h *LookupHandler) ListCategories(c *gin.Context) {
	categories, err := h.lookupService.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", categories)
}

func (h *LookupHandler) CreateCategory(c *gin.Context) {
	var req request.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	category, err := h.lookupService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", category)
}

func (h *LookupHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.lookupService.Suppliers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Suppliers retrieved successfully", suppliers)
}

func (h *LookupHandler) CreateSupplier(c *gin.Context) {
	var req request.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	supplier, err := h.lookupService.CreateSupplier(c.Request.Context(), req.Name, req.Contact)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Supplier created successfully", supplier)
}

func (h *LookupHandler) ListUnits(c *gin.Context) {
	units, err := h.lookupService.Units(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Units retrieved successfully", units)
}

func (h *LookupHandler) CreateUnit(c *gin.Context) {
	var req request.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	unit, err := h.lookupService.CreateUnit(c.Request.Context(), req.Name, req.Symbol)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Unit created successfully", unit)
}
