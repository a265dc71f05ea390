package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/request"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

// AdminHandler handles admin-PIN gated actions and cashier accounts
type AdminHandler struct {
	authService    *service.AuthService
	cashierService *service.CashierService
	restoreService *service.RestoreService
	saleService    *service.SaleService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authService *service.AuthService,
	cashierService *service.CashierService,
	restoreService *service.RestoreService,
	saleService *service.SaleService,
) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		cashierService: cashierService,
		restoreService: restoreService,
		saleService:    saleService,
	}
}

// Restore rolls recent sales and expenses back after checking the admin PIN
// @Summary Restore
// @Description Restock and delete sales and expenses inside the period
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.RestoreRequest true "Period and admin PIN"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /restore [post]
func (h *AdminHandler) Restore(c *gin.Context) {
	var req request.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	period, err := enum.ParseRestorePeriod(req.Period)
	if err != nil {
		response.BadRequest(c, "Invalid period. Use 1-day, 3-days, 1-week, 1-month or all")
		return
	}

	if err := h.authService.VerifyAdminPIN(c.Request.Context(), req.AdminPIN); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.restoreService.Restore(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Restore completed", result)
}

// DeleteSales removes filtered sales after checking the admin PIN
// @Summary Delete sales
// @Description Delete the sales matching start, end and cashier without restocking
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.DeleteSalesRequest true "Filter and admin PIN"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /admin/sales/delete [post]
func (h *AdminHandler) DeleteSales(c *gin.Context) {
	var req request.DeleteSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	start, err := parseDate(req.Start, false)
	if err != nil {
		response.BadRequest(c, "Invalid start date")
		return
	}
	end, err := parseDate(req.End, true)
	if err != nil {
		response.BadRequest(c, "Invalid end date")
		return
	}

	if err := h.authService.VerifyAdminPIN(c.Request.Context(), req.AdminPIN); err != nil {
		response.Error(c, err)
		return
	}

	deleted, err := h.saleService.DeleteSales(c.Request.Context(), &repository.SaleFilterParams{
		StartDate: start,
		EndDate:   end,
		Cashier:   req.Cashier,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales deleted", gin.H{"sales_deleted": deleted})
}

// ListCashiers lists till accounts
func (h *AdminHandler) ListCashiers(c *gin.Context) {
	cashiers, err := h.cashierService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cashiers retrieved successfully", cashiers)
}

// CreateCashier adds a till account
func (h *AdminHandler) CreateCashier(c *gin.Context) {
	var req request.CreateCashierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cashier, err := h.cashierService.Create(c.Request.Context(), &service.CreateCashierInput{
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cashier created successfully", cashier)
}

// DeleteCashier removes a till account
func (h *AdminHandler) DeleteCashier(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cashierService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cashier deleted successfully", nil)
}

// ResetAdminPIN changes the admin PIN after checking the current one
func (h *AdminHandler) ResetAdminPIN(c *gin.Context) {
	var req request.ResetAdminPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.VerifyAdminPIN(c.Request.Context(), req.AdminPIN); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.cashierService.ResetAdminPIN(c.Request.Context(), req.NewPIN); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Admin PIN updated", nil)
}
