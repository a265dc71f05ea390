package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// SaleHandler serves sale history and receipts
type SaleHandler struct {
	saleService    *service.SaleService
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, receiptService *service.ReceiptService) *SaleHandler {
	return &SaleHandler{saleService: saleService, receiptService: receiptService}
}

// List handles listing sales, newest first
func (h *SaleHandler) List(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: pagination.Parse(c.Query("page"), c.Query("per_page")),
		StartDate:  start,
		EndDate:    end,
		Cashier:    c.Query("cashier"),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id")
			return
		}
		customerID := uint(id)
		params.CustomerID = &customerID
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Receipt renders a preview. The print count does not change.
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.receiptService.Preview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated", out)
}

// Print records a print and sends the receipt to the printer
func (h *SaleHandler) Print(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.receiptService.Print(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if out.Warning != "" {
		response.OK(c, "Receipt recorded but printing failed", out)
		return
	}
	response.OK(c, "Receipt printed successfully", out)
}

// PrinterStatus returns the current printer connection status.
func (h *SaleHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.Status())
}
