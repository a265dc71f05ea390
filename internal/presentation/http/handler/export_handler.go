package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/request"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves backups and spreadsheets
type ExportHandler struct {
	exportService *service.ExportService
	authService   *service.AuthService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService, authService *service.AuthService) *ExportHandler {
	return &ExportHandler{exportService: exportService, authService: authService}
}

// Backup downloads every table as JSON
func (h *ExportHandler) Backup(c *gin.Context) {
	backup, filename, err := h.exportService.Backup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "application/json", data)
}

// ImportBackup replaces the whole store. The admin PIN is checked first.
func (h *ExportHandler) ImportBackup(c *gin.Context) {
	var req request.ImportBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.VerifyAdminPIN(c.Request.Context(), req.AdminPIN); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.exportService.Restore(c.Request.Context(), req.Backup); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup imported", nil)
}

// SalesReport downloads sales as an xlsx sheet. The range defaults to the last 30 days.
func (h *ExportHandler) SalesReport(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	now := time.Now()
	if end == nil {
		end = &now
	}
	if start == nil {
		from := end.AddDate(0, 0, -30)
		start = &from
	}

	data, filename, err := h.exportService.SalesWorkbook(c.Request.Context(), *start, *end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, xlsxContentType, data)
}

// ProductTemplate downloads the product import sheet
func (h *ExportHandler) ProductTemplate(c *gin.Context) {
	data, err := h.exportService.ProductTemplate()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "product-import-template.xlsx", xlsxContentType, data)
}

// ImportProducts upserts products from an uploaded xlsx file
func (h *ExportHandler) ImportProducts(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A spreadsheet file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.exportService.ImportProducts(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}
