package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and accounting reports
type DashboardHandler struct {
	dashboardService  *service.DashboardService
	accountingService *service.AccountingService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, accountingService *service.AccountingService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, accountingService: accountingService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// Accounting summarizes revenue, costs and expenses. The range defaults to
// the current month.
func (h *DashboardHandler) Accounting(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	now := time.Now()
	if start == nil {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start = &first
	}
	if end == nil {
		end = &now
	}

	summary, err := h.accountingService.Summary(c.Request.Context(), *start, *end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounting summary retrieved successfully", summary)
}
