package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the dashboard totals and the monthly export
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Overview returns sales, expenses and net for today, yesterday and the month
// @Summary Report overview
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /reports/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	overview, err := h.reportService.Overview(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overview retrieved successfully", overview)
}

// Sales returns the sales totals and the tender split
// @Summary Sales summary
// @Tags reports
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	sales, err := h.reportService.SalesSummary(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", sales)
}

// Expenses returns the expense totals
// @Summary Expense summary
// @Tags reports
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /reports/expenses [get]
func (h *ReportHandler) Expenses(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	expenses, err := h.reportService.ExpenseSummary(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense summary retrieved successfully", expenses)
}

// Export downloads a month of orders and expenses as a spreadsheet
// @Summary Export month
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string true "Month, YYYY-MM"
// @Success 200 {file} file
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	var q request.ExportQuery
	if !bindQuery(c, &q) {
		return
	}

	export, err := h.reportService.ExportMonth(c.Request.Context(), accountID, q.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, export.Content)
}
