package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles the expense ledger
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	loc            *time.Location
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService, loc *time.Location) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, loc: loc}
}

// List returns expenses, newest first
// @Summary List expenses
// @Tags expenses
// @Security BearerAuth
// @Param since query string false "First day, YYYY-MM-DD"
// @Param until query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	var q request.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	params, err := dateRange(q, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), accountID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expenses retrieved successfully", gin.H{"expenses": expenses})
}

// Create records an expense
// @Summary Add expense
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Param request body request.AddExpenseRequest true "Expense"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	var req request.AddExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), &service.AddExpenseInput{
		AccountID: accountID,
		Name:      req.Name,
		Amount:    req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense added successfully", gin.H{"expense": expense})
}

// Delete removes an expense
// @Summary Delete expense
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} response.APIResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id", "expense")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), accountID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}
