package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
)

// DraftHandler handles the per-table order drafts
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// ListTables returns every table with its draft summary
// @Summary List tables
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /tables [get]
func (h *DraftHandler) ListTables(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	tables, err := h.draftService.ListTables(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tables retrieved successfully", gin.H{"tables": tables})
}

// GetDraft returns the draft of a table
// @Summary Get table draft
// @Tags tables
// @Security BearerAuth
// @Param table_no path int true "Table number"
// @Success 200 {object} response.APIResponse
// @Router /tables/{table_no}/draft [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), accountID, tableNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", gin.H{"draft": draft})
}

// AddLine adds one unit of a menu item to a table
// @Summary Add item to table
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Param table_no path int true "Table number"
// @Param request body request.AddDraftLineRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Router /tables/{table_no}/draft/lines [post]
func (h *DraftHandler) AddLine(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}

	var req request.AddDraftLineRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.AddItem(c.Request.Context(), accountID, tableNo, uuid.MustParse(req.ItemID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to table", gin.H{"draft": draft})
}

// AdjustLine changes the quantity of a draft line
// @Summary Adjust line quantity
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Param table_no path int true "Table number"
// @Param item_id path string true "Menu item ID"
// @Param request body request.AdjustDraftLineRequest true "Delta"
// @Success 200 {object} response.APIResponse
// @Router /tables/{table_no}/draft/lines/{item_id} [patch]
func (h *DraftHandler) AdjustLine(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}
	itemID, err := parseUUIDParam(c, "item_id", "item")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.AdjustDraftLineRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.AdjustQuantity(c.Request.Context(), accountID, tableNo, itemID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", gin.H{"draft": draft})
}

// SetAdjustments sets the discount and delivery fee of a table
// @Summary Set discount and delivery fee
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Param table_no path int true "Table number"
// @Param request body request.DraftAdjustmentsRequest true "Adjustments"
// @Success 200 {object} response.APIResponse
// @Router /tables/{table_no}/draft/adjustments [put]
func (h *DraftHandler) SetAdjustments(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}

	var req request.DraftAdjustmentsRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.SetAdjustments(c.Request.Context(), accountID, tableNo, &service.AdjustmentsInput{
		Discount:    req.Discount,
		DeliveryFee: req.DeliveryFee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Adjustments updated", gin.H{"draft": draft})
}

// ClearDraft discards the draft of a table
// @Summary Clear table
// @Tags tables
// @Security BearerAuth
// @Param table_no path int true "Table number"
// @Success 200 {object} response.APIResponse
// @Router /tables/{table_no}/draft [delete]
func (h *DraftHandler) ClearDraft(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}

	if err := h.draftService.ClearDraft(c.Request.Context(), accountID, tableNo); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table cleared", nil)
}
