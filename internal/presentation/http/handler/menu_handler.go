package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu item and category requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// ListItems lists the caller's menu in the order items were added
// @Summary List menu items
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /items [get]
func (h *MenuHandler) ListItems(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	items, err := h.menuService.ListItems(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu items retrieved successfully", gin.H{"items": items})
}

// AddItem adds a menu item, creating its category on first use
// @Summary Add menu item
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.AddItemRequest true "Menu item"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /items [post]
func (h *MenuHandler) AddItem(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.AddItem(c.Request.Context(), &service.AddItemInput{
		AccountID:    accountID,
		CategoryName: req.Category,
		Name:         req.Name,
		Price:        req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item added successfully", gin.H{"item": item})
}

// DeleteItem removes a menu item
// @Summary Delete menu item
// @Tags menu
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /items/{id} [delete]
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id", "item")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), accountID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item deleted successfully", nil)
}

// ListCategories lists the caller's categories
// @Summary List categories
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /categories [get]
func (h *MenuHandler) ListCategories(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	categories, err := h.menuService.ListCategories(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", gin.H{"categories": categories})
}
