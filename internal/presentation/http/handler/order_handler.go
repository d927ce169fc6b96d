package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/domain/enum"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
)

// OrderHandler handles settlement and the order history
type OrderHandler struct {
	orderService *service.OrderService
	loc          *time.Location
}

// NewOrderHandler creates a new order handler. Date filters are read in loc.
func NewOrderHandler(orderService *service.OrderService, loc *time.Location) *OrderHandler {
	return &OrderHandler{orderService: orderService, loc: loc}
}

func paymentInput(req request.PaymentRequest) service.PaymentInput {
	return service.PaymentInput{
		Method: enum.PaymentMethod(strings.ToLower(strings.TrimSpace(req.Method))),
		UPI:    req.UPI,
		Cash:   req.Cash,
	}
}

// SettleTable settles the stored draft of a table and clears it
// @Summary Settle table
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param table_no path int true "Table number"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.SettleTableRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /tables/{table_no}/settle [post]
func (h *OrderHandler) SettleTable(c *gin.Context) {
	accountID, tableNo, ok := tableRequest(c)
	if !ok {
		return
	}

	var req request.SettleTableRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.orderService.SettleTable(c.Request.Context(), accountID, tableNo, paymentInput(req.Payment))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order settled successfully", result)
}

// Create settles order lines posted by the client
// @Summary Create order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.CreateOrderRequest true "Order"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ItemID:   uuid.MustParse(item.ID),
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	deliveryFee := req.DeliveryFee
	if deliveryFee == nil {
		deliveryFee = req.DeliveryFeeAlt
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		AccountID:   accountID,
		TableNo:     req.TableNo,
		Items:       items,
		Total:       req.Total,
		Payment:     paymentInput(req.Payment),
		Discount:    req.Discount,
		DeliveryFee: deliveryFee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", result)
}

// List returns the order history, newest first
// @Summary List orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param since query string false "First day, YYYY-MM-DD"
// @Param until query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
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

	orders, err := h.orderService.ListOrders(c.Request.Context(), accountID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", gin.H{"orders": orders})
}

// Get returns a single order
// @Summary Get order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", gin.H{"order": order})
}

// Delete removes an order from the history
// @Summary Delete order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}
	id, err := parseUUIDParam(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), accountID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}
