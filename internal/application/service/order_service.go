package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/enum"
	"github.com/sangkips/yumzee-api/internal/domain/pricing"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService settles drafts into orders and manages settled orders
type OrderService struct {
	orderRepo    repository.OrderRepository
	draftService *DraftService
	log          *zap.Logger
	now          func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, draftService *DraftService, log *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		draftService: draftService,
		log:          log,
		now:          time.Now,
	}
}

// PaymentInput is the tender declared by the operator
type PaymentInput struct {
	Method enum.PaymentMethod
	UPI    *decimal.Decimal
	Cash   *decimal.Decimal
}

// SettleInput represents a draft to be turned into an order
type SettleInput struct {
	AccountID uuid.UUID
	TableNo   int
	Draft     *entity.OrderDraft
	Payment   PaymentInput
	// ClientTotal is the total the client computed, if it sent one
	ClientTotal *decimal.Decimal
}

// SettleResult is the stored order plus the declared tender
type SettleResult struct {
	Order        *entity.Order   `json:"order"`
	SettleAmount decimal.Decimal `json:"settle_amount"`
}

// OrderItemInput represents an item posted with an order
type OrderItemInput struct {
	ItemID   uuid.UUID
	Name     string
	Price    *decimal.Decimal
	Quantity int
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	AccountID   uuid.UUID
	TableNo     int
	Items       []OrderItemInput
	Total       *decimal.Decimal
	Payment     PaymentInput
	Discount    *decimal.Decimal
	DeliveryFee *decimal.Decimal
}

func validatePayment(errs *fieldErrors, p PaymentInput) {
	if !p.Method.IsValid() {
		errs.add("payment.method", "payment method must be one of upi, cash or both")
		return
	}
	if p.Method.NeedsUPI() && p.UPI == nil {
		errs.add("payment.upi", "upi amount is required for "+p.Method.String()+" payments")
	}
	if p.Method.NeedsCash() && p.Cash == nil {
		errs.add("payment.cash", "cash amount is required for "+p.Method.String()+" payments")
	}
	errs.checkOptionalMoney("payment.upi", p.UPI)
	errs.checkOptionalMoney("payment.cash", p.Cash)
}

// Settle validates a draft and its tender, stores it as an order and clears
// the table. The stored total is always computed here from the lines.
func (s *OrderService) Settle(ctx context.Context, input *SettleInput) (*SettleResult, error) {
	draft := input.Draft
	if draft == nil || draft.IsEmpty() {
		return nil, apperror.NewFieldError("items", "order must contain at least one item")
	}

	var errs fieldErrors
	validatePayment(&errs, input.Payment)
	errs.checkOptionalMoney("discount", draft.Discount)
	errs.checkOptionalMoney("delivery_fee", draft.DeliveryFee)
	for _, l := range draft.Lines {
		if l.Quantity < 0 {
			errs.add("items", "quantity must not be negative")
			break
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	draft.Recalculate()
	total := draft.Total
	if total.IsNegative() {
		return nil, apperror.NewFieldError("total", "total must not be negative")
	}
	if total.GreaterThan(utils.MaxMoney) {
		return nil, apperror.NewFieldError("total", "total is too large")
	}
	if input.ClientTotal != nil && !input.ClientTotal.Equal(total) {
		return nil, apperror.NewFieldError("total", "total does not match the items, expected "+total.StringFixed(2))
	}

	upi := pricing.OrZero(input.Payment.UPI)
	cash := pricing.OrZero(input.Payment.Cash)
	settleAmount := upi.Add(cash)
	if !settleAmount.Equal(total) {
		s.log.Warn("tender does not match order total",
			zap.String("account_id", input.AccountID.String()),
			zap.Int("table_no", input.TableNo),
			zap.String("total", total.StringFixed(2)),
			zap.String("tendered", settleAmount.StringFixed(2)),
		)
	}

	order := &entity.Order{
		AccountID:     input.AccountID,
		TableNo:       input.TableNo,
		Items:         draft.Snapshot(),
		Total:         total,
		PaymentMethod: input.Payment.Method,
		UPIAmount:     upi,
		CashAmount:    cash,
		Discount:      pricing.OrZero(draft.Discount),
		DeliveryFee:   pricing.OrZero(draft.DeliveryFee),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperror.NewStorageError("save order", err)
	}

	s.log.Info("order settled",
		zap.String("account_id", input.AccountID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Int("table_no", order.TableNo),
		zap.String("total", total.StringFixed(2)),
		zap.String("method", order.PaymentMethod.String()),
	)

	if input.TableNo > 0 {
		if err := s.draftService.ClearDraft(ctx, input.AccountID, input.TableNo); err != nil {
			s.log.Error("failed to clear draft after settlement",
				zap.String("order_id", order.ID.String()),
				zap.Int("table_no", input.TableNo),
				zap.Error(err),
			)
		}
	}

	return &SettleResult{Order: order, SettleAmount: settleAmount}, nil
}

// SettleTable settles the draft stored for a table
func (s *OrderService) SettleTable(ctx context.Context, accountID uuid.UUID, tableNo int, payment PaymentInput) (*SettleResult, error) {
	draft, err := s.draftService.GetDraft(ctx, accountID, tableNo)
	if err != nil {
		return nil, err
	}
	return s.Settle(ctx, &SettleInput{
		AccountID: accountID,
		TableNo:   tableNo,
		Draft:     draft,
		Payment:   payment,
	})
}

// CreateOrder settles a list of lines posted by the client. Lines with a zero
// quantity are dropped. A line without a price or name takes them from the
// caller's menu.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*SettleResult, error) {
	if input.TableNo != 0 {
		if err := s.draftService.validateTable(input.TableNo); err != nil {
			return nil, err
		}
	}

	var errs fieldErrors
	for _, item := range input.Items {
		switch {
		case item.ItemID == uuid.Nil:
			errs.add("items", "id is required for every item")
		case item.Quantity < 0:
			errs.add("items", "quantity must not be negative")
		case item.Price != nil:
			errs.checkMoney("items.price", *item.Price)
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	draft := entity.NewOrderDraft(input.TableNo)
	for _, item := range input.Items {
		if item.Quantity == 0 {
			continue
		}
		line, err := s.resolveLine(ctx, input.AccountID, item)
		if err != nil {
			return nil, err
		}
		draft.Lines = append(draft.Lines, line)
	}
	draft.Discount = input.Discount
	draft.DeliveryFee = input.DeliveryFee

	return s.Settle(ctx, &SettleInput{
		AccountID:   input.AccountID,
		TableNo:     input.TableNo,
		Draft:       draft,
		Payment:     input.Payment,
		ClientTotal: input.Total,
	})
}

func (s *OrderService) resolveLine(ctx context.Context, accountID uuid.UUID, item OrderItemInput) (entity.DraftLine, error) {
	line := entity.DraftLine{
		ItemID:   item.ItemID,
		Name:     strings.TrimSpace(item.Name),
		Quantity: item.Quantity,
	}
	if item.Price != nil && line.Name != "" {
		line.UnitPrice = *item.Price
		return line, nil
	}

	menuItem, err := s.draftService.menuRepo.GetItem(ctx, accountID, item.ItemID)
	if err != nil {
		return line, apperror.NewStorageError("get menu item", err)
	}
	if menuItem == nil {
		return line, apperror.NewNotFoundError("Menu item")
	}
	if line.Name == "" {
		line.Name = menuItem.Name
	}
	if item.Price != nil {
		line.UnitPrice = *item.Price
	} else {
		line.UnitPrice = menuItem.Price
	}
	return line, nil
}

// ListOrders returns the account's orders newest first
func (s *OrderService) ListOrders(ctx context.Context, accountID uuid.UUID, params *repository.DateRangeParams) ([]entity.Order, error) {
	orders, err := s.orderRepo.List(ctx, accountID, params)
	if err != nil {
		return nil, apperror.NewStorageError("list orders", err)
	}
	return orders, nil
}

// GetOrder retrieves one of the account's orders
func (s *OrderService) GetOrder(ctx context.Context, accountID, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, apperror.NewStorageError("get order", err)
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// DeleteOrder removes one of the account's orders
func (s *OrderService) DeleteOrder(ctx context.Context, accountID, id uuid.UUID) error {
	deleted, err := s.orderRepo.Delete(ctx, accountID, id)
	if err != nil {
		return apperror.NewStorageError("delete order", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Order")
	}
	return nil
}
