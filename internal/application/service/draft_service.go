package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DraftService edits the in-progress order of each table
type DraftService struct {
	drafts     repository.DraftRepository
	menuRepo   repository.MenuRepository
	tableCount int
	now        func() time.Time
}

// NewDraftService creates a new draft service for tables 1..tableCount
func NewDraftService(drafts repository.DraftRepository, menuRepo repository.MenuRepository, tableCount int) *DraftService {
	return &DraftService{
		drafts:     drafts,
		menuRepo:   menuRepo,
		tableCount: tableCount,
		now:        time.Now,
	}
}

// AdjustmentsInput sets the discount and delivery fee of a draft. A nil value
// unsets the adjustment.
type AdjustmentsInput struct {
	Discount    *decimal.Decimal
	DeliveryFee *decimal.Decimal
}

// TableSummary is one row of the table overview
type TableSummary struct {
	TableNo   int             `json:"table_no"`
	HasOrder  bool            `json:"has_order"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// TableCount returns the number of tables served
func (s *DraftService) TableCount() int {
	return s.tableCount
}

func (s *DraftService) validateTable(tableNo int) error {
	if tableNo < 1 || tableNo > s.tableCount {
		return apperror.NewFieldError("table_no", fmt.Sprintf("table_no must be between 1 and %d", s.tableCount))
	}
	return nil
}

// load returns the stored draft or a fresh one when the table is empty
func (s *DraftService) load(ctx context.Context, accountID uuid.UUID, tableNo int) (*entity.OrderDraft, error) {
	draft, err := s.drafts.Get(ctx, accountID, tableNo)
	if err != nil {
		return nil, apperror.NewStorageError("load draft", err)
	}
	if draft == nil {
		return entity.NewOrderDraft(tableNo), nil
	}
	return draft, nil
}

func (s *DraftService) save(ctx context.Context, accountID uuid.UUID, draft *entity.OrderDraft) error {
	draft.Recalculate()
	draft.UpdatedAt = s.now().UTC()
	if draft.IsEmpty() {
		if err := s.drafts.Clear(ctx, accountID, draft.TableNo); err != nil {
			return apperror.NewStorageError("save draft", err)
		}
		return nil
	}
	if err := s.drafts.Put(ctx, accountID, draft); err != nil {
		return apperror.NewStorageError("save draft", err)
	}
	return nil
}

// GetDraft returns the table's draft, empty when nothing was ordered yet
func (s *DraftService) GetDraft(ctx context.Context, accountID uuid.UUID, tableNo int) (*entity.OrderDraft, error) {
	if err := s.validateTable(tableNo); err != nil {
		return nil, err
	}
	return s.load(ctx, accountID, tableNo)
}

// AddItem puts one more unit of a menu item on the table's draft
func (s *DraftService) AddItem(ctx context.Context, accountID uuid.UUID, tableNo int, itemID uuid.UUID) (*entity.OrderDraft, error) {
	if err := s.validateTable(tableNo); err != nil {
		return nil, err
	}

	item, err := s.menuRepo.GetItem(ctx, accountID, itemID)
	if err != nil {
		return nil, apperror.NewStorageError("get menu item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	draft, err := s.load(ctx, accountID, tableNo)
	if err != nil {
		return nil, err
	}
	draft.AddLine(item.ID, item.Name, item.Price)

	if err := s.save(ctx, accountID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AdjustQuantity changes a line's quantity by delta, dropping it at zero
func (s *DraftService) AdjustQuantity(ctx context.Context, accountID uuid.UUID, tableNo int, itemID uuid.UUID, delta int) (*entity.OrderDraft, error) {
	if err := s.validateTable(tableNo); err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, apperror.NewFieldError("delta", "delta must not be zero")
	}

	draft, err := s.load(ctx, accountID, tableNo)
	if err != nil {
		return nil, err
	}
	if err := draft.AdjustQuantity(itemID, delta); err != nil {
		if errors.Is(err, entity.ErrDraftLineNotFound) {
			return nil, apperror.NewNotFoundError("Draft line")
		}
		return nil, err
	}

	if err := s.save(ctx, accountID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetAdjustments replaces the draft's discount and delivery fee
func (s *DraftService) SetAdjustments(ctx context.Context, accountID uuid.UUID, tableNo int, input *AdjustmentsInput) (*entity.OrderDraft, error) {
	if err := s.validateTable(tableNo); err != nil {
		return nil, err
	}

	var errs fieldErrors
	errs.checkOptionalMoney("discount", input.Discount)
	errs.checkOptionalMoney("delivery_fee", input.DeliveryFee)
	if err := errs.err(); err != nil {
		return nil, err
	}

	draft, err := s.load(ctx, accountID, tableNo)
	if err != nil {
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, apperror.NewFieldError("items", "add an item before setting a discount or delivery fee")
	}
	draft.SetDiscount(input.Discount)
	draft.SetDeliveryFee(input.DeliveryFee)

	if err := s.save(ctx, accountID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ClearDraft discards the table's draft
func (s *DraftService) ClearDraft(ctx context.Context, accountID uuid.UUID, tableNo int) error {
	if err := s.validateTable(tableNo); err != nil {
		return err
	}
	if err := s.drafts.Clear(ctx, accountID, tableNo); err != nil {
		return apperror.NewStorageError("clear draft", err)
	}
	return nil
}

// ListTables returns a summary row for every table, occupied or not
func (s *DraftService) ListTables(ctx context.Context, accountID uuid.UUID) ([]TableSummary, error) {
	stored, err := s.drafts.List(ctx, accountID)
	if err != nil {
		return nil, apperror.NewStorageError("list drafts", err)
	}

	byTable := make(map[int]*entity.OrderDraft, len(stored))
	for i := range stored {
		byTable[stored[i].TableNo] = &stored[i]
	}

	tables := make([]TableSummary, 0, s.tableCount)
	for n := 1; n <= s.tableCount; n++ {
		summary := TableSummary{TableNo: n, Total: decimal.Zero}
		if d, ok := byTable[n]; ok && !d.IsEmpty() {
			summary.HasOrder = true
			summary.Total = d.Total
			for _, l := range d.Lines {
				summary.ItemCount += l.Quantity
			}
		}
		tables = append(tables, summary)
	}
	return tables, nil
}
