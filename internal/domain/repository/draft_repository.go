package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
)

// DraftRepository stores the in-progress order of each table, keyed by
// account and table number. Writes replace the whole draft.
type DraftRepository interface {
	// Get returns nil, nil when the table has no draft
	Get(ctx context.Context, accountID uuid.UUID, tableNo int) (*entity.OrderDraft, error)
	Put(ctx context.Context, accountID uuid.UUID, draft *entity.OrderDraft) error
	Clear(ctx context.Context, accountID uuid.UUID, tableNo int) error
	// List returns every stored draft of the account
	List(ctx context.Context, accountID uuid.UUID) ([]entity.OrderDraft, error)
}
