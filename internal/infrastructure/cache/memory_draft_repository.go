package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
)

type draftKeyPair struct {
	account uuid.UUID
	table   int
}

type memoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[draftKeyPair][]byte
}

// NewMemoryDraftRepository returns a process-local draft store, used when
// Redis is not configured. Drafts are lost on restart.
func NewMemoryDraftRepository() domainRepo.DraftRepository {
	return &memoryDraftRepository{drafts: make(map[draftKeyPair][]byte)}
}

// Drafts are kept serialized so callers never share mutable state with the store.
func (r *memoryDraftRepository) Get(_ context.Context, accountID uuid.UUID, tableNo int) (*entity.OrderDraft, error) {
	r.mu.RLock()
	data, ok := r.drafts[draftKeyPair{accountID, tableNo}]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var draft entity.OrderDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *memoryDraftRepository) Put(_ context.Context, accountID uuid.UUID, draft *entity.OrderDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.drafts[draftKeyPair{accountID, draft.TableNo}] = data
	r.mu.Unlock()
	return nil
}

func (r *memoryDraftRepository) Clear(_ context.Context, accountID uuid.UUID, tableNo int) error {
	r.mu.Lock()
	delete(r.drafts, draftKeyPair{accountID, tableNo})
	r.mu.Unlock()
	return nil
}

func (r *memoryDraftRepository) List(ctx context.Context, accountID uuid.UUID) ([]entity.OrderDraft, error) {
	r.mu.RLock()
	tables := make([]int, 0)
	for k := range r.drafts {
		if k.account == accountID {
			tables = append(tables, k.table)
		}
	}
	r.mu.RUnlock()
	sort.Ints(tables)

	drafts := make([]entity.OrderDraft, 0, len(tables))
	for _, tableNo := range tables {
		draft, err := r.Get(ctx, accountID, tableNo)
		if err != nil {
			return nil, err
		}
		if draft != nil {
			drafts = append(drafts, *draft)
		}
	}
	return drafts, nil
}
