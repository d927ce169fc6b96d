package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
)

type redisDraftRepository struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewRedisDraftRepository stores drafts as JSON under draft:<account>:<table>
// and tracks the tables of each account in the set drafts:<account>.
// A zero ttl keeps drafts until they are cleared.
func NewRedisDraftRepository(client *RedisClient, ttl time.Duration) domainRepo.DraftRepository {
	return &redisDraftRepository{redis: client, ttl: ttl}
}

func draftKey(accountID uuid.UUID, tableNo int) string {
	return fmt.Sprintf("draft:%s:%d", accountID, tableNo)
}

func indexKey(accountID uuid.UUID) string {
	return fmt.Sprintf("drafts:%s", accountID)
}

func (r *redisDraftRepository) Get(ctx context.Context, accountID uuid.UUID, tableNo int) (*entity.OrderDraft, error) {
	var draft entity.OrderDraft
	err := r.redis.GetJSON(ctx, draftKey(accountID, tableNo), &draft)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *redisDraftRepository) Put(ctx context.Context, accountID uuid.UUID, draft *entity.OrderDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	pipe := r.redis.client.TxPipeline()
	pipe.Set(ctx, draftKey(accountID, draft.TableNo), data, r.ttl)
	pipe.SAdd(ctx, indexKey(accountID), draft.TableNo)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisDraftRepository) Clear(ctx context.Context, accountID uuid.UUID, tableNo int) error {
	pipe := r.redis.client.TxPipeline()
	pipe.Del(ctx, draftKey(accountID, tableNo))
	pipe.SRem(ctx, indexKey(accountID), tableNo)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisDraftRepository) List(ctx context.Context, accountID uuid.UUID) ([]entity.OrderDraft, error) {
	members, err := r.redis.client.SMembers(ctx, indexKey(accountID)).Result()
	if err != nil {
		return nil, err
	}

	tables := make([]int, 0, len(members))
	for _, m := range members {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		tables = append(tables, n)
	}
	sort.Ints(tables)

	drafts := make([]entity.OrderDraft, 0, len(tables))
	for _, tableNo := range tables {
		draft, err := r.Get(ctx, accountID, tableNo)
		if err != nil {
			return nil, err
		}
		if draft == nil {
			// expired; drop the stale index entry
			r.redis.client.SRem(ctx, indexKey(accountID), tableNo)
			continue
		}
		drafts = append(drafts, *draft)
	}
	return drafts, nil
}
