package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/config"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

func TestMemoryDraftRepository(t *testing.T) {
	exerciseDraftRepository(t, NewMemoryDraftRepository())
}

func TestRedisDraftRepository(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := NewRedisClient(&config.RedisConfig{Addr: addr, PoolSize: 2})
	defer client.Close()
	if err := client.Ping(context.Background()); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	exerciseDraftRepository(t, NewRedisDraftRepository(client, time.Minute))
}

func exerciseDraftRepository(t *testing.T, repo domainRepo.DraftRepository) {
	ctx := context.Background()
	accountA, accountB := uuid.New(), uuid.New()

	t.Run("missing draft is nil", func(t *testing.T) {
		got, err := repo.Get(ctx, accountA, 1)
		if err != nil || got != nil {
			t.Fatalf("Get() = %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("put then get round trips", func(t *testing.T) {
		d := entity.NewOrderDraft(3)
		d.AddLine(uuid.New(), "Cola", decimal.NewFromInt(50))
		fee := decimal.NewFromInt(20)
		d.SetDeliveryFee(&fee)

		if err := repo.Put(ctx, accountA, d); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := repo.Get(ctx, accountA, 3)
		if err != nil || got == nil {
			t.Fatalf("Get() = %v, %v", got, err)
		}
		if len(got.Lines) != 1 || !got.Total.Equal(decimal.NewFromInt(70)) {
			t.Errorf("Get() = %+v", got)
		}
		if got.Discount != nil {
			t.Errorf("unset discount should stay nil, got %s", got.Discount)
		}
	})

	t.Run("drafts are isolated per account", func(t *testing.T) {
		got, err := repo.Get(ctx, accountB, 3)
		if err != nil || got != nil {
			t.Fatalf("Get(other account) = %v, %v; want nil", got, err)
		}
	})

	t.Run("list returns tables in order", func(t *testing.T) {
		d := entity.NewOrderDraft(1)
		d.AddLine(uuid.New(), "Tea", decimal.NewFromInt(15))
		if err := repo.Put(ctx, accountA, d); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		drafts, err := repo.List(ctx, accountA)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(drafts) != 2 || drafts[0].TableNo != 1 || drafts[1].TableNo != 3 {
			t.Errorf("List() = %+v, want tables 1 and 3", drafts)
		}
	})

	t.Run("clear removes the draft", func(t *testing.T) {
		if err := repo.Clear(ctx, accountA, 3); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		got, _ := repo.Get(ctx, accountA, 3)
		if got != nil {
			t.Errorf("Get() after Clear = %+v", got)
		}
		drafts, _ := repo.List(ctx, accountA)
		if len(drafts) != 1 {
			t.Errorf("List() after Clear = %d drafts, want 1", len(drafts))
		}
	})

	t.Run("mutating a fetched draft does not change the store", func(t *testing.T) {
		got, _ := repo.Get(ctx, accountA, 1)
		got.Lines[0].Quantity = 99

		again, _ := repo.Get(ctx, accountA, 1)
		if again.Lines[0].Quantity != 1 {
			t.Errorf("stored quantity = %d, want 1", again.Lines[0].Quantity)
		}
	})

	_ = repo.Clear(ctx, accountA, 1)
}
