package middleware

import (
	"bytes"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyPendingTTL bounds how long a reservation outlives a crashed request
	IdempotencyPendingTTL = time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a POST is retried with the same
// Idempotency-Key. Requests without the header run normally. The key is
// reserved before the handler runs, so a concurrent duplicate gets 409 instead
// of running twice. Only successful responses are kept, so a failed
// settlement can be retried with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		if len(idempotencyKey) > 255 {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		accountID := GetAccountID(c)
		if accountID == uuid.Nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.Request.URL.Path

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, accountID)
		if err != nil {
			config.Log.Error("failed to check idempotency key", zap.Error(err))
			response.ErrorWithCode(c, 500, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if existing != nil && !existing.IsExpired() {
			replayStored(c, existing, endpoint)
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:       idempotencyKey,
			AccountID: accountID,
			Endpoint:  endpoint,
			ExpiresAt: time.Now().UTC().Add(IdempotencyPendingTTL),
		}
		reserved, err := config.Repo.Reserve(ctx, ikey)
		if err != nil {
			config.Log.Error("failed to reserve idempotency key", zap.Error(err))
			response.ErrorWithCode(c, 500, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if !reserved {
			// Lost the race; the winner's row is pending or already complete.
			existing, err = config.Repo.GetByKey(ctx, idempotencyKey, accountID)
			if err != nil || existing == nil || existing.IsExpired() {
				response.ErrorWithCode(c, 409, "A request with this Idempotency-Key is already in progress")
				c.Abort()
				return
			}
			replayStored(c, existing, endpoint)
			return
		}

		finished := false
		defer func() {
			if !finished {
				release(context.WithoutCancel(ctx), config, ikey)
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()
		finished = true

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			release(context.WithoutCancel(ctx), config, ikey)
			return
		}

		ikey.ResponseCode = status
		ikey.ResponseBody = blw.body.String()
		ikey.ExpiresAt = time.Now().UTC().Add(IdempotencyKeyTTL)
		if err := config.Repo.Complete(context.WithoutCancel(ctx), ikey); err != nil {
			config.Log.Warn("failed to store idempotency key",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
		}
	}
}

// replayStored answers from a live key: a mismatched endpoint is rejected,
// a pending key is a conflict and a completed key is replayed.
func replayStored(c *gin.Context, existing *entity.IdempotencyKey, endpoint string) {
	switch {
	case existing.Endpoint != endpoint:
		response.ErrorWithCode(c, 422, "Idempotency-Key was already used for another request")
	case existing.IsPending():
		response.ErrorWithCode(c, 409, "A request with this Idempotency-Key is already in progress")
	default:
		c.Header("X-Idempotency-Replayed", "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	}
	c.Abort()
}

func release(ctx context.Context, config IdempotencyConfig, ikey *entity.IdempotencyKey) {
	if err := config.Repo.Release(ctx, ikey.Key, ikey.AccountID); err != nil {
		config.Log.Warn("failed to release idempotency key",
			zap.String("endpoint", ikey.Endpoint),
			zap.Error(err),
		)
	}
}
