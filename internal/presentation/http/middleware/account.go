package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// RequireAccount rejects tokens whose account no longer exists. It must run
// after AuthMiddleware.
func RequireAccount(accountRepo repository.AccountRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := GetAccountID(c)
		if accountID == uuid.Nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		account, err := accountRepo.GetByID(c.Request.Context(), accountID)
		if err != nil {
			log.Error("failed to load account", zap.String("account_id", accountID.String()), zap.Error(err))
			response.ErrorWithCode(c, 500, "Internal server error")
			c.Abort()
			return
		}
		if account == nil {
			response.Unauthorized(c, "Account not found")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAccountID retrieves the authenticated account ID from gin context
func GetAccountID(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ContextAccountID)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
