package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/sangkips/yumzee-api/pkg/oauth"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"go.uber.org/zap"
)

// WelcomeMailer sends the first-login welcome email
type WelcomeMailer interface {
	SendWelcomeEmail(toEmail, name string) error
}

// AuthService handles accounts and token issuance
type AuthService struct {
	accountRepo repository.AccountRepository
	jwtManager  *utils.JWTManager
	mailer      WelcomeMailer
	log         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repository.AccountRepository,
	jwtManager *utils.JWTManager,
	mailer WelcomeMailer,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtManager:  jwtManager,
		mailer:      mailer,
		log:         log,
	}
}

// LoginOutput represents the login output
type LoginOutput struct {
	Account      *entity.Account
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// NewOAuthState returns a random value for the OAuth state cookie
func NewOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// FindOrCreateAccount returns the account linked to googleID, creating it on
// first login. A concurrent first login that loses the insert race reads the
// winner's row.
func (s *AuthService) FindOrCreateAccount(ctx context.Context, googleID, name, email, photo string) (*entity.Account, bool, error) {
	googleID = strings.TrimSpace(googleID)
	if googleID == "" {
		return nil, false, apperror.NewFieldError("google_id", "google_id is required")
	}

	account, err := s.accountRepo.GetByGoogleID(ctx, googleID)
	if err != nil {
		return nil, false, apperror.NewStorageError("look up account", err)
	}
	if account != nil {
		return account, false, nil
	}

	account = &entity.Account{
		GoogleID: googleID,
		Name:     name,
		Email:    email,
		Photo:    photo,
	}
	if createErr := s.accountRepo.Create(ctx, account); createErr != nil {
		existing, err := s.accountRepo.GetByGoogleID(ctx, googleID)
		if err != nil {
			return nil, false, apperror.NewStorageError("look up account", err)
		}
		if existing == nil {
			return nil, false, apperror.NewStorageError("create account", createErr)
		}
		return existing, false, nil
	}

	s.log.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("email", account.Email),
	)

	if s.mailer != nil && account.Email != "" {
		if err := s.mailer.SendWelcomeEmail(account.Email, account.Name); err != nil {
			s.log.Warn("failed to send welcome email",
				zap.String("account_id", account.ID.String()),
				zap.Error(err),
			)
		}
	}

	return account, true, nil
}

// LoginWithGoogle resolves the account for a Google profile and issues tokens
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile *oauth.Profile) (*LoginOutput, error) {
	account, _, err := s.FindOrCreateAccount(ctx, profile.ID, profile.Name, profile.Email, profile.Picture)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(account)
}

func (s *AuthService) issueTokens(account *entity.Account) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    s.jwtManager.AccessTokenTTL(),
		RefreshTTL:   s.jwtManager.RefreshTokenTTL(),
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	accountID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.NewStorageError("look up account", err)
	}
	if account == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(account)
}

// GetCurrentAccount returns the account by ID
func (s *AuthService) GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.NewStorageError("look up account", err)
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	return account, nil
}
