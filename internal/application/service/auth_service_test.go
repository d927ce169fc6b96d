package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	infraRepo "github.com/sangkips/yumzee-api/internal/infrastructure/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/sangkips/yumzee-api/pkg/oauth"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"go.uber.org/zap"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) SendWelcomeEmail(to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func newAuthService(t *testing.T, mailer WelcomeMailer) (*AuthService, *utils.JWTManager) {
	t.Helper()
	f := newFixture(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewAccountRepository(f.db), jwtManager, mailer, zap.NewNop()), jwtManager
}

func TestFindOrCreateAccount(t *testing.T) {
	mailer := &recordingMailer{}
	auth, _ := newAuthService(t, mailer)
	ctx := context.Background()

	first, created, err := auth.FindOrCreateAccount(ctx, "g-1", "Asha", "asha@example.com", "https://img/asha.png")
	if err != nil {
		t.Fatalf("FindOrCreateAccount() error = %v", err)
	}
	if !created {
		t.Error("first login should create the account")
	}

	second, created, err := auth.FindOrCreateAccount(ctx, "g-1", "Asha R", "asha@example.com", "")
	if err != nil {
		t.Fatalf("FindOrCreateAccount() error = %v", err)
	}
	if created || second.ID != first.ID {
		t.Errorf("second login created=%v id=%s, want existing %s", created, second.ID, first.ID)
	}

	if len(mailer.sent) != 1 || mailer.sent[0] != "asha@example.com" {
		t.Errorf("welcome emails = %v, want exactly one", mailer.sent)
	}

	_, _, err = auth.FindOrCreateAccount(ctx, " ", "x", "x@example.com", "")
	wantValidation(t, err)
}

func TestFindOrCreateAccountConcurrent(t *testing.T) {
	auth, _ := newAuthService(t, nil)
	ctx := context.Background()

	const workers = 6
	ids := make([]uuid.UUID, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acc, _, err := auth.FindOrCreateAccount(ctx, "g-race", "Ravi", "ravi@example.com", "")
			errs[i] = err
			if acc != nil {
				ids[i] = acc.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		if errs[i] != nil {
			t.Fatalf("worker %d error = %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("worker %d got account %s, want %s", i, ids[i], ids[0])
		}
	}
}

func TestWelcomeEmailFailureDoesNotBlockLogin(t *testing.T) {
	auth, _ := newAuthService(t, &recordingMailer{err: errors.New("smtp down")})

	out, err := auth.LoginWithGoogle(context.Background(), &oauth.Profile{ID: "g-2", Name: "Meera", Email: "meera@example.com"})
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("LoginWithGoogle() should issue both tokens")
	}
}

func TestRefreshToken(t *testing.T) {
	auth, jwtManager := newAuthService(t, nil)
	ctx := context.Background()

	login, err := auth.LoginWithGoogle(ctx, &oauth.Profile{ID: "g-3", Name: "Kiran", Email: "kiran@example.com"})
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}

	refreshed, err := auth.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	claims, err := jwtManager.ValidateAccessToken(refreshed.AccessToken)
	if err != nil || claims.AccountID != login.Account.ID {
		t.Errorf("refreshed access token claims = %+v, %v", claims, err)
	}

	if _, err := auth.RefreshToken(ctx, login.AccessToken); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("RefreshToken(access token) error = %v, want ErrInvalidToken", err)
	}

	orphan, err := jwtManager.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if _, err := auth.RefreshToken(ctx, orphan); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("RefreshToken(unknown account) error = %v, want ErrInvalidToken", err)
	}

	_, err = auth.GetCurrentAccount(ctx, uuid.New())
	wantNotFound(t, err)
}

func TestNewOAuthState(t *testing.T) {
	a, err := NewOAuthState()
	if err != nil {
		t.Fatalf("NewOAuthState() error = %v", err)
	}
	b, _ := NewOAuthState()
	if len(a) != 32 || a == b {
		t.Errorf("NewOAuthState() = %q, %q; want distinct 32-char values", a, b)
	}
}
