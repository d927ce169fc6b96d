package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestAuthURLCarriesState(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/v1/auth/google/callback",
	})

	u, err := url.Parse(svc.AuthURL("xyz"))
	if err != nil {
		t.Fatalf("AuthURL() is not a URL: %v", err)
	}
	q := u.Query()
	if q.Get("state") != "xyz" || q.Get("client_id") != "client" {
		t.Errorf("query = %v", q)
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("scope = %q, want email", q.Get("scope"))
	}
}

func TestAuthenticateRequiresConfig(t *testing.T) {
	svc := NewGoogleOAuthService(GoogleOAuthConfig{})
	_, err := svc.Authenticate(context.Background(), "code")
	if !errors.Is(err, ErrOAuthNotConfigured) {
		t.Errorf("error = %v, want ErrOAuthNotConfigured", err)
	}
}

func TestFetchProfile(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"ok", http.StatusOK, `{"id":"g-1","email":"a@example.com","name":"Asha","picture":"http://p"}`, false},
		{"missing id", http.StatusOK, `{"email":"a@example.com"}`, true},
		{"upstream error", http.StatusUnauthorized, `{"error":"invalid_token"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			svc := NewGoogleOAuthService(GoogleOAuthConfig{ClientID: "c", ClientSecret: "s"})
			svc.userInfoURL = srv.URL

			profile, err := svc.fetchProfile(context.Background(), srv.Client())
			if (err != nil) != tt.wantErr {
				t.Fatalf("fetchProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFailedToGetUser) {
				t.Errorf("error = %v, want ErrFailedToGetUser", err)
			}
			if err == nil && (profile.ID != "g-1" || profile.Name != "Asha") {
				t.Errorf("profile = %+v", profile)
			}
		})
	}
}
