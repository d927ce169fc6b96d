package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/yumzee-api/internal/application/service"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yumzee-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yumzee-api/internal/presentation/http/middleware"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/sangkips/yumzee-api/pkg/oauth"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthenticator runs the Google authorization code flow
type GoogleAuthenticator interface {
	IsConfigured() bool
	AuthURL(state string) string
	Authenticate(ctx context.Context, code string) (*oauth.Profile, error)
}

// AuthCookieConfig controls the session cookies and the post-login redirects
type AuthCookieConfig struct {
	Secure     bool
	SuccessURL string
	ErrorURL   string
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	google      GoogleAuthenticator
	cookies     AuthCookieConfig
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, google GoogleAuthenticator, cookies AuthCookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, google: google, cookies: cookies, log: log}
}

// GoogleLogin redirects to the Google consent page
// @Summary Google Login
// @Description Start the Google OAuth flow
// @Tags auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.google.IsConfigured() {
		response.ErrorWithCode(c, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	state, err := service.NewOAuthState()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.cookies.Secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthURL(state))
}

// GoogleCallback completes the OAuth flow, sets the session cookies and
// redirects back to the frontend
// @Summary Google Callback
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 307
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expected, _ := c.Cookie(oauthStateCookie)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cookies.Secure, true)

	state := c.Query("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		h.log.Warn("oauth state mismatch", zap.String("ip", c.ClientIP()))
		c.Redirect(http.StatusTemporaryRedirect, h.cookies.ErrorURL)
		return
	}
	if reason := c.Query("error"); reason != "" {
		h.log.Info("oauth consent denied", zap.String("reason", reason))
		c.Redirect(http.StatusTemporaryRedirect, h.cookies.ErrorURL)
		return
	}

	profile, err := h.google.Authenticate(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.log.Warn("google authentication failed", zap.Error(err))
		c.Redirect(http.StatusTemporaryRedirect, h.cookies.ErrorURL)
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), profile)
	if err != nil {
		h.log.Error("login failed", zap.String("google_id", profile.ID), zap.Error(err))
		c.Redirect(http.StatusTemporaryRedirect, h.cookies.ErrorURL)
		return
	}

	h.setSessionCookies(c, output)
	c.Redirect(http.StatusTemporaryRedirect, h.cookies.SuccessURL)
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, output *service.LoginOutput) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, output.AccessToken, int(output.AccessTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, output.RefreshToken, int(output.RefreshTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Description Refresh access token using the refresh token body field or cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest false "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(middleware.RefreshTokenCookie)
	}
	if req.RefreshToken == "" {
		response.Error(c, apperror.ErrInvalidToken)
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookies(c, output)
	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout clears the session cookies
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.cookies.Secure, true)
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in account
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	accountID, ok := requireAccount(c)
	if !ok {
		return
	}

	account, err := h.authService.GetCurrentAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{"account": account})
}
