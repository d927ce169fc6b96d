package request

// RefreshTokenRequest represents a token refresh request. The token may also
// come from the refresh_token cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
