package types

// LoginRequest represents the expected JSON body for user login.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

// RegisterRequest represents the expected JSON body for user registration.
type RegisterRequest struct {
	Email       string `json:"email" example:"newuser@example.com"`
	Password    string `json:"password" example:"Str0ngP@ss!"`
	FirstName   string `json:"first_name" example:"Ana"`
	LastName    string `json:"last_name" example:"Silva"`
	PhoneNumber string `json:"phone_number,omitempty" example:"+351900000000"`
}

// RefreshTokenRequest carries the token to re-issue.
type RefreshTokenRequest struct {
	Token string `json:"token" example:"eyJhbGciOiJI..."`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJI..."`
	ExpiresAt int64  `json:"expires_at" example:"1735689600"`
}

// Response represents a generic API response for success or error messages.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Operation successful"`
	Error   string `json:"error,omitempty" example:"Resource not found"`
}
