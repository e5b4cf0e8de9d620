package ports

import "context"

// RegisterInput carries the fields of a self-service registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// TokenPair is the result of every successful authentication flow.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService orchestrates registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*TokenPair, error)
	Authenticate(ctx context.Context, username, password string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}
