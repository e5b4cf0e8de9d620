package ports

import "github.com/quang/user-service/internal/core/domain"

// TokenKind distinguishes the two token lifetimes.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenCodec produces and validates signed, expiring tokens. Stateless.
type TokenCodec interface {
	// Issue signs a token for subject with the TTL of the given kind.
	Issue(subject string, kind TokenKind) (string, error)

	// ParseSubject extracts the subject after checking the signature only;
	// expiry is deliberately not enforced here so callers can look the user
	// up before full validation. Fails with domain.ErrInvalidToken.
	ParseSubject(token string) (string, error)

	// IsValid reports whether token has a valid signature, has not expired,
	// and names user as its subject. Validation failure is a boolean
	// outcome, never an error.
	IsValid(token string, user *domain.User) bool
}
