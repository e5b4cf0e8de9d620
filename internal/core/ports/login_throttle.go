package ports

import "context"

// LoginThrottle counts failed login attempts per username so that repeated
// failures can be slowed down. Implementations are expected to expire
// counters on their own (fixed window).
type LoginThrottle interface {
	// TooManyFailures reports whether username has exceeded the allowed
	// number of failed attempts inside the current window.
	TooManyFailures(ctx context.Context, username string) (bool, error)

	// RecordFailure registers one failed attempt for username.
	RecordFailure(ctx context.Context, username string) error

	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
