package ports

import (
	"context"

	"github.com/quang/user-service/internal/core/domain"
)

// PageQuery describes one page of a sorted listing. Page is 0-based.
type PageQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// UserFilter narrows a paginated listing. Zero values mean "no filter".
type UserFilter struct {
	// Keyword matches username, email or "first last" name, case-insensitively.
	Keyword string
	Role    domain.Role
}

// UserRepository defines the interface for user persistence.
// Implementations must enforce username and email uniqueness; the
// application-level existence checks only produce friendlier errors.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)

	// FindPage returns one page of users plus the unfiltered/filtered total.
	FindPage(ctx context.Context, filter UserFilter, page PageQuery) ([]*domain.User, int64, error)
}
