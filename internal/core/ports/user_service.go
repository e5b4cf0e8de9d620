package ports

import (
	"context"

	"github.com/quang/user-service/internal/core/domain"
)

// CreateUserInput is an admin-initiated user creation.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// UpdateUserInput overwrites an existing user's profile. Password is
// re-hashed only when non-empty.
type UpdateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
	Enabled   bool
	Locked    bool
}

// UserPage is one page of users with paging metadata.
type UserPage struct {
	Users         []*domain.User
	PageNo        int
	PageSize      int
	TotalElements int64
	TotalPages    int
}

// UserService provides CRUD and paginated search over users. Mutating
// operations take the acting principal's username for the audit trail.
type UserService interface {
	List(ctx context.Context, page PageQuery) (*UserPage, error)
	Search(ctx context.Context, filter UserFilter, page PageQuery) (*UserPage, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, actor string, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor string, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
