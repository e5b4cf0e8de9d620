package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quang/user-service/internal/core/domain"
	"github.com/quang/user-service/internal/core/ports"
)

// AdminSeed holds the credentials of the default administrator created on
// first startup.
type AdminSeed struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// EnsureDefaultAdmin seeds a default ADMIN account when the store holds no
// users at all. Subsequent startups are no-ops.
func EnsureDefaultAdmin(ctx context.Context, repo ports.UserRepository, seed AdminSeed, logger zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Info().Msg("users already exist, skipping default admin creation")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: string(hash),
		FirstName:    seed.FirstName,
		LastName:     seed.LastName,
		Role:         domain.RoleAdmin,
		Enabled:      true,
		Locked:       false,
		CreatedBy:    domain.SystemActor,
		UpdatedBy:    domain.SystemActor,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info().Str("username", seed.Username).Msg("created default admin account")
	return nil
}
