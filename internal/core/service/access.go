package service

import "github.com/quang/user-service/internal/core/domain"

// Resource describes what an operation is about to touch, for authorization.
type Resource struct {
	// AdminOnly restricts the operation to ADMIN principals.
	AdminOnly bool
	// OwnerUsername, when set, additionally allows the owning user
	// (self-or-admin semantics).
	OwnerUsername string
}

// Authorize gates an operation for the given principal. Handlers call it
// explicitly at the top of each protected operation instead of relying on an
// ambient security context.
func Authorize(p domain.Principal, r Resource) error {
	if p.IsAnonymous() {
		return domain.ErrUnauthorized
	}
	if p.IsAdmin() {
		return nil
	}
	if r.OwnerUsername != "" && r.OwnerUsername == p.Username {
		return nil
	}
	if r.AdminOnly || r.OwnerUsername != "" {
		return domain.ErrForbidden
	}
	return nil
}
