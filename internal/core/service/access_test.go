package service

import (
	"testing"

	"github.com/quang/user-service/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	admin := domain.Principal{Username: "root", Role: domain.RoleAdmin}
	alice := domain.Principal{Username: "alice", Role: domain.RoleUser}

	tests := []struct {
		name      string
		principal domain.Principal
		resource  Resource
		want      error
	}{
		{"anonymous is rejected", domain.Anonymous, Resource{AdminOnly: true}, domain.ErrUnauthorized},
		{"anonymous rejected even without constraints", domain.Anonymous, Resource{}, domain.ErrUnauthorized},
		{"admin passes admin-only", admin, Resource{AdminOnly: true}, nil},
		{"admin passes ownership on any resource", admin, Resource{OwnerUsername: "alice"}, nil},
		{"user fails admin-only", alice, Resource{AdminOnly: true}, domain.ErrForbidden},
		{"user passes own resource", alice, Resource{OwnerUsername: "alice"}, nil},
		{"user fails another user's resource", alice, Resource{OwnerUsername: "bob"}, domain.ErrForbidden},
		{"authenticated user passes unconstrained resource", alice, Resource{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.principal, tt.resource); got != tt.want {
				t.Fatalf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}
