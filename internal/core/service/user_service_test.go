package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quang/user-service/internal/core/domain"
	"github.com/quang/user-service/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, email string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      true,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return user
}

func createInput(username, email string, role domain.Role) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username:  username,
		Email:     email,
		Password:  "pass1234",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Create(context.Background(), "admin", createInput("alice", "alice@example.com", domain.RoleUser))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.CreatedBy != "admin" || user.UpdatedBy != "admin" {
		t.Fatalf("expected audit fields from actor, got %q/%q", user.CreatedBy, user.UpdatedBy)
	}

	if _, err := svc.Create(context.Background(), "admin", createInput("alice", "other@example.com", domain.RoleUser)); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "admin", createInput("alice2", "alice@example.com", domain.RoleUser)); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "admin", createInput("mallory", "m@example.com", "SUPERUSER")); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user := seedUser(t, repo, "bob", "bob@example.com", domain.RoleUser)
	oldHash := user.PasswordHash

	updated, err := svc.Update(context.Background(), "admin", user.ID, ports.UpdateUserInput{
		Username:  "bob",
		Email:     "bob-new@example.com",
		FirstName: "Bob",
		LastName:  "Builder",
		Role:      domain.RoleAdmin,
		Enabled:   true,
		Locked:    false,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Email != "bob-new@example.com" || updated.Role != domain.RoleAdmin {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.PasswordHash != oldHash {
		t.Fatalf("password must not be re-hashed when not supplied")
	}
	if updated.UpdatedBy != "admin" {
		t.Fatalf("expected actor in UpdatedBy, got %q", updated.UpdatedBy)
	}

	// Supplying a password re-hashes it.
	updated, err = svc.Update(context.Background(), "admin", user.ID, ports.UpdateUserInput{
		Username: "bob",
		Email:    "bob-new@example.com",
		Password: "newpass123",
		Role:     domain.RoleAdmin,
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("update with password failed: %v", err)
	}
	if updated.PasswordHash == oldHash {
		t.Fatalf("expected password hash to change")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass123")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestUserService_Update_UniquenessOnChangeOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	seedUser(t, repo, "carol", "carol@example.com", domain.RoleUser)
	user := seedUser(t, repo, "dave", "dave@example.com", domain.RoleUser)

	// Keeping one's own username/email is never a conflict.
	if _, err := svc.Update(context.Background(), "admin", user.ID, ports.UpdateUserInput{
		Username: "dave", Email: "dave@example.com", Role: domain.RoleUser, Enabled: true,
	}); err != nil {
		t.Fatalf("self-update rejected: %v", err)
	}

	// Taking another user's username or email is.
	if _, err := svc.Update(context.Background(), "admin", user.ID, ports.UpdateUserInput{
		Username: "carol", Email: "dave@example.com", Role: domain.RoleUser, Enabled: true,
	}); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "admin", user.ID, ports.UpdateUserInput{
		Username: "dave", Email: "carol@example.com", Role: domain.RoleUser, Enabled: true,
	}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user := seedUser(t, repo, "erin", "erin@example.com", domain.RoleUser)

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), "does-not-exist"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for unknown id, got %v", err)
	}
}

func TestUserService_GetByID(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user := seedUser(t, repo, "frank", "frank@example.com", domain.RoleUser)

	got, err := svc.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Username != "frank" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListPagination(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	names := []string{"ann", "ben", "cia", "dan", "eva"}
	for _, n := range names {
		seedUser(t, repo, n, n+"@example.com", domain.RoleUser)
	}

	page, err := svc.List(context.Background(), ports.PageQuery{Page: 0, Size: 2, SortBy: "username", SortDir: "asc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalElements != 5 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	if len(page.Users) != 2 || page.Users[0].Username != "ann" || page.Users[1].Username != "ben" {
		t.Fatalf("unexpected first page: %+v", page.Users)
	}

	page, err = svc.List(context.Background(), ports.PageQuery{Page: 2, Size: 2, SortBy: "username", SortDir: "asc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Users) != 1 || page.Users[0].Username != "eva" {
		t.Fatalf("unexpected last page: %+v", page.Users)
	}
}

func TestUserService_Search(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	seedUser(t, repo, "grace", "grace@example.com", domain.RoleAdmin)
	seedUser(t, repo, "henry", "henry@example.com", domain.RoleUser)
	seedUser(t, repo, "graham", "graham@example.com", domain.RoleUser)

	page, err := svc.Search(context.Background(), ports.UserFilter{Keyword: "gra"}, ports.PageQuery{Size: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 keyword matches, got %d", page.TotalElements)
	}

	page, err = svc.Search(context.Background(), ports.UserFilter{Keyword: "gra", Role: domain.RoleAdmin}, ports.PageQuery{Size: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.TotalElements != 1 || page.Users[0].Username != "grace" {
		t.Fatalf("expected only grace, got %+v", page.Users)
	}
}
