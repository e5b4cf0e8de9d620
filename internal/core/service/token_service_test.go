package service

import (
	"testing"
	"time"

	"github.com/quang/user-service/internal/core/domain"
	"github.com/quang/user-service/internal/core/ports"
)

func testClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func tamper(token string) string {
	last := token[len(token)-1]
	if last == 'A' {
		return token[:len(token)-1] + "B"
	}
	return token[:len(token)-1] + "A"
}

func TestTokenService_IssueAndParseSubject(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	token, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	subject, err := svc.ParseSubject(token)
	if err != nil {
		t.Fatalf("ParseSubject returned error: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenService_DistinctTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	t1, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	t2, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("expected two issuances to produce distinct tokens")
	}
}

func TestTokenService_IsValid(t *testing.T) {
	_, clock := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewTokenService("secret", time.Hour, 24*time.Hour).WithClock(clock)
	user := &domain.User{Username: "alice", Enabled: true}

	token, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !svc.IsValid(token, user) {
		t.Fatalf("expected token to be valid immediately after issuance")
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	now, clock := testClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewTokenService("secret", time.Hour, 24*time.Hour).WithClock(clock)
	user := &domain.User{Username: "alice", Enabled: true}

	access, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := svc.Issue("alice", ports.TokenRefresh)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	// Exactly at expiry the access token is already expired, the refresh
	// token with its longer TTL is still usable.
	*now = now.Add(time.Hour)
	if svc.IsValid(access, user) {
		t.Fatalf("expected access token expired at exactly now == exp")
	}
	if !svc.IsValid(refresh, user) {
		t.Fatalf("expected refresh token still valid after one hour")
	}

	*now = now.Add(24 * time.Hour)
	if svc.IsValid(refresh, user) {
		t.Fatalf("expected refresh token expired after its TTL")
	}

	// ParseSubject deliberately skips expiry validation.
	subject, err := svc.ParseSubject(access)
	if err != nil {
		t.Fatalf("ParseSubject on expired token: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)
	user := &domain.User{Username: "alice", Enabled: true}

	token, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	bad := tamper(token)
	if svc.IsValid(bad, user) {
		t.Fatalf("expected tampered token to be invalid")
	}
	if _, err := svc.ParseSubject(bad); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_SubjectMismatch(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	token, err := svc.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if svc.IsValid(token, &domain.User{Username: "bob"}) {
		t.Fatalf("expected token for alice to be invalid for bob")
	}
	if svc.IsValid(token, nil) {
		t.Fatalf("expected token to be invalid for nil user")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, 24*time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, 24*time.Hour)

	token, err := issuer.Issue("alice", ports.TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if verifier.IsValid(token, &domain.User{Username: "alice"}) {
		t.Fatalf("expected token signed with other secret to be invalid")
	}
}
