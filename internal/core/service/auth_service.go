package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quang/user-service/internal/api/metrics"
	"github.com/quang/user-service/internal/core/domain"
	"github.com/quang/user-service/internal/core/ports"
)

// AuthService implements registration, login and refresh-token rotation.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenCodec
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService creates the auth flow. throttle may be nil, which disables
// failed-login throttling.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenCodec, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.TokenPair, error) {
	usernameTaken, err := s.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	emailTaken, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if usernameTaken || emailTaken {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleUser,
		Enabled:      true,
		Locked:       false,
		CreatedBy:    domain.SystemActor,
		UpdatedBy:    domain.SystemActor,
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Re-fetch by username so the tokens are issued against what the store
	// actually holds. Absence here is a store invariant violation and must
	// surface as an internal error, not a lookup miss, so the sentinel is
	// deliberately not wrapped.
	saved, err := s.repo.FindByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("user missing immediately after save: %v", err)
	}

	s.logger.Info().Str("username", saved.Username).Msg("user registered")
	metrics.RegistrationsTotal.Inc()

	return s.issuePair(saved.Username)
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("login throttle: %w", err)
		}
		if blocked {
			s.logger.Warn().Str("username", username).Msg("login throttled")
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.logger.Warn().Str("username", username).Msg("login with unknown username")
			metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	// Locked takes precedence over disabled.
	if user.Locked {
		s.logger.Warn().Str("username", username).Msg("login attempt on locked account")
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		return nil, domain.ErrAccountLocked
	}
	if !user.Enabled {
		s.logger.Warn().Str("username", username).Msg("login attempt on disabled account")
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, username); err != nil {
				s.logger.Error().Err(err).Str("username", username).Msg("recording failed attempt")
			}
		}
		s.logger.Warn().Str("username", username).Msg("bad credentials")
		metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
		return nil, domain.ErrBadCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("resetting throttle")
		}
	}

	s.logger.Info().Str("username", username).Msg("authentication successful")
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return s.issuePair(user.Username)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	subject, err := s.tokens.ParseSubject(refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrBadCredentials
	}

	user, err := s.repo.FindByUsername(ctx, subject)
	if err != nil {
		if err == domain.ErrUserNotFound {
			metrics.TokenRefreshesTotal.WithLabelValues("unknown_user").Inc()
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !s.tokens.IsValid(refreshToken, user) {
		s.logger.Warn().Str("username", subject).Msg("refresh token validation failed")
		metrics.TokenRefreshesTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrBadCredentials
	}

	s.logger.Info().Str("username", subject).Msg("tokens rotated")
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	// Rotation: both tokens are re-issued, the old refresh token is simply
	// superseded rather than blacklisted.
	return s.issuePair(user.Username)
}

func (s *AuthService) issuePair(username string) (*ports.TokenPair, error) {
	access, err := s.tokens.Issue(username, ports.TokenAccess)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.Issue(username, ports.TokenRefresh)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
