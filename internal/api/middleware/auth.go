package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quang/user-service/internal/core/domain"
	"github.com/quang/user-service/internal/core/ports"
)

// principalKey is the echo context key the resolved principal is stored under.
const principalKey = "principal"

// Auth resolves the caller's principal from the Bearer access token and
// injects it into the request context. Token validity is re-checked against
// the current user state on every request: a token whose subject no longer
// resolves to an existing, enabled, unlocked user is rejected.
func Auth(codec ports.TokenCodec, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := parts[1]

			subject, err := codec.ParseSubject(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// Only a missing subject means the token is bad; a failing
			// store is a server-side problem and must not look like one.
			user, err := repo.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return fmt.Errorf("resolve token subject: %w", err)
			}
			if user.Locked || !user.Enabled {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if !codec.IsValid(token, user) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalKey, domain.Principal{Username: user.Username, Role: user.Role})

			return next(c)
		}
	}
}

// PrincipalFrom returns the principal injected by Auth, or the anonymous
// sentinel when the middleware did not run.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok {
		return domain.Anonymous
	}
	return p
}
