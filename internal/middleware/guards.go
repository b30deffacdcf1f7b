package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

type UserLookup interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole runs after Verifier and reads the caller's role from the store
// on every request, so role changes apply immediately.
func RequireRole(users UserLookup, allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "require_role")

			email := Email(c)
			if email == "" {
				l.Warn("guard_error", "status", 401, "reason", "no verified caller")
				return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
			}

			u, err := users.FindUserByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					l.Warn("guard_error", "status", 403, "reason", "unknown user", "email", email)
					return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
				}
				l.Error("guard_error", "status", 500, "reason", "cannot load user", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			for _, r := range allowed {
				if u.Role == r {
					return next(c)
				}
			}
			l.Warn("guard_error", "status", 403, "reason", "insufficient role", "email", email, "role", u.Role.String())
			return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
		}
	}
}

func RequireAdmin(users UserLookup) echo.MiddlewareFunc {
	return RequireRole(users, models.RoleAdmin)
}

func RequireModeratorOrAdmin(users UserLookup) echo.MiddlewareFunc {
	return RequireRole(users, models.RoleModerator, models.RoleAdmin)
}
