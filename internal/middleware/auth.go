package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/tokens"
)

const CtxClaims = "claims"

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

type TokenParser interface {
	Parse(token string) (*tokens.Claims, error)
}

// Verifier requires "Authorization: Bearer <token>" and stores the decoded
// claims under CtxClaims.
func Verifier(p TokenParser) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  CtxClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := p.Parse(auth)
			if err != nil {
				return nil, err
			}
			if claims.Email == "" {
				return nil, errors.New("token has no email claim")
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).
				Warn("auth_error", "status", http.StatusUnauthorized, "reason", "invalid bearer token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
		},
	})
}

func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(CtxClaims).(*tokens.Claims)
	return claims, ok && claims != nil
}

// Email returns the verified caller email or "" outside a verified route.
func Email(c echo.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return claims.Email
	}
	return ""
}
