package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/tokens"
	"github.com/Skotchmaster/bazar/internal/transport"
)

type TokenHTTP struct {
	Issuer *tokens.Issuer
}

// IssueToken signs the posted claims. The body must be a non-empty JSON object.
func (h *TokenHTTP) IssueToken(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.issue_token")

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return badRequest(l, "issue_token_error", "body must be a JSON object", err)
	}
	if len(payload) == 0 {
		return badRequest(l, "issue_token_error", "body must be a JSON object", errors.New("empty claims"))
	}

	token, _, err := h.Issuer.Sign(payload)
	if err != nil {
		return fail(l, "issue_token_error", err)
	}

	l.Info("issue_token_success")
	return c.JSON(http.StatusOK, transport.TokenResponse{Token: token})
}
