package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/service"
	"github.com/Skotchmaster/bazar/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return fail(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_user_error", "invalid body", err)
	}

	res, err := h.Svc.CreateUser(ctx, models.User{Email: req.Email, Name: req.Name, PhotoURL: req.PhotoURL})
	if err != nil {
		return fail(l, "create_user_error", err)
	}

	l.Info("create_user_success", "id", res.InsertedID)
	return c.JSON(http.StatusOK, res)
}

func (h *UserHTTP) IsAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.is_admin")

	ok, err := h.Svc.IsAdmin(ctx, c.Param("email"))
	if err != nil {
		return fail(l, "is_admin_error", err)
	}
	return c.JSON(http.StatusOK, transport.IsAdminResponse{IsAdmin: ok})
}

func (h *UserHTTP) IsModerator(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.is_moderator")

	ok, err := h.Svc.IsModerator(ctx, c.Param("email"))
	if err != nil {
		return fail(l, "is_moderator_error", err)
	}
	return c.JSON(http.StatusOK, transport.IsModeratorResponse{IsModerator: ok})
}

func (h *UserHTTP) MakeAdmin(c echo.Context) error {
	return h.elevate(c, models.RoleAdmin)
}

func (h *UserHTTP) MakeModerator(c echo.Context) error {
	return h.elevate(c, models.RoleModerator)
}

func (h *UserHTTP) elevate(c echo.Context, target models.Role) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.make_"+string(target))

	res, err := h.Svc.Elevate(ctx, c.QueryParam("email"), target)
	if err != nil {
		return fail(l, "elevate_error", err)
	}

	l.Info("elevate_success", "modified", res.ModifiedCount, "upserted", res.UpsertedCount)
	return c.JSON(http.StatusOK, res)
}
