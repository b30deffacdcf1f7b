package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/bazar/internal/events"
	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/models"
	"github.com/Skotchmaster/bazar/internal/store"
)

type UserService struct {
	Store  store.Users
	Events events.Publisher
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

// CreateUser stores a signup record. Roles are never taken from the client.
func (s *UserService) CreateUser(ctx context.Context, u models.User) (store.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return store.InsertResult{}, validation("email is required")
	}
	u.Role = models.RoleNone

	res, err := s.Store.InsertUser(ctx, &u)
	if err != nil {
		return store.InsertResult{}, storeErr("insert user", err)
	}

	publish(ctx, s.Events, events.TopicUsers, u.ID.Hex(), events.New("user_created", u))
	return res, nil
}

// RoleOf returns RoleNone for an unknown email.
func (s *UserService) RoleOf(ctx context.Context, email string) (models.Role, error) {
	u, err := s.Store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, storeErr("find user", err)
	}
	return u.Role, nil
}

func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.RoleOf(ctx, email)
	return role.IsAdmin(), err
}

func (s *UserService) IsModerator(ctx context.Context, email string) (bool, error) {
	role, err := s.RoleOf(ctx, email)
	return role.IsModerator(), err
}

// Elevate raises email to target. A user already at or above target is
// left alone and a zero result is returned. Concurrent calls for one email
// are not serialized; the last write wins and always stores a valid role.
func (s *UserService) Elevate(ctx context.Context, email string, target models.Role) (store.UpdateResult, error) {
	l := logging.FromContext(ctx).With("svc", "users.elevate")

	email = strings.TrimSpace(email)
	if email == "" {
		return store.UpdateResult{}, validation("email is required")
	}
	if target == models.RoleNone {
		return store.UpdateResult{}, validation("target role is required")
	}

	current, err := s.RoleOf(ctx, email)
	if err != nil {
		return store.UpdateResult{}, err
	}
	if current.AtLeast(target) {
		l.Info("elevate_noop", "email", email, "role", current.String(), "target", target.String())
		return store.UpdateResult{Acknowledged: true}, nil
	}

	res, err := s.Store.SetUserRole(ctx, email, target)
	if err != nil {
		return store.UpdateResult{}, storeErr("set user role", err)
	}

	publish(ctx, s.Events, events.TopicUsers, email, events.New("user_role_changed", map[string]any{
		"email": email,
		"from":  current.String(),
		"to":    target.String(),
	}))
	return res, nil
}
