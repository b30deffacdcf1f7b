package models

import "fmt"

type Role string

const (
	RoleNone      Role = ""
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleNone, RoleModerator, RoleAdmin:
		return Role(s), nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants everything target grants.
func (r Role) AtLeast(target Role) bool {
	return r.rank() >= target.rank()
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) IsModerator() bool { return r == RoleModerator }

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}
