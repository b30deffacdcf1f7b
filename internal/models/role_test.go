package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_AtLeast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		have, target Role
		want         bool
	}{
		{RoleNone, RoleModerator, false},
		{RoleNone, RoleAdmin, false},
		{RoleModerator, RoleModerator, true},
		{RoleModerator, RoleAdmin, false},
		{RoleAdmin, RoleModerator, true},
		{RoleAdmin, RoleAdmin, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.have.AtLeast(tt.target), "%s at least %s", tt.have, tt.target)
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleNone, r)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	_, err := ParseID("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = ParseID("not-an-id")
	assert.Error(t, err)
}
