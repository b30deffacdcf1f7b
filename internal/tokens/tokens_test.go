package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_SignAndParse(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("test-secret"), 0)
	token, exp, err := iss.Sign(map[string]any{"email": "user@bazar.com", "name": "User"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 2*time.Second)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user@bazar.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestIssuer_ParseRejectsExpired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("test-secret"), time.Hour)
	iss.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := iss.Sign(map[string]any{"email": "user@bazar.com"})
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, []byte("test-secret"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestClaimsFromToken_RejectsForeignTokens(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("test-secret"), time.Hour)
	token, _, err := iss.Sign(map[string]any{"email": "user@bazar.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", token},
		{"garbage", "not.a.token"},
		{"no exp", mustSign(t, jwt.MapClaims{"email": "user@bazar.com"}, "other-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClaimsFromToken(tt.token, []byte("other-secret"))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClaimsFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{"email": "user@bazar.com", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, []byte("test-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func mustSign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}
