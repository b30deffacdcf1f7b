package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the part of a signed payload the server relies on. Any other
// posted claims stay in the token but are not decoded.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Issuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{Secret: secret, TTL: ttl, Now: time.Now}
}

// Sign signs payload as is, adding iat and exp.
func (i *Issuer) Sign(payload map[string]any) (string, time.Time, error) {
	now := i.Now()
	exp := now.Add(i.TTL)

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = exp.Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	return ClaimsFromToken(tokenStr, i.Secret, jwt.WithTimeFunc(i.Now))
}

func ClaimsFromToken(tokenStr string, secret []byte, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
