package oidc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barkbuddy/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenEmpty = errors.New("token is empty")

// Config del verificador OIDC.
type Config struct {
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Verifier implementa auth.AuthVerifier validando JWTs contra el JWKS del issuer.
type Verifier struct {
	keys   jwt.Keyfunc
	parser *jwt.Parser
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewVerifier recibe el keyfunc del JWKS (ver NewKeys).
func NewVerifier(cfg Config, keys jwt.Keyfunc) *Verifier {
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = 30 * time.Second
	}
	return &Verifier{
		keys: keys,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256"}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(leeway),
		),
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if err := ctx.Err(); err != nil {
		return auth.Claims{}, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	_, err := v.parser.ParseWithClaims(token, &tc, v.keys)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(tc.Email),
	}, nil
}
