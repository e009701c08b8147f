package auth

import "errors"

// ErrInvalidToken se devuelve cuando el token no pasa la verificación (firma, iss, aud, exp).
var ErrInvalidToken = errors.New("invalid token")

// Claims representa la información extraída del token.
type Claims struct {
	UserID string // sub
	Email  string
}
