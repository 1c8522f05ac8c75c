package auth

import "errors"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrForbidden    = errors.New("administrator session required")
)
