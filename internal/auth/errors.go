package auth

import (
	"errors"
)

var (
	// ErrInvalidCredentials wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized the access token is missing, expired or revoked.
	ErrUnauthorized = errors.New("not authenticated")
)
