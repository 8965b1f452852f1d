package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid or missing access token")
	ErrUnauthenticated = errors.New("caller is not authenticated")
)
