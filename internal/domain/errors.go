package domain

import "errors"

// Expected domain failures for the auth flow. Services return these
// sentinels and handlers translate them to HTTP; anything outside this
// set is an infrastructure error.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
