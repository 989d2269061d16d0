package service

import (
	"errors"
	"fmt"
)

var (
	ErrConflict     = errors.New("email already registered")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot tell which accounts exist.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)

	ErrPostNotFound   = fmt.Errorf("%w: post not found", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrNotPostOwner   = fmt.Errorf("%w: you can only modify your own posts", ErrForbidden)
	ErrAccountMissing = fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
)
