package model

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidToken      = errors.New("invalid token")
	ErrCryptoUnavailable = errors.New("crypto unavailable")
	ErrPasswordTooLong   = errors.New("password too long")
)
