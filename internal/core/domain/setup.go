package domain

import "errors"

var (
	ErrSetupNotConfigured = errors.New("setup secret not configured")
	ErrInvalidSetupSecret = errors.New("invalid setup secret")
)
