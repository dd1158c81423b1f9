package models

import "errors"

// Error kinds surfaced by the stores and services. Controllers map these to
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
