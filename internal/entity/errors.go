package entity

import "errors"

// Sentinel errors the store reports; the transport maps them onto
// status codes and user-facing messages.
var (
	ErrNotFound = errors.New("not found")

	ErrDoorCodeExists   = errors.New("door code already exists")
	ErrLocationExists   = errors.New("location already exists")
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationEmpty    = errors.New("location name must not be empty")

	ErrEmailTaken = errors.New("email already taken")
)
