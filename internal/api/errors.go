package api

import (
	"errors"
	"fmt"
	"net/http"
)

// duplicateDoorMessage is the exact message the API returns alongside a
// 400 when a door code is already taken. There is no structured error
// code, matching is by string.
const duplicateDoorMessage = "Door code already exists."

// APIError is a non-2xx response from the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// ErrDoorCodeExists reports the one business conflict the console shows
// a dedicated message for.
var ErrDoorCodeExists = errors.New("door code already exists")

// ErrUnauthorized reports a rejected bearer credential. The console does
// not refresh or retry; the user logs in again.
var ErrUnauthorized = errors.New("unauthorized")

// wrapStatus converts a response status and message body into the error
// taxonomy: known conflicts become sentinels, everything else an APIError.
func wrapStatus(status int, message string) error {
	switch {
	case status == http.StatusBadRequest && message == duplicateDoorMessage:
		return ErrDoorCodeExists
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return &APIError{StatusCode: status, Message: message}
	}
}
