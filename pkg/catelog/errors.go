package catelog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrAlbumNotFound = fmt.Errorf("album %w", ErrNotFound)
var ErrPhotoNotFound = fmt.Errorf("photo %w", ErrNotFound)

var ErrUnauthorized = errors.New("unauthorized")
var ErrNotPrivileged = fmt.Errorf("%w: role is not privileged", ErrUnauthorized)

// ValidationError is returned when a request body is missing or blanks a
// required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// ErrorRes is the body written for every failed request.
type ErrorRes struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
