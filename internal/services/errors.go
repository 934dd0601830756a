package services

import (
	"errors"
	"fmt"
)

// ErrNoPhotos is returned by archive assembly for an order whose manifest
// is empty.
var ErrNoPhotos = errors.New("no photos in order")

// ValidationError marks a submission the caller can fix. Handlers map it
// to a 400 with the message exposed as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
