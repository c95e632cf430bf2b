package crypto

import (
	"errors"
	"fmt"
)

// ErrKeyUnavailable is returned by key handles that cannot reach their key.
var ErrKeyUnavailable = errors.New("key unavailable")

// algorithmMismatchError is returned when a key cannot sign with the requested
// curve or hash algorithm.
type algorithmMismatchError struct {
	error
}

// NewAlgorithmMismatchErrorf constructs an error classified by IsAlgorithmMismatchError.
func NewAlgorithmMismatchErrorf(msg string, args ...interface{}) error {
	return algorithmMismatchError{
		error: fmt.Errorf(msg, args...),
	}
}

func (e algorithmMismatchError) Unwrap() error {
	return e.error
}

// IsAlgorithmMismatchError checks if the input error is of an algorithmMismatchError type
func IsAlgorithmMismatchError(err error) bool {
	var target algorithmMismatchError
	return errors.As(err, &target)
}
