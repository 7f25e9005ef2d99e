package session

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownElementError is returned when a command names elements that are not
// in the scene or are deleted.
type UnknownElementError struct {
	IDs []string
}

// Error implements the error interface.
func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("unknown element(s): %s", strings.Join(e.IDs, ", "))
}

// IsUnknownElement reports whether err is an UnknownElementError.
// Uses errors.As to handle wrapped errors.
func IsUnknownElement(err error) bool {
	var ue *UnknownElementError
	return errors.As(err, &ue)
}
