// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
)

// Backend values in precedence order. BackendNone is the zero value and
// means the game has not been resolved yet.
const (
	BackendNone Backend = iota
	BackendNative
	BackendWine
	BackendDOSBox
	BackendScummVM
)

// ErrInvalidBackend is the sentinel error wrapped by InvalidBackendError.
var ErrInvalidBackend = errors.New("invalid backend")

type (
	// Backend is the launch mechanism of a game.
	Backend int

	// InvalidBackendError is returned when a Backend value is out of range.
	InvalidBackendError struct {
		Value Backend
	}
)

// Error implements the error interface.
func (e *InvalidBackendError) Error() string {
	return fmt.Sprintf("invalid backend %d", int(e.Value))
}

// Unwrap returns ErrInvalidBackend.
func (e *InvalidBackendError) Unwrap() error { return ErrInvalidBackend }

// IsValid reports whether b is one of the four launch backends.
func (b Backend) IsValid() (bool, []error) {
	switch b {
	case BackendNative, BackendWine, BackendDOSBox, BackendScummVM:
		return true, nil
	default:
		return false, []error{&InvalidBackendError{Value: b}}
	}
}

// String returns the lowercase backend name.
func (b Backend) String() string {
	switch b {
	case BackendNative:
		return "native"
	case BackendWine:
		return "wine"
	case BackendDOSBox:
		return "dosbox"
	case BackendScummVM:
		return "scummvm"
	case BackendNone:
		return "none"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}
