// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
)

const (
	// DefaultWidth is the compositor width used when [settings] omits it.
	DefaultWidth = 1280
	// DefaultHeight is the compositor height used when [settings] omits it.
	DefaultHeight = 720
)

// ErrInvalidSettings is the sentinel error wrapped by InvalidSettingsError.
var ErrInvalidSettings = errors.New("invalid settings")

type (
	// Settings are the process-wide launch settings from [settings].
	// They are passed by value and never mutated after load.
	Settings struct {
		Width        int
		Height       int
		UseGamescope bool
	}

	// InvalidSettingsError is returned when a dimension is not positive.
	InvalidSettingsError struct {
		Field string
		Value int
	}
)

// DefaultSettings returns 1280x720 without gamescope.
func DefaultSettings() Settings {
	return Settings{Width: DefaultWidth, Height: DefaultHeight}
}

// Error implements the error interface.
func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("invalid settings.%s %d (must be positive)", e.Field, e.Value)
}

// Unwrap returns ErrInvalidSettings.
func (e *InvalidSettingsError) Unwrap() error { return ErrInvalidSettings }

// IsValid reports whether both dimensions are positive.
func (s Settings) IsValid() (bool, []error) {
	var errs []error
	if s.Width <= 0 {
		errs = append(errs, &InvalidSettingsError{Field: "width", Value: s.Width})
	}
	if s.Height <= 0 {
		errs = append(errs, &InvalidSettingsError{Field: "height", Value: s.Height})
	}
	return len(errs) == 0, errs
}
