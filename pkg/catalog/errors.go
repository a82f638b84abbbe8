// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoBackendConfigured is returned for a game without cmd, wine_exe,
	// dosbox_config or scummvm_id.
	ErrNoBackendConfigured = errors.New("no launch backend configured (set cmd, wine_exe, dosbox_config or scummvm_id)")

	// ErrUnknownDirectoryKey is returned when prefix_dir names a key missing
	// from [directories].
	ErrUnknownDirectoryKey = errors.New("unknown directory key")

	// ErrUnknownGameID is returned when a game ID is not in the catalog.
	ErrUnknownGameID = errors.New("unknown game id")

	// ErrNotInstalled is returned when launching a game marked installed = false.
	ErrNotInstalled = errors.New("game is not installed")

	// ErrNoMatchingGames is returned by random selection over an empty match set.
	ErrNoMatchingGames = errors.New("no matching games")

	// ErrInvalidTag is returned for tags that are empty or contain reserved characters.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrDuplicateTag is returned when a game lists the same tag twice.
	ErrDuplicateTag = errors.New("duplicate tag")

	// ErrConflictingFields is returned when two mutually exclusive keys are set.
	ErrConflictingFields = errors.New("conflicting fields")

	// ErrInvalidCommand is returned when cmd or wine_exe cannot be split into words.
	ErrInvalidCommand = errors.New("invalid command line")

	// ErrRelativeDirectory is returned for a [directories] entry that is not absolute.
	ErrRelativeDirectory = errors.New("directory must be an absolute path")

	// ErrMissingGamesTable is returned when games.toml has no [games] table.
	ErrMissingGamesTable = errors.New("a [games] table is required")
)

type (
	// ConfigError is a problem with one catalog entry. GameID is empty for
	// problems outside [games].
	ConfigError struct {
		GameID string
		Field  string
		Err    error
	}

	// UnknownGameError reports a lookup for an ID that is not configured.
	UnknownGameError struct {
		ID string
	}

	// LoadError collects every problem found while loading a catalog.
	LoadError struct {
		Path string
		Errs []error
	}
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	if e.GameID != "" {
		sb.WriteString("games.")
		sb.WriteString(e.GameID)
		if e.Field != "" {
			sb.WriteString(".")
		}
	}
	sb.WriteString(e.Field)
	if sb.Len() > 0 {
		sb.WriteString(": ")
	}
	sb.WriteString(e.Err.Error())
	return sb.String()
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *UnknownGameError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownGameID, e.ID)
}

// Unwrap returns ErrUnknownGameID.
func (e *UnknownGameError) Unwrap() error { return ErrUnknownGameID }

// Error implements the error interface.
func (e *LoadError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ": "
	}
	if len(e.Errs) == 1 {
		return prefix + e.Errs[0].Error()
	}
	lines := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		lines[i] = err.Error()
	}
	return fmt.Sprintf("%s%d problems:\n  %s", prefix, len(e.Errs), strings.Join(lines, "\n  "))
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error { return e.Errs }
