// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gamelaunch/game/pkg/catalog"
)

// MustWriteFile writes contents to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteCatalog writes contents as games.toml in a fresh temporary directory
// and returns its path.
func WriteCatalog(t testing.TB, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), catalog.FileName)
	MustWriteFile(t, path, contents)
	return path
}
