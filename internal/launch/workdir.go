// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"path/filepath"

	"github.com/gamelaunch/game/pkg/catalog"
)

// ResolveWorkDir computes the directory a game is started in.
//
// With prefix_dir set, the directory stored under that key is joined with
// dir; an absolute dir is used as is. Without prefix_dir, dir is returned
// verbatim. An empty result means the launcher's own working directory.
func ResolveWorkDir(g *catalog.Game, dirs catalog.DirectoryTable) (string, error) {
	if g.PrefixDir == "" {
		return g.Dir, nil
	}

	base, err := dirs.Resolve(g.PrefixDir)
	if err != nil {
		return "", &catalog.ConfigError{GameID: g.ID, Field: "prefix_dir", Err: err}
	}
	if g.Dir == "" {
		return filepath.Clean(base), nil
	}
	if filepath.IsAbs(g.Dir) {
		return filepath.Clean(g.Dir), nil
	}
	return filepath.Join(base, g.Dir), nil
}
