// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"maps"
	"strings"

	"github.com/ErikKalkoken/go-set"
)

// reservedTagChars may not appear in stored tags: they are query syntax.
const reservedTagChars = ", \t\n"

// Game is one validated catalog entry.
//
// Cmd and WineExe hold the command lines already split into words. Exactly
// one backend is selected in Backend; the fields of the other backends are
// kept for display but ignored when launching.
type Game struct {
	ID   string
	Name string

	Backend      Backend
	Cmd          []string
	WineExe      []string
	DOSBoxConfig string
	ScummVMID    string

	Dir       string
	PrefixDir string
	Env       map[string]string

	// FPSLimit is zero when unset.
	FPSLimit int
	// UseMangoHUD and UseVK are nil when the file leaves them unset.
	UseMangoHUD *bool
	UseVK       *bool
	Installed   bool
	Tags        set.Set[string]
}

// DisplayName returns Name, or the ID when no name is configured.
func (g *Game) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// String formats the game the way list prints it: "<id> - <name>".
func (g *Game) String() string {
	return fmt.Sprintf("%s - %s", g.ID, g.DisplayName())
}

// MangoHUDEnabled applies the overlay default: on for Wine, off otherwise,
// unless use_mangohud is set explicitly.
func (g *Game) MangoHUDEnabled() bool {
	if g.UseMangoHUD != nil {
		return *g.UseMangoHUD
	}
	return g.Backend == BackendWine
}

// VKEnabled reports whether the DXVK/VKD3D translation layer stays active.
// Defaults to true and only matters for Wine games.
func (g *Game) VKEnabled() bool {
	return g.UseVK == nil || *g.UseVK
}

// SortedTags returns the game's tags in lexical order.
func (g *Game) SortedTags() []string {
	return sortedSet(g.Tags)
}

// detectBackend applies the fixed precedence cmd > wine_exe > dosbox_config > scummvm_id.
func (g *Game) detectBackend() Backend {
	switch {
	case len(g.Cmd) > 0:
		return BackendNative
	case len(g.WineExe) > 0:
		return BackendWine
	case g.DOSBoxConfig != "":
		return BackendDOSBox
	case g.ScummVMID != "":
		return BackendScummVM
	default:
		return BackendNone
	}
}

// HasBackendFields reports whether the fields required by Backend are present.
func (g *Game) HasBackendFields() bool {
	switch g.Backend {
	case BackendNative:
		return len(g.Cmd) > 0 && g.Cmd[0] != ""
	case BackendWine:
		return len(g.WineExe) > 0 && g.WineExe[0] != ""
	case BackendDOSBox:
		return g.DOSBoxConfig != ""
	case BackendScummVM:
		return g.ScummVMID != ""
	default:
		return false
	}
}

// validate resolves the backend when unset and checks the per-game rules.
func (g *Game) validate(dirs DirectoryTable) []error {
	var errs []error
	fail := func(field string, err error) {
		errs = append(errs, &ConfigError{GameID: g.ID, Field: field, Err: err})
	}

	if g.Backend == BackendNone {
		g.Backend = g.detectBackend()
	}
	if !g.HasBackendFields() {
		fail("", ErrNoBackendConfigured)
	}

	if g.PrefixDir != "" {
		if _, ok := dirs[g.PrefixDir]; !ok {
			fail("prefix_dir", fmt.Errorf("%w %q", ErrUnknownDirectoryKey, g.PrefixDir))
		}
	}

	if g.FPSLimit < 0 {
		fail("fps_limit", fmt.Errorf("must be positive, got %d", g.FPSLimit))
	}

	for tag := range g.Tags.All() {
		if err := ValidateTag(tag); err != nil {
			fail("tags", err)
		}
	}

	return errs
}

// ValidateTag rejects tags that a query could never match: empty tags,
// tags containing separators, and tags starting with the negation prefix.
func ValidateTag(tag string) error {
	switch {
	case tag == "":
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	case strings.ContainsAny(tag, reservedTagChars):
		return fmt.Errorf("%w %q: must not contain commas or whitespace", ErrInvalidTag, tag)
	case strings.HasPrefix(tag, "!"):
		return fmt.Errorf("%w %q: must not start with '!'", ErrInvalidTag, tag)
	default:
		return nil
	}
}

// clone returns a deep copy so catalog callers cannot mutate shared state.
func (g *Game) clone() *Game {
	c := *g
	c.Cmd = append([]string(nil), g.Cmd...)
	c.WineExe = append([]string(nil), g.WineExe...)
	c.Env = maps.Clone(g.Env)
	c.Tags = g.Tags.Clone()
	if g.UseMangoHUD != nil {
		v := *g.UseMangoHUD
		c.UseMangoHUD = &v
	}
	if g.UseVK != nil {
		v := *g.UseVK
		c.UseVK = &v
	}
	return &c
}
