// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"cmp"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/ErikKalkoken/go-set"
)

type (
	// DirectoryTable maps directory keys from [directories] to absolute paths.
	DirectoryTable map[string]string

	// Catalog is the validated set of games plus settings and directories.
	// It is read-only after construction and safe to share.
	Catalog struct {
		settings    Settings
		directories DirectoryTable
		games       map[string]*Game
	}
)

// Resolve returns the path stored under key.
func (d DirectoryTable) Resolve(key string) (string, error) {
	path, ok := d[key]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownDirectoryKey, key)
	}
	return path, nil
}

// New validates the given games and builds a catalog. Games with
// BackendNone get their backend resolved by precedence. All problems are
// returned together as a *LoadError with an empty Path.
func New(settings Settings, dirs DirectoryTable, games ...*Game) (*Catalog, error) {
	var errs []error

	if ok, settingsErrs := settings.IsValid(); !ok {
		for _, err := range settingsErrs {
			errs = append(errs, &ConfigError{Field: "settings", Err: err})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(dirs)) {
		if !filepath.IsAbs(dirs[key]) {
			errs = append(errs, &ConfigError{Field: "directories." + key, Err: fmt.Errorf("%w: %q", ErrRelativeDirectory, dirs[key])})
		}
	}

	byID := make(map[string]*Game, len(games))
	ordered := slices.SortedFunc(slices.Values(games), func(a, b *Game) int { return cmp.Compare(a.ID, b.ID) })
	for _, g := range ordered {
		if _, dup := byID[g.ID]; dup {
			errs = append(errs, &ConfigError{GameID: g.ID, Err: fmt.Errorf("%w: game defined twice", ErrConflictingFields)})
			continue
		}
		g = g.clone()
		errs = append(errs, g.validate(dirs)...)
		byID[g.ID] = g
	}

	if len(errs) > 0 {
		return nil, &LoadError{Errs: errs}
	}

	return &Catalog{
		settings:    settings,
		directories: maps.Clone(dirs),
		games:       byID,
	}, nil
}

// Settings returns the global launch settings.
func (c *Catalog) Settings() Settings { return c.settings }

// Directories returns a copy of the directory table.
func (c *Catalog) Directories() DirectoryTable { return maps.Clone(c.directories) }

// Len returns the number of configured games.
func (c *Catalog) Len() int { return len(c.games) }

// Lookup returns the game with the given ID or an *UnknownGameError.
func (c *Catalog) Lookup(id string) (*Game, error) {
	g, ok := c.games[id]
	if !ok {
		return nil, &UnknownGameError{ID: id}
	}
	return g, nil
}

// IDs returns all game IDs in lexical order.
func (c *Catalog) IDs() []string {
	return slices.Sorted(maps.Keys(c.games))
}

// Games returns all games ordered by ID, installed or not.
func (c *Catalog) Games() []*Game {
	out := make([]*Game, 0, len(c.games))
	for _, id := range c.IDs() {
		out = append(out, c.games[id])
	}
	return out
}

// Tags returns the union of all tags in the catalog, sorted.
func (c *Catalog) Tags() []string {
	var all set.Set[string]
	for _, g := range c.games {
		all.AddSeq(g.Tags.All())
	}
	return sortedSet(all)
}

func sortedSet(s set.Set[string]) []string {
	return slices.Sorted(s.All())
}
