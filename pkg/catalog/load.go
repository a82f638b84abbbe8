// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gamelaunch/game/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the conventional catalog file name.
const FileName = "games.toml"

//go:embed catalog_schema.cue
var catalogSchema []byte

type (
	// LoadOptions supplies the environment used while loading. Zero values
	// fall back to the process environment.
	LoadOptions struct {
		// HomeDir replaces a leading "~" in [directories]. Defaults to os.UserHomeDir.
		HomeDir string
	}

	rawCatalog struct {
		Settings    *rawSettings       `json:"settings"`
		Directories map[string]string  `json:"directories"`
		Games       map[string]rawGame `json:"games"`
	}

	rawSettings struct {
		Width        *int  `json:"width"`
		Height       *int  `json:"height"`
		UseGamescope *bool `json:"use_gamescope"`
	}

	rawGame struct {
		Name         string            `json:"name"`
		Cmd          string            `json:"cmd"`
		WineExe      string            `json:"wine_exe"`
		DOSBoxConfig string            `json:"dosbox_config"`
		ScummVMID    string            `json:"scummvm_id"`
		Dir          string            `json:"dir"`
		PrefixDir    string            `json:"prefix_dir"`
		DirPrefix    string            `json:"dir_prefix"`
		Env          map[string]string `json:"env"`
		FPSLimit     int               `json:"fps_limit"`
		UseMangoHUD  *bool             `json:"use_mangohud"`
		UseVK        *bool             `json:"use_vk"`
		Installed    *bool             `json:"installed"`
		Tags         []string          `json:"tags"`
	}
)

// Load reads and validates the catalog at path.
func Load(path string, opts LoadOptions) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, path, opts)
}

// Parse validates catalog data. filename is used in error messages only.
func Parse(data []byte, filename string, opts LoadOptions) (*Catalog, error) {
	opts = opts.withDefaults()

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	var tables map[string]any
	if err := toml.Unmarshal(data, &tables); err != nil {
		return nil, &LoadError{Path: filename, Errs: []error{describeTOMLError(err)}}
	}
	if _, ok := tables["games"]; !ok {
		return nil, &LoadError{Path: filename, Errs: []error{ErrMissingGamesTable}}
	}

	raw, err := cueutil.DecodeValue[rawCatalog](catalogSchema, tables, "#Catalog", cueutil.WithFilename(filename))
	if err != nil {
		// The CUE error already names the file.
		return nil, &LoadError{Errs: []error{err}}
	}

	cat, err := raw.build(opts)
	var le *LoadError
	if errors.As(err, &le) {
		le.Path = filename
	}
	return cat, err
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.HomeDir = home
		}
	}
	return o
}

func (r *rawCatalog) build(opts LoadOptions) (*Catalog, error) {
	settings := DefaultSettings()
	if r.Settings != nil {
		if r.Settings.Width != nil {
			settings.Width = *r.Settings.Width
		}
		if r.Settings.Height != nil {
			settings.Height = *r.Settings.Height
		}
		if r.Settings.UseGamescope != nil {
			settings.UseGamescope = *r.Settings.UseGamescope
		}
	}

	dirs := make(DirectoryTable, len(r.Directories))
	for key, path := range r.Directories {
		dirs[key] = expandHome(path, opts.HomeDir)
	}

	var errs []error
	games := make([]*Game, 0, len(r.Games))
	for id, rg := range r.Games {
		g, gameErrs := rg.toGame(id)
		errs = append(errs, gameErrs...)
		games = append(games, g)
	}

	cat, err := New(settings, dirs, games...)
	if len(errs) == 0 {
		return cat, err
	}

	// Report conversion problems first, then whatever New found.
	slices.SortStableFunc(errs, compareConfigErrors)
	var le *LoadError
	if errors.As(err, &le) {
		errs = append(errs, le.Errs...)
	}
	return nil, &LoadError{Errs: errs}
}

func (rg rawGame) toGame(id string) (*Game, []error) {
	var errs []error
	fail := func(field string, err error) {
		errs = append(errs, &ConfigError{GameID: id, Field: field, Err: err})
	}

	g := &Game{
		ID:           id,
		Name:         rg.Name,
		DOSBoxConfig: rg.DOSBoxConfig,
		ScummVMID:    rg.ScummVMID,
		Dir:          rg.Dir,
		PrefixDir:    rg.PrefixDir,
		Env:          rg.Env,
		FPSLimit:     rg.FPSLimit,
		UseMangoHUD:  rg.UseMangoHUD,
		UseVK:        rg.UseVK,
		Installed:    rg.Installed == nil || *rg.Installed,
	}

	if rg.DirPrefix != "" {
		if rg.PrefixDir != "" {
			fail("dir_prefix", fmt.Errorf("%w: set prefix_dir or dir_prefix, not both", ErrConflictingFields))
		}
		g.PrefixDir = rg.DirPrefix
	}

	var err error
	if g.Cmd, err = SplitWords(rg.Cmd); err != nil {
		fail("cmd", err)
	}
	if g.WineExe, err = SplitWords(rg.WineExe); err != nil {
		fail("wine_exe", err)
	}

	for _, tag := range rg.Tags {
		if g.Tags.Contains(tag) {
			fail("tags", fmt.Errorf("%w %q", ErrDuplicateTag, tag))
			continue
		}
		g.Tags.Add(tag)
	}

	return g, errs
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

func describeTOMLError(err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	return err
}

func compareConfigErrors(a, b error) int {
	var ca, cb *ConfigError
	if !errors.As(a, &ca) || !errors.As(b, &cb) {
		return 0
	}
	return strings.Compare(ca.GameID+"."+ca.Field, cb.GameID+"."+cb.Field)
}
