// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/internal/testutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, path, content)
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Catalog != "" {
		t.Errorf("expected default catalog to be empty, got %q", cfg.Catalog)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.Log.File != "" {
		t.Errorf("expected file logging to be off by default, got %q", cfg.Log.File)
	}
	if cfg.Log.MaxSizeMB != DefaultLogMaxSizeMB || cfg.Log.MaxBackups != DefaultLogMaxBackups {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if ok, errs := cfg.IsValid(); !ok {
		t.Errorf("DefaultConfig() is invalid: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup only applies on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home := t.TempDir()
	testutil.SetHomeDir(t, home)
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto || cfg.Log.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
catalog: "/srv/games.toml"
editor: "nano -w"
ui: color_scheme: "light"
log: {
	file: "game.log"
	max_backups: 0
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Catalog != "/srv/games.toml" || cfg.Editor != "nano -w" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.UI.ColorScheme != ColorSchemeLight {
		t.Errorf("ColorScheme = %s, want light", cfg.UI.ColorScheme)
	}
	// Keys absent from the file keep their defaults.
	if cfg.UI.Verbose || cfg.Log.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
	if cfg.Log.File != "game.log" || cfg.Log.MaxBackups != 0 {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose || cfg.Source != path {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		missing  bool
		contains string
	}{
		{name: "custom path missing", missing: true, contains: "config file not found"},
		{name: "invalid CUE syntax", content: `ui: {`, contains: "config.cue"},
		{name: "schema violation", content: `ui: color_scheme: "neon"`, contains: "color_scheme"},
		{name: "unknown key", content: `includes: []`, contains: "includes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
			if !tt.missing {
				writeConfig(t, dir, tt.content)
			}

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() should fail")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be *issue.ActionableError, got %T", err)
			}
			if ae.Operation != "load configuration" || ae.Resource != path {
				t.Errorf("ActionableError = %+v", ae)
			}
			if got := ae.Issue(); got == nil || got.Id() != issue.ConfigLoadFailedId {
				t.Errorf("Issue() = %v, want ConfigLoadFailedId", got)
			}
			if len(ae.Suggestions) == 0 {
				t.Error("expected suggestions")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `catalog: "/from/file.toml"`)

	t.Setenv("GAME_CATALOG", "/from/env.toml")
	t.Setenv("GAME_UI_VERBOSE", "true")
	t.Setenv("GAME_LOG_MAX_SIZE_MB", "42")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Catalog != "/from/env.toml" {
		t.Errorf("Catalog = %q, want env value", cfg.Catalog)
	}
	if !cfg.UI.Verbose {
		t.Error("GAME_UI_VERBOSE should enable verbose")
	}
	if cfg.Log.MaxSizeMB != 42 {
		t.Errorf("MaxSizeMB = %d, want 42", cfg.Log.MaxSizeMB)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("GAME_UI_COLOR_SCHEME", "neon")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("Load() error = %v, want ErrInvalidColorScheme", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	got, err := FilePath(LoadOptions{ConfigFilePath: "/etc/game.cue", ConfigDirPath: "/ignored"})
	if err != nil || got != "/etc/game.cue" {
		t.Errorf("FilePath(custom) = %q, %v", got, err)
	}

	got, err = FilePath(LoadOptions{ConfigDirPath: "/cfg"})
	if err != nil || got != filepath.Join("/cfg", "config.cue") {
		t.Errorf("FilePath(dir) = %q, %v", got, err)
	}
}

func TestCatalogPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	opts := LoadOptions{ConfigDirPath: "/cfg/game"}

	tests := []struct {
		name    string
		catalog string
		flag    string
		want    string
	}{
		{name: "flag wins", catalog: "/conf.toml", flag: "/flag.toml", want: "/flag.toml"},
		{name: "config", catalog: "/conf.toml", want: "/conf.toml"},
		{name: "config with tilde", catalog: "~/Games/games.toml", want: filepath.Join(home, "Games", "games.toml")},
		{name: "default", want: filepath.Join("/cfg/game", "games.toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.Catalog = tt.catalog
			got, err := cfg.CatalogPath(tt.flag, opts)
			if err != nil {
				t.Fatalf("CatalogPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CatalogPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogFilePath(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got, err := cfg.LogFilePath(); err != nil || got != "" {
		t.Errorf("LogFilePath() = %q, %v; want disabled", got, err)
	}

	cfg.Log.File = "game.log"
	got, err := cfg.LogFilePath()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(LogDir(), "game.log") {
		t.Errorf("LogFilePath() = %q, want it under %q", got, LogDir())
	}

	cfg.Log.File = "/var/log/game.log"
	if got, _ := cfg.LogFilePath(); got != "/var/log/game.log" {
		t.Errorf("LogFilePath() = %q, want absolute path unchanged", got)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "game")
	opts := LoadOptions{ConfigDirPath: dir}

	path, created, err := CreateDefaultConfig(opts, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	// The generated file must load cleanly and reproduce the defaults.
	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	if cfg.Source != path || cfg.UI.ColorScheme != ColorSchemeAuto || cfg.Log.MaxBackups != DefaultLogMaxBackups {
		t.Errorf("Load() = %+v", cfg)
	}

	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, created, _ := CreateDefaultConfig(opts, false); created {
		t.Error("existing config should be kept without force")
	}
	if _, created, _ := CreateDefaultConfig(opts, true); !created {
		t.Error("force should overwrite the existing config")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "verbose: true") {
		t.Error("forced init should restore defaults")
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	out := GenerateCUE(DefaultConfig())
	for _, want := range []string{`// catalog: "~/Games/games.toml"`, `// editor: "vim"`, `color_scheme: "auto"`, "max_size_mb: 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}

	cfg := DefaultConfig()
	cfg.Catalog = "/srv/games.toml"
	cfg.Log.File = "game.log"
	out = GenerateCUE(cfg)
	if !strings.Contains(out, `catalog: "/srv/games.toml"`) || !strings.Contains(out, `file: "game.log"`) {
		t.Errorf("GenerateCUE() should write set values:\n%s", out)
	}
}

func TestLoad_VerboseFlagWinsOverConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    bool
		content string
		want    bool
	}{
		{name: "flag over file", flag: true, content: "ui: verbose: false\n", want: true},
		{name: "file without flag", content: "ui: verbose: true\n", want: true},
		{name: "neither", content: "ui: verbose: false\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir, Verbose: tt.flag})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.UI.Verbose != tt.want {
				t.Errorf("UI.Verbose = %v, want %v", cfg.UI.Verbose, tt.want)
			}
		})
	}
}
