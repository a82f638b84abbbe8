// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/pkg/catalog"
	"github.com/gamelaunch/game/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	xappdirs "github.com/chasinglogic/appdirs"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "game"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides: GAME_CATALOG, GAME_UI_VERBOSE.
	EnvPrefix = "GAME"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the launcher configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// LogDir returns the per-user log directory.
func LogDir() string {
	return xappdirs.New(AppName).UserLog()
}

// FilePath returns the config file that Load reads for opts. The file need
// not exist.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	cfgDir, err := resolveConfigDir(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CatalogPath resolves the games.toml location: the explicit flag value,
// then the configured catalog, then games.toml in the config directory.
func (c *Config) CatalogPath(flagValue string, opts LoadOptions) (string, error) {
	switch {
	case flagValue != "":
		return expandHome(flagValue)
	case c.Catalog != "":
		return expandHome(c.Catalog)
	}
	cfgDir, err := resolveConfigDir(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, catalog.FileName), nil
}

// LogFilePath returns the log file to write, or "" when file logging is off.
// A bare file name is placed in LogDir.
func (c *Config) LogFilePath() (string, error) {
	if c.Log.File == "" {
		return "", nil
	}
	if !strings.ContainsRune(c.Log.File, filepath.Separator) && !strings.HasPrefix(c.Log.File, "~") {
		return filepath.Join(LogDir(), c.Log.File), nil
	}
	return expandHome(c.Log.File)
}

// loadWithOptions reads the config file named by opts, if any, and applies
// environment overrides and validation.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	cfgPath, err := FilePath(opts)
	if err != nil {
		return nil, err
	}

	resolvedPath := ""
	switch {
	case fileExists(cfgPath):
		if err := loadCUEIntoViper(v, cfgPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cfgPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
		resolvedPath = cfgPath
	case opts.ConfigFilePath != "":
		// An explicit --config must exist; the default location may not.
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'game config init' to create a default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	cfg.Source = resolvedPath
	return &cfg, nil
}

// newViper returns a Viper instance seeded with defaults and bound to the
// GAME_ environment prefix. Every key needs a default for AutomaticEnv to
// reach it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("catalog", defaults.Catalog)
	v.SetDefault("editor", defaults.Editor)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// resolveConfigDir returns configDirPath when set, else ConfigDir.
func resolveConfigDir(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Decoding goes to map[string]any rather than through cueutil.ParseAndDecode
// so that Viper keeps its defaults for absent keys and env overrides still apply.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file for opts and returns its
// path. An existing file is kept unless force is set; created reports
// whether anything was written.
func CreateDefaultConfig(opts LoadOptions, force bool) (path string, created bool, err error) {
	path, err = FilePath(opts)
	if err != nil {
		return "", false, err
	}

	if !force && fileExists(path) {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return path, true, nil
}

// GenerateCUE renders cfg as a config.cue document. Empty optional fields are
// written as comments so the generated file documents every key.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// game launcher configuration\n")
	sb.WriteString("// Environment variables prefixed with " + EnvPrefix + "_ override these values.\n\n")

	writeOptional(&sb, "", "catalog", cfg.Catalog, `"~/Games/games.toml"`)
	writeOptional(&sb, "", "editor", cfg.Editor, `"vim"`)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	writeOptional(&sb, "\t", "file", cfg.Log.File, `"game.log"`)
	sb.WriteString("\tmax_size_mb: " + strconv.Itoa(cfg.Log.MaxSizeMB) + "\n")
	sb.WriteString("\tmax_backups: " + strconv.Itoa(cfg.Log.MaxBackups) + "\n")
	sb.WriteString("}\n")

	return sb.String()
}

func writeOptional(sb *strings.Builder, indent, key, value, example string) {
	if value == "" {
		fmt.Fprintf(sb, "%s// %s: %s\n", indent, key, example)
		return
	}
	fmt.Fprintf(sb, "%s%s: %q\n", indent, key, value)
}
