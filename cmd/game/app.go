// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gamelaunch/game/internal/config"
	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/internal/launch"
	"github.com/gamelaunch/game/internal/runtime"
	"github.com/gamelaunch/game/pkg/catalog"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and reaches configuration, catalog and process
	// execution through it.
	App struct {
		Config   config.Provider
		Executor runtime.Executor
		Rand     catalog.Rand
		Getenv   func(string) string
		stdout   io.Writer
		stderr   io.Writer

		// configDir overrides the platform config directory.
		configDir string
		flags     rootFlags

		cfg       *config.Config
		logger    *log.Logger
		logCloser io.Closer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		Executor  runtime.Executor
		Rand      catalog.Rand
		Getenv    func(string) string
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
		ConfigDir string
	}

	rootFlags struct {
		verbose     bool
		configPath  string
		catalogPath string
	}
)

// NewApp builds an App, filling unset dependencies with the process defaults.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Executor == nil {
		deps.Executor = &runtime.ProcessExecutor{
			Stdin:  deps.Stdin,
			Stdout: deps.Stdout,
			Stderr: deps.Stderr,
		}
	}

	return &App{
		Config:    deps.Config,
		Executor:  deps.Executor,
		Rand:      deps.Rand,
		Getenv:    deps.Getenv,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		configDir: deps.ConfigDir,
		logger:    log.New(io.Discard),
	}
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ConfigDirPath:  a.configDir,
		Verbose:        a.flags.verbose,
	}
}

// loadConfig loads the configuration once and sets up logging from it.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	a.cfg = cfg

	if err := a.setupLogger(cfg); err != nil {
		return nil, err
	}
	a.logger.Debug("configuration loaded", "source", cfg.Source)
	return cfg, nil
}

// setupLogger writes to stderr at warn level, or debug with --verbose. A
// configured log file receives every debug record through lumberjack.
func (a *App) setupLogger(cfg *config.Config) error {
	level := log.WarnLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	out := a.stderr
	reportTime := false

	logPath, err := cfg.LogFilePath()
	if err != nil {
		return err
	}
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return issue.NewErrorContext().
				WithOperation("create log directory").
				WithResource(filepath.Dir(logPath)).
				WithSuggestion("Set log.file to a writable location or remove it").
				Wrap(err).
				BuildError()
		}
		rotating := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		a.logCloser = rotating
		out = rotating
		if cfg.UI.Verbose {
			out = io.MultiWriter(a.stderr, rotating)
		}
		level = log.DebugLevel
		reportTime = true
	}

	a.logger = log.NewWithOptions(out, log.Options{
		Prefix:          config.AppName,
		Level:           level,
		ReportTimestamp: reportTime,
	})
	return nil
}

// catalogPath resolves --catalog, then the configured catalog, then the default.
func (a *App) catalogPath(ctx context.Context) (string, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return "", err
	}
	return cfg.CatalogPath(a.flags.catalogPath, a.loadOptions())
}

func (a *App) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	path, err := a.catalogPath(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(path, catalog.LoadOptions{})
	if err != nil {
		ec := issue.NewErrorContext().
			WithOperation("load catalog").
			WithResource(path)
		if errors.Is(err, fs.ErrNotExist) {
			ec = ec.WithIssue(issue.CatalogNotFoundId).
				WithSuggestion("Pass --catalog or set catalog in the configuration")
		}
		return nil, ec.Wrap(err).BuildError()
	}

	a.logger.Debug("catalog loaded", "path", path, "games", cat.Len())
	return cat, nil
}

func (a *App) launcher(ctx context.Context) (*launch.Launcher, error) {
	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	opts := []launch.Option{launch.WithLogger(a.logger)}
	if a.Rand != nil {
		opts = append(opts, launch.WithRand(a.Rand))
	}
	return launch.New(cat, a.Executor, opts...), nil
}

// verbose reports whether full error chains should be shown.
func (a *App) verbose() bool {
	return a.flags.verbose || (a.cfg != nil && a.cfg.UI.Verbose)
}

// glamourStyle returns the style for rendered issue guides.
func (a *App) glamourStyle() string {
	if a.cfg == nil {
		return config.ColorSchemeAuto.GlamourStyle()
	}
	return a.cfg.UI.ColorScheme.GlamourStyle()
}

func (a *App) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}
