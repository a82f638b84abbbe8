// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions carries the command-line inputs that shape the effective
// configuration.
type LoadOptions struct {
	// ConfigFilePath is the --config flag. When set the file must exist.
	ConfigFilePath string
	// ConfigDirPath replaces the platform config directory.
	ConfigDirPath string
	// Verbose is the --verbose flag; it wins over ui.verbose.
	Verbose bool
}

// Provider yields the effective launcher configuration.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// cueProvider layers config.cue, then GAME_ environment overrides, then
// command-line flags over the defaults.
type cueProvider struct{}

// NewProvider returns the Provider used by the launcher.
func NewProvider() Provider {
	return cueProvider{}
}

// Load returns the effective configuration. A missing default config file
// yields the defaults; a missing --config file is an error.
func (cueProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}
