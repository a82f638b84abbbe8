// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher's own settings from config.cue.
//
// The file lives in the user config directory ($XDG_CONFIG_HOME/game on
// Linux, ~/Library/Application Support/game on macOS, %APPDATA%\game on
// Windows) and is validated against an embedded CUE schema before being
// merged into Viper over the defaults. Environment variables prefixed with
// GAME_ override file values, e.g. GAME_CATALOG or GAME_UI_VERBOSE.
//
// The game catalog itself (games.toml) is loaded by pkg/catalog; this
// package only decides where to find it.
package config
