// SPDX-License-Identifier: MPL-2.0

// Package catalog holds the validated, read-only set of configured games.
//
// A catalog is loaded once from games.toml. The file is decoded with go-toml,
// checked against an embedded CUE schema (catalog_schema.cue) and then
// validated for the rules CUE cannot express: every game needs a launch
// backend, prefix_dir must name a known directory, and tags must be unique.
// All problems are reported together in a single *LoadError.
//
// The backend of each game is resolved at load time with a fixed precedence
// (cmd, then wine_exe, then dosbox_config, then scummvm_id) and never
// re-derived afterwards.
package catalog
