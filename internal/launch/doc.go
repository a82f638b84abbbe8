// SPDX-License-Identifier: MPL-2.0

// Package launch turns catalog entries into runnable invocations and runs
// them.
//
// The Builder is pure: it resolves the working directory, picks the base
// command for the game's backend and wraps it in the optional overlay and
// compositor layers, always in the order gamescope, mangohud, backend.
// The Launcher ties a catalog, a builder and a runtime.Executor together for
// the play and play-random commands.
package launch
