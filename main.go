// SPDX-License-Identifier: MPL-2.0

// Command game launches games from a tagged TOML catalog.
package main

import cmd "github.com/gamelaunch/game/cmd/game"

func main() {
	cmd.Execute()
}
