// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands of the game launcher.
//
// The root command loads the launcher configuration and the game catalog
// lazily, so 'config init' and 'config path' keep working when either file
// is broken. Errors returned by commands are rendered by a fang error
// handler that prints actionable suggestions and, when one applies, the
// matching markdown guide from internal/issue.
package cmd
