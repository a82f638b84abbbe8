// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Invocation is a fully resolved command. It is a plain value: building the
// same game twice yields equal invocations.
type Invocation struct {
	// Program is looked up in PATH unless it contains a path separator.
	Program string
	Args    []string
	// Env is layered over the inherited environment; its keys win.
	Env map[string]string
	// WorkDir is empty to inherit the launcher's working directory.
	WorkDir string
}

// Argv returns Program followed by Args.
func (inv Invocation) Argv() []string {
	return append([]string{inv.Program}, inv.Args...)
}

// EnvKeys returns the overlay's variable names in lexical order.
func (inv Invocation) EnvKeys() []string {
	return slices.Sorted(maps.Keys(inv.Env))
}

// CommandLine renders the invocation as a POSIX shell command, quoting words
// as needed and prefixing the overlay as VAR=value assignments. It is meant
// for display; the executor never runs a shell.
func (inv Invocation) CommandLine() string {
	words := make([]string, 0, len(inv.Env)+len(inv.Args)+1)
	for _, k := range inv.EnvKeys() {
		words = append(words, k+"="+quote(inv.Env[k]))
	}
	for _, w := range inv.Argv() {
		words = append(words, quote(w))
	}
	return strings.Join(words, " ")
}

// Clone returns a deep copy.
func (inv Invocation) Clone() Invocation {
	inv.Args = slices.Clone(inv.Args)
	inv.Env = maps.Clone(inv.Env)
	return inv
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only strings with NUL bytes cannot be quoted; show them raw.
		return s
	}
	return q
}
