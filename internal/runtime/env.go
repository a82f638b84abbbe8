// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"slices"
	"strings"
)

// EnvToSlice converts a map of environment variables to a KEY=VALUE slice
// sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}

// MergeEnv lays overlay over base (an os.Environ-style slice). Base entries
// whose name appears in overlay are dropped, so the overlay always wins even
// for programs that read the first occurrence of a variable. Malformed base
// entries are kept verbatim.
func MergeEnv(base []string, overlay map[string]string) []string {
	result := make([]string, 0, len(base)+len(overlay))
	for _, entry := range base {
		name, _, ok := strings.Cut(entry, "=")
		if ok {
			if _, shadowed := overlay[name]; shadowed {
				continue
			}
		}
		result = append(result, entry)
	}
	return append(result, EnvToSlice(overlay)...)
}
