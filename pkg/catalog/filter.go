// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"github.com/gamelaunch/game/pkg/tagquery"

	"github.com/ErikKalkoken/go-set"
)

// FilterOptions controls which games Filter considers.
type FilterOptions struct {
	// IncludeUninstalled also returns games with installed = false.
	IncludeUninstalled bool
}

// Filter returns the games matching q, ordered by ID. Uninstalled games are
// skipped unless opts.IncludeUninstalled is set.
func (c *Catalog) Filter(q tagquery.Query, opts FilterOptions) []*Game {
	var out []*Game
	for _, g := range c.Games() {
		if !g.Installed && !opts.IncludeUninstalled {
			continue
		}
		if Matches(q, g) {
			out = append(out, g)
		}
	}
	return out
}

// Matches reports whether g satisfies q. Each group is tried against the
// game's tags and, separately, against the singleton set {id}, so a bare ID
// selects that game while negations only ever look at real tags.
func Matches(q tagquery.Query, g *Game) bool {
	if q.IsEmpty() {
		return true
	}
	id := set.Of(g.ID)
	for _, grp := range q.Groups() {
		if grp.Matches(g.Tags) || grp.Matches(id) {
			return true
		}
	}
	return false
}
