// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"

	"github.com/gamelaunch/game/pkg/tagquery"
)

// Rand is the random source used by PickRandom. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// PickRandom chooses uniformly among the installed games matching q.
// It returns ErrNoMatchingGames when nothing matches.
func (c *Catalog) PickRandom(q tagquery.Query, rng Rand) (*Game, error) {
	matches := c.Filter(q, FilterOptions{})
	if len(matches) == 0 {
		if q.IsEmpty() {
			return nil, fmt.Errorf("%w: no installed games", ErrNoMatchingGames)
		}
		return nil, fmt.Errorf("%w for query %q", ErrNoMatchingGames, q.String())
	}
	return matches[rng.IntN(len(matches))], nil
}
