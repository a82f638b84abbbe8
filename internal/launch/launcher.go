// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/gamelaunch/game/internal/runtime"
	"github.com/gamelaunch/game/pkg/catalog"
	"github.com/gamelaunch/game/pkg/tagquery"

	"github.com/charmbracelet/log"
)

type (
	// Plan is a game together with the invocation that would start it.
	Plan struct {
		Game       *catalog.Game
		Invocation runtime.Invocation
	}

	// Launcher plans and runs games from a catalog.
	Launcher struct {
		catalog  *catalog.Catalog
		builder  *Builder
		executor runtime.Executor
		rng      catalog.Rand
		logger   *log.Logger
	}

	// Option configures a Launcher.
	Option func(*Launcher)

	// globalRand draws from math/rand/v2's top-level generator.
	globalRand struct{}
)

// WithRand replaces the random source used by PlanRandom.
func WithRand(rng catalog.Rand) Option {
	return func(l *Launcher) { l.rng = rng }
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// New returns a launcher over cat that runs games with executor.
func New(cat *catalog.Catalog, executor runtime.Executor, opts ...Option) *Launcher {
	l := &Launcher{
		catalog:  cat,
		builder:  NewCatalogBuilder(cat),
		executor: executor,
		rng:      globalRand{},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Plan looks up id and builds its invocation. Games marked installed = false
// are refused with catalog.ErrNotInstalled unless force is set.
func (l *Launcher) Plan(id string, force bool) (Plan, error) {
	g, err := l.catalog.Lookup(id)
	if err != nil {
		return Plan{}, err
	}
	if !g.Installed && !force {
		return Plan{}, fmt.Errorf("%s: %w", g.ID, catalog.ErrNotInstalled)
	}
	return l.plan(g)
}

// PlanRandom picks one installed game matching q and builds it. Nothing is
// built when the match set is empty.
func (l *Launcher) PlanRandom(q tagquery.Query) (Plan, error) {
	g, err := l.catalog.PickRandom(q, l.rng)
	if err != nil {
		return Plan{}, err
	}
	l.logger.Debug("picked random game", "game", g.ID, "query", q.String())
	return l.plan(g)
}

// Run executes the plan's invocation in the foreground and returns the
// child's exit code.
func (l *Launcher) Run(ctx context.Context, p Plan) (runtime.ExitCode, error) {
	l.logger.Debug("launching", "game", p.Game.ID, "program", p.Invocation.Program)
	code, err := l.executor.Run(ctx, p.Invocation)
	if err != nil {
		return code, fmt.Errorf("launch %s: %w", p.Game.ID, err)
	}
	if code.IsSignal() {
		l.logger.Debug("game terminated by signal", "game", p.Game.ID, "code", code)
	} else {
		l.logger.Debug("game exited", "game", p.Game.ID, "code", code)
	}
	return code, nil
}

func (l *Launcher) plan(g *catalog.Game) (Plan, error) {
	inv, err := l.builder.Build(g)
	if err != nil {
		return Plan{}, err
	}
	l.logger.Debug("built invocation",
		"game", g.ID,
		"backend", g.Backend,
		"argv", inv.Argv(),
		"workdir", inv.WorkDir,
		"env", runtime.EnvToSlice(inv.Env),
	)
	return Plan{Game: g, Invocation: inv}, nil
}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
