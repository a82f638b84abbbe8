// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/internal/launch"
	"github.com/gamelaunch/game/internal/runtime"
	"github.com/gamelaunch/game/pkg/catalog"

	"github.com/spf13/cobra"
)

func newPlayCommand(app *App) *cobra.Command {
	var dryRun, force bool

	playCmd := &cobra.Command{
		Use:   "play <game_id>",
		Short: "Launch a game by ID",
		Long: `Launch the game with the given ID and wait for it to exit.

The launcher exits with the game's own exit code. Games marked
installed = false are refused unless --force is given.`,
		Example: `  game play quake
  game play --dry-run morrowind`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGameIDs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.launcher(cmd.Context())
			if err != nil {
				return err
			}

			plan, err := l.Plan(args[0], force)
			if err != nil {
				return wrapPlanError(err, args[0])
			}
			if dryRun {
				renderDryRun(cmd.OutOrStdout(), plan)
				return nil
			}
			return runPlan(cmd.Context(), l, plan)
		},
	}

	playCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the command line instead of running it")
	playCmd.Flags().BoolVarP(&force, "force", "f", false, "launch even if the game is marked as not installed")

	return playCmd
}

func newPlayRandomCommand(app *App) *cobra.Command {
	var dryRun bool

	playRandomCmd := &cobra.Command{
		Use:   "play-random [query...]",
		Short: "Launch a random installed game matching a tag query",
		Long: `Pick one installed game matching the query uniformly at random and
launch it. The query syntax is the same as for 'game list'; without a
query any installed game can be picked.`,
		Example: `  game play-random
  game play-random rpg,!fantasy adventure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(args)
			if err != nil {
				return err
			}
			l, err := app.launcher(cmd.Context())
			if err != nil {
				return err
			}

			plan, err := l.PlanRandom(q)
			if err != nil {
				return wrapPlanError(err, q.String())
			}
			if dryRun {
				renderDryRun(cmd.OutOrStdout(), plan)
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), SubtitleStyle.Render("Launching")+" "+CmdStyle.Render(plan.Game.String()))
			return runPlan(cmd.Context(), l, plan)
		},
	}

	playRandomCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the picked game and its command line instead of running it")

	return playRandomCmd
}

// runPlan launches the game and turns a non-zero exit into an ExitError
// carrying the game's code.
func runPlan(ctx context.Context, l *launch.Launcher, plan launch.Plan) error {
	code, err := l.Run(ctx, plan)
	if err != nil {
		return &ExitError{
			Code: code,
			Err:  wrapSpawnError(err, plan),
		}
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

func wrapPlanError(err error, resource string) error {
	ec := issue.NewErrorContext().
		WithOperation("prepare game").
		WithResource(resource)

	switch {
	case errors.Is(err, catalog.ErrNotInstalled):
		ec = ec.WithSuggestion("Use --force to launch it anyway")
	case errors.Is(err, catalog.ErrUnknownGameID):
		ec = ec.WithSuggestion("Run 'game list --all' to see every configured ID")
	case errors.Is(err, catalog.ErrNoMatchingGames):
		ec = ec.WithSuggestion("Run 'game tags' to see which tags exist")
	}
	return ec.Wrap(err).BuildError()
}

func wrapSpawnError(err error, plan launch.Plan) error {
	ec := issue.NewErrorContext().
		WithOperation("launch game").
		WithResource(plan.Game.ID)

	var spawnErr *runtime.SpawnError
	if errors.As(err, &spawnErr) {
		switch {
		case errors.Is(spawnErr, runtime.ErrExecutableNotFound):
			ec = ec.WithSuggestion(fmt.Sprintf("Install %s or fix the game's %s entry", spawnErr.Program, plan.Game.Backend))
		case errors.Is(spawnErr, runtime.ErrWorkDirNotFound):
			ec = ec.WithSuggestion("Check dir and prefix_dir for " + plan.Game.ID)
		}
	}
	return ec.Wrap(err).BuildError()
}

// renderDryRun prints the resolved invocation without executing it.
func renderDryRun(w io.Writer, plan launch.Plan) {
	inv := plan.Invocation

	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Game:"), plan.Game.String())
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Backend:"), plan.Game.Backend)
	if inv.WorkDir != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("WorkDir:"), inv.WorkDir)
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Command:"), inv.CommandLine())

	if len(inv.Env) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("  Environment:"))
		for _, kv := range runtime.EnvToSlice(inv.Env) {
			fmt.Fprintf(w, "    %s\n", kv)
		}
	}
	fmt.Fprintln(w)
}

// completeGameIDs completes installed game IDs for the first argument.
func completeGameIDs(app *App) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cat, err := app.loadCatalog(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var ids []cobra.Completion
		for _, g := range cat.Games() {
			if strings.HasPrefix(g.ID, toComplete) {
				ids = append(ids, cobra.CompletionWithDesc(g.ID, g.DisplayName()))
			}
		}
		slices.Sort(ids)
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}
