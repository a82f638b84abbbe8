// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/internal/runtime"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "game",
		Short: "Launch games from a tagged catalog",
		Long: TitleStyle.Render("game") + SubtitleStyle.Render(" - Launch games from a tagged catalog") + `

game reads a catalog of installed games from games.toml and starts them
through the right backend: a native command, Wine, DOSBox or ScummVM,
optionally wrapped in MangoHUD and gamescope.

` + SubtitleStyle.Render("Tag queries:") + `
  rpg fps          games tagged rpg OR fps
  rpg,fantasy      games tagged rpg AND fantasy
  rpg,!fantasy     rpg games NOT tagged fantasy

` + SubtitleStyle.Render("Examples:") + `
  game list                    List installed games
  game list --long rpg         Show rpg games as a table
  game play quake              Launch the game with ID quake
  game play-random fps,!dos    Launch a random non-DOS shooter
  game play --dry-run quake    Show the command line without running it`,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/game/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&app.flags.catalogPath, "catalog", "c", "", "game catalog (default is $XDG_CONFIG_HOME/game/games.toml)")

	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newPlayCommand(app))
	rootCmd.AddCommand(newPlayRandomCommand(app))
	rootCmd.AddCommand(newTagsCommand(app))
	rootCmd.AddCommand(newEditCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the launcher with the process arguments and exits with the
// resulting status. This is called by main.main().
func Execute() {
	os.Exit(run(context.Background(), NewApp(Dependencies{}), os.Args[1:]))
}

// run executes the command tree with args and returns the exit status: the
// game's own code when it ran and failed, 1 for launcher errors and for codes
// outside 0-255.
func run(ctx context.Context, app *App, args []string) int {
	defer app.close()

	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return int(runtime.ExitFailure)
	}
	if ok, errs := exitErr.Code.IsValid(); !ok {
		app.logger.Warn("cannot forward exit code", "error", errors.Join(errs...))
		return int(runtime.ExitFailure)
	}
	return int(exitErr.Code)
}

// handleError prints err, its suggestions and the matching issue guide.
// Games that exit non-zero are not reported again.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, a.verbose()))

	guide := issueFor(err)
	if guide == nil {
		return
	}
	rendered, renderErr := guide.Render(a.glamourStyle())
	if renderErr != nil {
		a.logger.Debug("failed to render issue", "id", guide.Id(), "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

func issueFor(err error) *issue.Issue {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Issue()
	}
	return issue.ForError(err)
}
