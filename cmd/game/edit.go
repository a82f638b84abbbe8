// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/internal/runtime"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"
)

// errNoEditor is returned when neither the configuration nor the environment
// names an editor.
var errNoEditor = errors.New("no editor configured")

func newEditCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the game catalog in an editor",
		Long: `Open games.toml in the configured editor.

The editor is taken from the editor setting, then $VISUAL, then $EDITOR.
It may include arguments, for example "code --wait".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.editCatalog(cmd.Context())
		},
	}
}

func (a *App) editCatalog(ctx context.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	path, err := a.catalogPath(ctx)
	if err != nil {
		return err
	}

	argv, err := a.editorCommand(cfg.Editor)
	if err != nil {
		return err
	}
	inv := runtime.Invocation{Program: argv[0], Args: append(argv[1:], path)}
	a.logger.Debug("opening catalog", "editor", inv.CommandLine())

	code, err := a.Executor.Run(ctx, inv)
	if err != nil {
		return &ExitError{
			Code: code,
			Err: issue.NewErrorContext().
				WithOperation("start editor").
				WithResource(inv.Program).
				WithSuggestion("Set editor in the configuration or export $EDITOR").
				Wrap(err).
				BuildError(),
		}
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

// editorCommand splits the first non-empty editor setting into words.
func (a *App) editorCommand(configured string) ([]string, error) {
	editor := configured
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if editor != "" {
			break
		}
		editor = a.Getenv(name)
	}

	var fields []string
	if editor != "" {
		var err error
		fields, err = shell.Fields(editor, a.Getenv)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("parse editor command").
				WithResource(editor).
				Wrap(err).
				BuildError()
		}
	}
	if len(fields) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("open catalog").
			WithIssue(issue.EditorNotSetId).
			Wrap(errNoEditor).
			BuildError()
	}
	return fields, nil
}
