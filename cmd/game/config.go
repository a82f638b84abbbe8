// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/gamelaunch/game/internal/config"
	"github.com/gamelaunch/game/internal/issue"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage launcher configuration",
		Long: `Manage the launcher configuration.

The configuration lives in config.cue inside the config directory and
can be overridden with GAME_ environment variables, for example
GAME_CATALOG or GAME_UI_VERBOSE.`,
	}

	configCmd.AddCommand(newConfigShowCommand(app))
	configCmd.AddCommand(newConfigInitCommand(app))
	configCmd.AddCommand(newConfigPathCommand(app))

	return configCmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			source := cfg.Source
			if source == "" {
				source = "(using defaults)"
			}
			fmt.Fprintln(w, SubtitleStyle.Render("// source: "+source))
			fmt.Fprint(w, config.GenerateCUE(cfg))
			return nil
		},
	}
}

func newConfigInitCommand(app *App) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig(app.loadOptions(), force)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("create configuration").
					WithResource(path).
					WithSuggestion("Check that the config directory is writable").
					Wrap(err).
					BuildError()
			}

			w := cmd.OutOrStdout()
			if !created {
				fmt.Fprintf(w, "%s %s already exists (use --force to overwrite)\n", WarningStyle.Render("!"), CmdStyle.Render(path))
				return nil
			}
			fmt.Fprintf(w, "%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
			return nil
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")

	return initCmd
}

func newConfigPathCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration, catalog and logs live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := app.loadOptions()
			cfgPath, err := config.FilePath(opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			catalogPath, err := app.catalogPath(cmd.Context())
			if err != nil {
				// Still show where things live when the config itself is broken.
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", WarningStyle.Render("warning:"), err)
				catalogPath, err = config.DefaultConfig().CatalogPath(app.flags.catalogPath, opts)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("config: "), cfgPath)
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("catalog:"), catalogPath)
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("logs:   "), config.LogDir())
			return nil
		},
	}
}
