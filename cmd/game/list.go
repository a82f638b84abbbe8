// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gamelaunch/game/internal/issue"
	"github.com/gamelaunch/game/pkg/catalog"
	"github.com/gamelaunch/game/pkg/tagquery"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

type listOptions struct {
	all  bool
	long bool
}

func newListCommand(app *App) *cobra.Command {
	var opts listOptions

	listCmd := &cobra.Command{
		Use:   "list [query...]",
		Short: "List games matching a tag query",
		Long: `List the games whose tags match the query, sorted by ID.

Each argument is one alternative; inside an argument, commas join tags
that must all be present and a leading ! excludes a tag. An argument
also matches the game whose ID alone satisfies it, so 'game list quake'
finds quake. Without a query every game is listed.`,
		Example: `  game list
  game list rpg fps
  game list --all --long rpg,!fantasy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(args)
			if err != nil {
				return err
			}
			cat, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			games := cat.Filter(q, catalog.FilterOptions{IncludeUninstalled: opts.all})
			if opts.long {
				renderGameTable(cmd.OutOrStdout(), games, opts.all)
				return nil
			}
			for _, g := range games {
				fmt.Fprintln(cmd.OutOrStdout(), g.String())
			}
			return nil
		},
	}

	listCmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include games marked as not installed")
	listCmd.Flags().BoolVarP(&opts.long, "long", "l", false, "show backend and tags in a table")

	return listCmd
}

// parseQuery turns command-line arguments into a query, one group per argument.
func parseQuery(args []string) (tagquery.Query, error) {
	q, err := tagquery.ParseArgs(args)
	if err != nil {
		return tagquery.Query{}, issue.NewErrorContext().
			WithOperation("parse tag query").
			WithResource(strings.Join(args, " ")).
			WithIssue(issue.InvalidQueryId).
			Wrap(err).
			BuildError()
	}
	return q, nil
}

func renderGameTable(w io.Writer, games []*catalog.Game, withInstalled bool) {
	headers := []string{"ID", "Name", "Backend", "Tags"}
	if withInstalled {
		headers = append(headers, "Installed")
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		row := []string{g.ID, g.DisplayName(), g.Backend.String(), strings.Join(g.SortedTags(), ", ")}
		if withInstalled {
			row = append(row, yesNo(g.Installed))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableCellStyle.Foreground(ColorHighlight)
			case withInstalled && col == len(headers)-1 && !games[row].Installed:
				return tableCellStyle.Foreground(ColorWarning)
			default:
				return tableCellStyle
			}
		})

	fmt.Fprintln(w, t.Render())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
