// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag used in the catalog",
		Long:  "Print the distinct tags of all configured games, one per line, sorted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			for _, tag := range cat.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
