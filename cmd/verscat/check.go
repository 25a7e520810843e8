// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Resolve every leaf and report problems",
		Long: `Load the catalog, build its namespace trees and resolve every leaf.

Dangling bundle members and values the engine rejects are listed one per
line. The command exits with status 1 when any leaf fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			ws, err := app.open(cmd.Context(), s)
			if err != nil {
				return err
			}

			failures, err := ws.Check(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range failures {
				fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), f)
			}
			if len(failures) > 0 {
				fmt.Fprintf(app.stderr, "\n%s\n", ErrorStyle.Render(fmt.Sprintf("%d of %d leaves failed", len(failures), ws.Store.Leaves())))
				return &ExitError{Code: 1}
			}

			fmt.Fprintf(app.stdout, "%s %s: %d leaves resolved\n",
				SuccessStyle.Render("✓"), ws.Path, ws.Store.Leaves())
			return nil
		},
	}
}
