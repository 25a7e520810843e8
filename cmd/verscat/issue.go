// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/verscat/verscat/internal/issue"

	"github.com/spf13/cobra"
)

func newIssueCommand(app *App) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "issue [name]",
		Short: "Explain a catalog problem",
		Long: `Print the guidance page for a problem verscat reports.

Without an argument the known pages are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, iss := range issue.Values() {
					fmt.Fprintln(app.stdout, iss.Id().String())
				}
				return nil
			}
			iss := issue.Lookup(args[0])
			if iss == nil {
				return fmt.Errorf("unknown issue %q; run 'verscat issue' to list them", args[0])
			}
			rendered, err := iss.Render(style)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light or notty")
	return cmd
}
