// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/verscat/verscat/internal/catalogfile"
	"github.com/verscat/verscat/internal/issue"
	"github.com/verscat/verscat/internal/workspace"
	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/nstree"

	"github.com/spf13/cobra"
)

func newResolveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <kind> <alias>",
		Short: "Resolve one leaf of the catalog",
		Long: `Resolve one leaf of the catalog and print its value.

The alias is normalized like catalog keys, so kotlin-test-junit and
kotlin.test.junit name the same library. Versions whose constraint has no
single-string form print as (absent).`,
		Example: `  verscat resolve libraries kotlin-test-junit
  verscat resolve versions ktor
  verscat resolve bundles ktor-server`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := catalog.ParseKind(args[0])
			if err != nil {
				return err
			}
			alias := catalogfile.NormalizeAlias(args[1])

			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			ws, err := app.open(cmd.Context(), s)
			if err != nil {
				return err
			}

			h, err := ws.Resolver.ResolveAlias(cmd.Context(), kind, alias)
			if err != nil {
				ctx := issue.NewErrorContext().
					WithOperation("resolve " + kind.String()).
					WithResource(alias.String()).
					WithIssue(workspace.IssueFor(err))
				if errors.Is(err, nstree.ErrNotFound) {
					ctx = ctx.WithSuggestion(fmt.Sprintf("Run 'verscat tree %s' to list the declared aliases", kind.Section()))
				}
				return ctx.Wrap(err).BuildError()
			}
			fmt.Fprintln(app.stdout, h.String())
			return nil
		},
	}
}
