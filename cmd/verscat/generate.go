// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verscat/verscat/internal/issue"
	"github.com/verscat/verscat/internal/watch"
	"github.com/verscat/verscat/pkg/accessorgen"

	"github.com/spf13/cobra"
)

type generateRequest struct {
	output  string
	pkgName string
	watch   bool
}

func newGenerateCommand(app *App) *cobra.Command {
	var req generateRequest

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate typed Go accessors for the catalog",
		Long: `Generate a Go file with one accessor method per namespace node.

The generated root type is named after the catalog and built with
New(resolver). Without -o the source is written to stdout.

With --watch the file is regenerated whenever the catalog changes, until
interrupted. Errors in the edited catalog are reported and the previous
output is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.watch && req.output == "" {
				return errors.New("--watch requires --output")
			}
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			if req.pkgName == "" {
				req.pkgName = string(s.cfg.Generate.Package)
			}

			path, err := runGenerate(cmd.Context(), app, s, req)
			if err != nil {
				return err
			}
			if !req.watch {
				return nil
			}
			return watchAndGenerate(cmd.Context(), app, s, req, path)
		},
	}

	cmd.Flags().StringVarP(&req.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&req.pkgName, "package", "", "package name (default is generate.package from the config)")
	cmd.Flags().BoolVarP(&req.watch, "watch", "w", false, "regenerate when the catalog changes")
	return cmd
}

// runGenerate opens the catalog, generates the accessors and writes them.
// It returns the catalog path it read.
func runGenerate(ctx context.Context, app *App, s *session, req generateRequest) (string, error) {
	ws, err := app.open(ctx, s)
	if err != nil {
		return "", err
	}
	src, err := accessorgen.Generate(ws.Store, accessorgen.WithPackage(req.pkgName))
	if err != nil {
		return ws.Path, issue.WrapWithContext(err, "generate accessors", ws.Path)
	}

	if req.output == "" {
		_, err = app.stdout.Write(src)
		return ws.Path, err
	}
	if err := os.MkdirAll(filepath.Dir(req.output), 0o755); err != nil {
		return ws.Path, issue.WrapWithContext(err, "create output directory", filepath.Dir(req.output))
	}
	if err := os.WriteFile(req.output, src, 0o644); err != nil {
		return ws.Path, issue.WrapWithContext(err, "write accessors", req.output)
	}
	s.logger.Debug("accessors written", "path", req.output, "package", req.pkgName, "leaves", ws.Store.Leaves())
	fmt.Fprintf(app.stdout, "%s Generated %s\n", SuccessStyle.Render("✓"), req.output)
	return ws.Path, nil
}

func watchAndGenerate(ctx context.Context, app *App, s *session, req generateRequest, catalogPath string) error {
	w, err := watch.New(watch.Config{
		Files:  []string{catalogPath},
		Stderr: app.stderr,
		OnChange: func(ctx context.Context, _ []string) error {
			if _, err := runGenerate(ctx, app, s, req); err != nil {
				fmt.Fprintln(app.stderr, ErrorStyle.Render("✗")+" "+formatErrorForDisplay(err, s.verbose))
			}
			return nil
		},
	})
	if err != nil {
		return issue.WrapWithContext(err, "watch catalog", catalogPath)
	}
	fmt.Fprintf(app.stdout, "%s\n", SubtitleStyle.Render("Watching "+catalogPath+" (Ctrl+C to stop)"))
	return w.Run(ctx)
}
