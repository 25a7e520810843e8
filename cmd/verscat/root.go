// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/verscat/verscat/internal/issue"

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

// NewRootCommand builds the verscat command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verscat",
		Short: "Compile dependency version catalogs into typed accessor trees",
		Long: TitleStyle.Render("verscat") + SubtitleStyle.Render(" - version catalogs as typed accessor trees") + `

verscat reads a Gradle-style version catalog (libs.versions.toml, or the
equivalent CUE file), turns its dot-separated aliases into one namespace
tree per section and resolves every leaf to a dependency, version, bundle
or plugin handle.

` + SubtitleStyle.Render("Examples:") + `
  verscat tree                      Show every namespace of the catalog
  verscat tree libraries            Show the library namespace only
  verscat resolve lib ktor.server   Resolve one library
  verscat check                     Resolve every leaf and report problems
  verscat generate -o libs/libs.go  Generate Go accessors`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/verscat/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&app.flags.catalogPath, "catalog", "c", "", "catalog file (default is catalog.path from the config)")

	rootCmd.AddCommand(
		newTreeCommand(app),
		newResolveCommand(app),
		newCheckCommand(app),
		newGenerateCommand(app),
		newConfigCommand(app),
		newIssueCommand(app),
	)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler(app)),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// errorHandler renders actionable errors with their suggestions and, in
// verbose mode, the guidance page of their issue.
func errorHandler(app *App) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}
		fang.DefaultErrorHandler(w, styles, errors.New(formatErrorForDisplay(err, app.flags.verbose)))
		if app.flags.verbose {
			renderIssue(w, err, app.issueStyle())
		}
	}
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

// renderIssue writes the guidance page of err's issue, if it has one.
func renderIssue(w io.Writer, err error, style string) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	iss := issue.Get(ae.Issue)
	if iss == nil {
		return
	}
	rendered, renderErr := iss.Render(style)
	if renderErr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
