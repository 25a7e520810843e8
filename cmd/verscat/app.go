// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/verscat/verscat/internal/config"
	"github.com/verscat/verscat/internal/workspace"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reads
	// configuration and output streams through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
		flags  globalFlags
		// style is the glamour style of the last loaded configuration.
		style string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	globalFlags struct {
		configPath  string
		catalogPath string
		verbose     bool
	}

	// session is the per-invocation state shared by the subcommands.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// session loads the configuration and the logger for one command.
func (a *App) session(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, err
	}
	verbose := a.flags.verbose || cfg.UI.Verbose
	a.style = cfg.UI.ColorScheme.String()
	return &session{cfg: cfg, logger: newLogger(a.stderr, cfg.Log.Level, verbose), verbose: verbose}, nil
}

// open loads the catalog named by --catalog, or by catalog.path.
func (a *App) open(ctx context.Context, s *session) (*workspace.Workspace, error) {
	path := a.flags.catalogPath
	if path == "" {
		path = string(s.cfg.Catalog.Path)
	}
	return workspace.Open(ctx, path, workspace.Options{
		Name:    s.cfg.Catalog.Name,
		Memoize: s.cfg.Resolve.Memoize,
		Logger:  s.logger,
	})
}

// issueStyle returns the glamour style for guidance pages.
func (a *App) issueStyle() string {
	if a.style == "" {
		return string(config.ColorSchemeAuto)
	}
	return a.style
}

func newLogger(w io.Writer, level config.LogLevel, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: config.AppName})
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}
