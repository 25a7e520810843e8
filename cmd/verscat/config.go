// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/verscat/verscat/internal/config"
	"github.com/verscat/verscat/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `verscat config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage verscat configuration",
		Long: `Manage verscat configuration.

Configuration is stored in:
  - Linux: ~/.config/verscat/config.cue
  - macOS: ~/Library/Application Support/verscat/config.cue
  - Windows: %APPDATA%\verscat\config.cue

Every key can be overridden from the environment with the VERSCAT_ prefix,
e.g. VERSCAT_CATALOG_PATH or VERSCAT_LOG_LEVEL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	var initDir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(initDir)
			if err != nil {
				return issue.WrapWithContext(err, "create config", initDir)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&initDir, "dir", "", "directory to create config.cue in (default is the platform config directory)")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", dir)

			path, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintf(app.stdout, "Config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
				return nil
			}
			fmt.Fprintf(app.stdout, "Config file: %s\n", path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	s, err := app.session(ctx)
	if err != nil {
		renderIssue(app.stderr, err, app.issueStyle())
		return err
	}
	cfg := s.cfg
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
	if err != nil || path == "" {
		fmt.Fprintf(w, "%s: %s\n", AliasStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", AliasStyle.Render("Config file"), path)
	}

	name := cfg.Catalog.Name
	if name == "" {
		name = SubtitleStyle.Render("(from file name)")
	}
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"catalog", [][2]string{{"path", cfg.Catalog.Path.String()}, {"name", name}}},
		{"resolve", [][2]string{{"memoize", fmt.Sprint(cfg.Resolve.Memoize)}}},
		{"generate", [][2]string{{"package", cfg.Generate.Package.String()}}},
		{"ui", [][2]string{{"color_scheme", cfg.UI.ColorScheme.String()}, {"verbose", fmt.Sprint(cfg.UI.Verbose)}}},
		{"log", [][2]string{{"level", cfg.Log.Level.String()}}},
	}
	for _, sec := range sections {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", AliasStyle.Render(sec.title))
		for _, kv := range sec.keys {
			fmt.Fprintf(w, "  %s: %s\n", kv[0], SuccessStyle.Render(kv[1]))
		}
	}
	return nil
}
