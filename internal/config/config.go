// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/verscat/verscat/internal/issue"
	"github.com/verscat/verscat/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "verscat"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides: VERSCAT_UI_VERBOSE sets ui.verbose.
	EnvPrefix = "VERSCAT"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the verscat configuration directory using platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on macOS
// and $XDG_CONFIG_HOME (default ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// FilePath returns the config file Load would read for opts, or "" when no
// file exists and defaults apply. An explicit ConfigFilePath is returned as
// is, without checking that it exists.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	dir, err := configDir(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{
		filepath.Join(dir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// loadWithOptions layers defaults, the config file and environment
// overrides, and returns the config together with the file it read.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}
	if opts.ConfigFilePath != "" && !fileExists(path) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'verscat config init' to write a default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the schema shown by 'verscat config dump'").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	// Environment overrides bypass the CUE schema, so validate the result.
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}
	return &cfg, path, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("catalog.path", string(d.Catalog.Path))
	v.SetDefault("catalog.name", d.Catalog.Name)
	v.SetDefault("resolve.memoize", d.Resolve.Memoize)
	v.SetDefault("generate.package", string(d.Generate.Package))
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("log.level", string(d.Log.Level))
}

func configDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a config file against #Config and merges it
// over the defaults already set on v. Fields are optional, so unset values
// are not an error.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	values, err := cueutil.Decode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(*values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config.cue into dir (the platform
// config directory when dir is empty) unless one already exists. It returns
// the path of the file and whether it was created.
func CreateDefaultConfig(dir string) (string, bool, error) {
	dir, err := configDir(dir)
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return path, false, nil
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a config.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// verscat configuration\n\n")

	sb.WriteString("catalog: {\n")
	fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Catalog.Path)
	if cfg.Catalog.Name != "" {
		fmt.Fprintf(&sb, "\tname: %q\n", cfg.Catalog.Name)
	}
	sb.WriteString("}\n")

	sb.WriteString("\nresolve: {\n")
	fmt.Fprintf(&sb, "\tmemoize: %v\n", cfg.Resolve.Memoize)
	sb.WriteString("}\n")

	sb.WriteString("\ngenerate: {\n")
	fmt.Fprintf(&sb, "\tpackage: %q\n", cfg.Generate.Package)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}
