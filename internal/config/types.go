// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidCatalogPath is returned when CatalogPath is blank.
	ErrInvalidCatalogPath = errors.New("invalid catalog path")
	// ErrInvalidPackageName is returned when PackageName is not a Go identifier.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// LogLevel is the minimum level the CLI logger prints.
	LogLevel string

	// CatalogPath is the path of the catalog file, relative to the working
	// directory unless absolute.
	CatalogPath string

	// PackageName is the Go package name used by generated accessors.
	PackageName string

	// InvalidValueError is returned by the IsValid methods of the scalar
	// config types. It wraps the type's sentinel.
	InvalidValueError struct {
		Field    string
		Value    string
		Expected string
		sentinel error
	}

	// InvalidConfigError collects every field error of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Catalog  CatalogConfig  `json:"catalog" mapstructure:"catalog"`
		Resolve  ResolveConfig  `json:"resolve" mapstructure:"resolve"`
		Generate GenerateConfig `json:"generate" mapstructure:"generate"`
		UI       UIConfig       `json:"ui" mapstructure:"ui"`
		Log      LogConfig      `json:"log" mapstructure:"log"`
	}

	// CatalogConfig locates the catalog file.
	CatalogConfig struct {
		Path CatalogPath `json:"path" mapstructure:"path"`
		// Name overrides the accessor root name. Empty derives it from the
		// file name up to the first dot.
		Name string `json:"name" mapstructure:"name"`
	}

	// ResolveConfig configures leaf resolution.
	ResolveConfig struct {
		// Memoize caches resolved leaves for the lifetime of one command.
		Memoize bool `json:"memoize" mapstructure:"memoize"`
	}

	// GenerateConfig configures accessor generation.
	GenerateConfig struct {
		Package PackageName `json:"package" mapstructure:"package"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// LogConfig configures the CLI logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog:  CatalogConfig{Path: "gradle/libs.versions.toml"},
		Resolve:  ResolveConfig{Memoize: true},
		Generate: GenerateConfig{Package: "libs"},
		UI:       UIConfig{ColorScheme: ColorSchemeAuto},
		Log:      LogConfig{Level: LogLevelWarn},
	}
}

// IsValid returns whether every field of the Config is valid.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.Catalog.Path.IsValid,
		c.Generate.Package.IsValid,
		c.UI.ColorScheme.IsValid,
		c.Log.Level.IsValid,
	} {
		if ok, fieldErrs := check(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (%s)", e.Field, e.Value, e.Expected)
}

// Unwrap returns the sentinel of the invalid type.
func (e *InvalidValueError) Unwrap() error { return e.sentinel }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is auto, dark or light.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Field: "color scheme", Value: string(cs), Expected: "valid: auto, dark, light", sentinel: ErrInvalidColorScheme,
		}}
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is debug, info, warn or error.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidValueError{
			Field: "log level", Value: string(l), Expected: "valid: debug, info, warn, error", sentinel: ErrInvalidLogLevel,
		}}
	}
}

// String returns the string representation of the CatalogPath.
func (p CatalogPath) String() string { return string(p) }

// IsValid returns whether the CatalogPath is non-empty and not whitespace-only.
func (p CatalogPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidValueError{
			Field: "catalog path", Value: string(p), Expected: "must be non-empty", sentinel: ErrInvalidCatalogPath,
		}}
	}
	return true, nil
}

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// IsValid returns whether the PackageName is a Go identifier that is not a keyword.
func (n PackageName) IsValid() (bool, []error) {
	if !token.IsIdentifier(string(n)) || n == "_" {
		return false, []error{&InvalidValueError{
			Field: "package name", Value: string(n), Expected: "must be a Go identifier", sentinel: ErrInvalidPackageName,
		}}
	}
	return true, nil
}
