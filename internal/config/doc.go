// SPDX-License-Identifier: MPL-2.0

// Package config handles verscat configuration using Viper with CUE as the
// file format.
//
// Configuration is read from config.cue in the platform config directory
// ($XDG_CONFIG_HOME/verscat on Linux, ~/Library/Application Support/verscat
// on macOS, %APPDATA%\verscat on Windows), falling back to ./config.cue.
// Files are validated against the embedded #Config schema before being
// merged over the defaults, and VERSCAT_* environment variables override
// both (VERSCAT_CATALOG_PATH sets catalog.path).
package config
