// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for verscat.
//
// This package implements the Cobra command hierarchy for the verscat CLI:
// inspecting the namespace tree of a catalog, resolving single leaves,
// checking a whole catalog, generating typed accessors and managing the
// configuration file.
package cmd
