// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and Markdown guidance for the
// failures a catalog user can fix: missing or malformed catalog files,
// alias clashes, dangling bundle members and broken configuration.
package issue
