// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that change process-wide
// state: the working directory and the home directory. Tests using them
// must not call t.Parallel.
//
// Catalog fixtures live in the catalogtest subpackage.
package testutil
