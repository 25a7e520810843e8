// SPDX-License-Identifier: MPL-2.0

// Package engine is the default leaf.Engine. It resolves dependency, version
// and plugin payloads offline against the catalog's version namespace and
// collapses rich version constraints into a single string where one exists.
package engine
