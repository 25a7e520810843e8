// SPDX-License-Identifier: MPL-2.0

// Package catalogfile reads version catalog files into a catalog.Catalog.
//
// Two formats are supported: Gradle's libs.versions.toml and an equivalent
// CUE document validated against an embedded #Catalog schema. Both keep the
// declaration order of every section, normalize aliases ("kotlin-test-junit"
// becomes "kotlin.test.junit") and reject aliases that clash with reserved
// accessor names.
package catalogfile
