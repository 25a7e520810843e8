// SPDX-License-Identifier: MPL-2.0

// Package catalogtest provides catalog fixtures for tests.
package catalogtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/nstree"
)

// SampleTOML is a small catalog exercising every section, a version ref,
// a self-leaf group and a bundle.
const SampleTOML = `[versions]
kotlin = "2.1.20"
ktor = "3.1.3"

[libraries]
kotlin-test-junit = { module = "org.jetbrains.kotlin:kotlin-test-junit", version.ref = "kotlin" }
ktor-server-core = { module = "io.ktor:ktor-server-core", version.ref = "ktor" }
ktor-server-auth = { module = "io.ktor:ktor-server-auth", version.ref = "ktor" }
ktor-server-auth-jwt = { module = "io.ktor:ktor-server-auth-jwt", version.ref = "ktor" }

[bundles]
ktor-server = ["ktor-server-core", "ktor-server-auth"]

[plugins]
kotlin-jvm = { id = "org.jetbrains.kotlin.jvm", version.ref = "kotlin" }
`

// Lib returns a dependency entry with an inline required version.
// An empty version leaves the dependency unversioned.
func Lib(alias, group, name, version string) catalog.Entry {
	p := catalog.DependencyPayload{Coordinate: catalog.Coordinate{Group: group, Name: name}}
	if version != "" {
		p.Version = catalog.Inline(catalog.Require(version))
	}
	return catalog.Entry{Kind: catalog.KindDependency, Alias: catalog.Alias(alias), Payload: p}
}

// LibRef returns a dependency entry whose version references a version alias.
func LibRef(alias, group, name, ref string) catalog.Entry {
	return catalog.Entry{
		Kind:  catalog.KindDependency,
		Alias: catalog.Alias(alias),
		Payload: catalog.DependencyPayload{
			Coordinate: catalog.Coordinate{Group: group, Name: name},
			Version:    catalog.RefTo(catalog.Alias(ref)),
		},
	}
}

// Ver returns a version entry requiring version.
func Ver(alias, version string) catalog.Entry {
	return catalog.Entry{
		Kind:    catalog.KindVersion,
		Alias:   catalog.Alias(alias),
		Payload: catalog.VersionPayload{Constraint: catalog.Require(version)},
	}
}

// Bundle returns a bundle entry of members in order.
func Bundle(alias string, members ...string) catalog.Entry {
	m := make([]catalog.Alias, len(members))
	for i, s := range members {
		m[i] = catalog.Alias(s)
	}
	return catalog.Entry{Kind: catalog.KindBundle, Alias: catalog.Alias(alias), Payload: catalog.BundlePayload{Members: m}}
}

// Plugin returns a plugin entry with an inline required version.
func Plugin(alias, id, version string) catalog.Entry {
	p := catalog.PluginPayload{ID: catalog.PluginID(id)}
	if version != "" {
		p.Version = catalog.Inline(catalog.Require(version))
	}
	return catalog.Entry{Kind: catalog.KindPlugin, Alias: catalog.Alias(alias), Payload: p}
}

// MustNew builds a catalog from entries, failing the test on error.
func MustNew(t testing.TB, entries ...catalog.Entry) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(entries)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

// MustBuild builds the namespace tree of a catalog made of entries.
func MustBuild(t testing.TB, entries ...catalog.Entry) *nstree.Store {
	t.Helper()
	s, err := nstree.Build(MustNew(t, entries...))
	if err != nil {
		t.Fatalf("nstree.Build() error = %v", err)
	}
	return s
}

// WriteCatalog writes content to name inside a fresh temporary directory and
// returns the file path.
func WriteCatalog(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create catalog dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
