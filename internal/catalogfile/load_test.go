// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/verscat/verscat/internal/engine"
	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/nstree"
)

func aliases(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Alias)
	}
	return out
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	cat, err := Load(filepath.Join("testdata", "libs.versions.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Name() != "libs" {
		t.Errorf("Name() = %q, want libs", cat.Name())
	}

	wantLibs := []string{
		"kotlin.test.junit", "ktor.server.core", "ktor.server.auth",
		"ktor.server.auth.jwt", "ktor.server.netty", "logback.classic", "guava",
	}
	if got := aliases(cat.EntriesOf(catalog.KindDependency)); !slices.Equal(got, wantLibs) {
		t.Errorf("libraries = %v, want %v", got, wantLibs)
	}

	e, ok := cat.Lookup(catalog.KindDependency, "kotlin.test.junit")
	if !ok {
		t.Fatal("kotlin.test.junit not found")
	}
	want := catalog.DependencyPayload{
		Coordinate: catalog.Coordinate{Group: "org.jetbrains.kotlin", Name: "kotlin-test-junit"},
		Version:    catalog.RefTo("kotlin"),
	}
	if !reflect.DeepEqual(e.Payload, want) {
		t.Errorf("payload = %+v, want %+v", e.Payload, want)
	}

	e, _ = cat.Lookup(catalog.KindVersion, "guava")
	wantGuava := catalog.VersionPayload{Constraint: catalog.VersionConstraint{Require: "[30.0,34.0)", Prefer: "33.4.0-jre"}}
	if !reflect.DeepEqual(e.Payload, wantGuava) {
		t.Errorf("guava version = %+v, want %+v", e.Payload, wantGuava)
	}

	e, _ = cat.Lookup(catalog.KindBundle, "ktor.server")
	wantBundle := catalog.BundlePayload{Members: []catalog.Alias{"ktor.server.core", "ktor.server.netty", "ktor.server.auth"}}
	if !reflect.DeepEqual(e.Payload, wantBundle) {
		t.Errorf("bundle = %+v, want %+v", e.Payload, wantBundle)
	}

	e, _ = cat.Lookup(catalog.KindPlugin, "ktor")
	wantPlugin := catalog.PluginPayload{ID: "io.ktor.plugin", Version: catalog.Inline(catalog.Require("3.1.3"))}
	if !reflect.DeepEqual(e.Payload, wantPlugin) {
		t.Errorf("plugin = %+v, want %+v", e.Payload, wantPlugin)
	}
}

func TestLoad_CUEMatchesTOML(t *testing.T) {
	t.Parallel()

	fromTOML, err := Load(filepath.Join("testdata", "libs.versions.toml"))
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	fromCUE, err := Load(filepath.Join("testdata", "libs.versions.cue"))
	if err != nil {
		t.Fatalf("Load(cue) error = %v", err)
	}
	if fromCUE.Name() != "libs" {
		t.Errorf("Name() = %q, want libs", fromCUE.Name())
	}
	if !reflect.DeepEqual(fromCUE.Entries(), fromTOML.Entries()) {
		t.Errorf("CUE entries differ from TOML entries:\ncue:  %+v\ntoml: %+v", fromCUE.Entries(), fromTOML.Entries())
	}
}

func TestLoad_BuildsSelfLeafGroup(t *testing.T) {
	t.Parallel()

	cat, err := Load(filepath.Join("testdata", "libs.versions.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	store, err := nstree.Build(cat)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	auth, err := store.Lookup(catalog.KindDependency, "ktor.server.auth")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if auth.Class() != nstree.ClassSelfLeafGroup {
		t.Errorf("ktor.server.auth class = %v, want self-leaf group", auth.Class())
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantIs  error
		wantMsg string
	}{
		{
			name:   "reserved library prefix",
			doc:    "[libraries]\nversions-foo = \"g:n:1\"\n",
			wantIs: ErrReservedAlias,
		},
		{
			name:   "reserved segment",
			doc:    "[plugins]\nfoo-class = \"p:1\"\n",
			wantIs: ErrReservedAlias,
		},
		{
			name:   "duplicate after normalization",
			doc:    "[libraries]\na-b = \"g:n:1\"\na_b = \"g:m:1\"\n",
			wantIs: catalog.ErrDuplicateAlias,
		},
		{
			name:   "alias starting with a digit",
			doc:    "[libraries]\n\"1abc\" = \"g:n:1\"\n",
			wantIs: catalog.ErrMalformedAlias,
		},
		{
			name:   "alias with empty segment",
			doc:    "[versions]\n\"a..b\" = \"1\"\n",
			wantIs: catalog.ErrMalformedAlias,
		},
		{
			name:   "unknown version ref",
			doc:    "[libraries]\nfoo = { module = \"g:n\", version.ref = \"missing\" }\n",
			wantIs: engine.ErrUnknownVersionRef,
		},
		{
			name:    "library string without version",
			doc:     "[libraries]\nfoo = \"g:n\"\n",
			wantIs:  ErrNotation,
			wantMsg: "group:name:version",
		},
		{
			name:   "module combined with group",
			doc:    "[libraries]\nfoo = { module = \"g:n\", group = \"g\" }\n",
			wantIs: ErrNotation,
		},
		{
			name:   "bundle not an array",
			doc:    "[bundles]\nall = \"foo\"\n",
			wantIs: ErrNotation,
		},
		{
			name:    "unknown section",
			doc:     "[dependencies]\nfoo = \"g:n:1\"\n",
			wantIs:  ErrNotation,
			wantMsg: "unknown section",
		},
		{
			name:    "unknown rich version key",
			doc:     "[versions]\nfoo = { require = \"1\", pin = \"2\" }\n",
			wantIs:  ErrNotation,
			wantMsg: "pin",
		},
		{
			name:    "syntax error",
			doc:     "[versions]\nfoo = \n",
			wantIs:  ErrSyntax,
			wantMsg: "libs.versions.toml",
		},
		{
			name:   "array of tables",
			doc:    "[[libraries]]\nfoo = \"g:n:1\"\n",
			wantIs: ErrSyntax,
		},
		{
			name:    "duplicate key",
			doc:     "[versions]\nfoo = \"1\"\nfoo = \"2\"\n",
			wantIs:  ErrSyntax,
			wantMsg: "libs.versions.toml:3:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc), FormatTOML, "libs.versions.toml")
			if !errors.Is(err, tt.wantIs) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantIs)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParse_CUESchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`libraries: foo: {module: "no-colon"}`), FormatCUE, "libs.cue")
	if err == nil {
		t.Fatal("Parse() should reject a module without a colon")
	}
	if !strings.Contains(err.Error(), "libs.cue") {
		t.Errorf("error %q should name the file", err)
	}

	_, err = Parse([]byte(`dependencies: {}`), FormatCUE, "libs.cue")
	if err == nil {
		t.Error("Parse() should reject an unknown top-level section")
	}
}

func TestParse_VersionsResolveRegardlessOfSectionOrder(t *testing.T) {
	t.Parallel()

	doc := "[libraries]\nfoo = { module = \"g:n\", version.ref = \"foo\" }\n\n[versions]\nfoo = \"1.0\"\n"
	cat, err := Parse([]byte(doc), FormatTOML, "x.toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	if cat.Name() != catalog.DefaultName {
		t.Errorf("Name() = %q, want %q", cat.Name(), catalog.DefaultName)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "catalog.json")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(.json) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	path := filepath.Join(dir, "deps.versions.toml")
	if err := os.WriteFile(path, []byte("[versions]\nfoo = \"1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := Load(path, WithMaxFileSize(1))
	if err == nil {
		t.Fatalf("Load() with a 1 byte limit = %v, want error", cat)
	}
	cat, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Name() != "deps" {
		t.Errorf("Name() = %q, want deps", cat.Name())
	}
	cat, err = Load(path, WithName("tools"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Name() != "tools" {
		t.Errorf("Name() = %q, want tools", cat.Name())
	}
}

func TestNormalizeAlias(t *testing.T) {
	t.Parallel()

	tests := map[string]catalog.Alias{
		"kotlin-test-junit": "kotlin.test.junit",
		"ktor_server.core":  "ktor.server.core",
		"groovyJson":        "groovyjson",
		"simple":            "simple",
	}
	for in, want := range tests {
		if got := NormalizeAlias(in); got != want {
			t.Errorf("NormalizeAlias(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNameFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"gradle/libs.versions.toml": "libs",
		"tools.cue":                 "tools",
		".hidden.toml":              catalog.DefaultName,
	}
	for in, want := range tests {
		if got := NameFromPath(in); got != want {
			t.Errorf("NameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
