// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/leaf"
	"github.com/verscat/verscat/pkg/nstree"
)

func TestCollapse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		c      catalog.VersionConstraint
		want   string
		wantOK bool
	}{
		{"plain version", catalog.Require("2.1.10"), "2.1.10", true},
		{"strictly only", catalog.VersionConstraint{Strictly: "1.7.15"}, "1.7.15", true},
		{"prefer only", catalog.VersionConstraint{Prefer: "1.2"}, "1.2", true},
		{"strictly equals require", catalog.VersionConstraint{Strictly: "3.0", Require: "3.0"}, "3.0", true},
		{"strictly differs from require", catalog.VersionConstraint{Strictly: "3.0", Require: "3.1"}, "", false},
		{"require and different prefer", catalog.VersionConstraint{Require: "[1.0,2.0)", Prefer: "1.5"}, "", false},
		{"reject list", catalog.VersionConstraint{Require: "1.0", Reject: []string{"0.9"}}, "", false},
		{"reject all", catalog.VersionConstraint{Require: "1.0", RejectAll: true}, "", false},
		{"empty", catalog.VersionConstraint{}, "", false},
		{"maven range", catalog.Require("[1.0,2.0)"), "", false},
		{"dynamic", catalog.Require("1.+"), "", false},
		{"latest", catalog.Require("latest.release"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Collapse(tt.c)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Collapse() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    string
		want bool
	}{
		{"2.1.10", false},
		{"33.4.0-jre", false},
		{"1.0.0.Final", false},
		{"1.9.0-RC", false},
		{"[1.0,2.0)", true},
		{"]1.0,2.0]", true},
		{"(,1.0]", true},
		{"+", true},
		{"1.+", true},
		{"latest.integration", true},
		{"^1.2.0", true},
		{"~1.2", true},
		{">= 1.0, < 2.0", true},
		{"1.x", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.v, func(t *testing.T) {
			t.Parallel()
			if got := IsRange(tt.v); got != tt.want {
				t.Errorf("IsRange(%q) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Entry{
		{Kind: catalog.KindVersion, Alias: "ktor", Payload: catalog.VersionPayload{Constraint: catalog.Require("3.1.3")}},
		{Kind: catalog.KindVersion, Alias: "guava", Payload: catalog.VersionPayload{
			Constraint: catalog.VersionConstraint{Require: "[30.0,34.0)", Prefer: "33.4.0-jre"},
		}},
		{Kind: catalog.KindDependency, Alias: "ktor.server.core", Payload: catalog.DependencyPayload{
			Coordinate: catalog.Coordinate{Group: "io.ktor", Name: "ktor-server-core"},
			Version:    catalog.RefTo("ktor"),
		}},
		{Kind: catalog.KindDependency, Alias: "guava", Payload: catalog.DependencyPayload{
			Coordinate: catalog.Coordinate{Group: "com.google.guava", Name: "guava"},
			Version:    catalog.RefTo("guava"),
		}},
		{Kind: catalog.KindDependency, Alias: "broken", Payload: catalog.DependencyPayload{
			Coordinate: catalog.Coordinate{Group: "g", Name: "broken"},
			Version:    catalog.RefTo("missing"),
		}},
		{Kind: catalog.KindPlugin, Alias: "ktor", Payload: catalog.PluginPayload{
			ID:      "io.ktor.plugin",
			Version: catalog.RefTo("ktor"),
		}},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func TestEngine_ResolveDependency(t *testing.T) {
	t.Parallel()

	eng := New(newCatalog(t))

	d, err := eng.ResolveDependency(t.Context(), catalog.DependencyPayload{
		Coordinate: catalog.Coordinate{Group: "io.ktor", Name: "ktor-server-core"},
		Version:    catalog.RefTo("ktor"),
	})
	if err != nil {
		t.Fatalf("ResolveDependency() error = %v", err)
	}
	if d.String() != "io.ktor:ktor-server-core:3.1.3" {
		t.Errorf("dependency = %q, want io.ktor:ktor-server-core:3.1.3", d)
	}

	d, err = eng.ResolveDependency(t.Context(), catalog.DependencyPayload{
		Coordinate: catalog.Coordinate{Group: "com.google.guava", Name: "guava"},
		Version:    catalog.RefTo("guava"),
	})
	if err != nil {
		t.Fatalf("ResolveDependency() error = %v", err)
	}
	if d.Version != "" {
		t.Errorf("Version = %q, want empty for a non-collapsible constraint", d.Version)
	}
	if d.Constraint.Prefer != "33.4.0-jre" {
		t.Errorf("Constraint = %v, want the declared constraint to be kept", d.Constraint)
	}
}

func TestEngine_UnknownVersionRef(t *testing.T) {
	t.Parallel()

	eng := New(newCatalog(t))
	_, err := eng.ResolveDependency(t.Context(), catalog.DependencyPayload{
		Coordinate: catalog.Coordinate{Group: "g", Name: "broken"},
		Version:    catalog.RefTo("missing"),
	})
	if !errors.Is(err, ErrUnknownVersionRef) {
		t.Fatalf("error = %v, want ErrUnknownVersionRef", err)
	}
	var refErr *UnknownVersionRefError
	if !errors.As(err, &refErr) || refErr.Ref != "missing" {
		t.Errorf("error = %v, want *UnknownVersionRefError for %q", err, "missing")
	}
}

func TestEngine_InvalidInputs(t *testing.T) {
	t.Parallel()

	eng := New(newCatalog(t))
	if _, err := eng.ResolveDependency(t.Context(), catalog.DependencyPayload{}); !errors.Is(err, catalog.ErrInvalidCoordinate) {
		t.Errorf("ResolveDependency(empty) error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := eng.ResolvePlugin(t.Context(), " ", catalog.VersionRef{}); !errors.Is(err, catalog.ErrInvalidPluginID) {
		t.Errorf("ResolvePlugin(blank) error = %v, want ErrInvalidPluginID", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, _, err := eng.ResolveVersion(ctx, catalog.Inline(catalog.Require("1.0"))); !errors.Is(err, context.Canceled) {
		t.Errorf("ResolveVersion(canceled) error = %v, want context.Canceled", err)
	}
}

// TestEngine_WithResolver drives the engine through the leaf resolver the way
// the CLI does.
func TestEngine_WithResolver(t *testing.T) {
	t.Parallel()

	cat := newCatalog(t)
	store, err := nstree.Build(cat)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	r := leaf.NewResolver(store, New(cat), leaf.WithMemoization())

	tests := []struct {
		kind  catalog.Kind
		alias catalog.Alias
		want  string
	}{
		{catalog.KindDependency, "ktor.server.core", "io.ktor:ktor-server-core:3.1.3"},
		{catalog.KindVersion, "ktor", "3.1.3"},
		{catalog.KindVersion, "guava", "(absent)"},
		{catalog.KindPlugin, "ktor", "io.ktor.plugin:3.1.3"},
	}
	for _, tt := range tests {
		h, err := r.ResolveAlias(t.Context(), tt.kind, tt.alias)
		if err != nil {
			t.Errorf("ResolveAlias(%s, %s) error = %v", tt.kind, tt.alias, err)
			continue
		}
		if got := h.String(); got != tt.want {
			t.Errorf("ResolveAlias(%s, %s) = %q, want %q", tt.kind, tt.alias, got, tt.want)
		}
	}

	if _, err := r.ResolveAlias(t.Context(), catalog.KindDependency, "broken"); !errors.Is(err, ErrUnknownVersionRef) {
		t.Errorf("ResolveAlias(broken) error = %v, want ErrUnknownVersionRef", err)
	}
}
