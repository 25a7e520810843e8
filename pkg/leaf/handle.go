// SPDX-License-Identifier: MPL-2.0

package leaf

import (
	"context"
	"slices"
	"strings"

	"github.com/verscat/verscat/pkg/catalog"
)

type (
	// Engine is the resolution collaborator. Implementations must be safe for
	// concurrent use and are expected to be cheap and free of side effects;
	// the Resolver may call them repeatedly for the same alias.
	Engine interface {
		// ResolveDependency turns a library payload into a dependency handle.
		ResolveDependency(ctx context.Context, dep catalog.DependencyPayload) (Dependency, error)
		// ResolveVersion returns the single-string form of a version, or
		// ok == false when the constraint cannot be expressed as one string.
		ResolveVersion(ctx context.Context, ref catalog.VersionRef) (version string, ok bool, err error)
		// ResolvePlugin turns a plugin id and version into a plugin handle.
		ResolvePlugin(ctx context.Context, id catalog.PluginID, ref catalog.VersionRef) (Plugin, error)
	}

	// Dependency is a resolved library handle.
	Dependency struct {
		Group string
		Name  string
		// Version is the single-string version, empty when the library has
		// no version or a rich constraint that does not collapse.
		Version string
		// Constraint is the full declared constraint.
		Constraint catalog.VersionConstraint
	}

	// Plugin is a resolved plugin handle.
	Plugin struct {
		ID      string
		Version string
	}

	// Version is a resolved version leaf. Present is false for constraints
	// that have no single-string form.
	Version struct {
		Value   string
		Present bool
	}

	// Handle is the kind-tagged result of resolving any leaf.
	Handle struct {
		Kind       catalog.Kind
		Dependency Dependency
		Version    Version
		Bundle     []Dependency
		Plugin     Plugin
	}
)

// Coordinate returns the "group:name" part of the handle.
func (d Dependency) Coordinate() catalog.Coordinate {
	return catalog.Coordinate{Group: d.Group, Name: d.Name}
}

// String returns "group:name:version", or "group:name" without a version.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Group + ":" + d.Name
	}
	return d.Group + ":" + d.Name + ":" + d.Version
}

// String returns "id:version", or the bare id without a version.
func (p Plugin) String() string {
	if p.Version == "" {
		return p.ID
	}
	return p.ID + ":" + p.Version
}

// String returns the version, or "(absent)" when the constraint has no
// single-string form.
func (v Version) String() string {
	if !v.Present {
		return "(absent)"
	}
	return v.Value
}

// String renders the handle's value for its kind.
func (h Handle) String() string {
	switch h.Kind {
	case catalog.KindDependency:
		return h.Dependency.String()
	case catalog.KindVersion:
		return h.Version.String()
	case catalog.KindPlugin:
		return h.Plugin.String()
	case catalog.KindBundle:
		parts := make([]string, len(h.Bundle))
		for i, d := range h.Bundle {
			parts[i] = d.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// clone returns a copy of h that shares no slices with it.
func (h Handle) clone() Handle {
	h.Dependency.Constraint.Reject = slices.Clone(h.Dependency.Constraint.Reject)
	if h.Bundle != nil {
		h.Bundle = slices.Clone(h.Bundle)
		for i := range h.Bundle {
			h.Bundle[i].Constraint.Reject = slices.Clone(h.Bundle[i].Constraint.Reject)
		}
	}
	return h
}
