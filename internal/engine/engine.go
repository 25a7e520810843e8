// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/leaf"
)

// ErrUnknownVersionRef is the sentinel error wrapped by UnknownVersionRefError.
var ErrUnknownVersionRef = errors.New("unknown version reference")

type (
	// Engine resolves payloads against the version namespace of one catalog.
	// It holds no mutable state and is safe for concurrent use.
	Engine struct {
		versions map[catalog.Alias]catalog.VersionConstraint
	}

	// UnknownVersionRefError is returned when a version.ref names an alias
	// that the version namespace does not declare.
	UnknownVersionRefError struct {
		Ref catalog.Alias
	}
)

var _ leaf.Engine = (*Engine)(nil)

// New indexes the version entries of cat.
func New(cat *catalog.Catalog) *Engine {
	e := &Engine{versions: make(map[catalog.Alias]catalog.VersionConstraint)}
	for _, entry := range cat.EntriesOf(catalog.KindVersion) {
		if p, ok := entry.Payload.(catalog.VersionPayload); ok {
			e.versions[entry.Alias] = p.Constraint
		}
	}
	return e
}

// ResolveDependency implements leaf.Engine.
func (e *Engine) ResolveDependency(ctx context.Context, dep catalog.DependencyPayload) (leaf.Dependency, error) {
	if err := ctx.Err(); err != nil {
		return leaf.Dependency{}, err
	}
	if ok, errs := dep.Coordinate.IsValid(); !ok {
		return leaf.Dependency{}, errors.Join(errs...)
	}
	c, err := e.constraint(dep.Version)
	if err != nil {
		return leaf.Dependency{}, fmt.Errorf("%s: %w", dep.Coordinate, err)
	}
	v, _ := Collapse(c)
	return leaf.Dependency{
		Group:      dep.Coordinate.Group,
		Name:       dep.Coordinate.Name,
		Version:    v,
		Constraint: c,
	}, nil
}

// ResolveVersion implements leaf.Engine.
func (e *Engine) ResolveVersion(ctx context.Context, ref catalog.VersionRef) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	c, err := e.constraint(ref)
	if err != nil {
		return "", false, err
	}
	v, ok := Collapse(c)
	return v, ok, nil
}

// ResolvePlugin implements leaf.Engine.
func (e *Engine) ResolvePlugin(ctx context.Context, id catalog.PluginID, ref catalog.VersionRef) (leaf.Plugin, error) {
	if err := ctx.Err(); err != nil {
		return leaf.Plugin{}, err
	}
	if ok, errs := id.IsValid(); !ok {
		return leaf.Plugin{}, errors.Join(errs...)
	}
	c, err := e.constraint(ref)
	if err != nil {
		return leaf.Plugin{}, fmt.Errorf("plugin %s: %w", id, err)
	}
	v, _ := Collapse(c)
	return leaf.Plugin{ID: string(id), Version: v}, nil
}

func (e *Engine) constraint(ref catalog.VersionRef) (catalog.VersionConstraint, error) {
	if !ref.IsRef() {
		return ref.Constraint, nil
	}
	c, ok := e.versions[ref.Ref]
	if !ok {
		return catalog.VersionConstraint{}, &UnknownVersionRefError{Ref: ref.Ref}
	}
	return c, nil
}

// Error implements the error interface.
func (e *UnknownVersionRefError) Error() string {
	return fmt.Sprintf("version reference %q is not declared in the versions namespace", e.Ref)
}

// Unwrap returns ErrUnknownVersionRef so callers can use errors.Is for programmatic detection.
func (e *UnknownVersionRefError) Unwrap() error { return ErrUnknownVersionRef }
