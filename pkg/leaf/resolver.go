// SPDX-License-Identifier: MPL-2.0

package leaf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/nstree"
)

// ErrForeignNode is returned when a node that was not built by the
// resolver's store is passed to it.
var ErrForeignNode = errors.New("node does not belong to this store")

type (
	// Resolver routes leaf nodes of one Store to an Engine.
	// It is safe for concurrent use.
	Resolver struct {
		store  *nstree.Store
		engine Engine
		// memo holds one slot per store node when memoization is enabled.
		memo   []atomic.Pointer[Handle]
		logger *log.Logger
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithMemoization caches the first successful handle of every node. Engine
// errors are never cached.
func WithMemoization() Option {
	return func(r *Resolver) {
		r.memo = make([]atomic.Pointer[Handle], r.store.Len())
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver over a built store.
func NewResolver(store *nstree.Store, engine Engine, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		engine: engine,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the store the resolver navigates.
func (r *Resolver) Store() *nstree.Store { return r.store }

// Memoized reports whether the resolver caches handles.
func (r *Resolver) Memoized() bool { return r.memo != nil }

// Resolve resolves the self-leaf of n according to its kind. It fails with
// *NoLeafError when n is a pure group.
func (r *Resolver) Resolve(ctx context.Context, n *nstree.Node) (Handle, error) {
	if n == nil || r.store.Node(n.ID()) != n {
		return Handle{}, ErrForeignNode
	}
	entry, ok := r.store.SelfLeafOf(n)
	if !ok {
		return Handle{}, &NoLeafError{Kind: n.Kind(), Alias: n.Alias()}
	}

	if r.memo != nil {
		if h := r.memo[n.ID()].Load(); h != nil {
			r.logger.Debug("reusing memoized handle", "leaf", n)
			return h.clone(), nil
		}
	}

	h, err := r.compute(ctx, entry)
	if err != nil {
		return Handle{}, err
	}
	r.logger.Debug("resolved leaf", "leaf", n, "value", h)

	if r.memo != nil {
		slot := &r.memo[n.ID()]
		if !slot.CompareAndSwap(nil, &h) {
			// Another goroutine stored first; its handle is the only one
			// callers may observe.
			return slot.Load().clone(), nil
		}
	}
	return h.clone(), nil
}

// ResolveAlias looks up alias in the kind namespace and resolves it.
func (r *Resolver) ResolveAlias(ctx context.Context, kind catalog.Kind, alias catalog.Alias) (Handle, error) {
	n, err := r.store.Lookup(kind, alias)
	if err != nil {
		return Handle{}, err
	}
	return r.Resolve(ctx, n)
}

// Dependency resolves a dependency leaf.
func (r *Resolver) Dependency(ctx context.Context, n *nstree.Node) (Dependency, error) {
	h, err := r.typed(ctx, n, catalog.KindDependency)
	return h.Dependency, err
}

// Version resolves a version leaf. ok is false when the constraint has no
// single-string form.
func (r *Resolver) Version(ctx context.Context, n *nstree.Node) (version string, ok bool, err error) {
	h, err := r.typed(ctx, n, catalog.KindVersion)
	return h.Version.Value, h.Version.Present, err
}

// Bundle resolves a bundle leaf into its member dependencies in declared order.
func (r *Resolver) Bundle(ctx context.Context, n *nstree.Node) ([]Dependency, error) {
	h, err := r.typed(ctx, n, catalog.KindBundle)
	return h.Bundle, err
}

// Plugin resolves a plugin leaf.
func (r *Resolver) Plugin(ctx context.Context, n *nstree.Node) (Plugin, error) {
	h, err := r.typed(ctx, n, catalog.KindPlugin)
	return h.Plugin, err
}

func (r *Resolver) typed(ctx context.Context, n *nstree.Node, want catalog.Kind) (Handle, error) {
	if n != nil && n.Kind() != want {
		return Handle{}, &KindMismatchError{Want: want, Got: n.Kind(), Alias: n.Alias()}
	}
	return r.Resolve(ctx, n)
}

func (r *Resolver) compute(ctx context.Context, e catalog.Entry) (Handle, error) {
	h := Handle{Kind: e.Kind}
	switch p := e.Payload.(type) {
	case catalog.DependencyPayload:
		d, err := r.engine.ResolveDependency(ctx, p)
		if err != nil {
			return Handle{}, err
		}
		h.Dependency = d
	case catalog.VersionPayload:
		v, ok, err := r.engine.ResolveVersion(ctx, catalog.Inline(p.Constraint))
		if err != nil {
			return Handle{}, err
		}
		if ok {
			h.Version = Version{Value: v, Present: true}
		}
	case catalog.PluginPayload:
		pl, err := r.engine.ResolvePlugin(ctx, p.ID, p.Version)
		if err != nil {
			return Handle{}, err
		}
		h.Plugin = pl
	case catalog.BundlePayload:
		deps, err := r.expandBundle(ctx, e.Alias, p)
		if err != nil {
			return Handle{}, err
		}
		h.Bundle = deps
	default:
		return Handle{}, fmt.Errorf("resolve %s %q: unsupported payload %T", e.Kind, e.Alias, e.Payload)
	}
	return h, nil
}

// expandBundle resolves every member before returning so that a dangling
// alias fails the whole bundle.
func (r *Resolver) expandBundle(ctx context.Context, bundle catalog.Alias, p catalog.BundlePayload) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(p.Members))
	for _, member := range p.Members {
		if ok, _ := member.IsValid(); !ok {
			return nil, &DanglingAliasError{Bundle: bundle, Missing: member}
		}
		n, err := r.store.Lookup(catalog.KindDependency, member)
		if err != nil {
			if errors.Is(err, nstree.ErrNotFound) {
				return nil, &DanglingAliasError{Bundle: bundle, Missing: member}
			}
			return nil, err
		}
		if !n.HasSelfLeaf() {
			return nil, &DanglingAliasError{Bundle: bundle, Missing: member}
		}
		d, err := r.Dependency(ctx, n)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, nil
}
