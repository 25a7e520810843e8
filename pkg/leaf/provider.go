// SPDX-License-Identifier: MPL-2.0

package leaf

import (
	"context"

	"github.com/verscat/verscat/pkg/nstree"
)

type (
	// DependencyProvider is a deferred dependency leaf: nothing is resolved
	// until Get is called.
	DependencyProvider struct {
		r *Resolver
		n *nstree.Node
	}

	// VersionProvider is a deferred version leaf.
	VersionProvider struct {
		r *Resolver
		n *nstree.Node
	}

	// BundleProvider is a deferred bundle leaf.
	BundleProvider struct {
		r *Resolver
		n *nstree.Node
	}

	// PluginProvider is a deferred plugin leaf.
	PluginProvider struct {
		r *Resolver
		n *nstree.Node
	}
)

// DependencyProvider returns a provider for the dependency leaf at n.
func (r *Resolver) DependencyProvider(n *nstree.Node) DependencyProvider {
	return DependencyProvider{r: r, n: n}
}

// VersionProvider returns a provider for the version leaf at n.
func (r *Resolver) VersionProvider(n *nstree.Node) VersionProvider {
	return VersionProvider{r: r, n: n}
}

// BundleProvider returns a provider for the bundle leaf at n.
func (r *Resolver) BundleProvider(n *nstree.Node) BundleProvider {
	return BundleProvider{r: r, n: n}
}

// PluginProvider returns a provider for the plugin leaf at n.
func (r *Resolver) PluginProvider(n *nstree.Node) PluginProvider {
	return PluginProvider{r: r, n: n}
}

// Node returns the node the provider resolves.
func (p DependencyProvider) Node() *nstree.Node { return p.n }

// Get resolves the dependency.
func (p DependencyProvider) Get(ctx context.Context) (Dependency, error) {
	return p.r.Dependency(ctx, p.n)
}

// Node returns the node the provider resolves.
func (p VersionProvider) Node() *nstree.Node { return p.n }

// Get resolves the version. ok is false when it has no single-string form.
func (p VersionProvider) Get(ctx context.Context) (version string, ok bool, err error) {
	return p.r.Version(ctx, p.n)
}

// Node returns the node the provider resolves.
func (p BundleProvider) Node() *nstree.Node { return p.n }

// Get resolves the bundle members in declared order.
func (p BundleProvider) Get(ctx context.Context) ([]Dependency, error) {
	return p.r.Bundle(ctx, p.n)
}

// Node returns the node the provider resolves.
func (p PluginProvider) Node() *nstree.Node { return p.n }

// Get resolves the plugin.
func (p PluginProvider) Get(ctx context.Context) (Plugin, error) {
	return p.r.Plugin(ctx, p.n)
}
