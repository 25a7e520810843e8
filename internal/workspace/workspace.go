// SPDX-License-Identifier: MPL-2.0

// Package workspace opens a catalog file and wires the stages that turn it
// into an accessor tree: parsing, tree building and leaf resolution.
package workspace

import (
	"context"
	"fmt"

	"github.com/verscat/verscat/internal/catalogfile"
	"github.com/verscat/verscat/internal/engine"
	"github.com/verscat/verscat/internal/issue"
	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/leaf"
	"github.com/verscat/verscat/pkg/nstree"

	"github.com/charmbracelet/log"
)

type (
	// Options configures Open.
	Options struct {
		// Name overrides the catalog name derived from the file name.
		Name string
		// Memoize caches resolved leaves for the lifetime of the workspace.
		Memoize bool
		// MaxFileSize overrides the catalog size limit when positive.
		MaxFileSize int64
		// Logger receives debug output of every stage. Nil discards it.
		Logger *log.Logger
	}

	// Workspace is an opened catalog with its namespace tree and resolver.
	Workspace struct {
		Path     string
		Catalog  *catalog.Catalog
		Store    *nstree.Store
		Resolver *leaf.Resolver
	}
)

// Open loads the catalog at path and builds its accessor tree. Failures are
// returned as *issue.ActionableError carrying the matching issue id.
func Open(ctx context.Context, path string, opts Options) (*Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var loadOpts []catalogfile.Option
	if opts.Name != "" {
		loadOpts = append(loadOpts, catalogfile.WithName(opts.Name))
	}
	if opts.MaxFileSize > 0 {
		loadOpts = append(loadOpts, catalogfile.WithMaxFileSize(opts.MaxFileSize))
	}
	if opts.Logger != nil {
		loadOpts = append(loadOpts, catalogfile.WithLogger(opts.Logger))
	}

	cat, err := catalogfile.Load(path, loadOpts...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load catalog").
			WithResource(path).
			WithIssue(IssueFor(err)).
			WithSuggestions(suggestionsFor(err)...).
			Wrap(err).
			BuildError()
	}

	store, err := nstree.Build(cat)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("build namespace tree").
			WithResource(path).
			WithIssue(IssueFor(err)).
			Wrap(err).
			BuildError()
	}

	resolverOpts := []leaf.Option{}
	if opts.Memoize {
		resolverOpts = append(resolverOpts, leaf.WithMemoization())
	}
	if opts.Logger != nil {
		resolverOpts = append(resolverOpts, leaf.WithLogger(opts.Logger))
		opts.Logger.Debug("catalog opened",
			"path", path, "name", store.Name(), "nodes", store.Len(), "leaves", store.Leaves())
	}

	return &Workspace{
		Path:     path,
		Catalog:  cat,
		Store:    store,
		Resolver: leaf.NewResolver(store, engine.New(cat), resolverOpts...),
	}, nil
}

// Check resolves every leaf of every namespace and returns one error per
// leaf that fails, in namespace then tree order.
func (w *Workspace) Check(ctx context.Context) ([]error, error) {
	var failures []error
	for _, kind := range catalog.Kinds() {
		err := w.Store.Walk(kind, func(n *nstree.Node) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !n.HasSelfLeaf() {
				return nil
			}
			if _, err := w.Resolver.Resolve(ctx, n); err != nil {
				failures = append(failures, fmt.Errorf("%s %s: %w", kind, n.Alias(), err))
			}
			return nil
		})
		if err != nil {
			return failures, err
		}
	}
	return failures, nil
}
