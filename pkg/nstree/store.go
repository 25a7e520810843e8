// SPDX-License-Identifier: MPL-2.0

package nstree

import (
	"fmt"
	"slices"

	"github.com/verscat/verscat/pkg/catalog"
)

// Store owns every node of a built catalog and answers navigation queries.
// A Store is immutable after Build and safe for concurrent use.
type Store struct {
	name    string
	nodes   []Node
	entries []catalog.Entry
	roots   map[catalog.Kind]*Node
	leaves  int
}

// Name returns the accessor-root name of the catalog the store was built from.
func (s *Store) Name() string { return s.name }

// Len returns the number of nodes in the store, namespace roots included.
func (s *Store) Len() int { return len(s.nodes) }

// Leaves returns the number of nodes carrying a self-leaf, which equals the
// number of catalog entries.
func (s *Store) Leaves() int { return s.leaves }

// Root returns the root node of a namespace, or nil for an unknown kind.
func (s *Store) Root(kind catalog.Kind) *Node { return s.roots[kind] }

// Node dereferences a handle. It returns nil for handles outside the arena.
func (s *Store) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(s.nodes) {
		return nil
	}
	return &s.nodes[id]
}

// ChildOf returns the child of n named name. It fails with *NotFoundError
// when n has no such child.
func (s *Store) ChildOf(n *Node, name string) (*Node, error) {
	if i, ok := n.index[name]; ok {
		return n.children[i].Node, nil
	}
	return nil, &NotFoundError{Kind: n.kind, Name: name, Path: n.Path()}
}

// MustChildOf is like ChildOf but panics when the child does not exist.
// It is meant for generated accessors whose shape was derived from this tree.
func (s *Store) MustChildOf(n *Node, name string) *Node {
	child, err := s.ChildOf(n, name)
	if err != nil {
		panic(err)
	}
	return child
}

// SelfLeafOf returns the entry declared at exactly n's path. The second
// result is false for pure groups; that is an expected outcome, not an error.
func (s *Store) SelfLeafOf(n *Node) (catalog.Entry, bool) {
	if n.selfLeaf == nil {
		return catalog.Entry{}, false
	}
	return n.selfLeaf.Clone(), true
}

// ChildrenOf returns n's children in first-introduction order.
func (s *Store) ChildrenOf(n *Node) []Child {
	return slices.Clone(n.children)
}

// Lookup navigates from a namespace root through every segment of alias.
// It fails with *NotFoundError naming the first missing segment.
func (s *Store) Lookup(kind catalog.Kind, alias catalog.Alias) (*Node, error) {
	cur := s.Root(kind)
	if cur == nil {
		return nil, &catalog.InvalidKindError{Value: kind}
	}
	for _, seg := range alias.Segments() {
		next, err := s.ChildOf(cur, seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// LookupLeaf is Lookup followed by SelfLeafOf. It fails with *NotFoundError
// when the path exists only as a group.
func (s *Store) LookupLeaf(kind catalog.Kind, alias catalog.Alias) (*Node, catalog.Entry, error) {
	if ok, errs := alias.IsValid(); !ok {
		return nil, catalog.Entry{}, errs[0]
	}
	n, err := s.Lookup(kind, alias)
	if err != nil {
		return nil, catalog.Entry{}, err
	}
	e, ok := s.SelfLeafOf(n)
	if !ok {
		segs := alias.Segments()
		return nil, catalog.Entry{}, &NotFoundError{
			Kind: kind,
			Name: fmt.Sprintf("%s (leaf)", segs[len(segs)-1]),
			Path: segs[:len(segs)-1],
		}
	}
	return n, e, nil
}

// WalkFunc is called for every node visited by Walk. Returning an error
// stops the walk and the error is returned by Walk.
type WalkFunc func(n *Node) error

// Walk visits a namespace depth-first in pre-order, children in
// first-introduction order, starting with the root.
func (s *Store) Walk(kind catalog.Kind, fn WalkFunc) error {
	root := s.Root(kind)
	if root == nil {
		return &catalog.InvalidKindError{Value: kind}
	}
	return walk(root, fn)
}

func walk(n *Node, fn WalkFunc) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := walk(c.Node, fn); err != nil {
			return err
		}
	}
	return nil
}
