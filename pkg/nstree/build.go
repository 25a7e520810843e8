// SPDX-License-Identifier: MPL-2.0

package nstree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/verscat/verscat/pkg/catalog"
)

// buildNode is the mutable form of a Node used while the arena is growing.
// Children are tracked by handle because the arena may reallocate.
type buildNode struct {
	kind     catalog.Kind
	path     []string
	leaf     int // index into builder.entries, or -1
	children []NodeID
	index    map[string]NodeID
}

type builder struct {
	nodes   []buildNode
	entries []catalog.Entry
	roots   map[catalog.Kind]NodeID
}

// Build compiles a validated catalog into a Store holding one tree per kind.
//
// Entries are processed in declaration order. For each alias the builder
// walks from the kind root and creates a child for every segment not yet
// present; the final node receives the entry as its self-leaf. Existing
// nodes are never replaced, and a second entry landing on an occupied
// self-leaf fails with *catalog.DuplicateAliasError even though catalog.New
// already rejects that input. Build is all-or-nothing: on error no Store
// is returned.
func Build(cat *catalog.Catalog) (*Store, error) {
	if cat == nil {
		return nil, errors.New("build namespace tree: nil catalog")
	}

	b := &builder{
		roots:   make(map[catalog.Kind]NodeID, len(catalog.Kinds())),
		entries: make([]catalog.Entry, 0, cat.Len()),
	}
	for _, k := range catalog.Kinds() {
		b.roots[k] = b.newNode(k, nil)
	}

	for _, e := range cat.Entries() {
		if err := b.insert(e); err != nil {
			return nil, err
		}
	}

	return b.freeze(cat.Name())
}

func (b *builder) newNode(kind catalog.Kind, path []string) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, buildNode{kind: kind, path: path, leaf: -1})
	return id
}

func (b *builder) insert(e catalog.Entry) error {
	root, ok := b.roots[e.Kind]
	if !ok {
		return &catalog.InvalidEntryError{Alias: e.Alias, Reason: fmt.Sprintf("unknown kind %q", e.Kind)}
	}

	segments := e.Alias.Segments()
	if len(segments) == 0 {
		return &catalog.MalformedAliasError{Alias: e.Alias, Kind: e.Kind}
	}

	cur := root
	for i, seg := range segments {
		if seg == "" {
			return &catalog.MalformedAliasError{Alias: e.Alias, Kind: e.Kind}
		}
		next, exists := b.nodes[cur].index[seg]
		if !exists {
			next = b.newNode(e.Kind, slices.Clone(segments[:i+1]))
			parent := &b.nodes[cur]
			if parent.index == nil {
				parent.index = make(map[string]NodeID)
			}
			parent.index[seg] = next
			parent.children = append(parent.children, next)
		}
		cur = next
	}

	if b.nodes[cur].leaf >= 0 {
		return &catalog.DuplicateAliasError{Kind: e.Kind, Alias: e.Alias}
	}
	b.nodes[cur].leaf = len(b.entries)
	b.entries = append(b.entries, e.Clone())
	return nil
}

// freeze copies the build arena into its final, immutable layout and
// classifies every node.
func (b *builder) freeze(name string) (*Store, error) {
	s := &Store{
		name:    name,
		nodes:   make([]Node, len(b.nodes)),
		entries: b.entries,
		roots:   make(map[catalog.Kind]*Node, len(b.roots)),
	}

	for i := range b.nodes {
		bn := &b.nodes[i]
		n := &s.nodes[i]
		n.id = NodeID(i)
		n.kind = bn.kind
		n.path = bn.path
		if bn.leaf >= 0 {
			n.selfLeaf = &s.entries[bn.leaf]
			s.leaves++
		}
		if len(bn.children) > 0 {
			n.children = make([]Child, len(bn.children))
			n.index = make(map[string]int, len(bn.children))
			for j, cid := range bn.children {
				child := &s.nodes[cid]
				cpath := b.nodes[cid].path
				seg := cpath[len(cpath)-1]
				n.children[j] = Child{Name: seg, Node: child}
				n.index[seg] = j
			}
		}
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		n.class = Classify(n.selfLeaf != nil, len(n.children) > 0)
		if n.class == ClassInvalid {
			if !n.IsRoot() {
				return nil, fmt.Errorf("%w: %s", ErrEmptyNode, n)
			}
			// An empty namespace still exposes its root as a group.
			n.class = ClassPureGroup
		}
	}

	for k, id := range b.roots {
		s.roots[k] = &s.nodes[id]
	}
	return s, nil
}
