// SPDX-License-Identifier: MPL-2.0

package nstree

import (
	"slices"
	"strings"

	"github.com/verscat/verscat/pkg/catalog"
)

const (
	// ClassInvalid marks a node with neither children nor a self-leaf.
	// Builds never produce such a node outside of an empty namespace root.
	ClassInvalid Class = iota
	// ClassPureLeaf is a node with a self-leaf and no children.
	ClassPureLeaf
	// ClassPureGroup is a node with children and no self-leaf.
	ClassPureGroup
	// ClassSelfLeafGroup is a node with both children and a self-leaf.
	ClassSelfLeafGroup
)

type (
	// NodeID is the stable handle of a node within its Store's arena.
	NodeID int32

	// Class describes whether a node is a group, a leaf, or both.
	Class uint8

	// Node is one namespace node. Nodes are created by Build and never
	// mutated afterwards; all accessors return copies.
	Node struct {
		id       NodeID
		kind     catalog.Kind
		path     []string
		class    Class
		selfLeaf *catalog.Entry
		children []Child
		index    map[string]int
	}

	// Child pairs a segment name with the node it leads to.
	Child struct {
		Name string
		Node *Node
	}
)

// ID returns the node's arena handle.
func (n *Node) ID() NodeID { return n.id }

// Kind returns the namespace the node belongs to.
func (n *Node) Kind() catalog.Kind { return n.kind }

// Path returns the segments from the namespace root to this node.
// The root's path is empty.
func (n *Node) Path() []string { return slices.Clone(n.path) }

// Alias returns the node's path in dot-joined form.
func (n *Node) Alias() catalog.Alias { return catalog.AliasOf(n.path...) }

// Name returns the last path segment, or "" for a namespace root.
func (n *Node) Name() string {
	if len(n.path) == 0 {
		return ""
	}
	return n.path[len(n.path)-1]
}

// Depth returns the number of segments between the root and this node.
func (n *Node) Depth() int { return len(n.path) }

// IsRoot reports whether the node is a namespace root.
func (n *Node) IsRoot() bool { return len(n.path) == 0 }

// Class returns the node's group/leaf classification.
func (n *Node) Class() Class { return n.class }

// HasChildren reports whether the node is navigable as a group.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// HasSelfLeaf reports whether an entry is declared at exactly this path.
func (n *Node) HasSelfLeaf() bool { return n.selfLeaf != nil }

// String returns "<kind>:<alias>" for diagnostics.
func (n *Node) String() string {
	return string(n.kind) + ":" + strings.Join(n.path, catalog.AliasSeparator)
}

// String returns a lowercase label for the class.
func (c Class) String() string {
	switch c {
	case ClassPureLeaf:
		return "leaf"
	case ClassPureGroup:
		return "group"
	case ClassSelfLeafGroup:
		return "self-leaf group"
	default:
		return "invalid"
	}
}

// IsGroup reports whether nodes of this class have children.
func (c Class) IsGroup() bool { return c == ClassPureGroup || c == ClassSelfLeafGroup }

// IsLeaf reports whether nodes of this class carry a self-leaf.
func (c Class) IsLeaf() bool { return c == ClassPureLeaf || c == ClassSelfLeafGroup }

// Classify derives a class from the two facts that define it.
func Classify(hasSelfLeaf, hasChildren bool) Class {
	switch {
	case hasSelfLeaf && hasChildren:
		return ClassSelfLeafGroup
	case hasSelfLeaf:
		return ClassPureLeaf
	case hasChildren:
		return ClassPureGroup
	default:
		return ClassInvalid
	}
}
