// SPDX-License-Identifier: MPL-2.0

// Package nstree compiles a catalog into four namespace trees, one per
// catalog kind, and serves read-only navigation over them.
//
// Every proper prefix of every alias becomes a group node; the node whose
// path equals an alias carries that entry as its self-leaf. A node can be a
// group and a leaf at the same time ("ktor.server.auth" next to
// "ktor.server.auth.jwt"); child lookup ([Store.ChildOf]) and self-leaf lookup
// ([Store.SelfLeafOf]) are distinct operations, so the two never collide.
//
// Children are ordered by first introduction while walking the catalog in
// declaration order. All nodes live in a single arena owned by the [Store];
// the same *Node is returned for a path for the lifetime of the store, and a
// built store is never mutated, so it is safe for concurrent readers.
package nstree
