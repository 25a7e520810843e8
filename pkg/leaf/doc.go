// SPDX-License-Identifier: MPL-2.0

// Package leaf turns leaf nodes of a built namespace tree into consumer-facing
// handles by routing them, by kind, to a resolution [Engine].
//
// The package computes no values itself. Dependency, version and plugin
// leaves are handed to the engine as-is; a bundle leaf is expanded into the
// resolved handles of its member dependencies in declared order, failing with
// [DanglingAliasError] when a member is not declared in the dependency
// namespace. Engine errors are returned unmodified and never retried.
//
// A [Resolver] may memoize handles per node ([WithMemoization]). Memoization
// is lock-free: concurrent first accesses may each call the engine, but only
// the first stored handle is ever returned for that node.
package leaf
