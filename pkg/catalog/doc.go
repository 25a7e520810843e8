// SPDX-License-Identifier: MPL-2.0

// Package catalog defines the immutable input of the accessor-tree compiler:
// a flat, ordered table of catalog entries.
//
// Every entry belongs to one of four namespaces ([KindDependency],
// [KindVersion], [KindBundle], [KindPlugin]) and is identified within its
// namespace by a dot-delimited [Alias] such as "ktor.server.auth.jwt". The
// payload of an entry is kind-specific and opaque to this package: coordinates,
// version constraints and plugin ids are interpreted only by a resolution engine.
//
// [New] is the single validation point. It rejects duplicate (kind, alias)
// pairs with [DuplicateAliasError] and aliases containing empty segments with
// [MalformedAliasError]. No other semantic validation is performed.
package catalog
