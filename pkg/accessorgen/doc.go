// SPDX-License-Identifier: MPL-2.0

// Package accessorgen generates typed Go accessors for a built namespace
// tree, one method per child node:
//
//	libs := New(resolver)
//	dep, err := libs.Kotlin().Test().Junit().Get(ctx)
//	auth, err := libs.Ktor().Server().Auth().Self().Get(ctx)
//	v, ok, err := libs.Versions().Kotlin().Get(ctx)
//
// Generated code navigates the store by segment name at call time, so the
// store remains the source of truth. A generated file used with a catalog
// that lacks one of its paths panics on that accessor.
package accessorgen
