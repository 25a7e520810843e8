// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing steps shared by the catalog and
// config loaders:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate, then decode into a Go value or walk fields in source order
//
// # Usage
//
//	//go:embed catalog_schema.cue
//	var schemaBytes []byte
//
//	v, err := cueutil.Compile(schemaBytes, data, "#Catalog",
//	    cueutil.WithFilename("libs.versions.cue"))
//	if err != nil {
//	    return nil, err // error carries the CUE path of every violation
//	}
//	fields, err := cueutil.OrderedFields(v.LookupPath(cue.ParsePath("libraries")))
package cueutil
