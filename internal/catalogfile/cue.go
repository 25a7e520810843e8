// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"

	"github.com/verscat/verscat/pkg/cueutil"
)

//go:embed catalog_schema.cue
var catalogSchema []byte

// parseCUE validates data against #Catalog and reads it into an ordered table.
func parseCUE(data []byte, file string, maxSize int64) (*table, error) {
	v, err := cueutil.Compile(catalogSchema, data, "#Catalog",
		cueutil.WithFilename(file),
		cueutil.WithMaxFileSize(maxSize),
	)
	if err != nil {
		return nil, err
	}
	doc, err := cueValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	t, ok := doc.(*table)
	if !ok {
		return nil, &SyntaxError{File: file, Err: fmt.Errorf("expected a struct at the top level")}
	}
	return t, nil
}

func cueValue(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		return v.Bool()
	case cue.ListKind:
		it, err := v.List()
		if err != nil {
			return nil, err
		}
		var out []any
		for it.Next() {
			item, err := cueValue(it.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case cue.StructKind:
		fields, err := cueutil.OrderedFields(v)
		if err != nil {
			return nil, err
		}
		t := newTable()
		for _, f := range fields {
			item, err := cueValue(f.Value)
			if err != nil {
				return nil, err
			}
			if err := t.set(f.Name, item); err != nil {
				return nil, err
			}
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%v: unsupported %s value", v.Path(), v.Kind())
	}
}
