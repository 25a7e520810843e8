// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Field is one regular field of a CUE struct.
type Field struct {
	Name  string
	Value cue.Value
}

// Compile unifies data with the schema definition at def and validates the
// result. Schema problems are reported as internal errors; problems in data
// are reported through FormatError.
func Compile(schema, data []byte, def string, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)
	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: compile schema: %w", err)
	}
	root := schemaValue.LookupPath(cue.ParsePath(def))
	if err := root.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", def, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := userValue.Err(); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// Decode compiles data against def and decodes the result into a T.
func Decode[T any](schema, data []byte, def string, opts ...Option) (*T, error) {
	v, err := Compile(schema, data, def, opts...)
	if err != nil {
		return nil, err
	}
	var out T
	if err := v.Decode(&out); err != nil {
		return nil, FormatError(err, applyOptions(opts).filename)
	}
	return &out, nil
}

// OrderedFields returns the regular fields of a struct value in the order
// they appear in source. A value that does not exist yields no fields.
func OrderedFields(v cue.Value) ([]Field, error) {
	if !v.Exists() {
		return nil, nil
	}
	it, err := v.Fields()
	if err != nil {
		return nil, err
	}
	var fields []Field
	for it.Next() {
		sel := it.Selector()
		name := sel.String()
		if sel.LabelType() == cue.StringLabel {
			name = sel.Unquoted()
		}
		fields = append(fields, Field{Name: name, Value: it.Value()})
	}
	return fields, nil
}
