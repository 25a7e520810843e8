// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"fmt"

	"github.com/pelletier/go-toml/v2/unstable"
)

// parseTOML reads a TOML document into an ordered table. Only the subset
// used by version catalogs is accepted: tables, key/values, strings, booleans,
// integers, arrays and inline tables.
func parseTOML(data []byte, file string) (*table, error) {
	root := newTable()
	current := root

	var p unstable.Parser
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table:
			path := keyPath(expr)
			t, err := tableAt(root, path)
			if err != nil {
				return nil, positioned(&p, expr, file, err)
			}
			current = t
		case unstable.ArrayTable:
			return nil, positioned(&p, expr, file, fmt.Errorf("arrays of tables are not supported"))
		case unstable.KeyValue:
			v, err := tomlValue(expr.Value())
			if err != nil {
				return nil, positioned(&p, expr, file, err)
			}
			if err := current.setPath(keyPath(expr), v); err != nil {
				return nil, positioned(&p, expr, file, err)
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, parserError(&p, file, err)
	}
	return root, nil
}

func keyPath(n *unstable.Node) []string {
	var path []string
	it := n.Key()
	for it.Next() {
		path = append(path, string(it.Node().Data))
	}
	return path
}

func tableAt(root *table, path []string) (*table, error) {
	t := root
	for _, k := range path {
		next, err := t.child(k)
		if err != nil {
			return nil, err
		}
		t = next
	}
	return t, nil
}

func tomlValue(n *unstable.Node) (any, error) {
	switch n.Kind {
	case unstable.String, unstable.Integer, unstable.Float:
		return string(n.Data), nil
	case unstable.Bool:
		return string(n.Data) == "true", nil
	case unstable.Array:
		var out []any
		it := n.Children()
		for it.Next() {
			v, err := tomlValue(it.Node())
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case unstable.InlineTable:
		t := newTable()
		it := n.Children()
		for it.Next() {
			kv := it.Node()
			v, err := tomlValue(kv.Value())
			if err != nil {
				return nil, err
			}
			if err := t.setPath(keyPath(kv), v); err != nil {
				return nil, err
			}
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported %s value", n.Kind)
	}
}

// positioned locates err at the first key of a table header or key/value;
// expression nodes themselves carry no source range.
func positioned(p *unstable.Parser, n *unstable.Node, file string, err error) error {
	serr := &SyntaxError{File: file, Err: err}
	if it := n.Key(); it.Next() {
		pos := p.Shape(it.Node().Raw).Start
		serr.Line, serr.Column = pos.Line, pos.Column
	}
	return serr
}

func parserError(p *unstable.Parser, file string, err error) error {
	serr := &SyntaxError{File: file, Err: err}
	if perr, ok := err.(*unstable.ParserError); ok && len(perr.Highlight) > 0 {
		pos := p.Shape(p.Range(perr.Highlight)).Start
		serr.Line, serr.Column = pos.Line, pos.Column
	}
	return serr
}
