// SPDX-License-Identifier: MPL-2.0

package catalogfile

import "fmt"

// table is a string-keyed map that remembers insertion order. Values are
// string, bool, []any or *table.
type table struct {
	keys   []string
	values map[string]any
}

func newTable() *table {
	return &table{values: make(map[string]any)}
}

func (t *table) get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

func (t *table) set(key string, v any) error {
	if _, exists := t.values[key]; exists {
		return fmt.Errorf("key %q defined twice", key)
	}
	t.keys = append(t.keys, key)
	t.values[key] = v
	return nil
}

// child returns the sub-table at key, creating it when absent.
func (t *table) child(key string) (*table, error) {
	v, ok := t.values[key]
	if !ok {
		sub := newTable()
		t.keys = append(t.keys, key)
		t.values[key] = sub
		return sub, nil
	}
	sub, ok := v.(*table)
	if !ok {
		return nil, fmt.Errorf("key %q is a value, not a table", key)
	}
	return sub, nil
}

// setPath assigns v at a dotted key path such as version.ref.
func (t *table) setPath(path []string, v any) error {
	cur := t
	for _, k := range path[:len(path)-1] {
		next, err := cur.child(k)
		if err != nil {
			return err
		}
		cur = next
	}
	return cur.set(path[len(path)-1], v)
}

func (t *table) each(fn func(key string, v any) error) error {
	for _, k := range t.keys {
		if err := fn(k, t.values[k]); err != nil {
			return err
		}
	}
	return nil
}

func describe(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case *table:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
