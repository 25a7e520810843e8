// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultName is the accessor-root name used when a catalog is not named.
const DefaultName = "libs"

var (
	// ErrDuplicateAlias is the sentinel error wrapped by DuplicateAliasError.
	ErrDuplicateAlias = errors.New("duplicate alias")
	// ErrInvalidEntry is the sentinel error wrapped by InvalidEntryError.
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

type (
	// Entry is one row of the catalog: a namespace, an alias unique within
	// that namespace, and a kind-specific payload.
	Entry struct {
		Kind    Kind
		Alias   Alias
		Payload Payload
	}

	// Catalog is a validated, immutable, ordered set of entries.
	// The zero value is not usable; construct with New.
	Catalog struct {
		name    string
		entries []Entry
		index   map[entryKey]int
	}

	// Option configures catalog construction.
	Option func(*Catalog)

	// DuplicateAliasError is returned when two entries share (kind, alias).
	// It wraps ErrDuplicateAlias for errors.Is() compatibility.
	DuplicateAliasError struct {
		Kind  Kind
		Alias Alias
	}

	// InvalidEntryError is returned when an entry's structure is unusable:
	// an unknown kind, a missing payload, or a payload of another kind.
	// It wraps ErrInvalidEntry for errors.Is() compatibility.
	InvalidEntryError struct {
		Index  int
		Alias  Alias
		Reason string
	}

	entryKey struct {
		kind  Kind
		alias Alias
	}
)

// WithName sets the accessor-root name of the catalog (default "libs").
func WithName(name string) Option {
	return func(c *Catalog) {
		if name != "" {
			c.name = name
		}
	}
}

// New validates entries and returns an immutable Catalog preserving their
// declaration order. It fails with *MalformedAliasError on an alias with
// no segments or an empty segment, and with *DuplicateAliasError when two
// entries share (kind, alias). The entries slice is copied.
func New(entries []Entry, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		name:    DefaultName,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[entryKey]int, len(entries)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, e := range entries {
		if ok, _ := e.Kind.IsValid(); !ok {
			return nil, &InvalidEntryError{Index: i, Alias: e.Alias, Reason: fmt.Sprintf("unknown kind %q", e.Kind)}
		}
		if ok, _ := e.Alias.IsValid(); !ok {
			return nil, &MalformedAliasError{Alias: e.Alias, Kind: e.Kind}
		}
		if e.Payload == nil {
			return nil, &InvalidEntryError{Index: i, Alias: e.Alias, Reason: "missing payload"}
		}
		switch e.Payload.(type) {
		case DependencyPayload, VersionPayload, BundlePayload, PluginPayload:
		default:
			return nil, &InvalidEntryError{Index: i, Alias: e.Alias, Reason: fmt.Sprintf("unsupported payload type %T", e.Payload)}
		}
		if e.Payload.Kind() != e.Kind {
			return nil, &InvalidEntryError{
				Index:  i,
				Alias:  e.Alias,
				Reason: fmt.Sprintf("%s payload declared in the %s namespace", e.Payload.Kind(), e.Kind),
			}
		}

		key := entryKey{kind: e.Kind, alias: e.Alias}
		if _, exists := c.index[key]; exists {
			return nil, &DuplicateAliasError{Kind: e.Kind, Alias: e.Alias}
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, cloneEntry(e))
	}

	return c, nil
}

// Name returns the accessor-root name of the catalog.
func (c *Catalog) Name() string { return c.name }

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

// EntriesOf returns the entries of one kind in declaration order.
func (c *Catalog) EntriesOf(kind Kind) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Kind == kind {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Lookup returns the entry declared under (kind, alias).
func (c *Catalog) Lookup(kind Kind, alias Alias) (Entry, bool) {
	i, ok := c.index[entryKey{kind: kind, alias: alias}]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i].Clone(), true
}

// Without returns a new catalog with the entry (kind, alias) removed.
// The receiver is not modified.
func (c *Catalog) Without(kind Kind, alias Alias) *Catalog {
	kept := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Kind == kind && e.Alias == alias {
			continue
		}
		kept = append(kept, e)
	}
	// Removing an entry cannot introduce a duplicate or malformed alias.
	out, _ := New(kept, WithName(c.name))
	return out
}

// Error implements the error interface.
func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("duplicate %s alias %q", e.Kind, e.Alias)
}

// Unwrap returns ErrDuplicateAlias so callers can use errors.Is for programmatic detection.
func (e *DuplicateAliasError) Unwrap() error { return ErrDuplicateAlias }

// Error implements the error interface.
func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("entry %d (%q): %s", e.Index, e.Alias, e.Reason)
}

// Unwrap returns ErrInvalidEntry so callers can use errors.Is for programmatic detection.
func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }

// cloneEntry copies the slices held by a payload so a Catalog never shares
// mutable state with its caller.
func cloneEntry(e Entry) Entry {
	switch p := e.Payload.(type) {
	case BundlePayload:
		p.Members = slices.Clone(p.Members)
		e.Payload = p
	case VersionPayload:
		p.Constraint.Reject = slices.Clone(p.Constraint.Reject)
		e.Payload = p
	case DependencyPayload:
		p.Version.Constraint.Reject = slices.Clone(p.Version.Constraint.Reject)
		e.Payload = p
	case PluginPayload:
		p.Version.Constraint.Reject = slices.Clone(p.Version.Constraint.Reject)
		e.Payload = p
	}
	return e
}

// Clone returns a copy of the entry whose payload shares no slices with e.
func (e Entry) Clone() Entry { return cloneEntry(e) }
