// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/verscat/verscat/internal/engine"
	"github.com/verscat/verscat/pkg/catalog"
)

// decoder turns an ordered document into catalog entries.
type decoder struct {
	file   string
	logger *log.Logger
	// versions records declared version aliases for version.ref checks.
	versions map[catalog.Alias]bool
}

func (d *decoder) decode(doc *table) ([]catalog.Entry, error) {
	d.versions = make(map[catalog.Alias]bool)

	// Versions are collected first so references resolve regardless of the
	// order sections appear in.
	if v, ok := doc.get("versions"); ok {
		sec, err := d.section("versions", v)
		if err != nil {
			return nil, err
		}
		if err := sec.each(func(key string, _ any) error {
			alias, err := d.alias(catalog.KindVersion, key)
			if err != nil {
				return err
			}
			d.versions[alias] = true
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var entries []catalog.Entry
	err := doc.each(func(name string, v any) error {
		kind, ok := sectionKind(name)
		if !ok {
			return &NotationError{File: d.file, Section: name, Reason: "unknown section, expected versions, libraries, bundles or plugins"}
		}
		sec, err := d.section(name, v)
		if err != nil {
			return err
		}
		return sec.each(func(key string, v any) error {
			e, err := d.entry(kind, name, key, v)
			if err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}

func sectionKind(name string) (catalog.Kind, bool) {
	for _, k := range catalog.Kinds() {
		if k.Section() == name {
			return k, true
		}
	}
	return "", false
}

func (d *decoder) section(name string, v any) (*table, error) {
	t, ok := v.(*table)
	if !ok {
		return nil, &NotationError{File: d.file, Section: name, Reason: "expected a table, got " + describe(v)}
	}
	return t, nil
}

func (d *decoder) alias(kind catalog.Kind, raw string) (catalog.Alias, error) {
	if !validAliasSyntax(raw) {
		return "", &catalog.MalformedAliasError{
			Alias:  catalog.Alias(raw),
			Kind:   kind,
			Reason: "must start with a letter and contain only letters, digits, '-', '_' or '.'",
		}
	}
	alias := NormalizeAlias(raw)
	if ok, _ := alias.IsValid(); !ok {
		return "", &catalog.MalformedAliasError{Alias: alias, Kind: kind}
	}
	if err := checkReserved(kind, alias); err != nil {
		return "", err
	}
	if string(alias) != raw {
		d.logger.Debug("normalized alias", "kind", kind, "from", raw, "to", alias)
	}
	return alias, nil
}

func (d *decoder) entry(kind catalog.Kind, section, key string, v any) (catalog.Entry, error) {
	alias, err := d.alias(kind, key)
	if err != nil {
		return catalog.Entry{}, err
	}
	fail := func(err error) error {
		return &NotationError{File: d.file, Section: section, Alias: key, Err: err}
	}

	var p catalog.Payload
	switch kind {
	case catalog.KindVersion:
		c, err := d.constraint(v)
		if err != nil {
			return catalog.Entry{}, fail(err)
		}
		p = catalog.VersionPayload{Constraint: c}
	case catalog.KindDependency:
		p, err = d.library(v)
	case catalog.KindBundle:
		p, err = d.bundle(v)
	case catalog.KindPlugin:
		p, err = d.plugin(v)
	}
	if err != nil {
		return catalog.Entry{}, fail(err)
	}
	return catalog.Entry{Kind: kind, Alias: alias, Payload: p}, nil
}

// library accepts "group:name:version", or a table with either module or
// group and name, plus an optional version.
func (d *decoder) library(v any) (catalog.Payload, error) {
	switch v := v.(type) {
	case string:
		parts := strings.Split(v, ":")
		if len(parts) != 3 || parts[2] == "" {
			return nil, fmt.Errorf("expected group:name:version, got %q", v)
		}
		coord, err := catalog.ParseCoordinate(parts[0] + ":" + parts[1])
		if err != nil {
			return nil, err
		}
		return catalog.DependencyPayload{Coordinate: coord, Version: catalog.Inline(catalog.Require(parts[2]))}, nil
	case *table:
		if err := allowKeys(v, "module", "group", "name", "version"); err != nil {
			return nil, err
		}
		var coord catalog.Coordinate
		module, hasModule := v.get("module")
		switch {
		case hasModule:
			if _, ok := v.get("group"); ok {
				return nil, fmt.Errorf("module cannot be combined with group")
			}
			s, ok := module.(string)
			if !ok {
				return nil, fmt.Errorf("module must be a string")
			}
			c, err := catalog.ParseCoordinate(s)
			if err != nil {
				return nil, err
			}
			coord = c
		default:
			group, _ := v.get("group")
			name, _ := v.get("name")
			gs, _ := group.(string)
			ns, _ := name.(string)
			coord = catalog.Coordinate{Group: gs, Name: ns}
			if ok, errs := coord.IsValid(); !ok {
				return nil, errs[0]
			}
		}
		ref, err := d.versionRef(v)
		if err != nil {
			return nil, err
		}
		return catalog.DependencyPayload{Coordinate: coord, Version: ref}, nil
	default:
		return nil, fmt.Errorf("expected a string or table, got %s", describe(v))
	}
}

func (d *decoder) bundle(v any) (catalog.Payload, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array of library aliases, got %s", describe(v))
	}
	members := make([]catalog.Alias, 0, len(list))
	for i, m := range list {
		s, ok := m.(string)
		if !ok {
			return nil, fmt.Errorf("member %d: expected a string, got %s", i, describe(m))
		}
		members = append(members, NormalizeAlias(s))
	}
	return catalog.BundlePayload{Members: members}, nil
}

// plugin accepts "id:version" or a table with id and an optional version.
func (d *decoder) plugin(v any) (catalog.Payload, error) {
	switch v := v.(type) {
	case string:
		i := strings.LastIndex(v, ":")
		if i <= 0 || i == len(v)-1 {
			return nil, fmt.Errorf("expected id:version, got %q", v)
		}
		return catalog.PluginPayload{ID: catalog.PluginID(v[:i]), Version: catalog.Inline(catalog.Require(v[i+1:]))}, nil
	case *table:
		if err := allowKeys(v, "id", "version"); err != nil {
			return nil, err
		}
		raw, _ := v.get("id")
		id, _ := raw.(string)
		pid := catalog.PluginID(id)
		if ok, errs := pid.IsValid(); !ok {
			return nil, errs[0]
		}
		ref, err := d.versionRef(v)
		if err != nil {
			return nil, err
		}
		return catalog.PluginPayload{ID: pid, Version: ref}, nil
	default:
		return nil, fmt.Errorf("expected a string or table, got %s", describe(v))
	}
}

// versionRef reads the version key of a library or plugin table.
func (d *decoder) versionRef(t *table) (catalog.VersionRef, error) {
	v, ok := t.get("version")
	if !ok {
		return catalog.VersionRef{}, nil
	}
	if vt, ok := v.(*table); ok {
		if raw, ok := vt.get("ref"); ok {
			if len(vt.keys) != 1 {
				return catalog.VersionRef{}, fmt.Errorf("version.ref cannot be combined with other version keys")
			}
			s, ok := raw.(string)
			if !ok {
				return catalog.VersionRef{}, fmt.Errorf("version.ref must be a string")
			}
			ref := NormalizeAlias(s)
			if !d.versions[ref] {
				return catalog.VersionRef{}, &engine.UnknownVersionRefError{Ref: ref}
			}
			return catalog.RefTo(ref), nil
		}
	}
	c, err := d.constraint(v)
	if err != nil {
		return catalog.VersionRef{}, err
	}
	return catalog.Inline(c), nil
}

// constraint accepts a plain version string or a rich version table.
func (d *decoder) constraint(v any) (catalog.VersionConstraint, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return catalog.VersionConstraint{}, fmt.Errorf("empty version")
		}
		return catalog.Require(v), nil
	case *table:
		if err := allowKeys(v, "strictly", "require", "prefer", "reject", "rejectAll"); err != nil {
			return catalog.VersionConstraint{}, err
		}
		var c catalog.VersionConstraint
		err := v.each(func(key string, val any) error {
			switch key {
			case "rejectAll":
				b, ok := val.(bool)
				if !ok {
					return fmt.Errorf("rejectAll must be a boolean")
				}
				c.RejectAll = b
			case "reject":
				list, ok := val.([]any)
				if !ok {
					return fmt.Errorf("reject must be an array of strings")
				}
				for _, r := range list {
					s, ok := r.(string)
					if !ok {
						return fmt.Errorf("reject must be an array of strings")
					}
					c.Reject = append(c.Reject, s)
				}
			default:
				s, ok := val.(string)
				if !ok {
					return fmt.Errorf("%s must be a string", key)
				}
				switch key {
				case "strictly":
					c.Strictly = s
				case "require":
					c.Require = s
				case "prefer":
					c.Prefer = s
				}
			}
			return nil
		})
		if err != nil {
			return catalog.VersionConstraint{}, err
		}
		if c.IsZero() {
			return catalog.VersionConstraint{}, fmt.Errorf("version table declares no constraint")
		}
		return c, nil
	default:
		return catalog.VersionConstraint{}, fmt.Errorf("expected a version string or table, got %s", describe(v))
	}
}

func allowKeys(t *table, allowed ...string) error {
	for _, k := range t.keys {
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("unknown key %q", k)
		}
	}
	return nil
}
