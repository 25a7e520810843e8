// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"slices"
	"strings"

	"github.com/verscat/verscat/pkg/catalog"
)

var (
	// reservedPrefixes may not start a library alias: they name the
	// sibling accessor roots.
	reservedPrefixes = []string{"bundles", "versions", "plugins"}
	// reservedSegments may not appear anywhere in an alias.
	reservedSegments = []string{"extensions", "class", "convention"}
)

// NormalizeAlias maps the separators '-' and '_' to '.' and lowercases the
// result, so "kotlin-test_junit" and "kotlin.test.junit" name the same leaf.
func NormalizeAlias(raw string) catalog.Alias {
	s := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return '.'
		}
		return r
	}, raw)
	return catalog.Alias(strings.ToLower(s))
}

// validAliasSyntax reports whether raw starts with a letter and contains
// only letters, digits and separators.
func validAliasSyntax(raw string) bool {
	for i, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.'):
		default:
			return false
		}
	}
	return raw != ""
}

// checkReserved returns a *ReservedAliasError when alias clashes with a
// reserved accessor name.
func checkReserved(kind catalog.Kind, alias catalog.Alias) error {
	segs := alias.Segments()
	if kind == catalog.KindDependency && len(segs) > 0 && slices.Contains(reservedPrefixes, segs[0]) {
		return &ReservedAliasError{Kind: kind, Alias: alias, Reason: "library aliases cannot start with " + segs[0]}
	}
	for _, seg := range segs {
		if slices.Contains(reservedSegments, seg) {
			return &ReservedAliasError{Kind: kind, Alias: alias, Reason: "segment " + seg + " is reserved"}
		}
	}
	return nil
}
