// SPDX-License-Identifier: MPL-2.0

package accessorgen

import (
	"strconv"
	"strings"
	"unicode"
)

// exported converts a path segment to an exported Go identifier:
// "kotlin" becomes "Kotlin", "json-api" becomes "JsonApi" and "2fa"
// becomes "X2fa".
func exported(seg string) string {
	var b strings.Builder
	upper := true
	for _, r := range seg {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" {
		return "X"
	}
	first := []rune(id)[0]
	if !unicode.IsUpper(first) {
		return "X" + id
	}
	return id
}

// namer hands out identifiers that are unique within one scope.
type namer struct {
	used map[string]bool
}

func newNamer(reserved ...string) *namer {
	n := &namer{used: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		n.used[r] = true
	}
	return n
}

// name returns base, or base followed by the smallest suffix from 2 up that
// is still free.
func (n *namer) name(base string) string {
	id := base
	for i := 2; n.used[id]; i++ {
		id = base + strconv.Itoa(i)
	}
	n.used[id] = true
	return id
}
