// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// AliasSeparator separates the segments of an Alias.
const AliasSeparator = "."

// ErrMalformedAlias is the sentinel error wrapped by MalformedAliasError.
var ErrMalformedAlias = errors.New("malformed alias")

type (
	// Alias is the dot-joined name of a catalog entry (e.g., "kotlin.test.junit").
	// Each dot-separated segment names one level of the namespace tree.
	Alias string

	// MalformedAliasError is returned when an alias has zero segments or
	// contains an empty segment (leading, trailing, or consecutive dots).
	// It wraps ErrMalformedAlias for errors.Is() compatibility.
	MalformedAliasError struct {
		Alias Alias
		// Kind is the namespace the alias was declared in; empty when the alias
		// was validated on its own.
		Kind Kind
		// Reason replaces the default "empty segment" explanation.
		Reason string
	}
)

// AliasOf joins segments into an Alias. It performs no validation.
func AliasOf(segments ...string) Alias {
	return Alias(strings.Join(segments, AliasSeparator))
}

// ParseAlias validates s and returns it as an Alias.
func ParseAlias(s string) (Alias, error) {
	a := Alias(s)
	if ok, errs := a.IsValid(); !ok {
		return "", errs[0]
	}
	return a, nil
}

// String returns the string representation of the Alias.
func (a Alias) String() string { return string(a) }

// Segments splits the alias into its namespace segments.
// The zero Alias has no segments.
func (a Alias) Segments() []string {
	if a == "" {
		return nil
	}
	return strings.Split(string(a), AliasSeparator)
}

// Len returns the number of segments in the alias.
func (a Alias) Len() int {
	if a == "" {
		return 0
	}
	return strings.Count(string(a), AliasSeparator) + 1
}

// IsValid returns whether the alias has at least one segment and no empty
// segments, and a list of validation errors if it does not.
func (a Alias) IsValid() (bool, []error) {
	if a == "" {
		return false, []error{&MalformedAliasError{Alias: a}}
	}
	for seg := range strings.SplitSeq(string(a), AliasSeparator) {
		if seg == "" {
			return false, []error{&MalformedAliasError{Alias: a}}
		}
	}
	return true, nil
}

// Error implements the error interface.
func (e *MalformedAliasError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed %s alias %q: %s", e.Kind, e.Alias, e.Reason)
	}
	if e.Alias == "" {
		return "malformed alias: alias has no segments"
	}
	if e.Kind != "" {
		return fmt.Sprintf("malformed %s alias %q: empty segment", e.Kind, e.Alias)
	}
	return fmt.Sprintf("malformed alias %q: empty segment", e.Alias)
}

// Unwrap returns ErrMalformedAlias so callers can use errors.Is for programmatic detection.
func (e *MalformedAliasError) Unwrap() error { return ErrMalformedAlias }
