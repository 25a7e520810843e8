// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidCoordinate is the sentinel error wrapped by InvalidCoordinateError.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidPluginID is the sentinel error wrapped by InvalidPluginIDError.
	ErrInvalidPluginID = errors.New("invalid plugin id")
)

type (
	// Payload is the kind-specific body of a catalog entry. The set of
	// implementations is closed: DependencyPayload, VersionPayload,
	// BundlePayload and PluginPayload.
	Payload interface {
		// Kind reports the namespace this payload belongs to.
		Kind() Kind
		isPayload()
	}

	// Coordinate identifies an external module by group and name
	// (e.g., "org.jetbrains.kotlin" and "kotlin-test-junit").
	Coordinate struct {
		Group string
		Name  string
	}

	// InvalidCoordinateError is returned when a module notation cannot be
	// split into a non-empty group and name.
	InvalidCoordinateError struct {
		Value string
	}

	// PluginID is the identifier of a build plugin (e.g., "org.jetbrains.kotlin.jvm").
	PluginID string

	// InvalidPluginIDError is returned when a PluginID is empty or whitespace-only.
	InvalidPluginIDError struct {
		Value PluginID
	}

	// VersionConstraint is a rich version declaration. A plain version such as
	// "2.1.10" is a constraint with only Require set.
	VersionConstraint struct {
		Strictly  string
		Require   string
		Prefer    string
		Reject    []string
		RejectAll bool
	}

	// VersionRef is the version part of a dependency or plugin payload. It is
	// either empty, a reference to an alias in the version namespace, or an
	// inline constraint. Ref takes precedence when both are set.
	VersionRef struct {
		Ref        Alias
		Constraint VersionConstraint
	}

	// DependencyPayload describes a library: its coordinate and optional version.
	DependencyPayload struct {
		Coordinate Coordinate
		Version    VersionRef
	}

	// VersionPayload describes a named version constraint.
	VersionPayload struct {
		Constraint VersionConstraint
	}

	// BundlePayload is an ordered list of dependency aliases. Duplicates are
	// allowed and the order is significant.
	BundlePayload struct {
		Members []Alias
	}

	// PluginPayload describes a build plugin and its optional version.
	PluginPayload struct {
		ID      PluginID
		Version VersionRef
	}
)

// ParseCoordinate parses "group:name" module notation.
func ParseCoordinate(s string) (Coordinate, error) {
	group, name, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(name, ":") {
		return Coordinate{}, &InvalidCoordinateError{Value: s}
	}
	c := Coordinate{Group: strings.TrimSpace(group), Name: strings.TrimSpace(name)}
	if ok, errs := c.IsValid(); !ok {
		return Coordinate{}, errs[0]
	}
	return c, nil
}

// String returns the "group:name" notation of the coordinate.
func (c Coordinate) String() string { return c.Group + ":" + c.Name }

// IsValid returns whether both group and name are non-empty.
func (c Coordinate) IsValid() (bool, []error) {
	if strings.TrimSpace(c.Group) == "" || strings.TrimSpace(c.Name) == "" {
		return false, []error{&InvalidCoordinateError{Value: c.Group + ":" + c.Name}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate %q: expected group:name", e.Value)
}

// Unwrap returns ErrInvalidCoordinate for errors.Is() compatibility.
func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// String returns the string representation of the PluginID.
func (p PluginID) String() string { return string(p) }

// IsValid returns whether the PluginID is non-empty and not whitespace-only.
func (p PluginID) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidPluginIDError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidPluginIDError) Error() string {
	return fmt.Sprintf("invalid plugin id %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidPluginID for errors.Is() compatibility.
func (e *InvalidPluginIDError) Unwrap() error { return ErrInvalidPluginID }

// Require returns a constraint that requires exactly v.
func Require(v string) VersionConstraint {
	return VersionConstraint{Require: v}
}

// IsZero reports whether no part of the constraint is set.
func (c VersionConstraint) IsZero() bool {
	return c.Strictly == "" && c.Require == "" && c.Prefer == "" && len(c.Reject) == 0 && !c.RejectAll
}

// Equal reports whether two constraints declare the same parts.
func (c VersionConstraint) Equal(o VersionConstraint) bool {
	return c.Strictly == o.Strictly && c.Require == o.Require && c.Prefer == o.Prefer &&
		c.RejectAll == o.RejectAll && slices.Equal(c.Reject, o.Reject)
}

// String renders the constraint for display. A require-only constraint
// renders as the bare version; richer constraints list their parts.
func (c VersionConstraint) String() string {
	if c.Strictly == "" && c.Prefer == "" && len(c.Reject) == 0 && !c.RejectAll {
		return c.Require
	}
	var parts []string
	if c.Strictly != "" {
		parts = append(parts, "strictly "+c.Strictly)
	}
	if c.Require != "" {
		parts = append(parts, "require "+c.Require)
	}
	if c.Prefer != "" {
		parts = append(parts, "prefer "+c.Prefer)
	}
	if len(c.Reject) > 0 {
		parts = append(parts, "reject "+strings.Join(c.Reject, ", "))
	}
	if c.RejectAll {
		parts = append(parts, "reject all")
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// RefTo returns a VersionRef pointing at a version alias.
func RefTo(a Alias) VersionRef {
	return VersionRef{Ref: a}
}

// Inline returns a VersionRef carrying an inline constraint.
func Inline(c VersionConstraint) VersionRef {
	return VersionRef{Constraint: c}
}

// IsZero reports whether the reference carries no version at all.
func (r VersionRef) IsZero() bool {
	return r.Ref == "" && r.Constraint.IsZero()
}

// IsRef reports whether the reference points at a version alias.
func (r VersionRef) IsRef() bool {
	return r.Ref != ""
}

// String renders the reference for display.
func (r VersionRef) String() string {
	if r.IsRef() {
		return "ref:" + r.Ref.String()
	}
	return r.Constraint.String()
}

// Kind implements Payload.
func (DependencyPayload) Kind() Kind { return KindDependency }

// Kind implements Payload.
func (VersionPayload) Kind() Kind { return KindVersion }

// Kind implements Payload.
func (BundlePayload) Kind() Kind { return KindBundle }

// Kind implements Payload.
func (PluginPayload) Kind() Kind { return KindPlugin }

func (DependencyPayload) isPayload() {}
func (VersionPayload) isPayload()    {}
func (BundlePayload) isPayload()     {}
func (PluginPayload) isPayload()     {}
