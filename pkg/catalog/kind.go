// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KindDependency is the namespace of library coordinates.
	KindDependency Kind = "dependency"
	// KindVersion is the namespace of version constraints.
	KindVersion Kind = "version"
	// KindBundle is the namespace of ordered dependency groups.
	KindBundle Kind = "bundle"
	// KindPlugin is the namespace of build plugin ids.
	KindPlugin Kind = "plugin"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid catalog kind")

type (
	// Kind names one of the four independent alias namespaces of a catalog.
	Kind string

	// InvalidKindError is returned when a Kind value is not one of the four
	// catalog namespaces. It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}
)

// Kinds returns the four catalog namespaces in their canonical order.
func Kinds() []Kind {
	return []Kind{KindDependency, KindVersion, KindBundle, KindPlugin}
}

// ParseKind converts user input into a Kind. Besides the canonical names it
// accepts the plural section names used by catalog files ("libraries",
// "versions", "bundles", "plugins") and the short forms "library", "lib" and
// "libs".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dependency", "dependencies", "library", "libraries", "lib", "libs":
		return KindDependency, nil
	case "version", "versions":
		return KindVersion, nil
	case "bundle", "bundles":
		return KindBundle, nil
	case "plugin", "plugins":
		return KindPlugin, nil
	default:
		return "", &InvalidKindError{Value: Kind(s)}
	}
}

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// IsValid returns whether the Kind is one of the four catalog namespaces,
// and a list of validation errors if it is not.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindDependency, KindVersion, KindBundle, KindPlugin:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// Section returns the catalog file section that declares entries of this kind.
func (k Kind) Section() string {
	switch k {
	case KindDependency:
		return "libraries"
	case KindVersion:
		return "versions"
	case KindBundle:
		return "bundles"
	case KindPlugin:
		return "plugins"
	default:
		return string(k)
	}
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid catalog kind %q (expected one of: dependency, version, bundle, plugin)", e.Value)
}

// Unwrap returns ErrInvalidKind so callers can use errors.Is for programmatic detection.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
