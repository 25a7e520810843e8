// SPDX-License-Identifier: MPL-2.0

package leaf

import (
	"errors"
	"fmt"

	"github.com/verscat/verscat/pkg/catalog"
)

var (
	// ErrDanglingAlias is the sentinel error wrapped by DanglingAliasError.
	ErrDanglingAlias = errors.New("dangling alias")
	// ErrNoLeaf is the sentinel error wrapped by NoLeafError.
	ErrNoLeaf = errors.New("node has no leaf")
	// ErrKindMismatch is the sentinel error wrapped by KindMismatchError.
	ErrKindMismatch = errors.New("kind mismatch")
)

type (
	// DanglingAliasError is returned when a bundle member does not name an
	// entry of the dependency namespace.
	DanglingAliasError struct {
		Bundle  catalog.Alias
		Missing catalog.Alias
	}

	// NoLeafError is returned when a pure group is asked for a leaf value.
	NoLeafError struct {
		Kind  catalog.Kind
		Alias catalog.Alias
	}

	// KindMismatchError is returned when a typed resolver method receives a
	// node from another namespace.
	KindMismatchError struct {
		Want  catalog.Kind
		Got   catalog.Kind
		Alias catalog.Alias
	}
)

// Error implements the error interface.
func (e *DanglingAliasError) Error() string {
	return fmt.Sprintf("bundle %q references undeclared dependency alias %q", e.Bundle, e.Missing)
}

// Unwrap returns ErrDanglingAlias for errors.Is() compatibility.
func (e *DanglingAliasError) Unwrap() error { return ErrDanglingAlias }

// Error implements the error interface.
func (e *NoLeafError) Error() string {
	if e.Alias == "" {
		return fmt.Sprintf("%s namespace root has no leaf value", e.Kind)
	}
	return fmt.Sprintf("%s %q is a group without its own leaf value", e.Kind, e.Alias)
}

// Unwrap returns ErrNoLeaf for errors.Is() compatibility.
func (e *NoLeafError) Unwrap() error { return ErrNoLeaf }

// Error implements the error interface.
func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%q is a %s, not a %s", e.Alias, e.Got, e.Want)
}

// Unwrap returns ErrKindMismatch for errors.Is() compatibility.
func (e *KindMismatchError) Unwrap() error { return ErrKindMismatch }
