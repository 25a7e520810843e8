// SPDX-License-Identifier: MPL-2.0

package nstree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verscat/verscat/pkg/catalog"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("namespace node not found")
	// ErrEmptyNode is returned by Build when it produces a non-root node with
	// neither children nor a self-leaf. It indicates a builder bug.
	ErrEmptyNode = errors.New("namespace node has neither children nor a leaf")
)

// NotFoundError is returned when navigation asks for a child name that does
// not exist under a node. It wraps ErrNotFound for errors.Is() compatibility.
type NotFoundError struct {
	// Kind is the namespace that was navigated.
	Kind catalog.Kind
	// Name is the requested child segment.
	Name string
	// Path is the path of the node the child was requested from.
	Path []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s namespace has no %q at the root", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s namespace has no %q under %q", e.Kind, e.Name, strings.Join(e.Path, catalog.AliasSeparator))
}

// Unwrap returns ErrNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }
