// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"errors"
	"fmt"

	"github.com/verscat/verscat/pkg/catalog"
)

var (
	// ErrSyntax is the sentinel error wrapped by SyntaxError.
	ErrSyntax = errors.New("catalog syntax error")
	// ErrNotation is the sentinel error wrapped by NotationError.
	ErrNotation = errors.New("invalid catalog notation")
	// ErrReservedAlias is the sentinel error wrapped by ReservedAliasError.
	ErrReservedAlias = errors.New("reserved alias")
	// ErrUnsupportedFormat is returned for files that are neither TOML nor CUE.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

type (
	// SyntaxError reports a document that could not be parsed.
	SyntaxError struct {
		File   string
		Line   int
		Column int
		Err    error
	}

	// NotationError reports an entry whose value has the wrong shape, such as
	// a library string without a version or a bundle that is not an array.
	NotationError struct {
		File    string
		Section string
		Alias   string
		Reason  string
		Err     error
	}

	// ReservedAliasError reports an alias that would clash with a generated
	// accessor name.
	ReservedAliasError struct {
		Kind   catalog.Kind
		Alias  catalog.Alias
		Reason string
	}
)

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns both ErrSyntax and the underlying parser error.
func (e *SyntaxError) Unwrap() []error { return []error{ErrSyntax, e.Err} }

// Error implements the error interface.
func (e *NotationError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Alias == "" {
		return fmt.Sprintf("%s: [%s]: %s", e.File, e.Section, reason)
	}
	return fmt.Sprintf("%s: [%s] %s: %s", e.File, e.Section, e.Alias, reason)
}

// Unwrap returns ErrNotation and, when set, the error that caused it.
func (e *NotationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotation}
	}
	return []error{ErrNotation, e.Err}
}

// Error implements the error interface.
func (e *ReservedAliasError) Error() string {
	return fmt.Sprintf("%s alias %q is reserved: %s", e.Kind, e.Alias, e.Reason)
}

// Unwrap returns ErrReservedAlias so callers can use errors.Is for programmatic detection.
func (e *ReservedAliasError) Unwrap() error { return ErrReservedAlias }
