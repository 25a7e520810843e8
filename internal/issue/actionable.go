// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is an error with the context a user needs to act on it:
	// the operation that failed, the resource involved, suggestions, and an
	// optional Id of the guidance page that explains it.
	//
	// Build one with ErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("load catalog").
	//		WithResource("gradle/libs.versions.toml").
	//		WithSuggestion("Run 'verscat check' for a full report").
	//		WithIssue(issue.CatalogParseErrorId).
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		Operation   string
		Resource    string
		Suggestions []string
		Issue       Id
		Cause       error
	}

	// ErrorContext incrementally builds an ActionableError.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext wraps err with an operation and resource. It returns nil
// for a nil err.
func WrapWithContext(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error returns "failed to <operation>: <resource>: <cause>".
func (e *ActionableError) Error() string {
	var b strings.Builder
	b.WriteString("failed to ")
	b.WriteString(e.Operation)
	if e.Resource != "" {
		b.WriteString(": ")
		b.WriteString(e.Resource)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error with one bullet per suggestion. In verbose mode
// it appends every link of the cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err.Error())
			depth++
		}
	}
	return b.String()
}

// HasSuggestions reports whether the error carries suggestions.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// WithOperation sets the failed operation, phrased as a verb ("load catalog").
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the file, alias or other entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends a suggestion.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, s)
	return c
}

// WithSuggestions appends several suggestions.
func (c *ErrorContext) WithSuggestions(s ...string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, s...)
	return c
}

// WithIssue links the error to a guidance page.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.Issue = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the ActionableError, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	out := c.err
	out.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &out
}

// BuildError is Build returning the error interface. It returns a nil
// interface, not a typed nil, when no operation was set.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
