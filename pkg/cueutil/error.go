// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when input exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

type (
	// Violation is one problem reported by CUE, located by a JSON-style path.
	Violation struct {
		Path    string
		Message string
	}

	// ValidationError lists every violation found in one file.
	ValidationError struct {
		File       string
		Violations []Violation
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		if v.Path == "" {
			lines[i] = v.Message
			continue
		}
		lines[i] = v.Path + ": " + v.Message
	}
	if len(lines) == 1 {
		return e.File + ": " + lines[0]
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// FormatError converts a CUE error into a *ValidationError whose paths read
// like "libraries.ktor.version". Errors that do not come from CUE are
// wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	out := &ValidationError{File: file}
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		out.Violations = append(out.Violations, Violation{Path: path, Message: msg})
	}
	return out
}

// formatPath renders ["bundles", "ktor", "0"] as "bundles.ktor[0]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize fails with ErrFileTooLarge when data exceeds maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, file string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %d bytes exceeds maximum %d bytes: %w", file, len(data), maxSize, ErrFileTooLarge)
	}
	return nil
}
