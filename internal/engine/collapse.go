// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/verscat/verscat/pkg/catalog"
)

// Collapse returns the single-string form of c. It reports false when c has
// rejections, when strictly and require disagree, when not exactly one
// distinct preference is left, or when the remaining value is a range.
func Collapse(c catalog.VersionConstraint) (string, bool) {
	if c.RejectAll || len(c.Reject) > 0 {
		return "", false
	}
	if c.Strictly != "" && c.Require != "" && c.Strictly != c.Require {
		return "", false
	}

	var v string
	for _, candidate := range []string{c.Strictly, c.Require, c.Prefer} {
		switch {
		case candidate == "":
		case v == "":
			v = candidate
		case v != candidate:
			return "", false
		}
	}
	if v == "" || IsRange(v) {
		return "", false
	}
	return v, true
}

// IsRange reports whether v selects more than one version: Maven bracket
// ranges ("[1.0,2.0)"), Gradle dynamic versions ("1.+", "latest.release")
// and semver constraints ("^1.2", ">= 1.0, < 2").
func IsRange(v string) bool {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return false
	case strings.ContainsAny(v[:1], "[]("):
		return true
	case strings.Contains(v, ","):
		return true
	case strings.HasSuffix(v, "+"):
		return true
	case strings.HasPrefix(v, "latest."):
		return true
	}
	if _, err := semver.NewVersion(v); err == nil {
		return false
	}
	_, err := semver.NewConstraint(v)
	return err == nil
}
