// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"errors"
	"os"

	"github.com/verscat/verscat/internal/catalogfile"
	"github.com/verscat/verscat/pkg/cueutil"
	"github.com/verscat/verscat/internal/engine"
	"github.com/verscat/verscat/internal/issue"
	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/leaf"
	"github.com/verscat/verscat/pkg/nstree"
)

// IssueFor maps a catalog failure to the guidance page that explains it.
// It returns 0 when no page applies.
func IssueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return issue.CatalogNotFoundId
	case errors.Is(err, catalogfile.ErrUnsupportedFormat):
		return issue.UnsupportedFormatId
	case errors.Is(err, catalog.ErrDuplicateAlias):
		return issue.DuplicateAliasId
	case errors.Is(err, catalog.ErrMalformedAlias):
		return issue.MalformedAliasId
	case errors.Is(err, catalogfile.ErrReservedAlias):
		return issue.ReservedAliasId
	case errors.Is(err, engine.ErrUnknownVersionRef):
		return issue.UnknownVersionRefId
	case errors.Is(err, nstree.ErrNotFound):
		return issue.AliasNotFoundId
	case errors.Is(err, leaf.ErrDanglingAlias):
		return issue.DanglingBundleMemberId
	case errors.Is(err, catalogfile.ErrSyntax),
		errors.Is(err, catalogfile.ErrNotation),
		errors.Is(err, cueutil.ErrFileTooLarge):
		return issue.CatalogParseErrorId
	default:
		var verr *cueutil.ValidationError
		if errors.As(err, &verr) {
			return issue.CatalogParseErrorId
		}
		return 0
	}
}

func suggestionsFor(err error) []string {
	switch IssueFor(err) {
	case issue.CatalogNotFoundId:
		return []string{
			"Pass the catalog with --catalog <path>",
			"Set catalog.path in the config file ('verscat config path' shows where it lives)",
		}
	case issue.UnsupportedFormatId:
		return []string{"Use a .toml or .cue catalog file"}
	case issue.DuplicateAliasId:
		return []string{"Aliases are compared after '-' and '_' become '.'; rename one of the entries"}
	case issue.ReservedAliasId, issue.MalformedAliasId:
		return []string{"Run 'verscat issue malformed-alias' to read the alias rules"}
	case issue.UnknownVersionRefId:
		return []string{"Declare the referenced alias in the [versions] section"}
	default:
		return nil
	}
}
