// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a guidance page. The zero Id means "no page".
type Id int

const (
	CatalogNotFoundId Id = iota + 1
	CatalogParseErrorId
	UnsupportedFormatId
	DuplicateAliasId
	MalformedAliasId
	ReservedAliasId
	UnknownVersionRefId
	AliasNotFoundId
	DanglingBundleMemberId
	ConfigLoadFailedId
)

type (
	// MarkdownMsg is guidance text in Markdown.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is one guidance page.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Markdown returns the message followed by a "See also" list of links.
func (i *Issue) Markdown() string {
	if len(i.docLinks) == 0 {
		return string(i.mdMsg)
	}
	var b strings.Builder
	b.WriteString(string(i.mdMsg))
	b.WriteString("\n\n## See also\n")
	for _, link := range i.docLinks {
		b.WriteString("- <" + string(link) + ">\n")
	}
	return b.String()
}

// Render renders the page for a terminal with the named glamour style
// ("dark", "light", "notty" or "auto").
func (i *Issue) Render(style string) (string, error) {
	return render(i.Markdown(), style)
}

const gradleCatalogDocs HttpLink = "https://docs.gradle.org/current/userguide/version_catalogs.html"

var (
	render = glamour.Render

	catalogNotFoundIssue = &Issue{
		id: CatalogNotFoundId,
		mdMsg: `
# Catalog file not found!

verscat reads ` + "`gradle/libs.versions.toml`" + ` relative to the current
directory unless told otherwise.

## Things you can try:
- Point at the file explicitly:
~~~
$ verscat tree --catalog path/to/libs.versions.toml
~~~
- Set a default in your config file:
~~~cue
catalog: path: "build/deps.versions.toml"
~~~`,
		docLinks: []HttpLink{gradleCatalogDocs},
	}

	catalogParseErrorIssue = &Issue{
		id: CatalogParseErrorId,
		mdMsg: `
# Failed to parse the catalog!

The file is not valid TOML or CUE, or an entry has an unexpected shape.

## Accepted library notations:
~~~toml
[libraries]
short = "group:name:1.0"
by-module = { module = "group:name", version.ref = "shared" }
by-parts = { group = "group", name = "name", version = "1.0" }
rich = { module = "group:name", version = { strictly = "[1.0, 2.0)", prefer = "1.5" } }
~~~`,
		docLinks: []HttpLink{gradleCatalogDocs},
	}

	unsupportedFormatIssue = &Issue{
		id: UnsupportedFormatId,
		mdMsg: `
# Unsupported catalog format!

Catalog files must end in ` + "`.toml`" + ` (Gradle format) or ` + "`.cue`" + `.`,
	}

	duplicateAliasIssue = &Issue{
		id: DuplicateAliasId,
		mdMsg: `
# Duplicate alias!

Two entries of the same section map to the same alias. Separators are
normalized, so ` + "`ktor-core`" + `, ` + "`ktor_core`" + ` and ` + "`ktor.core`" + ` are the same alias.

## Things you can try:
- Rename or remove one of the entries
- Aliases in different sections never clash: a version and a library may share a name`,
	}

	malformedAliasIssue = &Issue{
		id: MalformedAliasId,
		mdMsg: `
# Malformed alias!

Aliases must start with a letter, use only letters, digits and the separators
` + "`-`" + `, ` + "`_`" + ` and ` + "`.`" + `, and must not contain empty segments
(` + "`a..b`" + `, ` + "`a-`" + `).`,
	}

	reservedAliasIssue = &Issue{
		id: ReservedAliasId,
		mdMsg: `
# Reserved alias!

Some names would clash with generated accessors:
- library aliases cannot start with ` + "`bundles`" + `, ` + "`versions`" + ` or ` + "`plugins`" + `
- no alias may contain the segments ` + "`extensions`" + `, ` + "`class`" + ` or ` + "`convention`" + ``,
		docLinks: []HttpLink{gradleCatalogDocs},
	}

	unknownVersionRefIssue = &Issue{
		id: UnknownVersionRefId,
		mdMsg: `
# Unknown version reference!

A ` + "`version.ref`" + ` names an alias that is not declared in ` + "`[versions]`" + `.

## Things you can try:
~~~toml
[versions]
ktor = "3.1.3"

[libraries]
ktor-server-core = { module = "io.ktor:ktor-server-core", version.ref = "ktor" }
~~~`,
	}

	aliasNotFoundIssue = &Issue{
		id: AliasNotFoundId,
		mdMsg: `
# Alias not found!

No node exists at that path in the namespace.

## Things you can try:
- List what is declared:
~~~
$ verscat tree dependency
~~~
- Remember that aliases are normalized: ` + "`kotlin-test-junit`" + ` is looked up as ` + "`kotlin.test.junit`" + ``,
	}

	danglingBundleMemberIssue = &Issue{
		id: DanglingBundleMemberId,
		mdMsg: `
# Dangling bundle member!

A bundle lists an alias that is not a library. Bundle members must name
entries of the ` + "`[libraries]`" + ` section; a group of libraries such as
` + "`ktor.server`" + ` is not itself a library.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Print the effective configuration:
~~~
$ verscat config show
~~~
- Write a fresh default file:
~~~
$ verscat config init
~~~`,
	}

	names = map[Id]string{
		CatalogNotFoundId:      "catalog-not-found",
		CatalogParseErrorId:    "catalog-parse-error",
		UnsupportedFormatId:    "unsupported-format",
		DuplicateAliasId:       "duplicate-alias",
		MalformedAliasId:       "malformed-alias",
		ReservedAliasId:        "reserved-alias",
		UnknownVersionRefId:    "unknown-version-ref",
		AliasNotFoundId:        "alias-not-found",
		DanglingBundleMemberId: "dangling-bundle-member",
		ConfigLoadFailedId:     "config-load-failed",
	}

	issues = map[Id]*Issue{
		catalogNotFoundIssue.Id():      catalogNotFoundIssue,
		catalogParseErrorIssue.Id():    catalogParseErrorIssue,
		unsupportedFormatIssue.Id():    unsupportedFormatIssue,
		duplicateAliasIssue.Id():       duplicateAliasIssue,
		malformedAliasIssue.Id():       malformedAliasIssue,
		reservedAliasIssue.Id():        reservedAliasIssue,
		unknownVersionRefIssue.Id():    unknownVersionRefIssue,
		aliasNotFoundIssue.Id():        aliasNotFoundIssue,
		danglingBundleMemberIssue.Id(): danglingBundleMemberIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// String returns the kebab-case name of the id, e.g. "duplicate-alias".
func (id Id) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("issue-%d", int(id))
}

// Lookup returns the issue with the given name, or nil.
func Lookup(name string) *Issue {
	for id, n := range names {
		if n == name {
			return issues[id]
		}
	}
	return nil
}

// Get returns the issue registered under id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
