// SPDX-License-Identifier: MPL-2.0

package accessorgen

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/nstree"
)

// DefaultPackage is the package name used when none is given.
const DefaultPackage = "libs"

// ErrInvalidPackage is returned for a package name that is not a Go identifier.
var ErrInvalidPackage = errors.New("invalid package name")

// methodSelf is the accessor of a group's own leaf.
const methodSelf = "Self"

type (
	// Option configures Generate.
	Option func(*generator)

	generator struct {
		sb      strings.Builder
		store   *nstree.Store
		pkg     string
		typeIDs *namer
		root    string
	}
)

// WithPackage sets the package clause of the generated file.
func WithPackage(name string) Option {
	return func(g *generator) {
		if name != "" {
			g.pkg = name
		}
	}
}

// Generate returns gofmt-formatted Go source declaring accessors for every
// node of store. The root type is named after the catalog ("libs" yields
// Libs) and is created with New.
func Generate(store *nstree.Store, opts ...Option) ([]byte, error) {
	g := &generator{store: store, pkg: DefaultPackage}
	for _, opt := range opts {
		opt(g)
	}
	if !token.IsIdentifier(g.pkg) || token.IsKeyword(g.pkg) || g.pkg == "_" {
		return nil, fmt.Errorf("%w %q", ErrInvalidPackage, g.pkg)
	}

	g.typeIDs = newNamer("New", "CatalogName")
	g.root = g.typeIDs.name(exported(store.Name()))

	g.header()
	g.rootType()

	sections := []struct {
		kind catalog.Kind
		name string
	}{
		{catalog.KindDependency, g.root},
		{catalog.KindVersion, g.sectionType(catalog.KindVersion)},
		{catalog.KindBundle, g.sectionType(catalog.KindBundle)},
		{catalog.KindPlugin, g.sectionType(catalog.KindPlugin)},
	}
	for _, s := range sections {
		g.group(s.name, store.Root(s.kind))
	}

	src, err := format.Source([]byte(g.sb.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.sb, format, args...)
}

func (g *generator) header() {
	g.printf("// Code generated by verscat generate. DO NOT EDIT.\n\n")
	g.printf("package %s\n\n", g.pkg)
	g.printf("import (\n")
	g.printf("\t%q\n", "github.com/verscat/verscat/pkg/catalog")
	g.printf("\t%q\n", "github.com/verscat/verscat/pkg/leaf")
	g.printf("\t%q\n", "github.com/verscat/verscat/pkg/nstree")
	g.printf(")\n\n")
	g.printf("// CatalogName is the name of the catalog the accessors were generated from.\n")
	g.printf("const CatalogName = %s\n\n", strconv.Quote(g.store.Name()))
}

// rootType declares the root, its constructor and the section accessors.
// Dependencies hang directly off the root.
func (g *generator) rootType() {
	g.printf("// %s is the accessor root of the %q catalog.\n", g.root, g.store.Name())
	g.printf("type %s struct {\n\tr *leaf.Resolver\n\tn *nstree.Node\n}\n\n", g.root)
	g.printf("// New returns the accessor root backed by r.\n")
	g.printf("func New(r *leaf.Resolver) %s {\n", g.root)
	g.printf("\treturn %s{r: r, n: r.Store().Root(catalog.KindDependency)}\n}\n\n", g.root)
}

// sectionType reserves the type of a non-dependency namespace and declares
// the root method that reaches it.
func (g *generator) sectionType(kind catalog.Kind) string {
	method := sectionMethod(kind)
	name := g.typeIDs.name(g.root + method)
	g.printf("// %s returns the %s accessors.\n", method, kind)
	g.printf("func (a %s) %s() %s {\n", g.root, method, name)
	g.printf("\treturn %s{r: a.r, n: a.r.Store().Root(%s)}\n}\n\n", name, kindConst(kind))
	return name
}

// group declares typeName for n and one method per child, recursing into
// child groups.
func (g *generator) group(typeName string, n *nstree.Node) {
	switch {
	case n.IsRoot() && n.Kind() == catalog.KindDependency:
	case n.IsRoot():
		g.printf("// %s holds the %s accessors.\n", typeName, n.Kind())
		g.printf("type %s struct {\n\tr *leaf.Resolver\n\tn *nstree.Node\n}\n\n", typeName)
	default:
		g.printf("// %s is the %s group %q.\n", typeName, n.Kind(), n.Alias())
		g.printf("type %s struct {\n\tr *leaf.Resolver\n\tn *nstree.Node\n}\n\n", typeName)
	}

	reserved := []string{methodSelf}
	if n.IsRoot() && n.Kind() == catalog.KindDependency {
		reserved = append(reserved, "Versions", "Bundles", "Plugins")
	}
	methods := newNamer(reserved...)

	if entry, ok := g.store.SelfLeafOf(n); ok {
		g.printf("// %s returns the group's own %s: %s.\n", methodSelf, n.Kind(), describe(entry))
		g.printf("func (a %s) %s() %s {\n", typeName, methodSelf, providerType(n.Kind()))
		g.printf("\treturn a.r.%s(a.n)\n}\n\n", providerCtor(n.Kind()))
	}

	type pending struct {
		typeName string
		node     *nstree.Node
	}
	var groups []pending
	for _, c := range g.store.ChildrenOf(n) {
		method := methods.name(exported(c.Name))
		nav := fmt.Sprintf("a.r.Store().MustChildOf(a.n, %s)", strconv.Quote(c.Name))

		if c.Node.HasChildren() {
			child := g.typeIDs.name(typeName + exported(c.Name))
			g.printf("// %s returns the %q group.\n", method, c.Node.Alias())
			g.printf("func (a %s) %s() %s {\n", typeName, method, child)
			g.printf("\treturn %s{r: a.r, n: %s}\n}\n\n", child, nav)
			groups = append(groups, pending{child, c.Node})
			continue
		}

		entry, _ := g.store.SelfLeafOf(c.Node)
		g.printf("// %s returns %s.\n", method, describe(entry))
		g.printf("func (a %s) %s() %s {\n", typeName, method, providerType(c.Node.Kind()))
		g.printf("\treturn a.r.%s(%s)\n}\n\n", providerCtor(c.Node.Kind()), nav)
	}

	for _, p := range groups {
		g.group(p.typeName, p.node)
	}
}

// describe summarizes an entry for a doc comment.
func describe(e catalog.Entry) string {
	var s string
	switch p := e.Payload.(type) {
	case catalog.DependencyPayload:
		s = p.Coordinate.String()
		if !p.Version.IsZero() {
			s += " " + p.Version.String()
		}
	case catalog.VersionPayload:
		s = "version " + p.Constraint.String()
	case catalog.BundlePayload:
		members := make([]string, len(p.Members))
		for i, m := range p.Members {
			members[i] = string(m)
		}
		s = "the bundle of " + strings.Join(members, ", ")
	case catalog.PluginPayload:
		s = "plugin " + string(p.ID)
		if !p.Version.IsZero() {
			s += " " + p.Version.String()
		}
	}
	s = strings.Join(strings.Fields(s), " ")
	return fmt.Sprintf("%s (alias %s)", s, e.Alias)
}

func sectionMethod(kind catalog.Kind) string {
	switch kind {
	case catalog.KindVersion:
		return "Versions"
	case catalog.KindBundle:
		return "Bundles"
	default:
		return "Plugins"
	}
}

func kindConst(kind catalog.Kind) string {
	switch kind {
	case catalog.KindVersion:
		return "catalog.KindVersion"
	case catalog.KindBundle:
		return "catalog.KindBundle"
	case catalog.KindPlugin:
		return "catalog.KindPlugin"
	default:
		return "catalog.KindDependency"
	}
}

func providerType(kind catalog.Kind) string {
	return "leaf." + providerCtor(kind)
}

func providerCtor(kind catalog.Kind) string {
	switch kind {
	case catalog.KindVersion:
		return "VersionProvider"
	case catalog.KindBundle:
		return "BundleProvider"
	case catalog.KindPlugin:
		return "PluginProvider"
	default:
		return "DependencyProvider"
	}
}
