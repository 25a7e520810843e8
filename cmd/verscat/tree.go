// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/verscat/verscat/pkg/catalog"
	"github.com/verscat/verscat/pkg/nstree"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
)

func newTreeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [kind]",
		Short: "Print the namespace tree of the catalog",
		Long: `Print the namespace tree of the catalog.

Without an argument every namespace is printed. Kinds accept the section
names of the catalog file: libraries, versions, bundles and plugins.

Groups end in '/', leaves show their declared value, and groups that are
also leaves are marked with '*'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := catalog.Kinds()
			if len(args) == 1 {
				kind, err := catalog.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []catalog.Kind{kind}
			}

			s, err := app.session(cmd.Context())
			if err != nil {
				return err
			}
			ws, err := app.open(cmd.Context(), s)
			if err != nil {
				return err
			}
			renderTree(app.stdout, ws.Store, kinds)
			return nil
		},
	}
}

func renderTree(w io.Writer, store *nstree.Store, kinds []catalog.Kind) {
	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprintln(w)
		}
		root := store.Root(kind)
		t := tree.Root(TitleStyle.Render(store.Name() + "." + kind.Section())).
			EnumeratorStyle(enumeratorStyle)
		if !root.HasChildren() {
			t.Child(SubtitleStyle.Render("(empty)"))
		}
		for _, c := range store.ChildrenOf(root) {
			t.Child(subtree(store, c))
		}
		fmt.Fprintln(w, t.String())
	}
}

// subtree returns a plain label for a pure leaf and a nested tree for a group.
func subtree(store *nstree.Store, c nstree.Child) any {
	label := nodeLabel(store, c)
	if !c.Node.HasChildren() {
		return label
	}
	t := tree.Root(label).EnumeratorStyle(enumeratorStyle)
	for _, child := range store.ChildrenOf(c.Node) {
		t.Child(subtree(store, child))
	}
	return t
}

func nodeLabel(store *nstree.Store, c nstree.Child) string {
	switch c.Node.Class() {
	case nstree.ClassPureGroup:
		return groupStyle.Render(c.Name + "/")
	case nstree.ClassSelfLeafGroup:
		e, _ := store.SelfLeafOf(c.Node)
		return selfLeafStyle.Render(c.Name+"/*") + " " + SubtitleStyle.Render(entryValue(e))
	default:
		e, _ := store.SelfLeafOf(c.Node)
		return AliasStyle.Render(c.Name) + " " + SubtitleStyle.Render(entryValue(e))
	}
}

// entryValue renders an entry's declared payload on one line.
func entryValue(e catalog.Entry) string {
	switch p := e.Payload.(type) {
	case catalog.DependencyPayload:
		if p.Version.IsZero() {
			return p.Coordinate.String()
		}
		return p.Coordinate.String() + " " + p.Version.String()
	case catalog.VersionPayload:
		return p.Constraint.String()
	case catalog.BundlePayload:
		return fmt.Sprint(p.Members)
	case catalog.PluginPayload:
		if p.Version.IsZero() {
			return p.ID.String()
		}
		return p.ID.String() + " " + p.Version.String()
	default:
		return ""
	}
}
