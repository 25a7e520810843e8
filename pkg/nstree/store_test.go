// SPDX-License-Identifier: MPL-2.0

package nstree

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/verscat/verscat/pkg/catalog"
)

func depEntry(alias, group, name string) catalog.Entry {
	return catalog.Entry{
		Kind:    catalog.KindDependency,
		Alias:   catalog.Alias(alias),
		Payload: catalog.DependencyPayload{Coordinate: catalog.Coordinate{Group: group, Name: name}},
	}
}

func versionEntry(alias, v string) catalog.Entry {
	return catalog.Entry{
		Kind:    catalog.KindVersion,
		Alias:   catalog.Alias(alias),
		Payload: catalog.VersionPayload{Constraint: catalog.Require(v)},
	}
}

// ktorCatalog mirrors the library section of a small Ktor service catalog.
func ktorCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Entry{
		depEntry("ktor.server.core", "io.ktor", "ktor-server-core"),
		depEntry("ktor.server.auth", "io.ktor", "ktor-server-auth"),
		depEntry("ktor.server.auth.jwt", "io.ktor", "ktor-server-auth-jwt"),
		depEntry("kotlin.test.junit", "org.jetbrains.kotlin", "kotlin-test-junit"),
		depEntry("ktor.server.netty", "io.ktor", "ktor-server-netty"),
		depEntry("logback.classic", "ch.qos.logback", "logback-classic"),
		versionEntry("kotlin.version", "2.1.10"),
		versionEntry("ktor.version", "3.1.3"),
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func mustBuild(t *testing.T, c *catalog.Catalog) *Store {
	t.Helper()
	s, err := Build(c)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return s
}

func childNames(s *Store, n *Node) []string {
	var names []string
	for _, c := range s.ChildrenOf(n) {
		names = append(names, c.Name)
	}
	return names
}

func TestBuild_Reachability(t *testing.T) {
	t.Parallel()

	c := ktorCatalog(t)
	s := mustBuild(t, c)

	for _, e := range c.Entries() {
		n := s.Root(e.Kind)
		for _, seg := range e.Alias.Segments() {
			next, err := s.ChildOf(n, seg)
			if err != nil {
				t.Fatalf("ChildOf(%v, %q) error = %v", n, seg, err)
			}
			n = next
		}
		got, ok := s.SelfLeafOf(n)
		if !ok {
			t.Fatalf("SelfLeafOf(%v) absent, want entry %q", n, e.Alias)
		}
		if !reflect.DeepEqual(got, e) {
			t.Errorf("SelfLeafOf(%v) = %+v, want %+v", n, got, e)
		}
		if !slices.Equal(n.Path(), e.Alias.Segments()) {
			t.Errorf("node path = %v, want %v", n.Path(), e.Alias.Segments())
		}
	}
	if s.Leaves() != c.Len() {
		t.Errorf("Leaves() = %d, want %d", s.Leaves(), c.Len())
	}
}

func TestBuild_SimpleNesting(t *testing.T) {
	t.Parallel()

	c, err := catalog.New([]catalog.Entry{
		depEntry("kotlin.test.junit", "org.jetbrains.kotlin", "kotlin-test-junit"),
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	s := mustBuild(t, c)

	kotlin, err := s.ChildOf(s.Root(catalog.KindDependency), "kotlin")
	if err != nil {
		t.Fatalf("ChildOf(root, kotlin) error = %v", err)
	}
	test, err := s.ChildOf(kotlin, "test")
	if err != nil {
		t.Fatalf("ChildOf(kotlin, test) error = %v", err)
	}
	junit, err := s.ChildOf(test, "junit")
	if err != nil {
		t.Fatalf("ChildOf(test, junit) error = %v", err)
	}

	e, ok := s.SelfLeafOf(junit)
	if !ok {
		t.Fatal("junit has no self-leaf")
	}
	coord := e.Payload.(catalog.DependencyPayload).Coordinate
	if coord.String() != "org.jetbrains.kotlin:kotlin-test-junit" {
		t.Errorf("coordinate = %q, want org.jetbrains.kotlin:kotlin-test-junit", coord)
	}

	for _, group := range []*Node{kotlin, test} {
		if group.Class() != ClassPureGroup {
			t.Errorf("%v class = %v, want group", group, group.Class())
		}
		if _, ok := s.SelfLeafOf(group); ok {
			t.Errorf("SelfLeafOf(%v) present, want absent", group)
		}
	}
	if junit.Class() != ClassPureLeaf {
		t.Errorf("junit class = %v, want leaf", junit.Class())
	}
}

func TestBuild_SelfLeafGroup(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))

	auth, err := s.Lookup(catalog.KindDependency, "ktor.server.auth")
	if err != nil {
		t.Fatalf("Lookup(ktor.server.auth) error = %v", err)
	}
	if auth.Class() != ClassSelfLeafGroup {
		t.Fatalf("auth class = %v, want self-leaf group", auth.Class())
	}

	self, ok := s.SelfLeafOf(auth)
	if !ok {
		t.Fatal("auth has no self-leaf")
	}
	if got := self.Payload.(catalog.DependencyPayload).Coordinate.Name; got != "ktor-server-auth" {
		t.Errorf("auth self-leaf = %q, want ktor-server-auth", got)
	}

	jwt, err := s.ChildOf(auth, "jwt")
	if err != nil {
		t.Fatalf("ChildOf(auth, jwt) error = %v", err)
	}
	jwtLeaf, ok := s.SelfLeafOf(jwt)
	if !ok {
		t.Fatal("jwt has no self-leaf")
	}
	if got := jwtLeaf.Payload.(catalog.DependencyPayload).Coordinate.Name; got != "ktor-server-auth-jwt" {
		t.Errorf("jwt self-leaf = %q, want ktor-server-auth-jwt", got)
	}
}

func TestBuild_CollisionIndependence(t *testing.T) {
	t.Parallel()

	full, err := catalog.New([]catalog.Entry{
		depEntry("a.b", "g", "ab"),
		depEntry("a.b.c", "g", "abc"),
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	s := mustBuild(t, full)
	ab, err := s.Lookup(catalog.KindDependency, "a.b")
	if err != nil {
		t.Fatalf("Lookup(a.b) error = %v", err)
	}
	if _, ok := s.SelfLeafOf(ab); !ok {
		t.Error("a.b self-leaf absent")
	}
	if _, err := s.ChildOf(ab, "c"); err != nil {
		t.Errorf("ChildOf(a.b, c) error = %v", err)
	}

	t.Run("without a.b.c", func(t *testing.T) {
		t.Parallel()
		s := mustBuild(t, full.Without(catalog.KindDependency, "a.b.c"))
		ab, err := s.Lookup(catalog.KindDependency, "a.b")
		if err != nil {
			t.Fatalf("Lookup(a.b) error = %v", err)
		}
		e, ok := s.SelfLeafOf(ab)
		if !ok || e.Payload.(catalog.DependencyPayload).Coordinate.Name != "ab" {
			t.Errorf("a.b self-leaf = %+v, %v; want coordinate g:ab", e, ok)
		}
		if ab.Class() != ClassPureLeaf {
			t.Errorf("a.b class = %v, want leaf", ab.Class())
		}
	})

	t.Run("without a.b", func(t *testing.T) {
		t.Parallel()
		s := mustBuild(t, full.Without(catalog.KindDependency, "a.b"))
		ab, err := s.Lookup(catalog.KindDependency, "a.b")
		if err != nil {
			t.Fatalf("Lookup(a.b) error = %v", err)
		}
		if _, ok := s.SelfLeafOf(ab); ok {
			t.Error("a.b self-leaf present after removing its entry")
		}
		c, err := s.ChildOf(ab, "c")
		if err != nil {
			t.Fatalf("ChildOf(a.b, c) error = %v", err)
		}
		e, ok := s.SelfLeafOf(c)
		if !ok || e.Payload.(catalog.DependencyPayload).Coordinate.Name != "abc" {
			t.Errorf("a.b.c self-leaf = %+v, %v; want coordinate g:abc", e, ok)
		}
	})
}

func TestBuild_FirstIntroductionOrder(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))

	root := s.Root(catalog.KindDependency)
	if got, want := childNames(s, root), []string{"ktor", "kotlin", "logback"}; !slices.Equal(got, want) {
		t.Errorf("root children = %v, want %v", got, want)
	}
	server, err := s.Lookup(catalog.KindDependency, "ktor.server")
	if err != nil {
		t.Fatalf("Lookup(ktor.server) error = %v", err)
	}
	if got, want := childNames(s, server), []string{"core", "auth", "netty"}; !slices.Equal(got, want) {
		t.Errorf("ktor.server children = %v, want %v", got, want)
	}
	if got, want := childNames(s, s.Root(catalog.KindVersion)), []string{"kotlin", "ktor"}; !slices.Equal(got, want) {
		t.Errorf("version root children = %v, want %v", got, want)
	}
}

func TestBuild_Determinism(t *testing.T) {
	t.Parallel()

	c := ktorCatalog(t)
	first := dump(t, mustBuild(t, c))
	second := dump(t, mustBuild(t, c))
	if first != second {
		t.Errorf("rebuild differs:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

// dump renders every namespace with classes and self-leaves so two stores
// can be compared structurally.
func dump(t *testing.T, s *Store) string {
	t.Helper()
	var sb strings.Builder
	for _, k := range catalog.Kinds() {
		err := s.Walk(k, func(n *Node) error {
			leaf := "-"
			if e, ok := s.SelfLeafOf(n); ok {
				leaf = fmt.Sprintf("%+v", e.Payload)
			}
			fmt.Fprintf(&sb, "%s %s %s\n", n, n.Class(), leaf)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk(%s) error = %v", k, err)
		}
	}
	return sb.String()
}

func TestStore_StableIdentity(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))

	a, err := s.Lookup(catalog.KindDependency, "ktor.server.auth.jwt")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	b, err := s.Lookup(catalog.KindDependency, "ktor.server.auth.jwt")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if a != b {
		t.Error("repeated navigation returned different node instances")
	}
	if s.Node(a.ID()) != a {
		t.Error("Node(ID()) did not return the same instance")
	}
	if s.Node(-1) != nil || s.Node(NodeID(s.Len())) != nil {
		t.Error("Node() should return nil for handles outside the arena")
	}
}

func TestStore_ConcurrentReads(t *testing.T) {
	t.Parallel()

	c := ktorCatalog(t)
	s := mustBuild(t, c)
	entries := c.Entries()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Go(func() {
			for _, e := range entries {
				n, err := s.Lookup(e.Kind, e.Alias)
				if err != nil {
					errs <- err
					return
				}
				if _, ok := s.SelfLeafOf(n); !ok {
					errs <- fmt.Errorf("%s: self-leaf absent", e.Alias)
					return
				}
				_ = s.ChildrenOf(n)
			}
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestStore_NotFound(t *testing.T) {
	t.Parallel()

	empty, err := catalog.New(nil)
	if err != nil {
		t.Fatalf("catalog.New(nil) error = %v", err)
	}
	s := mustBuild(t, empty)

	root := s.Root(catalog.KindDependency)
	if root.Class() != ClassPureGroup {
		t.Errorf("empty root class = %v, want group", root.Class())
	}
	_, err = s.ChildOf(root, "foo")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ChildOf(root, foo) error = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error should be *NotFoundError, got: %T", err)
	}
	if nf.Name != "foo" || len(nf.Path) != 0 {
		t.Errorf("NotFoundError = %+v, want name foo with empty path", nf)
	}
}

func TestStore_NotFoundNamesPath(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))
	_, err := s.Lookup(catalog.KindDependency, "ktor.server.websockets")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Lookup() error = %v, want *NotFoundError", err)
	}
	if nf.Name != "websockets" || !slices.Equal(nf.Path, []string{"ktor", "server"}) {
		t.Errorf("NotFoundError = %+v, want websockets under ktor.server", nf)
	}
	if want := `dependency namespace has no "websockets" under "ktor.server"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStore_LookupLeaf(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))

	if _, e, err := s.LookupLeaf(catalog.KindVersion, "ktor.version"); err != nil || e.Alias != "ktor.version" {
		t.Errorf("LookupLeaf(ktor.version) = %+v, %v", e, err)
	}
	if _, _, err := s.LookupLeaf(catalog.KindDependency, "ktor.server"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LookupLeaf(ktor.server) error = %v, want ErrNotFound for a pure group", err)
	}
	if _, _, err := s.LookupLeaf(catalog.KindDependency, ""); !errors.Is(err, catalog.ErrMalformedAlias) {
		t.Errorf("LookupLeaf(\"\") error = %v, want ErrMalformedAlias", err)
	}
}

func TestStore_ChildrenOfReturnsCopy(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))
	root := s.Root(catalog.KindDependency)
	children := s.ChildrenOf(root)
	children[0] = Child{Name: "mutated"}
	if got := s.ChildrenOf(root)[0].Name; got != "ktor" {
		t.Errorf("ChildrenOf()[0].Name = %q after caller mutation, want ktor", got)
	}
}

func TestStore_MustChildOfPanics(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustChildOf() did not panic for a missing child")
		}
	}()
	s.MustChildOf(s.Root(catalog.KindPlugin), "kotlin")
}

func TestStore_WalkStopsOnError(t *testing.T) {
	t.Parallel()

	s := mustBuild(t, ktorCatalog(t))
	stop := errors.New("stop")
	visited := 0
	err := s.Walk(catalog.KindDependency, func(n *Node) error {
		visited++
		if n.Name() == "server" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Walk() error = %v, want stop", err)
	}
	if visited != 3 {
		t.Errorf("visited = %d, want 3 (root, ktor, server)", visited)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		leaf, children bool
		want           Class
	}{
		{true, false, ClassPureLeaf},
		{false, true, ClassPureGroup},
		{true, true, ClassSelfLeafGroup},
		{false, false, ClassInvalid},
	}
	for _, tt := range tests {
		if got := Classify(tt.leaf, tt.children); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", tt.leaf, tt.children, got, tt.want)
		}
	}
	if !ClassSelfLeafGroup.IsGroup() || !ClassSelfLeafGroup.IsLeaf() {
		t.Error("self-leaf group should be both group and leaf")
	}
}
