// SPDX-License-Identifier: MPL-2.0

package accessorgen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/verscat/verscat/internal/testutil/catalogtest"
	"github.com/verscat/verscat/pkg/nstree"
)

func sampleStore(t *testing.T) *nstree.Store {
	t.Helper()
	return catalogtest.MustBuild(t,
		catalogtest.Ver("kotlin", "2.1.20"),
		catalogtest.LibRef("kotlin.test.junit", "org.jetbrains.kotlin", "kotlin-test-junit", "kotlin"),
		catalogtest.Lib("ktor.server.auth", "io.ktor", "ktor-server-auth", "3.1.3"),
		catalogtest.Lib("ktor.server.auth.jwt", "io.ktor", "ktor-server-auth-jwt", "3.1.3"),
		catalogtest.Bundle("ktor", "ktor.server.auth", "ktor.server.auth.jwt"),
		catalogtest.Plugin("kotlin.jvm", "org.jetbrains.kotlin.jvm", "2.1.20"),
	)
}

// methods maps receiver type names to their method names and result types.
func methods(t *testing.T, src []byte) (types map[string]bool, funcs map[string]string) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "libs.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	types = map[string]bool{}
	funcs = map[string]string{}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					types[ts.Name.Name] = true
				}
			}
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				name = d.Recv.List[0].Type.(*ast.Ident).Name + "." + name
			}
			result := ""
			if d.Type.Results != nil {
				result = exprString(d.Type.Results.List[0].Type)
			}
			funcs[name] = result
		}
	}
	return types, funcs
}

func exprString(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return exprString(x.X) + "." + x.Sel.Name
	default:
		return ""
	}
}

func TestGenerate_Accessors(t *testing.T) {
	t.Parallel()

	src, err := Generate(sampleStore(t), WithPackage("deps"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(string(src), "// Code generated by verscat generate. DO NOT EDIT.") {
		t.Error("generated source should start with the generated-code header")
	}
	if !strings.Contains(string(src), "package deps\n") {
		t.Error("generated source should use the requested package")
	}

	types, funcs := methods(t, src)
	for _, typ := range []string{"Libs", "LibsKotlin", "LibsKotlinTest", "LibsKtor", "LibsKtorServer", "LibsKtorServerAuth", "LibsVersions", "LibsBundles", "LibsPlugins", "LibsPluginsKotlin"} {
		if !types[typ] {
			t.Errorf("missing type %s", typ)
		}
	}

	want := map[string]string{
		"New":                     "Libs",
		"Libs.Kotlin":             "LibsKotlin",
		"LibsKotlin.Test":         "LibsKotlinTest",
		"LibsKotlinTest.Junit":    "leaf.DependencyProvider",
		"LibsKtorServer.Auth":     "LibsKtorServerAuth",
		"LibsKtorServerAuth.Self": "leaf.DependencyProvider",
		"LibsKtorServerAuth.Jwt":  "leaf.DependencyProvider",
		"Libs.Versions":           "LibsVersions",
		"LibsVersions.Kotlin":     "leaf.VersionProvider",
		"Libs.Bundles":            "LibsBundles",
		"LibsBundles.Ktor":        "leaf.BundleProvider",
		"Libs.Plugins":            "LibsPlugins",
		"LibsPluginsKotlin.Jvm":   "leaf.PluginProvider",
	}
	for fn, result := range want {
		got, ok := funcs[fn]
		if !ok {
			t.Errorf("missing func %s", fn)
			continue
		}
		if got != result {
			t.Errorf("%s returns %s, want %s", fn, got, result)
		}
	}
	if _, ok := funcs["LibsKotlinTest.Self"]; ok {
		t.Error("a pure group should not have a Self accessor")
	}

	for _, doc := range []string{
		"org.jetbrains.kotlin:kotlin-test-junit",
		"the bundle of ktor.server.auth, ktor.server.auth.jwt",
		"plugin org.jetbrains.kotlin.jvm",
		`const CatalogName = "libs"`,
	} {
		if !strings.Contains(string(src), doc) {
			t.Errorf("generated source should contain %q", doc)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Generate(sampleStore(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(sampleStore(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(first) != string(second) {
		t.Error("Generate() should produce identical output for the same catalog")
	}
}

func TestGenerate_IdentifierCollisions(t *testing.T) {
	t.Parallel()

	store := catalogtest.MustBuild(t,
		catalogtest.Lib("json-api", "g", "a", "1"),
		catalogtest.Lib("json_api", "g", "b", "1"),
		catalogtest.Lib("versions", "g", "c", "1"),
		catalogtest.Lib("2fa", "g", "d", "1"),
		catalogtest.Lib("self.self", "g", "e", "1"),
	)
	src, err := Generate(store)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	_, funcs := methods(t, src)
	for _, fn := range []string{"Libs.JsonApi", "Libs.JsonApi2", "Libs.Versions2", "Libs.X2fa", "Libs.Self2", "LibsSelf.Self2"} {
		if _, ok := funcs[fn]; !ok {
			t.Errorf("missing func %s", fn)
		}
	}
	if got := funcs["Libs.Versions"]; got != "LibsVersions" {
		t.Errorf("Libs.Versions returns %s, want the versions section", got)
	}
}

func TestGenerate_InvalidPackage(t *testing.T) {
	t.Parallel()

	for _, pkg := range []string{"not-a-package", "func", "_"} {
		if _, err := Generate(sampleStore(t), WithPackage(pkg)); !errors.Is(err, ErrInvalidPackage) {
			t.Errorf("Generate(WithPackage(%q)) error = %v, want ErrInvalidPackage", pkg, err)
		}
	}
}

func TestExported(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"kotlin":     "Kotlin",
		"json-api":   "JsonApi",
		"groovyjson": "Groovyjson",
		"2fa":        "X2fa",
		"":           "X",
		"ünicode":    "Ünicode",
	}
	for in, want := range tests {
		if got := exported(in); got != want {
			t.Errorf("exported(%q) = %q, want %q", in, got, want)
		}
	}
}
