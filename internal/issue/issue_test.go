// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_AllIdsRegistered(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(ConfigLoadFailedId) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), ConfigLoadFailedId)
	}
	for i, iss := range values {
		if want := Id(i + 1); iss.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, iss.Id(), want)
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", iss.Id())
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
	iss := Get(DuplicateAliasId)
	if iss == nil {
		t.Fatal("Get(DuplicateAliasId) returned nil")
	}
	if !strings.Contains(string(iss.MarkdownMsg()), "Duplicate alias") {
		t.Errorf("unexpected message: %s", iss.MarkdownMsg())
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	iss := Get(ReservedAliasId)
	md := iss.Markdown()
	if !strings.Contains(md, "## See also") || !strings.Contains(md, string(gradleCatalogDocs)) {
		t.Errorf("Markdown() should list doc links, got:\n%s", md)
	}

	links := iss.DocLinks()
	links[0] = "mutated"
	if iss.DocLinks()[0] == "mutated" {
		t.Error("DocLinks() should return a copy")
	}

	if strings.Contains(Get(UnsupportedFormatId).Markdown(), "See also") {
		t.Error("issues without links should not render a See also section")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(AliasNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Alias not found") {
		t.Errorf("Render() output should contain the title, got:\n%s", out)
	}
}

func TestId_StringAndLookup(t *testing.T) {
	t.Parallel()

	for _, iss := range Values() {
		name := iss.Id().String()
		if strings.HasPrefix(name, "issue-") {
			t.Errorf("issue %d has no name", iss.Id())
		}
		if got := Lookup(name); got != iss {
			t.Errorf("Lookup(%q) = %v, want issue %d", name, got, iss.Id())
		}
	}
	if got := Id(99).String(); got != "issue-99" {
		t.Errorf("Id(99).String() = %q, want issue-99", got)
	}
	if Lookup("nope") != nil {
		t.Error("Lookup(nope) should return nil")
	}
}
