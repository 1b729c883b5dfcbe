package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joaochenriques/BIBparsley/bib"
)

func newEntryWithFields(entryType string, names ...string) *bib.Entry {
	e := bib.NewEntry(entryType, "key1")
	for _, name := range names {
		e.Set(name, "x")
	}
	return e
}

func TestDefaultRules(t *testing.T) {
	rs, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if rs.Name != "default" {
		t.Fatalf("Name = %q, want %q", rs.Name, "default")
	}
	if len(rs.Strip) != 4 {
		t.Fatalf("generic strip list = %v, want 4 fields", rs.Strip)
	}
	if _, ok := rs.Types["article"]; !ok {
		t.Fatal("no article rules in default rule set")
	}
}

func TestGetNamedRuleSet(t *testing.T) {
	rs, err := Get("minimal")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rs.Name != "minimal" {
		t.Fatalf("Name = %q, want %q", rs.Name, "minimal")
	}
	if len(rs.Types) != 0 {
		t.Fatalf("per-type rules = %v, want none", rs.Types)
	}

	e := newEntryWithFields("article", "timestamp", "url", "title")
	rs.Apply(e)

	if e.Has("timestamp") {
		t.Fatal("timestamp kept, want removed")
	}
	for _, name := range []string{"url", "title"} {
		if !e.Has(name) {
			t.Fatalf("%s removed, want kept", name)
		}
	}
}

func TestGetUnknownRuleSet(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Fatal("Get succeeded for unknown rule set, want error")
	}
}

func TestListRuleSets(t *testing.T) {
	sets, err := List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	names := make([]string, len(sets))
	for i, rs := range sets {
		names[i] = rs.Name
		if rs.Description == "" {
			t.Fatalf("rule set %q has no description", rs.Name)
		}
	}

	want := []string{"default", "minimal"}
	if len(names) != len(want) {
		t.Fatalf("rule sets = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("rule sets = %v, want %v", names, want)
		}
	}
}

func TestApplyArticle(t *testing.T) {
	rs, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	e := newEntryWithFields("article", "timestamp", "issn", "url", "title")
	rs.Apply(e)

	if e.Len() != 1 {
		t.Fatalf("field count after Apply = %d, want 1", e.Len())
	}
	if !e.Has("title") {
		t.Fatal("title removed, want kept")
	}
}

func TestApplyBookKeepsArticleOnlyFields(t *testing.T) {
	rs, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	e := newEntryWithFields("book", "timestamp", "issn", "url", "title")
	rs.Apply(e)

	if e.Has("timestamp") {
		t.Fatal("timestamp kept, want removed")
	}
	for _, name := range []string{"issn", "url", "title"} {
		if !e.Has(name) {
			t.Fatalf("%s removed from book entry, want kept", name)
		}
	}
}

func TestLoadCustomRules(t *testing.T) {
	content := "name: custom\nstrip: [note]\ntypes:\n  book:\n    strip: [series]\n"
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	rs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	e := newEntryWithFields("book", "note", "series", "title")
	rs.Apply(e)

	if e.Has("note") || e.Has("series") {
		t.Fatalf("note/series kept, want removed")
	}
	if !e.Has("title") {
		t.Fatal("title removed, want kept")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded for missing file, want error")
	}
}
