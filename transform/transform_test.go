package transform

import (
	"context"
	"errors"
	"testing"

	"github.com/joaochenriques/BIBparsley/bib"
	"github.com/joaochenriques/BIBparsley/rules"
)

// fakeResolver returns deterministic results keyed by title.
type fakeResolver struct {
	fuzzy      map[string]string
	exact      map[string]string
	fuzzyCalls []string
	exactCalls []string
}

var errNoMatch = errors.New("no match")

func (f *fakeResolver) Fuzzy(_ context.Context, title string) (string, error) {
	f.fuzzyCalls = append(f.fuzzyCalls, title)
	if doi, ok := f.fuzzy[title]; ok {
		return doi, nil
	}
	return "", errNoMatch
}

func (f *fakeResolver) Exact(_ context.Context, title string) (string, error) {
	f.exactCalls = append(f.exactCalls, title)
	if doi, ok := f.exact[title]; ok {
		return doi, nil
	}
	return "", errNoMatch
}

func defaultRules(t *testing.T) *rules.RuleSet {
	t.Helper()
	rs, err := rules.Default()
	if err != nil {
		t.Fatalf("loading default rules: %v", err)
	}
	return rs
}

func TestCleanRemovesFieldsAndResolvesDOI(t *testing.T) {
	article := bib.NewEntry("article", "a1")
	article.Set("title", "Some Article")
	article.Set("timestamp", "2020-01-01")
	article.Set("url", "http://example.com")

	book := bib.NewEntry("book", "b1")
	book.Set("title", "Some Book")
	book.Set("keywords", "x, y")

	set := bib.NewSet()
	for _, e := range []*bib.Entry{article, book} {
		if err := set.Add(e); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	resolver := &fakeResolver{
		fuzzy: map[string]string{"Some Article": "10.1000/article"},
		exact: map[string]string{"Some Book": "10.1000/book"},
	}
	cleaner := New(defaultRules(t), resolver)

	if err := cleaner.Clean(context.Background(), set); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if article.Has("timestamp") || article.Has("url") {
		t.Fatal("article dummy fields not removed")
	}
	if doi, _ := article.Get("doi"); doi != "10.1000/article" {
		t.Fatalf("article doi = %q, want %q", doi, "10.1000/article")
	}
	if doi, _ := book.Get("doi"); doi != "10.1000/book" {
		t.Fatalf("book doi = %q, want %q", doi, "10.1000/book")
	}

	// Articles take the fuzzy path, everything else the exact path.
	if len(resolver.fuzzyCalls) != 1 || resolver.fuzzyCalls[0] != "Some Article" {
		t.Fatalf("fuzzy calls = %v, want [Some Article]", resolver.fuzzyCalls)
	}
	if len(resolver.exactCalls) != 1 || resolver.exactCalls[0] != "Some Book" {
		t.Fatalf("exact calls = %v, want [Some Book]", resolver.exactCalls)
	}
}

func TestCleanSkipsEntriesWithDOI(t *testing.T) {
	e := bib.NewEntry("article", "a1")
	e.Set("title", "T")
	e.Set("doi", "10.1000/existing")

	set := bib.NewSet()
	if err := set.Add(e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	resolver := &fakeResolver{}
	cleaner := New(defaultRules(t), resolver)
	if err := cleaner.Clean(context.Background(), set); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if len(resolver.fuzzyCalls)+len(resolver.exactCalls) != 0 {
		t.Fatal("resolver called for entry that already has a doi")
	}
	if doi, _ := e.Get("doi"); doi != "10.1000/existing" {
		t.Fatalf("doi = %q, want %q", doi, "10.1000/existing")
	}
}

func TestCleanAbsorbsLookupFailures(t *testing.T) {
	e := bib.NewEntry("article", "a1")
	e.Set("title", "Unknown Title")

	set := bib.NewSet()
	if err := set.Add(e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	cleaner := New(defaultRules(t), &fakeResolver{})
	if err := cleaner.Clean(context.Background(), set); err != nil {
		t.Fatalf("Clean returned error for lookup miss: %v", err)
	}
	if e.Has("doi") {
		t.Fatal("doi set despite lookup failure")
	}
}

func TestCleanMissingTitleFatal(t *testing.T) {
	e := bib.NewEntry("article", "a1")
	e.Set("year", "1999")

	set := bib.NewSet()
	if err := set.Add(e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	cleaner := New(defaultRules(t), &fakeResolver{})
	err := cleaner.Clean(context.Background(), set)

	var missing *bib.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Clean error = %v, want MissingFieldError", err)
	}
	if missing.ID != "a1" || missing.Name != "title" {
		t.Fatalf("MissingFieldError = %q/%q, want a1/title", missing.ID, missing.Name)
	}
}

func TestCleanNilResolverSkipsResolution(t *testing.T) {
	e := bib.NewEntry("article", "a1")
	e.Set("year", "1999") // no title either; must not be fatal offline

	set := bib.NewSet()
	if err := set.Add(e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	cleaner := New(defaultRules(t), nil)
	if err := cleaner.Clean(context.Background(), set); err != nil {
		t.Fatalf("Clean failed with nil resolver: %v", err)
	}
	if e.Has("doi") {
		t.Fatal("doi set with nil resolver")
	}
}
