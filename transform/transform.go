// Package transform applies the cleanup pipeline to parsed entries:
// field removal per rule set, then DOI resolution for entries that
// lack one.
package transform

import (
	"context"
	"log/slog"

	"github.com/joaochenriques/BIBparsley/bib"
	"github.com/joaochenriques/BIBparsley/rules"
)

// Resolver looks up a DOI by publication title. Implementations return
// an error both for "no match" and for transport failures; the cleaner
// treats every error the same way and leaves the entry unchanged.
type Resolver interface {
	// Fuzzy returns the DOI of the single best-ranked match.
	Fuzzy(ctx context.Context, title string) (string, error)

	// Exact returns the DOI of a case-insensitive exact title match
	// among the top-ranked candidates.
	Exact(ctx context.Context, title string) (string, error)
}

// Cleaner mutates entries in place. A nil Resolver skips DOI
// resolution entirely (offline mode).
type Cleaner struct {
	Rules    *rules.RuleSet
	Resolver Resolver
	Logger   *slog.Logger
}

// New creates a cleaner with the given rule set and resolver.
func New(rs *rules.RuleSet, resolver Resolver) *Cleaner {
	return &Cleaner{Rules: rs, Resolver: resolver}
}

// Clean applies both passes to every entry in collection order.
// Lookup misses are absorbed per entry; a missing title on an entry
// that needs resolution is fatal.
func (c *Cleaner) Clean(ctx context.Context, set *bib.Set) error {
	for _, entry := range set.Entries() {
		if c.Rules != nil {
			c.Rules.Apply(entry)
		}
		if err := c.resolveDOI(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// resolveDOI fills in the doi field when absent. Articles use the
// fuzzy single-best-match query; every other type requires an exact
// title match. Lookup errors leave the entry unchanged.
func (c *Cleaner) resolveDOI(ctx context.Context, entry *bib.Entry) error {
	if c.Resolver == nil || entry.Has("doi") {
		return nil
	}

	title, ok := entry.Get("title")
	if !ok {
		return &bib.MissingFieldError{ID: entry.ID, Name: "title"}
	}

	var (
		doi string
		err error
	)
	if entry.Type == "article" {
		doi, err = c.Resolver.Fuzzy(ctx, title)
	} else {
		doi, err = c.Resolver.Exact(ctx, title)
	}
	if err != nil {
		c.logger().Warn("doi lookup failed", "id", entry.ID, "title", title, "error", err)
		return nil
	}

	entry.Set("doi", doi)
	return nil
}

func (c *Cleaner) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
