package bibtex

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joaochenriques/BIBparsley/bib"
	"github.com/joaochenriques/BIBparsley/format"
	"github.com/joaochenriques/BIBparsley/normalize"
)

// Parse reads BibTeX source and returns the ordered entry collection.
//
// The document is scanned for `@`-delimited records using brace-depth
// matching. A record whose header line carries no `{` is skipped
// (logged at debug level) unless opts.Strict is set. Structural errors
// such as a duplicate citation id abort the whole parse with no
// partial result.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) (*bib.Set, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	text := string(data)
	set := bib.NewSet()

	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}

		// Find the matching close of this record: depth returns to
		// zero after having gone positive.
		depth := 0
		end := -1
	scan:
		for j := i; j < len(text); j++ {
			switch text[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = j
					break scan
				}
			}
		}
		if end < 0 {
			// Unterminated record; nothing more to parse.
			break
		}

		if err := parseRecord(text[i:end+1], set, opts); err != nil {
			return nil, err
		}
		i = end
	}

	return set, nil
}

// parseRecord splits one `@type{id, ...}` span into header and field
// block and adds the resulting entry to the collection.
func parseRecord(record string, set *bib.Set, opts *format.ParseOptions) error {
	header, rest, _ := strings.Cut(record, "\n")
	header = strings.TrimSpace(header)

	idx := strings.IndexByte(header, '{')
	if idx < 0 {
		if opts.Strict {
			return fmt.Errorf("%s: record header %q has no {", opts.SourceName, header)
		}
		slog.Debug("skipping record with malformed header",
			"source", opts.SourceName, "header", header)
		return nil
	}

	entryType := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[:idx], "@")))
	id := strings.TrimSuffix(strings.TrimSpace(header[idx+1:]), ",")

	entry := bib.NewEntry(entryType, id)

	// The remaining lines form the field block; the record's own
	// closing brace is not part of any value.
	block := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "}"))

	if err := parseFields(block, entry); err != nil {
		return fmt.Errorf("entry %q: %w", id, err)
	}

	return set.Add(entry)
}

// parseFields walks a `key = value` block, extracting each value with
// the scanner and applying per-key normalization.
func parseFields(block string, entry *bib.Entry) error {
	s := newScanner(block)

	for ; !s.atEnd(); s.advance() {
		if s.peek() != '=' {
			continue
		}

		// The key runs from the most recent newline to the `=`.
		keyStart := strings.LastIndexByte(s.text[:s.pos], '\n') + 1
		key := strings.ToLower(strings.TrimSpace(s.text[keyStart:s.pos]))

		s.advance()
		s.skipSpace()

		value := strings.TrimSuffix(s.extractValue(), ",")

		switch key {
		case "author", "editor":
			formatted, err := normalize.FormatAuthors(value)
			if err != nil {
				return err
			}
			value = formatted
		case "pages":
			value = normalize.CollapsePageRange(value)
		}

		entry.Set(key, value)
	}

	return nil
}
