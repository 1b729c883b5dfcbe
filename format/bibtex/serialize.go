package bibtex

import (
	"fmt"
	"io"
	"strings"

	"github.com/joaochenriques/BIBparsley/bib"
	"github.com/joaochenriques/BIBparsley/format"
)

// Serialize writes the entry collection as canonical BibTeX text, one
// record per entry in collection order, each terminated by a blank
// line. Output is deterministic for a given collection state.
func (f *Format) Serialize(w io.Writer, set *bib.Set, opts *format.SerializeOptions) error {
	for _, entry := range set.Entries() {
		text := EntryString(entry)
		if _, err := io.WriteString(w, text); err != nil {
			return fmt.Errorf("writing entry %q: %w", entry.ID, err)
		}
		if opts != nil && opts.Echo != nil {
			if _, err := io.WriteString(opts.Echo, text); err != nil {
				return fmt.Errorf("echoing entry %q: %w", entry.ID, err)
			}
		}
	}
	return nil
}

// EntryString renders a single entry in canonical form: the header
// line, one tab-indented `key = {value},` line per field in insertion
// order, and a closing brace followed by a blank line. Values are
// always brace-wrapped regardless of their original delimiter.
func EntryString(entry *bib.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@%s{%s,\n", entry.Type, entry.ID)
	for _, field := range entry.Fields() {
		fmt.Fprintf(&sb, "\t%s = {%s},\n", field.Name, field.Value)
	}
	sb.WriteString("}\n\n")
	return sb.String()
}
