package bibtex

import "strings"

// scanner walks an immutable text buffer with a cursor, carrying the
// brace-depth and quote state needed to find BibTeX value boundaries.
// All offsets are byte offsets; the syntax characters that matter are
// single bytes, so multi-byte runes pass through untouched.
type scanner struct {
	text string
	pos  int
}

func newScanner(text string) *scanner {
	return &scanner{text: text}
}

// atEnd reports whether the cursor is past the last byte.
func (s *scanner) atEnd() bool {
	return s.pos >= len(s.text)
}

// peek returns the byte under the cursor.
func (s *scanner) peek() byte {
	return s.text[s.pos]
}

// advance moves the cursor one byte forward.
func (s *scanner) advance() {
	s.pos++
}

// skipSpace advances past spaces, tabs, and newlines.
func (s *scanner) skipSpace() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.advance()
		default:
			return
		}
	}
}

// extractValue scans a field value starting at the cursor, which must
// sit on the first non-whitespace byte after `=`. It accumulates bytes
// while tracking brace depth (`{` +1, `}` -1) and a quote toggle.
//
// Termination, in priority order per byte:
//  1. A `}` that brings the depth back to zero ends a brace-delimited
//     value; the outer braces are stripped when the captured text is
//     exactly brace-wrapped.
//  2. A `,` at depth zero outside quotes ends a bare or quoted value,
//     returned as-is.
//  3. End of text returns whatever was accumulated.
//
// The cursor is left on the terminating byte, or at end of text.
func (s *scanner) extractValue() string {
	var value strings.Builder
	depth := 0
	inQuotes := false

	for ; !s.atEnd(); s.advance() {
		c := s.peek()
		switch {
		case c == '{':
			depth++
			value.WriteByte(c)
		case c == '}':
			depth--
			value.WriteByte(c)
			if depth == 0 {
				return stripOuterBraces(value.String())
			}
		case c == '"':
			inQuotes = !inQuotes
			value.WriteByte(c)
		case c == ',' && depth == 0 && !inQuotes:
			return value.String()
		default:
			value.WriteByte(c)
		}
	}
	return value.String()
}

// stripOuterBraces removes the delimiting braces from a value that is
// exactly brace-wrapped. Inner braces are preserved verbatim.
func stripOuterBraces(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		return value[1 : len(value)-1]
	}
	return value
}
