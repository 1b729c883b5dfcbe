// Package normalize provides the pure text-normalization rules applied
// to BibTeX field values: author/editor name reformatting and page-range
// collapsing.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/joaochenriques/BIBparsley/bib"
)

// AuthorSeparator joins normalized names back into a BibTeX name list.
const AuthorSeparator = " and "

// Pattern for the BibTeX name-list separator: the word "and" surrounded
// by whitespace, case-sensitive.
var andSeparator = regexp.MustCompile(`\s+and\s+`)

// AbbreviateName reduces a given-name string to initials.
//
// The name is split on whitespace after inserting a space behind every
// period. An all-uppercase alphabetic token is expanded into one
// period-suffixed letter per rune ("JRR" -> "J. R. R."); any other
// alphabetic token is reduced to its first letter plus a period
// ("John" -> "J."); everything else is kept unchanged, which leaves
// already-abbreviated tokens like "J." alone.
func AbbreviateName(name string) string {
	parts := strings.Fields(strings.ReplaceAll(name, ".", ". "))

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		switch {
		case isUpperAlpha(part):
			for _, r := range part {
				out = append(out, string(r)+".")
			}
		case isAlpha(part):
			first := []rune(part)[0]
			out = append(out, string(unicode.ToUpper(first))+".")
		default:
			out = append(out, part)
		}
	}
	return strings.Join(out, " ")
}

// SplitAuthors splits a BibTeX author or editor value into normalized
// names. Both "Last, First" and "First Last" forms are handled; a
// single token (e.g. an organization name) is kept verbatim.
//
// A value that cannot be split, such as an empty name between
// separators, returns a *bib.MalformedAuthorError naming the raw input.
func SplitAuthors(value string) ([]string, error) {
	names := andSeparator.Split(value, -1)

	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			return nil, &bib.MalformedAuthorError{Raw: value}
		case strings.Contains(name, ","):
			last, first, _ := strings.Cut(name, ",")
			last = strings.TrimSpace(last)
			first = strings.TrimSpace(first)
			if last == "" || first == "" {
				return nil, &bib.MalformedAuthorError{Raw: value}
			}
			out = append(out, AbbreviateName(first)+" "+last)
		default:
			if i := strings.LastIndex(name, " "); i >= 0 {
				out = append(out, AbbreviateName(name[:i])+" "+name[i+1:])
			} else {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// FormatAuthors normalizes an author or editor value and rejoins the
// names with the literal " and " separator.
func FormatAuthors(value string) (string, error) {
	names, err := SplitAuthors(value)
	if err != nil {
		return "", err
	}
	return strings.Join(names, AuthorSeparator), nil
}

// isAlpha reports whether s is non-empty and entirely letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isUpperAlpha reports whether s is non-empty and entirely uppercase
// letters.
func isUpperAlpha(s string) bool {
	if !isAlpha(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
