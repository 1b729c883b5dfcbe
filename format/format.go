// Package format defines the interface for bibliography format plugins.
package format

import (
	"io"

	"github.com/joaochenriques/BIBparsley/bib"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "bibtex")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can parse input into an entry collection.
type Parser interface {
	Format

	// Parse reads input and returns the ordered entry collection.
	// Options is format-specific configuration.
	Parse(r io.Reader, opts *ParseOptions) (*bib.Set, error)
}

// Serializer is a format that can write an entry collection to output.
type Serializer interface {
	Format

	// Serialize writes the entry collection to the output.
	// Options is format-specific configuration.
	Serialize(w io.Writer, set *bib.Set, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// SourceName is an identifier for the source (for error messages)
	SourceName string

	// Strict fails on records whose header is malformed instead of
	// silently skipping them
	Strict bool
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Echo receives a copy of each serialized entry as it is written,
	// e.g. for per-entry progress output.
	Echo io.Writer
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{}
}
