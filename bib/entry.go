// Package bib provides the record model for BibTeX bibliographies:
// entries with an ordered field list, and ordered entry collections
// keyed by citation id.
package bib

// Field is a single key/value pair within an entry. Names are stored
// lowercased; values never carry their delimiting outer braces.
type Field struct {
	Name  string
	Value string
}

// Entry represents one bibliographic record.
//
// Field order is a first-class invariant: fields are kept as an ordered
// list, insertion order = order of appearance in the source, and
// serialization replays that order.
type Entry struct {
	// Type is the lowercased entry type, e.g. "article".
	Type string

	// ID is the citation key, case preserved.
	ID string

	fields []Field
}

// NewEntry creates an entry with no fields.
func NewEntry(entryType, id string) *Entry {
	return &Entry{Type: entryType, ID: id}
}

// Get returns the value for a field name.
func (e *Entry) Get(name string) (string, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether the entry carries a field.
func (e *Entry) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Set stores a field value. A repeated name overwrites the stored value
// but keeps its original position; a new name appends.
func (e *Entry) Set(name, value string) {
	for i, f := range e.fields {
		if f.Name == name {
			e.fields[i].Value = value
			return
		}
	}
	e.fields = append(e.fields, Field{Name: name, Value: value})
}

// Delete removes a field, reporting whether it was present.
func (e *Entry) Delete(name string) bool {
	for i, f := range e.fields {
		if f.Name == name {
			e.fields = append(e.fields[:i], e.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Fields returns the fields in insertion order. The returned slice is
// shared with the entry and must not be mutated by callers.
func (e *Entry) Fields() []Field {
	return e.fields
}

// Len returns the number of fields.
func (e *Entry) Len() int {
	return len(e.fields)
}

// Set is an ordered collection of entries keyed by citation id.
// Insertion order = order of first appearance in the source, preserved
// through the whole pipeline so output matches input ordering.
type Set struct {
	entries []*Entry
	byID    map[string]*Entry
}

// NewSet creates an empty collection.
func NewSet() *Set {
	return &Set{byID: make(map[string]*Entry)}
}

// Add appends an entry. A duplicate citation id is a fatal condition,
// never a silent overwrite.
func (s *Set) Add(e *Entry) error {
	if _, ok := s.byID[e.ID]; ok {
		return &DuplicateIDError{ID: e.ID}
	}
	s.byID[e.ID] = e
	s.entries = append(s.entries, e)
	return nil
}

// Get returns the entry for a citation id.
func (s *Set) Get(id string) (*Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Entries returns the entries in insertion order.
func (s *Set) Entries() []*Entry {
	return s.entries
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}
