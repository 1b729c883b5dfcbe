package bib

import "fmt"

// DuplicateIDError reports two records sharing a citation id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate entry id %q", e.ID)
}

// MalformedAuthorError reports an author or editor value that could not
// be split into names.
type MalformedAuthorError struct {
	Raw string
}

func (e *MalformedAuthorError) Error() string {
	return fmt.Sprintf("malformed author field %q", e.Raw)
}

// MissingFieldError reports a field required by a pipeline step but
// absent from the entry.
type MissingFieldError struct {
	ID   string
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("entry %q has no %s field", e.ID, e.Name)
}
