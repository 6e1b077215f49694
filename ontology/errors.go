package ontology

import "fmt"

// PrefixConflictError reports an attempt to register a prefix name with an
// IRI base that differs from one already registered under that name.
type PrefixConflictError struct {
	Prefix   string
	Existing string
	New      string
}

func (e *PrefixConflictError) Error() string {
	return fmt.Sprintf("ontology: prefix %q already bound to %q, cannot rebind to %q",
		e.Prefix, e.Existing, e.New)
}
