package ontology

// PrefixDecl is a single prefix-name -> IRI-base binding, kept in insertion
// order so JSON/debug dumps and UnknownPrefix error messages are
// deterministic.
type PrefixDecl struct {
	Name string `json:"name"`
	Base string `json:"base"`
}

// Ontology is an in-memory collection of interned entities and an ordered
// sequence of statements about them. It is built by an external parser
// (out of scope for this module — see spec.md §1) or directly through this
// API; the reasoning pipeline never mutates an Ontology after it is handed
// to a Reasoner.
type Ontology struct {
	Arena      *Arena
	statements []Statement
	prefixes   []PrefixDecl
	prefixIdx  map[string]int // prefix name -> index into prefixes
}

// New returns an empty Ontology with owl:Thing/owl:Nothing pre-interned.
func New() *Ontology {
	return &Ontology{
		Arena:     NewArena(),
		prefixIdx: make(map[string]int),
	}
}

// InternEntity returns the existing Entity for (kind, iri), or creates one.
func (o *Ontology) InternEntity(kind Kind, iri string) Entity {
	return o.Arena.Intern(kind, iri)
}

// MintEntity creates a fresh auxiliary entity of the given kind.
func (o *Ontology) MintEntity(kind Kind) Entity {
	return o.Arena.Mint(kind)
}

// AddStatement appends s to the ontology's statement sequence.
func (o *Ontology) AddStatement(s Statement) {
	o.statements = append(o.statements, s)
}

// Statements returns the ontology's statements in insertion order.
func (o *Ontology) Statements() []Statement {
	return o.statements
}

// EntitiesOf returns every interned entity of the given kind.
func (o *Ontology) EntitiesOf(kind Kind) []Entity {
	return o.Arena.EntitiesOf(kind)
}

// AddPrefix registers a prefix->IRI-base binding. Re-registering the same
// name with the same base is a no-op; re-registering with a different base
// returns a *PrefixConflictError.
func (o *Ontology) AddPrefix(name, base string) error {
	if idx, ok := o.prefixIdx[name]; ok {
		existing := o.prefixes[idx].Base
		if existing != base {
			return &PrefixConflictError{Prefix: name, Existing: existing, New: base}
		}
		return nil
	}
	o.prefixIdx[name] = len(o.prefixes)
	o.prefixes = append(o.prefixes, PrefixDecl{Name: name, Base: base})
	return nil
}

// Prefixes returns the ontology's prefix declarations in insertion order.
func (o *Ontology) Prefixes() []PrefixDecl {
	return o.prefixes
}

// ResolvePrefix returns the IRI base for a registered prefix name.
func (o *Ontology) ResolvePrefix(name string) (string, bool) {
	idx, ok := o.prefixIdx[name]
	if !ok {
		return "", false
	}
	return o.prefixes[idx].Base, true
}

// TBoxSize counts class-subsumption/equivalence axioms.
func (o *Ontology) TBoxSize() int {
	n := 0
	for _, s := range o.statements {
		switch s.(type) {
		case SubClassOf, EquivalentClasses:
			n++
		}
	}
	return n
}

// ABoxSize counts class-membership and property assertions.
func (o *Ontology) ABoxSize() int {
	n := 0
	for _, s := range o.statements {
		switch s.(type) {
		case ClassAssertion, ObjectPropertyAssertion:
			n++
		}
	}
	return n
}

// RBoxSize counts object-property subsumption/equivalence axioms.
func (o *Ontology) RBoxSize() int {
	n := 0
	for _, s := range o.statements {
		switch s.(type) {
		case SubObjectPropertyOf, EquivalentObjectProperties:
			n++
		}
	}
	return n
}
