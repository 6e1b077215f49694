package ontology

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Entity is an opaque, comparable handle into an Arena's per-kind table.
//
// Two Entity values compare equal with == iff they were interned from the
// same (kind, IRI) pair in the same Arena — this is the "equality is
// identity" invariant the data model requires, implemented as an integer
// comparison rather than a string or pointer comparison, per the
// arena-plus-index pattern.
type Entity struct {
	kind Kind
	id   uint32
}

// Kind reports the entity's category.
func (e Entity) Kind() Kind { return e.kind }

// Origin tags where a minted entity came from, for filtering auxiliaries
// out of user-visible output without relying solely on naming convention.
type Origin uint8

const (
	// OriginSource marks an entity that was present in the source ontology.
	OriginSource Origin = iota
	// OriginNormalizer marks an entity minted while normalizing statements.
	OriginNormalizer
)

type entityRecord struct {
	iri    string // exactly as first interned, byte-for-byte
	origin Origin
}

// Arena interns entities by (kind, IRI) and mints fresh auxiliary entities.
// It is the "per-kind arena indexed by IRI" the design notes call for:
// entities are opaque (Kind, index) handles, and the hot paths throughout
// normalize/rbox/reasoner/abox compare and hash Entity values, never IRI
// strings.
type Arena struct {
	records [3][]entityRecord   // indexed by Kind
	byIRI   [3]map[string]Entity // indexed by Kind, keyed by NFC-normalized IRI
	nextID  [3]uint32            // per-kind count of entities; the next Entity id
	minted  [3]uint32            // per-kind last n used for a minted prefix_k++n name
}

// NewArena returns an empty Arena with owl:Thing pre-interned as a Class.
func NewArena() *Arena {
	a := &Arena{}
	for k := 0; k < 3; k++ {
		a.byIRI[k] = make(map[string]Entity, 64)
	}
	a.Intern(Class, "owl:Thing")
	a.Intern(Class, "owl:Nothing")
	return a
}

// Thing returns the interned owl:Thing entity.
func (a *Arena) Thing() Entity { return a.Intern(Class, "owl:Thing") }

// Nothing returns the interned owl:Nothing entity.
func (a *Arena) Nothing() Entity { return a.Intern(Class, "owl:Nothing") }

func normalizeIRIKey(iri string) string {
	return norm.NFC.String(iri)
}

// Intern returns the existing Entity for (kind, iri), or creates one.
// Idempotent: interning the same (kind, iri) pair twice returns the same
// Entity, even if the two occurrences differ only by Unicode normalization
// form — the key used for lookup is NFC-normalized, but IRI() always
// returns the exact bytes of the first occurrence.
func (a *Arena) Intern(kind Kind, iri string) Entity {
	key := normalizeIRIKey(iri)
	if e, ok := a.byIRI[kind][key]; ok {
		return e
	}
	id := a.nextID[kind]
	a.nextID[kind]++
	a.records[kind] = append(a.records[kind], entityRecord{iri: iri, origin: OriginSource})
	e := Entity{kind: kind, id: id}
	a.byIRI[kind][key] = e
	return e
}

// Mint creates a fresh entity with a generated IRI (prefix_k++n for the
// smallest unused n), tagged OriginNormalizer.
func (a *Arena) Mint(kind Kind) Entity {
	for {
		a.minted[kind]++
		candidate := fmt.Sprintf("%s%d", kind.prefix(), a.minted[kind])
		key := normalizeIRIKey(candidate)
		if _, exists := a.byIRI[kind][key]; exists {
			// Extremely unlikely collision with a source IRI that happens
			// to look like an auxiliary name; bump past it.
			continue
		}
		id := a.nextID[kind]
		a.nextID[kind]++
		a.records[kind] = append(a.records[kind], entityRecord{iri: candidate, origin: OriginNormalizer})
		e := Entity{kind: kind, id: id}
		a.byIRI[kind][key] = e
		return e
	}
}

// IRI returns e's interned IRI string, exactly as first seen.
func (a *Arena) IRI(e Entity) string {
	recs := a.records[e.kind]
	if int(e.id) >= len(recs) {
		return ""
	}
	return recs[e.id].iri
}

// Origin returns where e came from: the source ontology, or minted during
// normalization.
func (a *Arena) Origin(e Entity) Origin {
	recs := a.records[e.kind]
	if int(e.id) >= len(recs) {
		return OriginSource
	}
	return recs[e.id].origin
}

// IsAuxiliary reports whether e was minted during normalization rather than
// present in the source ontology. It reads the provenance tag only; the
// C_/OP_/I_ naming convention is not consulted.
func (a *Arena) IsAuxiliary(e Entity) bool {
	isAux := a.Origin(e) == OriginNormalizer
	return isAux
}

// Lookup returns the Entity for (kind, iri) if it has been interned.
func (a *Arena) Lookup(kind Kind, iri string) (Entity, bool) {
	e, ok := a.byIRI[kind][normalizeIRIKey(iri)]
	return e, ok
}

// EntitiesOf returns every interned entity of the given kind, in interning
// order (owl:Thing/owl:Nothing first for Class).
func (a *Arena) EntitiesOf(kind Kind) []Entity {
	recs := a.records[kind]
	out := make([]Entity, len(recs))
	for i := range recs {
		out[i] = Entity{kind: kind, id: uint32(i)}
	}
	return out
}

// Count returns the number of interned entities of the given kind.
func (a *Arena) Count(kind Kind) int { return len(a.records[kind]) }

// Clone returns an independent copy of a. Entities already interned in a
// keep the same (Kind, id) pair in the clone, so Entity handles obtained
// from a remain valid and comparable against the clone; the clone just has
// room to mint its own auxiliaries without mutating a. This is how
// normalize hands back a new Ontology that "shares the original entity
// set plus newly minted auxiliaries" without ever writing through a's
// pointer.
func (a *Arena) Clone() *Arena {
	c := &Arena{}
	for k := 0; k < 3; k++ {
		c.records[k] = append([]entityRecord(nil), a.records[k]...)
		c.byIRI[k] = make(map[string]Entity, len(a.byIRI[k]))
		for key, e := range a.byIRI[k] {
			c.byIRI[k][key] = e
		}
		c.nextID[k] = a.nextID[k]
		c.minted[k] = a.minted[k]
	}
	return c
}

// Index returns e's dense integer index within its kind — the handle value
// the hot-path pair/triplet stores use directly as array offsets.
func (e Entity) Index() uint32 { return e.id }
