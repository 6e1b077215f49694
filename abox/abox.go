// Package abox saturates the class-membership and property-assertion facts
// of a normalized ontology under its computed subsumer relations and role
// chains, producing the two output tables the query engine answers
// conjunctive queries over.
package abox

import (
	"github.com/nodeadmin/elreasoner/ontology"
	"github.com/nodeadmin/elreasoner/rbox"
	"github.com/nodeadmin/elreasoner/reasoner"
)

// ClassAssertionRow is one row of the saturated ClassAssertion table,
// columns {individual, className}.
type ClassAssertionRow struct {
	Individual ontology.Entity
	Class      ontology.Entity
}

// ObjectPropertyAssertionRow is one row of the saturated
// ObjectPropertyAssertion table, columns {objectProperty, leftIndividual,
// rightIndividual}.
type ObjectPropertyAssertionRow struct {
	Property ontology.Entity
	Left     ontology.Entity
	Right    ontology.Entity
}

// Saturation is the saturated ABox: the two output tables the query
// engine evaluates basic graph patterns against.
type Saturation struct {
	ClassAssertions    []ClassAssertionRow
	PropertyAssertions []ObjectPropertyAssertionRow
}

// Saturate computes the saturated ABox from a normalized ontology's NF-G/
// NF-H assertions, the class-subsumption engine's derived subsumers, and
// the role hierarchy's chain indexes. ont is expected to be the same
// normalized ontology r was built from.
func Saturate(ont *ontology.Ontology, r *reasoner.Reasoner, h *rbox.Hierarchy) *Saturation {
	s := &Saturation{}
	closeClassAssertions(ont, r, s)
	closePropertyAssertions(ont, h, s)
	return s
}

// closeClassAssertions implements §4.5's class-assertion closure: for
// every NF-G ClassAssertion(A, a) and every B ∈ subsumers_C(A) that is not
// an auxiliary minted during normalization, emit (a, B).
func closeClassAssertions(ont *ontology.Ontology, r *reasoner.Reasoner, s *Saturation) {
	seen := ontology.NewPairStore[ontology.Entity]()
	for _, stmt := range ont.Statements() {
		ca, ok := stmt.(ontology.ClassAssertion)
		if !ok {
			continue
		}
		atom, ok := ca.Class.(ontology.ClassAtom)
		if !ok {
			continue // normalize guarantees NF-G; skip defensively
		}
		for _, b := range r.Subsumers(atom.Entity) {
			if ont.Arena.IsAuxiliary(b) {
				continue
			}
			if !seen.Add(ca.Individual, b) {
				continue
			}
			s.ClassAssertions = append(s.ClassAssertions, ClassAssertionRow{
				Individual: ca.Individual,
				Class:      b,
			})
		}
	}
}

// closePropertyAssertions implements §4.5's property-assertion closure.
// Step 2's chain-derived triple is added under every q' ∈ subsumers_R(q) —
// the chain's result role q itself (the role hierarchy is reflexive) and
// each role subsuming it — never under a variable reused from an
// unrelated branch; this is the off-by-one the design notes call out as
// a bug in the source this spec was distilled from.
func closePropertyAssertions(ont *ontology.Ontology, h *rbox.Hierarchy, s *Saturation) {
	working := ontology.NewTripletStore[ontology.Entity]()

	for _, stmt := range ont.Statements() {
		pa, ok := stmt.(ontology.ObjectPropertyAssertion)
		if !ok {
			continue
		}
		for _, q := range h.SubsumersOf(pa.Property) {
			working.Add(q, pa.Subject, pa.Object)
		}
	}

	type chainAxiom struct {
		left, right, result ontology.Entity
	}
	var chains []chainAxiom
	for _, stmt := range ont.Statements() {
		spo, ok := stmt.(ontology.SubObjectPropertyOf)
		if !ok {
			continue
		}
		chain, ok := spo.LHS.(ontology.PropertyChain)
		if !ok || len(chain.Roles) != 2 {
			continue
		}
		chains = append(chains, chainAxiom{left: chain.Roles[0], right: chain.Roles[1], result: spo.RHS})
	}

	for changed := true; changed; {
		changed = false
		for _, ax := range chains {
			for a, m := range working.TriplesWithFirst(ax.left) {
				for b := range working.TriplesWithFirstTwo(ax.right, m) {
					for _, qPrime := range h.SubsumersOf(ax.result) {
						if working.Add(qPrime, a, b) {
							changed = true
						}
					}
				}
			}
		}
	}

	for triple := range working.All() {
		p, a, b := triple[0], triple[1], triple[2]
		if ont.Arena.IsAuxiliary(p) {
			continue
		}
		s.PropertyAssertions = append(s.PropertyAssertions, ObjectPropertyAssertionRow{
			Property: p,
			Left:     a,
			Right:    b,
		})
	}
}
