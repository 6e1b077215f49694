package reasoner

import "github.com/nodeadmin/elreasoner/ontology"

// conjunctiveAxiom is a normalized NF-A (single conjunct) or NF-B (n >= 2
// conjuncts) subsumption: Conjuncts ⊑ RHS, every entry atomic.
type conjunctiveAxiom struct {
	conjuncts []ontology.Entity
	rhs       ontology.Entity
}

// existentialEdgeAxiom is a normalized NF-C subsumption: LHS ⊑ ∃property.filler.
type existentialEdgeAxiom struct {
	property ontology.Entity
	filler   ontology.Entity
}

// indexes is the set of lookup tables built once from a normalized
// ontology's statements, consulted by the seeding functions during
// saturation. None of them are mutated after buildIndexes returns.
type indexes struct {
	// byConjunct maps an atomic class B to every conjunctiveAxiom whose
	// conjunct set contains B — seed-node-if's lookup.
	byConjunct map[ontology.Entity][]*conjunctiveAxiom
	// byExistentialLHS maps an atomic class B to every existentialEdgeAxiom
	// B ⊑ ∃p.C — seed-edge's lookup.
	byExistentialLHS map[ontology.Entity][]existentialEdgeAxiom
	// byPropertyAndFiller maps (q, B) to every D with NF-D axiom ∃q.B ⊑ D
	// — seed-node's lookup.
	byPropertyAndFiller map[ontology.Entity]map[ontology.Entity][]ontology.Entity
}

func buildIndexes(ont *ontology.Ontology) *indexes {
	idx := &indexes{
		byConjunct:          make(map[ontology.Entity][]*conjunctiveAxiom),
		byExistentialLHS:    make(map[ontology.Entity][]existentialEdgeAxiom),
		byPropertyAndFiller: make(map[ontology.Entity]map[ontology.Entity][]ontology.Entity),
	}
	for _, stmt := range ont.Statements() {
		sc, ok := stmt.(ontology.SubClassOf)
		if !ok {
			continue
		}
		switch lhs := sc.LHS.(type) {
		case ontology.ClassAtom:
			switch rhs := sc.RHS.(type) {
			case ontology.ClassAtom:
				// NF-A: A ⊑ B, modeled as a one-conjunct conjunctiveAxiom
				// so seed-node-if's lookup covers both NF-A and NF-B.
				idx.addConjunctiveAxiom([]ontology.Entity{lhs.Entity}, rhs.Entity)
			case ontology.SomeValuesFrom:
				// NF-C: A ⊑ ∃p.C
				filler, ok := rhs.Filler.(ontology.ClassAtom)
				if !ok {
					continue // not normal form; skip defensively
				}
				idx.byExistentialLHS[lhs.Entity] = append(idx.byExistentialLHS[lhs.Entity], existentialEdgeAxiom{
					property: rhs.Property,
					filler:   filler.Entity,
				})
			}
		case ontology.ClassIntersection:
			rhs, ok := sc.RHS.(ontology.ClassAtom)
			if !ok {
				continue
			}
			conjuncts := make([]ontology.Entity, 0, len(lhs.Args))
			for _, arg := range lhs.Args {
				atom, ok := arg.(ontology.ClassAtom)
				if !ok {
					conjuncts = nil
					break // not normal form; skip defensively
				}
				conjuncts = append(conjuncts, atom.Entity)
			}
			if conjuncts != nil {
				idx.addConjunctiveAxiom(conjuncts, rhs.Entity)
			}
		case ontology.SomeValuesFrom:
			rhs, ok := sc.RHS.(ontology.ClassAtom)
			if !ok {
				continue
			}
			filler, ok := lhs.Filler.(ontology.ClassAtom)
			if !ok {
				continue
			}
			// NF-D: ∃q.B ⊑ D
			byFiller, ok := idx.byPropertyAndFiller[lhs.Property]
			if !ok {
				byFiller = make(map[ontology.Entity][]ontology.Entity)
				idx.byPropertyAndFiller[lhs.Property] = byFiller
			}
			byFiller[filler.Entity] = append(byFiller[filler.Entity], rhs.Entity)
		}
	}
	return idx
}

func (idx *indexes) addConjunctiveAxiom(conjuncts []ontology.Entity, rhs ontology.Entity) {
	ax := &conjunctiveAxiom{conjuncts: conjuncts, rhs: rhs}
	for _, c := range conjuncts {
		idx.byConjunct[c] = append(idx.byConjunct[c], ax)
	}
}
