package normalize

import "github.com/nodeadmin/elreasoner/ontology"

// splitChain rewrites a role-chain subsumption r1 ∘ r2 ∘ ... ∘ rn ⊑ s
// (n > 2) into a cascade of binary chains by threading fresh auxiliary
// roles through the composition: r1 ∘ r2 ⊑ x1, x1 ∘ r3 ⊑ x2, ...,
// x(n-2) ∘ rn ⊑ s. Each emitted statement has a chain of exactly two
// roles, which is NF-F.
func splitChain(s SubObjectPropertyOf, arena *ontology.Arena) ([]ontology.Statement, bool) {
	chain, ok := s.LHS.(ontology.PropertyChain)
	if !ok || len(chain.Roles) <= 2 {
		return nil, false
	}
	roles := chain.Roles
	out := make([]ontology.Statement, 0, len(roles)-1)
	left := roles[0]
	for i := 1; i < len(roles)-1; i++ {
		// left ∘ roles[i] ⊑ x
		x := mintRole(arena)
		out = append(out, SubObjectPropertyOf{
			LHS: ontology.PropertyChain{Roles: []ontology.Entity{left, roles[i]}},
			RHS: x,
		})
		left = x
	}
	out = append(out, SubObjectPropertyOf{
		LHS: ontology.PropertyChain{Roles: []ontology.Entity{left, roles[len(roles)-1]}},
		RHS: s.RHS,
	})
	return out, true
}

// splitClassEquivalence rewrites A1 ≡ A2 ≡ ... ≡ An into the n*(n-1)
// pairwise SubClassOf statements A_i ⊑ A_j for every ordered i != j; each
// re-enters the worklist and is normalized independently.
func splitClassEquivalence(s EquivalentClasses) []ontology.Statement {
	out := make([]ontology.Statement, 0, len(s.Args)*(len(s.Args)-1))
	for i := range s.Args {
		for j := range s.Args {
			if i == j {
				continue
			}
			out = append(out, SubClassOf{LHS: s.Args[i], RHS: s.Args[j]})
		}
	}
	return out
}

// splitPropertyEquivalence rewrites r1 ≡ r2 ≡ ... ≡ rn into the pairwise
// SubObjectPropertyOf statements r_i ⊑ r_j for every ordered i != j. Its
// Args are []ontology.Entity, already atomic roles, so this can only ever
// emit SubObjectPropertyOf statements — there is no shared code path with
// splitClassEquivalence that could cross a role-equivalence into the
// SubClassOf shape.
func splitPropertyEquivalence(s EquivalentObjectProperties) []ontology.Statement {
	out := make([]ontology.Statement, 0, len(s.Args)*(len(s.Args)-1))
	for i := range s.Args {
		for j := range s.Args {
			if i == j {
				continue
			}
			out = append(out, SubObjectPropertyOf{
				LHS: ontology.PropertyAtom{Entity: s.Args[i]},
				RHS: s.Args[j],
			})
		}
	}
	return out
}

// splitRHSConjunction rewrites C ⊑ (B1 ⊓ B2 ⊓ ... ⊓ Bn) into n statements
// C ⊑ Bi. Applies regardless of C's shape; it is always checked before
// the LHS/existential-filler rules so that a conjunction never survives
// on the RHS into later rules.
func splitRHSConjunction(s SubClassOf) ([]ontology.Statement, bool) {
	conj, ok := s.RHS.(ontology.ClassIntersection)
	if !ok {
		return nil, false
	}
	out := make([]ontology.Statement, len(conj.Args))
	for i, b := range conj.Args {
		out[i] = SubClassOf{LHS: s.LHS, RHS: b}
	}
	return out, true
}

// splitComplexToComplex rewrites C ⊑ D, where both C and D are non-atomic,
// into C ⊑ X and X ⊑ D for a fresh atomic X. Each half re-enters the
// worklist, where it falls to the LHS-conjunction or existential-filler
// rules with one side now atomic.
func splitComplexToComplex(s SubClassOf, arena *ontology.Arena) ([]ontology.Statement, bool) {
	if ontology.IsAtomic(s.LHS) || ontology.IsAtomic(s.RHS) {
		return nil, false
	}
	x := mintClass(arena)
	xAtom := ontology.ClassAtom{Entity: x}
	return []ontology.Statement{
		SubClassOf{LHS: s.LHS, RHS: xAtom},
		SubClassOf{LHS: xAtom, RHS: s.RHS},
	}, true
}

// splitLHSConjunction rewrites (C1 ⊓ ... ⊓ Cn) ⊑ D, where D is atomic and
// at least one Ci is non-atomic, into: Ci ⊑ Xi for every non-atomic
// conjunct (fresh atomic Xi), and (C1' ⊓ ... ⊓ Cn') ⊑ D where each Ci' is
// Xi if Ci was non-atomic, or Ci unchanged if it was already atomic. If
// every conjunct is already atomic this rule does not apply — that shape
// is NF-B.
func splitLHSConjunction(s SubClassOf, arena *ontology.Arena) ([]ontology.Statement, bool) {
	conj, ok := s.LHS.(ontology.ClassIntersection)
	if !ok {
		return nil, false
	}
	hasComplex := false
	for _, c := range conj.Args {
		if !ontology.IsAtomic(c) {
			hasComplex = true
			break
		}
	}
	if !hasComplex {
		return nil, false
	}
	newArgs := make([]ontology.ClassExpr, len(conj.Args))
	out := make([]ontology.Statement, 0, len(conj.Args)+1)
	for i, c := range conj.Args {
		if ontology.IsAtomic(c) {
			newArgs[i] = c
			continue
		}
		x := mintClass(arena)
		out = append(out, SubClassOf{LHS: c, RHS: ontology.ClassAtom{Entity: x}})
		newArgs[i] = ontology.ClassAtom{Entity: x}
	}
	out = append(out, SubClassOf{LHS: ontology.ClassIntersection{Args: newArgs}, RHS: s.RHS})
	return out, true
}

// splitLHSExistentialFiller rewrites (∃r.C) ⊑ D, where C is non-atomic,
// into C ⊑ X (fresh atomic X) and (∃r.X) ⊑ D. Only reached once D is
// known atomic (splitComplexToComplex already handles the both-complex
// case), so the rewritten second statement is NF-D once it re-enters the
// worklist.
func splitLHSExistentialFiller(s SubClassOf, arena *ontology.Arena) ([]ontology.Statement, bool) {
	ex, ok := s.LHS.(ontology.SomeValuesFrom)
	if !ok || ontology.IsAtomic(ex.Filler) {
		return nil, false
	}
	x := mintClass(arena)
	return []ontology.Statement{
		SubClassOf{LHS: ex.Filler, RHS: ontology.ClassAtom{Entity: x}},
		SubClassOf{
			LHS: ontology.SomeValuesFrom{Property: ex.Property, Filler: ontology.ClassAtom{Entity: x}},
			RHS: s.RHS,
		},
	}, true
}

// splitRHSExistentialFiller rewrites A ⊑ ∃r.C, where A is atomic and C is
// non-atomic, into C ⊑ X (fresh atomic X) and A ⊑ ∃r.X. Only reached once
// A is known atomic and the RHS conjunction/LHS-conjunction/LHS-existential
// rules have all declined, so the rewritten second statement is NF-C once
// it re-enters the worklist.
func splitRHSExistentialFiller(s SubClassOf, arena *ontology.Arena) ([]ontology.Statement, bool) {
	ex, ok := s.RHS.(ontology.SomeValuesFrom)
	if !ok || ontology.IsAtomic(ex.Filler) {
		return nil, false
	}
	x := mintClass(arena)
	return []ontology.Statement{
		SubClassOf{LHS: ex.Filler, RHS: ontology.ClassAtom{Entity: x}},
		SubClassOf{
			LHS: s.LHS,
			RHS: ontology.SomeValuesFrom{Property: ex.Property, Filler: ontology.ClassAtom{Entity: x}},
		},
	}, true
}

// splitComplexClassAssertion rewrites ClassAssertion(C, a), where C is
// non-atomic, into C ⊑ X (fresh atomic X) and ClassAssertion(X, a); the
// second statement is NF-G.
func splitComplexClassAssertion(s ClassAssertion, arena *ontology.Arena) ([]ontology.Statement, bool) {
	if ontology.IsAtomic(s.Class) {
		return nil, false
	}
	x := mintClass(arena)
	return []ontology.Statement{
		SubClassOf{LHS: s.Class, RHS: ontology.ClassAtom{Entity: x}},
		ClassAssertion{Class: ontology.ClassAtom{Entity: x}, Individual: s.Individual},
	}, true
}

func mintClass(arena *ontology.Arena) ontology.Entity {
	return arena.Mint(ontology.Class)
}

func mintRole(arena *ontology.Arena) ontology.Entity {
	return arena.Mint(ontology.ObjectProperty)
}
