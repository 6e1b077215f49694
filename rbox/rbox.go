// Package rbox builds the role hierarchy the class-subsumption engine
// consults for role-chain lookups: the reflexive-transitive closure of
// simple role subsumption, and two chain indexes keyed by left and right
// chain partner respectively.
package rbox

import "github.com/nodeadmin/elreasoner/ontology"

// Hierarchy is the role-hierarchy closure computed from a normalized
// ontology's NF-E (r ⊑ s) and NF-F (r ∘ s ⊑ q) axioms.
type Hierarchy struct {
	// Subsumers is subsumers_R: (r, r) for every role, plus every (r, s)
	// reachable by one or more NF-E steps.
	Subsumers *ontology.PairStore[ontology.Entity]
	// Left is L[r][s] ∋ q for r ∘ s ⊑ q, indexed by left chain partner
	// first — Left.TriplesWithFirst(r) yields (s, q) pairs.
	Left *ontology.TripletStore[ontology.Entity]
	// Right is R[s][r] ∋ q for r ∘ s ⊑ q, indexed by right chain partner
	// first — Right.TriplesWithFirst(s) yields (r, q) pairs.
	Right *ontology.TripletStore[ontology.Entity]

	cycles [][2]ontology.Entity
}

// Build computes the role hierarchy from ont's NF-E/NF-F axioms. ont is
// expected to already be in normal form (the output of normalize.Normalize);
// Build does not itself normalize anything.
func Build(ont *ontology.Ontology) *Hierarchy {
	h := &Hierarchy{
		Subsumers: ontology.NewPairStore[ontology.Entity](),
		Left:      ontology.NewTripletStore[ontology.Entity](),
		Right:     ontology.NewTripletStore[ontology.Entity](),
	}

	roles := ont.EntitiesOf(ontology.ObjectProperty)
	for _, r := range roles {
		h.Subsumers.Add(r, r)
	}

	direct := ontology.NewPairStore[ontology.Entity]()
	for _, stmt := range ont.Statements() {
		spo, ok := stmt.(ontology.SubObjectPropertyOf)
		if !ok {
			continue
		}
		switch lhs := spo.LHS.(type) {
		case ontology.PropertyAtom:
			direct.Add(lhs.Entity, spo.RHS)
		case ontology.PropertyChain:
			if len(lhs.Roles) != 2 {
				continue // normalize guarantees NF-F chains have exactly two roles
			}
			left, right := lhs.Roles[0], lhs.Roles[1]
			h.Left.Add(left, right, spo.RHS)
			h.Right.Add(right, left, spo.RHS)
		}
	}

	for _, r := range roles {
		h.closeFrom(r, direct)
	}
	h.detectCycles(roles)
	return h
}

// closeFrom runs a BFS over direct's edges starting at r, recording every
// reachable role as a subsumer of r.
func (h *Hierarchy) closeFrom(r ontology.Entity, direct *ontology.PairStore[ontology.Entity]) {
	queue := []ontology.Entity{r}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range direct.PairsWithFirst(cur) {
			if h.Subsumers.Add(r, next) {
				queue = append(queue, next)
			}
		}
	}
}

// detectCycles records every unordered pair {r, s} with r ⊑ s ⊑ r,
// r != s — a role cycle introduced by mutual subsumption. Such cycles are
// legal (r and s collapse into equivalent roles) and are reported, not
// rejected.
func (h *Hierarchy) detectCycles(roles []ontology.Entity) {
	for i, r := range roles {
		for _, s := range roles[i+1:] {
			if h.Subsumers.Contains(r, s) && h.Subsumers.Contains(s, r) {
				h.cycles = append(h.cycles, [2]ontology.Entity{r, s})
			}
		}
	}
}

// Cycles returns every role pair collapsed into equivalence by mutual
// subsumption, for --verbose diagnostics.
func (h *Hierarchy) Cycles() [][2]ontology.Entity {
	return h.cycles
}

// SubsumersOf returns every role q with r ⊑ q, including r itself.
func (h *Hierarchy) SubsumersOf(r ontology.Entity) []ontology.Entity {
	return h.Subsumers.SecondsOf(r)
}
