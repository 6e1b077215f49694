package reasoner

import "github.com/nodeadmin/elreasoner/ontology"

// addLabel adds (a, b) to subsumers_C if not already present, and — if
// newly added — runs every seeding function that fires off a new label:
// seed-node-if, seed-edge, and the "b newly labels a" half of the
// edges-into-a propagation that LabelNode step 4 calls for. It is the
// single place a label is ever added, used both at initialization (for
// the reflexive/owl:Thing seed labels) and from applyLabelNode, so every
// label addition is seeded uniformly.
func (r *Reasoner) addLabel(a, b ontology.Entity) bool {
	if !r.subsumersC.Add(a, b) {
		return false
	}
	r.seedNodeIf(b, a)
	r.seedEdge(b, a)
	for label, c := range r.edgesIn.TriplesWithFirst(a) {
		r.seedNode(label, b, c)
	}
	return true
}

// seedNodeIf enqueues LabelNode(a, D, requires) for every conjunctiveAxiom
// whose conjunct set contains b, where requires is the rest of the
// conjunct set.
func (r *Reasoner) seedNodeIf(b, a ontology.Entity) {
	for _, ax := range r.idx.byConjunct[b] {
		requires := make([]ontology.Entity, 0, len(ax.conjuncts)-1)
		for _, c := range ax.conjuncts {
			if c != b {
				requires = append(requires, c)
			}
		}
		r.enqueue(a, labelNode{target: a, newLabel: ax.rhs, requires: requires})
	}
}

// seedEdge enqueues LabelEdge(a, C, p) for every existentialEdgeAxiom
// b ⊑ ∃p.C.
func (r *Reasoner) seedEdge(b, a ontology.Entity) {
	for _, ax := range r.idx.byExistentialLHS[b] {
		r.enqueue(a, labelEdge{from: a, to: ax.filler, label: ax.property})
	}
}

// seedNode enqueues LabelNode(a, D, ∅) for every D with NF-D axiom
// ∃property.b ⊑ D.
func (r *Reasoner) seedNode(property, b, a ontology.Entity) {
	byFiller, ok := r.idx.byPropertyAndFiller[property]
	if !ok {
		return
	}
	for _, d := range byFiller[b] {
		r.enqueue(a, labelNode{target: a, newLabel: d})
	}
}

// applyLabelNode is step "Apply LabelNode(A, B, reqs)".
func (r *Reasoner) applyLabelNode(target, newLabel ontology.Entity, requires []ontology.Entity) {
	if r.subsumersC.Contains(target, newLabel) {
		return
	}
	if !r.subsumersC.ContainsAll(target, requires) {
		return
	}
	r.addLabel(target, newLabel)
}

// edgeCall is one pending "ensure edge (from, to, label) exists" unit of
// work. applyLabelEdge processes these from an explicit stack instead of
// language-level recursion, per the design note's "convert to an explicit
// work stack to avoid native stack overflow" — the recursive chain
// propagation in steps (c)/(d) below pushes here rather than calling
// itself.
type edgeCall struct {
	from, to, label ontology.Entity
}

// applyLabelEdge is step "Apply LabelEdge(A, B, p)".
func (r *Reasoner) applyLabelEdge(from, to, label ontology.Entity) {
	stack := []edgeCall{{from, to, label}}
	for len(stack) > 0 {
		call := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b, p := call.from, call.to, call.label
		r.edgeInstrsProcessed++

		if r.edgesOut.Contains(a, p, b) {
			continue
		}
		for _, q := range r.hierarchy.SubsumersOf(p) {
			if !r.edgesOut.Add(a, q, b) {
				continue
			}
			r.edgesIn.Add(b, q, a)

			for _, c := range r.subsumersC.SecondsOf(b) {
				r.seedNode(q, c, a)
			}

			// Right-chain interaction: other ∘ q ⊑ s holds, and
			// (C, A, other) ∈ edges for some C — derive (C, B, s).
			for other, s := range r.hierarchy.Right.TriplesWithFirst(q) {
				for c := range r.edgesIn.TriplesWithFirstTwo(a, other) {
					if !r.edgesOut.Contains(c, s, b) {
						stack = append(stack, edgeCall{c, b, s})
					}
				}
			}

			// Left-chain interaction: q ∘ other ⊑ s holds, and
			// (B, C, other) ∈ edges for some C — derive (A, C, s).
			for other, s := range r.hierarchy.Left.TriplesWithFirst(q) {
				for c := range r.edgesOut.TriplesWithFirstTwo(b, other) {
					if !r.edgesOut.Contains(a, s, c) {
						stack = append(stack, edgeCall{a, c, s})
					}
				}
			}
		}
	}
}
