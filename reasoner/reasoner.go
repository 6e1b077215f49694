// Package reasoner implements the EL+ class-subsumption completion-rule
// engine: a graph of class nodes, each with its own FIFO of LabelNode/
// LabelEdge instructions, saturated to a fixpoint that yields subsumers_C
// and edges.
package reasoner

import (
	"github.com/sirupsen/logrus"

	"github.com/nodeadmin/elreasoner/internal/queue"
	"github.com/nodeadmin/elreasoner/ontology"
	"github.com/nodeadmin/elreasoner/rbox"
)

// node holds one class entity's instruction queue.
type node struct {
	instrs *queue.Ring[instruction]
}

// Reasoner is a saturated class-subsumption graph. Construct one with
// Classify; its accessors are read-only once Classify returns.
type Reasoner struct {
	arena      *ontology.Arena
	hierarchy  *rbox.Hierarchy
	idx        *indexes
	log        logrus.FieldLogger
	nodes      map[ontology.Entity]*node
	active     *queue.Ring[ontology.Entity]
	subsumersC *ontology.PairStore[ontology.Entity]
	edgesOut   *ontology.TripletStore[ontology.Entity] // (from, label, to)
	edgesIn    *ontology.TripletStore[ontology.Entity] // (to, label, from)

	nodeInstrsProcessed int
	edgeInstrsProcessed int
}

// Option configures a Reasoner at construction time.
type Option func(*Reasoner)

// WithLogger sets the logger used for --verbose-style diagnostics; the
// hot loop itself never logs, only Classify's setup and summary do.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Reasoner) { r.log = l }
}

// Classify saturates ont (expected already normalized, per normalize.Normalize)
// against the role hierarchy h and returns the resulting Reasoner.
func Classify(ont *ontology.Ontology, h *rbox.Hierarchy, opts ...Option) *Reasoner {
	r := &Reasoner{
		arena:      ont.Arena,
		hierarchy:  h,
		idx:        buildIndexes(ont),
		log:        logrus.StandardLogger(),
		nodes:      make(map[ontology.Entity]*node),
		active:     queue.New[ontology.Entity](),
		subsumersC: ontology.NewPairStore[ontology.Entity](),
		edgesOut:   ontology.NewTripletStore[ontology.Entity](),
		edgesIn:    ontology.NewTripletStore[ontology.Entity](),
	}
	for _, opt := range opts {
		opt(r)
	}

	thing := ont.Arena.Thing()
	classes := ont.EntitiesOf(ontology.Class)
	r.log.WithField("classes", len(classes)).Debug("reasoner: seeding initial labels")
	for _, a := range classes {
		r.addLabel(a, a)
		if a != thing {
			r.addLabel(a, thing)
		}
	}

	r.run()
	r.log.WithFields(logrus.Fields{
		"node_instructions": r.nodeInstrsProcessed,
		"edge_instructions": r.edgeInstrsProcessed,
		"subsumptions":      r.subsumersC.Len(),
		"edges":             r.edgesOut.Len(),
	}).Debug("reasoner: saturation complete")
	return r
}

// Subsumers returns every class B with A ⊑ B derived during saturation,
// including A itself and owl:Thing.
func (r *Reasoner) Subsumers(a ontology.Entity) []ontology.Entity {
	return r.subsumersC.SecondsOf(a)
}

// IsSubsumedBy reports whether A ⊑ B was derived.
func (r *Reasoner) IsSubsumedBy(a, b ontology.Entity) bool {
	return r.subsumersC.Contains(a, b)
}

// Edges returns every (B, p) such that A ⊑ ∃p.B was derived.
func (r *Reasoner) Edges(a ontology.Entity) []struct {
	Property ontology.Entity
	Filler   ontology.Entity
} {
	var out []struct {
		Property ontology.Entity
		Filler   ontology.Entity
	}
	for label, to := range r.edgesOut.TriplesWithFirst(a) {
		out = append(out, struct {
			Property ontology.Entity
			Filler   ontology.Entity
		}{Property: label, Filler: to})
	}
	return out
}

// HasEdge reports whether A ⊑ ∃p.B was derived.
func (r *Reasoner) HasEdge(a, b, p ontology.Entity) bool {
	return r.edgesOut.Contains(a, p, b)
}

// NodeInstructionsProcessed is the number of LabelNode instructions
// applied during saturation (dropped/no-op applications included).
func (r *Reasoner) NodeInstructionsProcessed() int { return r.nodeInstrsProcessed }

// EdgeInstructionsProcessed is the number of LabelEdge instructions
// applied during saturation, including those reached via the explicit
// chain-propagation work stack.
func (r *Reasoner) EdgeInstructionsProcessed() int { return r.edgeInstrsProcessed }

func (r *Reasoner) nodeFor(e ontology.Entity) *node {
	n, ok := r.nodes[e]
	if !ok {
		n = &node{instrs: queue.New[instruction]()}
		r.nodes[e] = n
	}
	return n
}

func (r *Reasoner) enqueue(target ontology.Entity, instr instruction) {
	n := r.nodeFor(target)
	wasEmpty := n.instrs.Len() == 0
	n.instrs.Push(instr)
	if wasEmpty {
		r.active.Push(target)
	}
}

// run is the main loop: repeatedly pick any node with a non-empty queue,
// dequeue one instruction, apply it. The node-level FIFO plus this
// active-node FIFO together give deterministic, insertion-order
// scheduling rather than relying on Go map iteration order anywhere.
func (r *Reasoner) run() {
	for {
		target, ok := r.active.Pop()
		if !ok {
			return
		}
		n := r.nodeFor(target)
		instr, ok := n.instrs.Pop()
		if !ok {
			continue
		}
		switch v := instr.(type) {
		case labelNode:
			r.nodeInstrsProcessed++
			r.applyLabelNode(v.target, v.newLabel, v.requires)
		case labelEdge:
			r.applyLabelEdge(v.from, v.to, v.label)
		}
		if n.instrs.Len() > 0 {
			r.active.Push(target)
		}
	}
}
