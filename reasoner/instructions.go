package reasoner

import "github.com/nodeadmin/elreasoner/ontology"

// instruction is the sealed set of work items a node's queue carries.
type instruction interface {
	isInstruction()
}

// labelNode is "add newLabel to subsumers_C(target) if subsumers_C(target)
// already contains every entry in requires".
type labelNode struct {
	target   ontology.Entity
	newLabel ontology.Entity
	requires []ontology.Entity
}

func (labelNode) isInstruction() {}

// labelEdge is "ensure edge (from, to, label) exists; if newly added,
// propagate".
type labelEdge struct {
	from  ontology.Entity
	to    ontology.Entity
	label ontology.Entity
}

func (labelEdge) isInstruction() {}
