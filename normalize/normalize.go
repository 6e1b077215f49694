// Package normalize rewrites an ontology.Ontology's statements into the
// eight normal forms (NF-A..NF-H) the completion-rule engine in reasoner
// and abox require, applying the shape-directed rewrite rules to a
// worklist until it is empty. See ontology.Statement/ClassExpr/PropertyExpr
// for the shapes being rewritten.
package normalize

import (
	"fmt"

	"github.com/nodeadmin/elreasoner/ontology"
)

// NormalizationDivergedError is returned when a Normalize run hits its
// configured step bound without reaching a fixpoint, which can only
// happen if a rewrite rule re-emits a statement no smaller than the one
// it consumed — every rule strictly reduces some measure of a
// statement's syntactic depth, so a well-formed ontology always reaches
// fixpoint in O(statements * max-nesting-depth) steps.
type NormalizationDivergedError struct {
	Steps int
}

func (e *NormalizationDivergedError) Error() string {
	return fmt.Sprintf("normalize: exceeded step limit (%d) without reaching a fixpoint", e.Steps)
}

// Normalize rewrites ont's statements to fixpoint with no step bound. It
// is equivalent to NormalizeWithLimit(ont, 0).
func Normalize(ont *ontology.Ontology) (*ontology.Ontology, error) {
	return NormalizeWithLimit(ont, 0)
}

// NormalizeWithLimit rewrites ont's statements to fixpoint and returns a
// new Ontology in normal form. The returned Ontology's Arena is a clone
// of ont's (see ontology.Arena.Clone): every entity handle obtained from
// ont remains valid and equal-comparable against the result, and ont
// itself is never mutated — auxiliary entities minted while normalizing
// live only in the clone.
//
// maxSteps bounds the number of rewrite applications before giving up
// with a *NormalizationDivergedError; 0 means unlimited, matching
// config.Limits.MaxNormalizeSteps's documented default.
func NormalizeWithLimit(ont *ontology.Ontology, maxSteps int) (*ontology.Ontology, error) {
	out := ontology.New()
	out.Arena = ont.Arena.Clone()
	for _, p := range ont.Prefixes() {
		out.AddPrefix(p.Name, p.Base)
	}

	queue := append([]ontology.Statement(nil), ont.Statements()...)
	steps := 0
	for len(queue) > 0 {
		stmt := queue[0]
		queue = queue[1:]

		rewritten, applied := rewrite(stmt, out.Arena)
		if !applied {
			out.AddStatement(stmt)
			continue
		}
		steps++
		if maxSteps > 0 && steps > maxSteps {
			return nil, &NormalizationDivergedError{Steps: steps}
		}
		queue = append(queue, rewritten...)
	}
	return out, nil
}

// rewrite applies the first applicable rewrite rule to stmt, in the fixed
// order the rules are specified: chain-split, equivalence-split,
// conjunction-on-RHS, complex-to-complex, conjunction-on-LHS,
// complex-filler-on-LHS-existential, complex-filler-on-RHS-existential,
// complex-class-assertion. It reports ok=false when stmt is already in
// normal form.
func rewrite(stmt ontology.Statement, arena *ontology.Arena) (out []ontology.Statement, ok bool) {
	switch s := stmt.(type) {
	case SubObjectPropertyOf:
		if r, ok := splitChain(s, arena); ok {
			return r, true
		}
		return nil, false

	case EquivalentClasses:
		return splitClassEquivalence(s), true

	case EquivalentObjectProperties:
		return splitPropertyEquivalence(s), true

	case SubClassOf:
		if r, ok := splitRHSConjunction(s); ok {
			return r, true
		}
		if r, ok := splitComplexToComplex(s, arena); ok {
			return r, true
		}
		if r, ok := splitLHSConjunction(s, arena); ok {
			return r, true
		}
		if r, ok := splitLHSExistentialFiller(s, arena); ok {
			return r, true
		}
		if r, ok := splitRHSExistentialFiller(s, arena); ok {
			return r, true
		}
		return nil, false

	case ClassAssertion:
		if r, ok := splitComplexClassAssertion(s, arena); ok {
			return r, true
		}
		return nil, false

	case ObjectPropertyAssertion:
		// Already NF-H; no rule ever rewrites a ground property assertion.
		return nil, false

	default:
		panic(fmt.Sprintf("normalize: unhandled statement type %T", stmt))
	}
}

// Statement aliases so the rewrite rules below read without the
// ontology. qualifier on every shape they switch over.
type (
	SubClassOf                 = ontology.SubClassOf
	EquivalentClasses          = ontology.EquivalentClasses
	SubObjectPropertyOf        = ontology.SubObjectPropertyOf
	EquivalentObjectProperties = ontology.EquivalentObjectProperties
	ClassAssertion             = ontology.ClassAssertion
	ObjectPropertyAssertion    = ontology.ObjectPropertyAssertion
)
