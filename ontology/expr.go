package ontology

// ClassExpr is the sealed set of class expressions this profile supports:
// atomic classes, n-ary conjunction, and existential restriction. Modeling
// these as a small closed interface (rather than a generic AST node with a
// tag field) lets normalize's rewrite rules pattern-match exhaustively and
// catches a missed case — a rule that doesn't handle one of the three
// variants — at compile time instead of at run time.
type ClassExpr interface {
	classExpr()
}

// ClassAtom is an atomic class reference, e.g. Class(iri).
type ClassAtom struct {
	Entity Entity
}

func (ClassAtom) classExpr() {}

// IsAtomic reports whether e is a ClassAtom — used throughout normalize to
// decide whether a rewrite rule applies.
func IsAtomic(e ClassExpr) bool {
	_, ok := e.(ClassAtom)
	return ok
}

// ClassIntersection is an n-ary conjunction, n >= 2 once in normal form.
// Before normalization n may be any value >= 0; normalize's
// conjunction-on-RHS/LHS rules are what establish the n >= 2 invariant.
type ClassIntersection struct {
	Args []ClassExpr
}

func (ClassIntersection) classExpr() {}

// SomeValuesFrom is an existential restriction ∃property.filler.
type SomeValuesFrom struct {
	Property Entity // Kind() == ObjectProperty
	Filler   ClassExpr
}

func (SomeValuesFrom) classExpr() {}

// PropertyExpr is the sealed set of object-property-side expressions: an
// atomic role, or a role chain r1 ∘ r2 ∘ ... ∘ rn (n >= 2 once normalized).
type PropertyExpr interface {
	propertyExpr()
}

// PropertyAtom is an atomic object property reference.
type PropertyAtom struct {
	Entity Entity // Kind() == ObjectProperty
}

func (PropertyAtom) propertyExpr() {}

// IsAtomicProperty reports whether e is a PropertyAtom.
func IsAtomicProperty(e PropertyExpr) bool {
	_, ok := e.(PropertyAtom)
	return ok
}

// PropertyChain is a composition r1 ∘ r2 ∘ ... ∘ rn, len(Roles) >= 2.
type PropertyChain struct {
	Roles []Entity // each Kind() == ObjectProperty
}

func (PropertyChain) propertyExpr() {}
