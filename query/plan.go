package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nodeadmin/elreasoner/ontology"
)

// table names the two saturated-ABox relations a scanStep can read from.
type table int

const (
	classAssertionTable table = iota
	objectPropertyAssertionTable
)

func (t table) String() string {
	if t == classAssertionTable {
		return "ClassAssertion"
	}
	return "ObjectPropertyAssertion"
}

// Column names, shared between the two tables' scanStep.filters/joins/
// bindings maps.
const (
	colIndividual      = "individual"
	colClassName       = "className"
	colObjectProperty  = "objectProperty"
	colLeftIndividual  = "leftIndividual"
	colRightIndividual = "rightIndividual"
)

// scanStep is one triple pattern translated into a table reference: a set
// of constant-value filters, a set of equi-joins against variables bound
// by an earlier step, and a set of brand new variable bindings.
type scanStep struct {
	table      table
	filters    map[string]ontology.Entity
	joins      map[string]string
	binds      map[string]string
	impossible bool // a constant term failed to resolve to any entity; step matches nothing
	source     TriplePattern
}

// Plan is the relational-algebra tree the translator produces: a
// left-deep sequence of scans, each one joined against the accumulated
// bindings of everything before it.
type Plan struct {
	steps      []*scanStep
	boundVars  map[string]bool
	projection []string
	distinct   bool
	reduced    bool
	orderBy    []OrderKey
	limit      int
	offset     int
}

// Explain renders the plan as one numbered line per scan step followed by
// one line per projection/modifier, purely for diagnostics —
// it is not a secondary execution path.
func (p *Plan) Explain() string {
	var b strings.Builder
	for i, step := range p.steps {
		fmt.Fprintf(&b, "%d. scan %s", i, step.table)
		if len(step.filters) > 0 {
			fmt.Fprintf(&b, " filter=%v", sortedKeys(step.filters))
		}
		if len(step.joins) > 0 {
			fmt.Fprintf(&b, " join=%v", step.joins)
		}
		if len(step.binds) > 0 {
			fmt.Fprintf(&b, " bind=%v", step.binds)
		}
		b.WriteByte('\n')
	}
	if len(p.projection) > 0 {
		fmt.Fprintf(&b, "project %v\n", p.projection)
	}
	if p.distinct {
		b.WriteString("distinct\n")
	}
	if p.reduced {
		b.WriteString("reduced\n")
	}
	if len(p.orderBy) > 0 {
		fmt.Fprintf(&b, "order-by %v\n", p.orderBy)
	}
	if p.limit > 0 || p.offset > 0 {
		fmt.Fprintf(&b, "limit=%d offset=%d\n", p.limit, p.offset)
	}
	return b.String()
}

func sortedKeys(m map[string]ontology.Entity) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// translate builds a Plan from q, resolving every IRIRef term against
// q.Prefixes and the ontology's entity arena, and classifying each
// Variable term as either a fresh binding or an equi-join against a
// variable bound by an earlier triple.
func translate(q *Query, arena *ontology.Arena) (*Plan, error) {
	p := &Plan{
		boundVars: make(map[string]bool),
		distinct:  q.Distinct,
		reduced:   q.Reduced,
		orderBy:   q.OrderBy,
		limit:     q.Limit,
		offset:    q.Offset,
	}

	for _, t := range q.Triples {
		step, err := translateTriple(t, q.Prefixes, arena, p.boundVars)
		if err != nil {
			return nil, err
		}
		p.steps = append(p.steps, step)
		for _, v := range step.binds {
			p.boundVars[v] = true
		}
	}

	if len(q.Projection) > 0 {
		p.projection = q.Projection
	} else {
		for v := range p.boundVars {
			p.projection = append(p.projection, v)
		}
	}

	for _, ok := range q.OrderBy {
		if !p.boundVars[ok.Variable] {
			return nil, UnsupportedExpressionInOrderByError{Variable: ok.Variable}
		}
	}

	return p, nil
}

func translateTriple(t TriplePattern, prefixes map[string]string, arena *ontology.Arena, bound map[string]bool) (*scanStep, error) {
	if _, ok := t.Subject.(Literal); ok {
		return nil, LiteralsUnsupportedError{Triple: t}
	}
	if _, ok := t.Object.(Literal); ok {
		return nil, LiteralsUnsupportedError{Triple: t}
	}
	if _, ok := t.Predicate.(Literal); ok {
		return nil, LiteralsUnsupportedError{Triple: t}
	}

	step := &scanStep{
		filters: make(map[string]ontology.Entity),
		joins:   make(map[string]string),
		binds:   make(map[string]string),
		source:  t,
	}

	if ref, ok := t.Predicate.(IRIRef); ok && ref.IRI == rdfType {
		step.table = classAssertionTable
		if err := bindTerm(step, colIndividual, t.Subject, ontology.Individual, prefixes, arena, bound); err != nil {
			return nil, err
		}
		if err := bindTerm(step, colClassName, t.Object, ontology.Class, prefixes, arena, bound); err != nil {
			return nil, err
		}
		return step, nil
	}

	step.table = objectPropertyAssertionTable
	switch pred := t.Predicate.(type) {
	case IRIRef:
		iri, err := resolveIRI(prefixes, pred.IRI)
		if err != nil {
			return nil, err
		}
		e, ok := arena.Lookup(ontology.ObjectProperty, iri)
		if !ok {
			step.impossible = true
		}
		step.filters[colObjectProperty] = e
	case Variable:
		if bound[pred.Name] {
			step.joins[colObjectProperty] = pred.Name
		} else {
			step.binds[colObjectProperty] = pred.Name
			bound[pred.Name] = true
		}
	}
	if err := bindTerm(step, colLeftIndividual, t.Subject, ontology.Individual, prefixes, arena, bound); err != nil {
		return nil, err
	}
	if err := bindTerm(step, colRightIndividual, t.Object, ontology.Individual, prefixes, arena, bound); err != nil {
		return nil, err
	}
	return step, nil
}

// bindTerm resolves t into either a constant filter or a variable binding
// for column col. An IRIRef that does not resolve to any interned entity
// marks the step impossible — it matches zero rows — rather than failing
// translation, mirroring how an unbound IRI naturally yields no results.
func bindTerm(step *scanStep, col string, t Term, kind ontology.Kind, prefixes map[string]string, arena *ontology.Arena, bound map[string]bool) error {
	switch term := t.(type) {
	case IRIRef:
		iri, err := resolveIRI(prefixes, term.IRI)
		if err != nil {
			return err
		}
		e, ok := arena.Lookup(kind, iri)
		if !ok {
			step.impossible = true
		}
		step.filters[col] = e
	case Variable:
		if bound[term.Name] {
			step.joins[col] = term.Name
		} else {
			step.binds[col] = term.Name
			bound[term.Name] = true
		}
	}
	return nil
}
