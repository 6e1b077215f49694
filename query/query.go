package query

import "github.com/nodeadmin/elreasoner/ontology"

// Direction is an ORDER BY sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// OrderKey is one (variable, direction) pair of a multi-key ORDER BY
// clause. The list is applied in order: later keys only break ties left
// by earlier ones.
type OrderKey struct {
	Variable  string
	Direction Direction
}

// Query is a basic graph pattern query over the saturated ABox.
type Query struct {
	Prefixes    map[string]string
	Projection  []string // empty => project every variable mentioned in Triples
	Distinct    bool
	Reduced     bool
	Triples     []TriplePattern
	OrderBy     []OrderKey
	Limit       int // 0 => unlimited
	Offset      int
}

// Row is one result row: a mapping from projected variable name to the
// IRI string bound to it. Literals are never produced.
type Row map[string]string

// Explain renders the relational-algebra tree Evaluate would build for q
// as a line-per-step listing, without running it. translate is re-run every
// call, so Explain never drifts from what Evaluate actually does, but it
// is never itself a secondary execution path for answering the query.
func (q *Query) Explain(arena *ontology.Arena) (string, error) {
	p, err := translate(q, arena)
	if err != nil {
		return "", err
	}
	return p.Explain(), nil
}
