package query

import (
	"encoding/json"
	"fmt"
	"io"
)

// documentJSON is the wire format a Query is read from by cmd/elreasoner's
// "query" subcommand, since the SPARQL surface syntax is explicitly out of
// scope (§1) — callers hand this package a BGP directly rather than text
// this module would have to parse.
type documentJSON struct {
	Prefixes   map[string]string `json:"prefixes,omitempty"`
	Projection []string          `json:"projection,omitempty"`
	Distinct   bool              `json:"distinct,omitempty"`
	Reduced    bool              `json:"reduced,omitempty"`
	Triples    []triplePatternJSON `json:"triples"`
	OrderBy    []orderKeyJSON    `json:"order_by,omitempty"`
	Limit      int               `json:"limit,omitempty"`
	Offset     int               `json:"offset,omitempty"`
}

type triplePatternJSON struct {
	Subject   json.RawMessage `json:"subject"`
	Predicate json.RawMessage `json:"predicate"`
	Object    json.RawMessage `json:"object"`
}

type orderKeyJSON struct {
	Variable  string `json:"variable"`
	Direction string `json:"direction,omitempty"` // "asc" | "desc", default "asc"
}

type termJSON struct {
	Type     string `json:"type"` // "variable" | "iri" | "literal"
	Name     string `json:"name,omitempty"`
	IRI      string `json:"iri,omitempty"`
	Value    string `json:"value,omitempty"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// ReadJSON parses a BGP query document into a *Query.
func ReadJSON(r io.Reader) (*Query, error) {
	var doc documentJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("query: decode: %w", err)
	}
	q := &Query{
		Prefixes:   doc.Prefixes,
		Projection: doc.Projection,
		Distinct:   doc.Distinct,
		Reduced:    doc.Reduced,
		Limit:      doc.Limit,
		Offset:     doc.Offset,
	}
	for _, tp := range doc.Triples {
		subject, err := jsonToTerm(tp.Subject)
		if err != nil {
			return nil, err
		}
		predicate, err := jsonToTerm(tp.Predicate)
		if err != nil {
			return nil, err
		}
		object, err := jsonToTerm(tp.Object)
		if err != nil {
			return nil, err
		}
		q.Triples = append(q.Triples, TriplePattern{Subject: subject, Predicate: predicate, Object: object})
	}
	for _, ok := range doc.OrderBy {
		dir := Asc
		if ok.Direction == "desc" {
			dir = Desc
		}
		q.OrderBy = append(q.OrderBy, OrderKey{Variable: ok.Variable, Direction: dir})
	}
	return q, nil
}

func jsonToTerm(raw json.RawMessage) (Term, error) {
	var t termJSON
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("query: term: %w", err)
	}
	switch t.Type {
	case "variable":
		return Variable{Name: t.Name}, nil
	case "iri":
		return IRIRef{IRI: t.IRI}, nil
	case "literal":
		return Literal{Value: t.Value, Datatype: t.Datatype, Lang: t.Lang}, nil
	default:
		return nil, fmt.Errorf("query: unknown term type %q", t.Type)
	}
}
