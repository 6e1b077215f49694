package query

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/elreasoner/abox"
	"github.com/nodeadmin/elreasoner/ontology"
)

// fixture builds a small saturated ABox by hand: joe and jane are both
// Persons, joe additionally a Student; joe knows jane via ex:knows.
func fixture(t *testing.T) (*ontology.Arena, *abox.Saturation) {
	t.Helper()
	ont := ontology.New()
	person := ont.InternEntity(ontology.Class, "http://ex.org/Person")
	student := ont.InternEntity(ontology.Class, "http://ex.org/Student")
	joe := ont.InternEntity(ontology.Individual, "http://ex.org/joe")
	jane := ont.InternEntity(ontology.Individual, "http://ex.org/jane")
	knows := ont.InternEntity(ontology.ObjectProperty, "http://ex.org/knows")

	sat := &abox.Saturation{
		ClassAssertions: []abox.ClassAssertionRow{
			{Individual: joe, Class: person},
			{Individual: joe, Class: student},
			{Individual: jane, Class: person},
		},
		PropertyAssertions: []abox.ObjectPropertyAssertionRow{
			{Property: knows, Left: joe, Right: jane},
		},
	}
	return ont.Arena, sat
}

func TestEvaluateRdfTypePattern(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Student"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/joe", rows[0]["x"])
}

func TestEvaluateObjectPropertyWithConstantPredicate(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"a"}, Predicate: IRIRef{"ex:knows"}, Object: Variable{"b"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/joe", rows[0]["a"])
	assert.Equal(t, "http://ex.org/jane", rows[0]["b"])
}

func TestEvaluateVariablePredicateBindsObjectProperty(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{"a"}, Predicate: Variable{"p"}, Object: Variable{"b"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/knows", rows[0]["p"])
}

func TestEvaluateJoinAcrossTwoTriples(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"a"}, Predicate: IRIRef{"ex:knows"}, Object: Variable{"b"}},
			{Subject: Variable{"b"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/joe", rows[0]["a"])
	assert.Equal(t, "http://ex.org/jane", rows[0]["b"])
}

func TestEvaluateDistinctCollapsesDuplicateRows(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes:   map[string]string{"ex": "http://ex.org/"},
		Projection: []string{"x"},
		Distinct:   true,
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: Variable{"c"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "joe's two class rows collapse to one; jane has one")
}

func TestEvaluateOrderByDescending(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes:   map[string]string{"ex": "http://ex.org/"},
		Projection: []string{"x"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
		OrderBy: []OrderKey{{Variable: "x", Direction: Desc}},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "http://ex.org/joe", rows[0]["x"], "descending order puts joe ahead of jane")
}

func TestEvaluateLimitOffset(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes:   map[string]string{"ex": "http://ex.org/"},
		Projection: []string{"x"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
		OrderBy: []OrderKey{{Variable: "x", Direction: Asc}},
		Limit:   1,
		Offset:  1,
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "http://ex.org/joe", rows[0]["x"])
}

func TestEvaluateLiteralTermIsUnsupported(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: Literal{Value: "Person"}},
		},
	}
	_, err := Evaluate(context.Background(), sat, arena, q)
	var target LiteralsUnsupportedError
	require.ErrorAs(t, err, &target)
}

func TestEvaluateUnknownPrefix(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes: map[string]string{},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
	}
	_, err := Evaluate(context.Background(), sat, arena, q)
	var target UnknownPrefixError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "ex", target.Prefix)
}

func TestEvaluateOrderByUnboundVariableIsUnsupported(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
		OrderBy: []OrderKey{{Variable: "never-bound"}},
	}
	_, err := Evaluate(context.Background(), sat, arena, q)
	var target UnsupportedExpressionInOrderByError
	require.ErrorAs(t, err, &target)
}

func TestEvaluateUnresolvedIRIYieldsNoRowsNotAnError(t *testing.T) {
	arena, sat := fixture(t)
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Nonexistent"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, arena, q)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEvaluateRespectsCancelledContext(t *testing.T) {
	arena, sat := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Student"}},
		},
	}
	_, err := Evaluate(ctx, sat, arena, q)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateMaterializesAuxiliaryIndividualAsBlankNode(t *testing.T) {
	ont := ontology.New()
	person := ont.InternEntity(ontology.Class, "http://ex.org/Person")
	anon := ont.MintEntity(ontology.Individual)

	sat := &abox.Saturation{
		ClassAssertions: []abox.ClassAssertionRow{{Individual: anon, Class: person}},
	}
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
	}
	rows, err := Evaluate(context.Background(), sat, ont.Arena, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0]["x"], "_:"), "an individual minted during normalization must not leak its internal auxiliary IRI")
}

func TestQueryExplainDescribesThePlan(t *testing.T) {
	arena, _ := fixture(t)
	q := &Query{
		Prefixes: map[string]string{"ex": "http://ex.org/"},
		Triples: []TriplePattern{
			{Subject: Variable{"x"}, Predicate: IRIRef{rdfType}, Object: IRIRef{"ex:Person"}},
		},
	}
	out, err := q.Explain(arena)
	require.NoError(t, err)
	assert.Contains(t, out, "ClassAssertion")
}
