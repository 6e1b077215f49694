package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONParsesTriplePatternsAndOrderBy(t *testing.T) {
	doc := `{
		"prefixes": {"ex": "http://ex.org/"},
		"projection": ["x"],
		"distinct": true,
		"triples": [
			{"subject": {"type": "variable", "name": "x"},
			 "predicate": {"type": "iri", "iri": "rdf:type"},
			 "object": {"type": "iri", "iri": "ex:Person"}}
		],
		"order_by": [{"variable": "x", "direction": "desc"}],
		"limit": 5
	}`

	q, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "http://ex.org/", q.Prefixes["ex"])
	assert.True(t, q.Distinct)
	require.Len(t, q.Triples, 1)
	assert.Equal(t, Variable{Name: "x"}, q.Triples[0].Subject)
	assert.Equal(t, IRIRef{IRI: "rdf:type"}, q.Triples[0].Predicate)
	require.Len(t, q.OrderBy, 1)
	assert.Equal(t, Desc, q.OrderBy[0].Direction)
	assert.Equal(t, 5, q.Limit)
}

func TestReadJSONRejectsUnknownTermType(t *testing.T) {
	doc := `{"triples":[{"subject":{"type":"bogus"},"predicate":{"type":"iri","iri":"rdf:type"},"object":{"type":"iri","iri":"ex:X"}}]}`
	_, err := ReadJSON(strings.NewReader(doc))
	assert.Error(t, err)
}
