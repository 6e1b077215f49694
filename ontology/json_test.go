package ontology

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONThenReadJSONRoundTripsStatements(t *testing.T) {
	ont := New()
	require.NoError(t, ont.AddPrefix("ex", "http://ex.org/"))
	a := ont.InternEntity(Class, "ex:A")
	b := ont.InternEntity(Class, "ex:B")
	role := ont.InternEntity(ObjectProperty, "ex:r")
	joe := ont.InternEntity(Individual, "ex:joe")
	jane := ont.InternEntity(Individual, "ex:jane")

	ont.AddStatement(SubClassOf{LHS: ClassAtom{Entity: a}, RHS: SomeValuesFrom{Property: role, Filler: ClassAtom{Entity: b}}})
	ont.AddStatement(ClassAssertion{Class: ClassAtom{Entity: a}, Individual: joe})
	ont.AddStatement(ObjectPropertyAssertion{Property: role, Subject: joe, Object: jane})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(ont, &buf))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)

	base, ok := got.ResolvePrefix("ex")
	require.True(t, ok)
	assert.Equal(t, "http://ex.org/", base)

	require.Len(t, got.Statements(), 3)
	sub, ok := got.Statements()[0].(SubClassOf)
	require.True(t, ok)
	svf, ok := sub.RHS.(SomeValuesFrom)
	require.True(t, ok)
	assert.Equal(t, "ex:r", got.Arena.IRI(svf.Property))

	ca, ok := got.Statements()[1].(ClassAssertion)
	require.True(t, ok)
	assert.Equal(t, "ex:joe", got.Arena.IRI(ca.Individual))

	pa, ok := got.Statements()[2].(ObjectPropertyAssertion)
	require.True(t, ok)
	assert.Equal(t, "ex:jane", got.Arena.IRI(pa.Object))
}

func TestReadJSONRejectsUnknownStatementType(t *testing.T) {
	_, err := ReadJSON(bytes.NewReader([]byte(`{"statements":[{"type":"NotAThing"}]}`)))
	assert.Error(t, err)
}
