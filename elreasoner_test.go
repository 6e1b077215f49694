package elreasoner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/elreasoner/ontology"
	"github.com/nodeadmin/elreasoner/query"
)

func classAtom(ont *ontology.Ontology, iri string) ontology.ClassAtom {
	return ontology.ClassAtom{Entity: ont.InternEntity(ontology.Class, iri)}
}

// TestIsSubclassTransitivity is spec.md §8's first scenario: {A ⊑ B, B ⊑ C}
// implies is-subclass(A, C) but not is-subclass(C, A).
func TestIsSubclassTransitivity(t *testing.T) {
	ont := ontology.New()
	a, b, c := classAtom(ont, "ex:A"), classAtom(ont, "ex:B"), classAtom(ont, "ex:C")
	ont.AddStatement(ontology.SubClassOf{LHS: a, RHS: b})
	ont.AddStatement(ontology.SubClassOf{LHS: b, RHS: c})

	r, err := NewReasoner(ont)
	require.NoError(t, err)

	ok, err := r.IsSubclass("ex:A", "ex:C")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsSubclass("ex:C", "ex:A")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestIsSubclassEquivalenceSymmetry is spec.md §8's second scenario:
// {A ≡ B} implies is-subclass in both directions.
func TestIsSubclassEquivalenceSymmetry(t *testing.T) {
	ont := ontology.New()
	a, b := classAtom(ont, "ex:A"), classAtom(ont, "ex:B")
	ont.AddStatement(ontology.EquivalentClasses{Args: []ontology.ClassExpr{a, b}})

	r, err := NewReasoner(ont)
	require.NoError(t, err)

	ok, err := r.IsSubclass("ex:A", "ex:B")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsSubclass("ex:B", "ex:A")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestIsSubclassExistentialPropagation is spec.md §8's third scenario:
// {A ⊑ ∃r.B, B ⊑ C, ∃r.C ⊑ D} implies is-subclass(A, D).
func TestIsSubclassExistentialPropagation(t *testing.T) {
	ont := ontology.New()
	a, b, c, d := classAtom(ont, "ex:A"), classAtom(ont, "ex:B"), classAtom(ont, "ex:C"), classAtom(ont, "ex:D")
	role := ont.InternEntity(ontology.ObjectProperty, "ex:r")

	ont.AddStatement(ontology.SubClassOf{LHS: a, RHS: ontology.SomeValuesFrom{Property: role, Filler: b}})
	ont.AddStatement(ontology.SubClassOf{LHS: b, RHS: c})
	ont.AddStatement(ontology.SubClassOf{LHS: ontology.SomeValuesFrom{Property: role, Filler: c}, RHS: d})

	r, err := NewReasoner(ont)
	require.NoError(t, err)

	ok, err := r.IsSubclass("ex:A", "ex:D")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubclassUnknownClass(t *testing.T) {
	ont := ontology.New()
	ont.AddStatement(ontology.SubClassOf{LHS: classAtom(ont, "ex:A"), RHS: classAtom(ont, "ex:B")})
	r, err := NewReasoner(ont)
	require.NoError(t, err)

	_, err = r.IsSubclass("ex:Nonexistent", "ex:B")
	var target *UnknownClassError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "ex:Nonexistent", target.IRI)
}

func TestIsSubpropertyTransitivity(t *testing.T) {
	ont := ontology.New()
	r1 := ont.InternEntity(ontology.ObjectProperty, "ex:r1")
	r2 := ont.InternEntity(ontology.ObjectProperty, "ex:r2")
	r3 := ont.InternEntity(ontology.ObjectProperty, "ex:r3")
	ont.AddStatement(ontology.SubObjectPropertyOf{LHS: ontology.PropertyAtom{Entity: r1}, RHS: r2})
	ont.AddStatement(ontology.SubObjectPropertyOf{LHS: ontology.PropertyAtom{Entity: r2}, RHS: r3})

	reasoner, err := NewReasoner(ont)
	require.NoError(t, err)

	ok, err := reasoner.IsSubproperty("ex:r1", "ex:r3")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = reasoner.IsSubproperty("ex:unknown", "ex:r3")
	var target *UnknownPropertyError
	require.ErrorAs(t, err, &target)
}

func TestClassSubsumersExcludesAuxiliaryClasses(t *testing.T) {
	ont := ontology.New()
	a, b := classAtom(ont, "ex:A"), classAtom(ont, "ex:B")
	role := ont.InternEntity(ontology.ObjectProperty, "ex:r")
	ont.AddStatement(ontology.SubClassOf{LHS: a, RHS: ontology.SomeValuesFrom{Property: role, Filler: b}})

	r, err := NewReasoner(ont)
	require.NoError(t, err)

	subsumers, err := r.ClassSubsumers("ex:A")
	require.NoError(t, err)
	for _, iri := range subsumers {
		assert.NotContains(t, iri, "C_", "no auxiliary class should leak into a subsumers list")
	}
}

func TestAnswerQueryAgainstSaturatedABox(t *testing.T) {
	ont := ontology.New()
	person := classAtom(ont, "ex:Person")
	joe := ont.InternEntity(ontology.Individual, "ex:joe")
	ont.AddStatement(ontology.ClassAssertion{Class: person, Individual: joe})

	r, err := NewReasoner(ont)
	require.NoError(t, err)

	rows, err := r.AnswerQuery(context.Background(), &query.Query{
		Prefixes: map[string]string{"ex": "ex:"},
		Triples: []query.TriplePattern{
			{Subject: query.Variable{Name: "x"}, Predicate: query.IRIRef{IRI: "rdf:type"}, Object: query.IRIRef{IRI: "ex:Person"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ex:joe", rows[0]["x"])
}

func TestTimingsRecordsEveryPhase(t *testing.T) {
	ont := ontology.New()
	ont.AddStatement(ontology.SubClassOf{LHS: classAtom(ont, "ex:A"), RHS: classAtom(ont, "ex:B")})

	r, err := NewReasoner(ont)
	require.NoError(t, err)

	timings := r.Timings()
	assert.NotEqual(t, timings.BuildID.String(), "")
	assert.GreaterOrEqual(t, timings.Total(), timings.Normalize)
}

func TestNewReasonerAppliesConfiguredNormalizeStepLimit(t *testing.T) {
	ont := ontology.New()
	ont.AddStatement(ontology.SubClassOf{LHS: classAtom(ont, "ex:A"), RHS: classAtom(ont, "ex:B")})

	cfg := DefaultConfig()
	cfg.Limits.MaxNormalizeSteps = 1000
	r, err := NewReasoner(ont, WithConfig(cfg))
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestCloseIsANoOp(t *testing.T) {
	ont := ontology.New()
	r, err := NewReasoner(ont)
	require.NoError(t, err)
	assert.NoError(t, r.Close())
}
