package ontology

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const jsonBufferSize = 256 * 1024 // 256 KB, matches the teacher's writer buffer

// documentJSON is the wire format an Ontology round-trips through: prefix
// declarations plus the statement sequence, each statement tagged with a
// "type" discriminator since Statement/ClassExpr/PropertyExpr are sealed
// interfaces rather than a single concrete struct encoding/json could
// handle directly.
type documentJSON struct {
	Prefixes   []PrefixDecl      `json:"prefixes,omitempty"`
	Statements []json.RawMessage `json:"statements"`
}

type taggedJSON struct {
	Type string `json:"type"`
}

// WriteJSON writes ont as JSON to w: its prefix declarations followed by
// its statements in insertion order, each tagged by concrete type.
func WriteJSON(ont *Ontology, w io.Writer) error {
	return writeJSON(ont, w, false)
}

// WriteJSONPretty writes indented JSON, for human-readable debug dumps.
func WriteJSONPretty(ont *Ontology, w io.Writer) error {
	return writeJSON(ont, w, true)
}

// WriteJSONFile writes ont as JSON to the given file path.
func WriteJSONFile(ont *Ontology, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ontology: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(ont, f)
}

func writeJSON(ont *Ontology, w io.Writer, pretty bool) error {
	doc := documentJSON{Prefixes: ont.Prefixes()}
	for _, s := range ont.Statements() {
		raw, err := statementToJSON(ont.Arena, s)
		if err != nil {
			return err
		}
		doc.Statements = append(doc.Statements, raw)
	}

	bw := bufio.NewWriterSize(w, jsonBufferSize)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("ontology: encode: %w", err)
	}
	return bw.Flush()
}

// ReadJSON parses a document written by WriteJSON/WriteJSONPretty into a
// fresh Ontology, interning every referenced entity as it goes.
func ReadJSON(r io.Reader) (*Ontology, error) {
	var doc documentJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("ontology: decode: %w", err)
	}
	ont := New()
	for _, p := range doc.Prefixes {
		if err := ont.AddPrefix(p.Name, p.Base); err != nil {
			return nil, err
		}
	}
	for _, raw := range doc.Statements {
		stmt, err := jsonToStatement(ont, raw)
		if err != nil {
			return nil, err
		}
		ont.AddStatement(stmt)
	}
	return ont, nil
}

// ReadJSONFile parses the ontology document at path.
func ReadJSONFile(path string) (*Ontology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ontology: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

type subClassOfJSON struct {
	Type string          `json:"type"`
	LHS  json.RawMessage `json:"lhs"`
	RHS  json.RawMessage `json:"rhs"`
}

type equivalentClassesJSON struct {
	Type string            `json:"type"`
	Args []json.RawMessage `json:"args"`
}

type subObjectPropertyOfJSON struct {
	Type string          `json:"type"`
	LHS  json.RawMessage `json:"lhs"`
	RHS  string          `json:"rhs"`
}

type equivalentObjectPropertiesJSON struct {
	Type string   `json:"type"`
	Args []string `json:"args"`
}

type classAssertionJSON struct {
	Type       string          `json:"type"`
	Class      json.RawMessage `json:"class"`
	Individual string          `json:"individual"`
}

type objectPropertyAssertionJSON struct {
	Type     string `json:"type"`
	Property string `json:"property"`
	Subject  string `json:"subject"`
	Object   string `json:"object"`
}

func statementToJSON(a *Arena, s Statement) (json.RawMessage, error) {
	switch v := s.(type) {
	case SubClassOf:
		lhs, err := classExprToJSON(a, v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := classExprToJSON(a, v.RHS)
		if err != nil {
			return nil, err
		}
		return json.Marshal(subClassOfJSON{Type: "SubClassOf", LHS: lhs, RHS: rhs})
	case EquivalentClasses:
		args := make([]json.RawMessage, len(v.Args))
		for i, arg := range v.Args {
			raw, err := classExprToJSON(a, arg)
			if err != nil {
				return nil, err
			}
			args[i] = raw
		}
		return json.Marshal(equivalentClassesJSON{Type: "EquivalentClasses", Args: args})
	case SubObjectPropertyOf:
		lhs, err := propertyExprToJSON(a, v.LHS)
		if err != nil {
			return nil, err
		}
		return json.Marshal(subObjectPropertyOfJSON{Type: "SubObjectPropertyOf", LHS: lhs, RHS: a.IRI(v.RHS)})
	case EquivalentObjectProperties:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = a.IRI(arg)
		}
		return json.Marshal(equivalentObjectPropertiesJSON{Type: "EquivalentObjectProperties", Args: args})
	case ClassAssertion:
		cls, err := classExprToJSON(a, v.Class)
		if err != nil {
			return nil, err
		}
		return json.Marshal(classAssertionJSON{Type: "ClassAssertion", Class: cls, Individual: a.IRI(v.Individual)})
	case ObjectPropertyAssertion:
		return json.Marshal(objectPropertyAssertionJSON{
			Type:     "ObjectPropertyAssertion",
			Property: a.IRI(v.Property),
			Subject:  a.IRI(v.Subject),
			Object:   a.IRI(v.Object),
		})
	default:
		return nil, fmt.Errorf("ontology: unknown statement type %T", s)
	}
}

func jsonToStatement(ont *Ontology, raw json.RawMessage) (Statement, error) {
	var tag taggedJSON
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("ontology: statement: %w", err)
	}
	switch tag.Type {
	case "SubClassOf":
		var v subClassOfJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		lhs, err := jsonToClassExpr(ont, v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := jsonToClassExpr(ont, v.RHS)
		if err != nil {
			return nil, err
		}
		return SubClassOf{LHS: lhs, RHS: rhs}, nil
	case "EquivalentClasses":
		var v equivalentClassesJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		args := make([]ClassExpr, len(v.Args))
		for i, raw := range v.Args {
			expr, err := jsonToClassExpr(ont, raw)
			if err != nil {
				return nil, err
			}
			args[i] = expr
		}
		return EquivalentClasses{Args: args}, nil
	case "SubObjectPropertyOf":
		var v subObjectPropertyOfJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		lhs, err := jsonToPropertyExpr(ont, v.LHS)
		if err != nil {
			return nil, err
		}
		return SubObjectPropertyOf{LHS: lhs, RHS: ont.InternEntity(ObjectProperty, v.RHS)}, nil
	case "EquivalentObjectProperties":
		var v equivalentObjectPropertiesJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		args := make([]Entity, len(v.Args))
		for i, iri := range v.Args {
			args[i] = ont.InternEntity(ObjectProperty, iri)
		}
		return EquivalentObjectProperties{Args: args}, nil
	case "ClassAssertion":
		var v classAssertionJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		cls, err := jsonToClassExpr(ont, v.Class)
		if err != nil {
			return nil, err
		}
		return ClassAssertion{Class: cls, Individual: ont.InternEntity(Individual, v.Individual)}, nil
	case "ObjectPropertyAssertion":
		var v objectPropertyAssertionJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return ObjectPropertyAssertion{
			Property: ont.InternEntity(ObjectProperty, v.Property),
			Subject:  ont.InternEntity(Individual, v.Subject),
			Object:   ont.InternEntity(Individual, v.Object),
		}, nil
	default:
		return nil, fmt.Errorf("ontology: unknown statement type %q", tag.Type)
	}
}

type classAtomJSON struct {
	Type string `json:"type"`
	IRI  string `json:"iri"`
}

type classIntersectionJSON struct {
	Type string            `json:"type"`
	Args []json.RawMessage `json:"args"`
}

type someValuesFromJSON struct {
	Type     string          `json:"type"`
	Property string          `json:"property"`
	Filler   json.RawMessage `json:"filler"`
}

func classExprToJSON(a *Arena, e ClassExpr) (json.RawMessage, error) {
	switch v := e.(type) {
	case ClassAtom:
		return json.Marshal(classAtomJSON{Type: "Class", IRI: a.IRI(v.Entity)})
	case ClassIntersection:
		args := make([]json.RawMessage, len(v.Args))
		for i, arg := range v.Args {
			raw, err := classExprToJSON(a, arg)
			if err != nil {
				return nil, err
			}
			args[i] = raw
		}
		return json.Marshal(classIntersectionJSON{Type: "Intersection", Args: args})
	case SomeValuesFrom:
		filler, err := classExprToJSON(a, v.Filler)
		if err != nil {
			return nil, err
		}
		return json.Marshal(someValuesFromJSON{Type: "SomeValuesFrom", Property: a.IRI(v.Property), Filler: filler})
	default:
		return nil, fmt.Errorf("ontology: unknown class expression type %T", e)
	}
}

func jsonToClassExpr(ont *Ontology, raw json.RawMessage) (ClassExpr, error) {
	var tag taggedJSON
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("ontology: class expression: %w", err)
	}
	switch tag.Type {
	case "Class":
		var v classAtomJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return ClassAtom{Entity: ont.InternEntity(Class, v.IRI)}, nil
	case "Intersection":
		var v classIntersectionJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		args := make([]ClassExpr, len(v.Args))
		for i, raw := range v.Args {
			expr, err := jsonToClassExpr(ont, raw)
			if err != nil {
				return nil, err
			}
			args[i] = expr
		}
		return ClassIntersection{Args: args}, nil
	case "SomeValuesFrom":
		var v someValuesFromJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		filler, err := jsonToClassExpr(ont, v.Filler)
		if err != nil {
			return nil, err
		}
		return SomeValuesFrom{Property: ont.InternEntity(ObjectProperty, v.Property), Filler: filler}, nil
	default:
		return nil, fmt.Errorf("ontology: unknown class expression type %q", tag.Type)
	}
}

type propertyAtomJSON struct {
	Type string `json:"type"`
	IRI  string `json:"iri"`
}

type propertyChainJSON struct {
	Type  string   `json:"type"`
	Roles []string `json:"roles"`
}

func propertyExprToJSON(a *Arena, e PropertyExpr) (json.RawMessage, error) {
	switch v := e.(type) {
	case PropertyAtom:
		return json.Marshal(propertyAtomJSON{Type: "Property", IRI: a.IRI(v.Entity)})
	case PropertyChain:
		roles := make([]string, len(v.Roles))
		for i, r := range v.Roles {
			roles[i] = a.IRI(r)
		}
		return json.Marshal(propertyChainJSON{Type: "Chain", Roles: roles})
	default:
		return nil, fmt.Errorf("ontology: unknown property expression type %T", e)
	}
}

func jsonToPropertyExpr(ont *Ontology, raw json.RawMessage) (PropertyExpr, error) {
	var tag taggedJSON
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("ontology: property expression: %w", err)
	}
	switch tag.Type {
	case "Property":
		var v propertyAtomJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return PropertyAtom{Entity: ont.InternEntity(ObjectProperty, v.IRI)}, nil
	case "Chain":
		var v propertyChainJSON
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		roles := make([]Entity, len(v.Roles))
		for i, iri := range v.Roles {
			roles[i] = ont.InternEntity(ObjectProperty, iri)
		}
		return PropertyChain{Roles: roles}, nil
	default:
		return nil, fmt.Errorf("ontology: unknown property expression type %q", tag.Type)
	}
}
