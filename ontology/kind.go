package ontology

// Kind distinguishes the three entity categories this profile reasons about.
type Kind uint8

const (
	// Class is an OWL class (concept) name.
	Class Kind = iota
	// ObjectProperty is an OWL object property (role) name.
	ObjectProperty
	// Individual is an OWL named individual.
	Individual
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "Class"
	case ObjectProperty:
		return "ObjectProperty"
	case Individual:
		return "Individual"
	default:
		return "Unknown"
	}
}

// prefix returns the auto-naming prefix minted entities of this kind use.
func (k Kind) prefix() string {
	switch k {
	case Class:
		return "C_"
	case ObjectProperty:
		return "OP_"
	case Individual:
		return "I_"
	default:
		return "X_"
	}
}
