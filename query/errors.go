package query

import "fmt"

// LiteralsUnsupportedError is returned when a triple pattern mentions a
// Literal term in any position. The saturated ABox tables hold only
// individuals and classes, so literal-valued patterns can never match.
type LiteralsUnsupportedError struct {
	Triple TriplePattern
}

func (e LiteralsUnsupportedError) Error() string {
	return "query: literal terms are not supported in triple patterns"
}

// UnknownPrefixError is returned when an IRIRef term uses a prefixed name
// whose prefix is not declared in Query.Prefixes.
type UnknownPrefixError struct {
	Prefix string
}

func (e UnknownPrefixError) Error() string {
	return fmt.Sprintf("query: unknown prefix %q", e.Prefix)
}

// UnsupportedExpressionInOrderByError is returned when an ORDER BY key
// names a variable that no triple pattern in the query ever binds.
type UnsupportedExpressionInOrderByError struct {
	Variable string
}

func (e UnsupportedExpressionInOrderByError) Error() string {
	return fmt.Sprintf("query: order-by variable %q is not bound by any triple pattern", e.Variable)
}
