package query

import "strings"

// resolveIRI expands a prefixed name ("ex:A") against prefixes into its
// full IRI form, or returns iri unchanged if it carries no recognizable
// prefix (either no colon, or a colon that looks like a scheme separator
// in an already-absolute IRI such as "http://..."). Returns
// UnknownPrefixError if iri does look like a prefixed name but the prefix
// was never declared.
func resolveIRI(prefixes map[string]string, iri string) (string, error) {
	i := strings.IndexByte(iri, ':')
	if i < 0 {
		return iri, nil
	}
	prefix, local := iri[:i], iri[i+1:]
	// A declared prefix wins; otherwise only a colon followed by "//"
	// ("http://...") is taken as an absolute IRI. Any other undeclared
	// prefix, including a scheme such as "urn:", is an UnknownPrefixError.
	if base, ok := prefixes[prefix]; ok {
		return base + local, nil
	}
	if strings.HasPrefix(local, "//") {
		return iri, nil
	}
	return "", UnknownPrefixError{Prefix: prefix}
}
