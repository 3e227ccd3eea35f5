package rdf

import (
	"unicode"
	"unicode/utf8"
)

// SplitIRI splits an IRI into namespace and local name. The local name is the
// longest trailing XML NCName that starts with a letter or underscore; when
// there is none the whole IRI is the namespace.
func SplitIRI(iri string) (namespace, local string) {
	i := len(iri)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(iri[:i])
		if !isNCNameChar(r) {
			break
		}
		i -= size
	}
	for i < len(iri) {
		r, size := utf8.DecodeRuneInString(iri[i:])
		if isNCNameStartChar(r) {
			break
		}
		i += size
	}
	return iri[:i], iri[i:]
}

func isNCNameStartChar(r rune) bool {
	return r == '_' || (r != utf8.RuneError && unicode.IsLetter(r))
}

func isNCNameChar(r rune) bool {
	if isNCNameStartChar(r) {
		return true
	}
	switch r {
	case '-', '.', 0xB7:
		return true
	}
	return unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}
