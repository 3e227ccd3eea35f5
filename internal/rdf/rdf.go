// Package rdf is the graph model the labeler reads from: nodes, literals,
// resources and the namespace bindings declared alongside a graph.
//
// Graph is a small in-memory implementation used by the CLI and tests. Any
// other store can be labeled by implementing Resource.
package rdf

import "sort"

// Well-known IRIs
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	RDFType        = RDFNamespace + "type"
	RDFLangString  = RDFNamespace + "langString"
	RDFSSubClassOf = RDFSNamespace + "subClassOf"
	RDFSResource   = RDFSNamespace + "Resource"
	OWLThing       = OWLNamespace + "Thing"
	XSDString      = XSDNamespace + "string"
)

// Node is any term that can appear in object position
type Node interface {
	String() string
}

// Resource is a named or anonymous (blank) node
type Resource interface {
	Node

	// IsAnon reports whether the resource is a blank node
	IsAnon() bool
	// BlankID is the internal blank node identifier, empty for named resources
	BlankID() string
	// URI is the full IRI, empty for blank nodes
	URI() string
	Namespace() string
	LocalName() string

	// Objects returns the objects of all statements with this resource as
	// subject and the given predicate IRI, in insertion order
	Objects(predicate string) []Node

	// Bindings returns the prefix declarations of the graph the resource belongs to
	Bindings() NamespaceBindings
}

// NamespaceBindings maps a namespace IRI to its locally declared prefix
type NamespaceBindings interface {
	PrefixFor(namespace string) (prefix string, ok bool)
}

// Literal is a lexical value with an optional datatype or language tag
type Literal struct {
	Lexical  string
	Datatype string
	Lang     string
}

// DatatypeURI returns the effective datatype: rdf:langString for tagged
// literals, xsd:string for simple literals, otherwise the declared datatype.
func (l Literal) DatatypeURI() string {
	if l.Lang != "" {
		return RDFLangString
	}
	if l.Datatype == "" {
		return XSDString
	}
	return l.Datatype
}

func (l Literal) String() string {
	switch {
	case l.Lang != "":
		return l.Lexical + "@" + l.Lang
	case l.Datatype != "" && l.Datatype != XSDString:
		return l.Lexical + "^^" + l.Datatype
	default:
		return l.Lexical
	}
}

// Prefixes maps a prefix to its namespace IRI, as written in a document header
type Prefixes map[string]string

// PrefixFor finds the prefix bound to namespace. When several prefixes share
// a namespace the lexicographically smallest one is returned.
func (p Prefixes) PrefixFor(namespace string) (string, bool) {
	var matches []string
	for prefix, ns := range p {
		if ns == namespace {
			matches = append(matches, prefix)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}
