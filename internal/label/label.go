// Package label derives short labels for RDF resources, properties and
// literals. A label is the namespace prefix plus the local name, e.g.
// foaf_Person for http://xmlns.com/foaf/0.1/Person, or BN<id> for blank nodes.
//
// A Labeler only reads the graph and the registry it was built with, so a
// single Labeler can serve concurrent callers.
package label

import (
	"sync"

	"github.com/MikeO7/rdflabel/internal/escape"
	"github.com/MikeO7/rdflabel/internal/rdf"
	"github.com/MikeO7/rdflabel/internal/vocab"
	"github.com/MikeO7/rdflabel/pkg/log"
)

// BlankPrefix starts every blank node label
const BlankPrefix = "BN"

// Options tune label derivation
type Options struct {
	// MostSpecificType resolves resources with several declared types to the
	// most specific one instead of leaving the label unqualified
	MostSpecificType bool
}

// Labeler formats labels against a fixed vocabulary registry
type Labeler struct {
	registry *vocab.Registry
	opts     Options

	// namespaces already reported as falling back to a hashed prefix
	hashed sync.Map
}

// New creates a Labeler. registry may be nil.
func New(registry *vocab.Registry, opts Options) *Labeler {
	return &Labeler{registry: registry, opts: opts}
}

// Prefix returns the label prefix (separator included) for a named resource
func (l *Labeler) Prefix(r rdf.Resource) string {
	prefix, source := resolvePrefix(r.Namespace(), r.Bindings(), l.registry)
	if source == sourceHash {
		if _, seen := l.hashed.LoadOrStore(r.Namespace(), true); !seen {
			log.WithNamespace(r.Namespace(), prefix).Debug().Msg("No prefix declared or registered, using hashed prefix")
		}
	}
	return prefix
}

// PropertyLabel returns prefix + local name of property. When value is a
// literal with a language tag the tag is appended, e.g. rdfs_label_en.
// value may be nil.
func (l *Labeler) PropertyLabel(property rdf.Resource, value rdf.Node) string {
	name := l.name(property)
	if lit, ok := value.(rdf.Literal); ok && lit.Lang != "" {
		return name + Separator + lit.Lang
	}
	return name
}

// ResourceLabel returns the escaped label of a resource
func (l *Labeler) ResourceLabel(r rdf.Resource) string {
	var raw string
	if r.IsAnon() {
		raw = BlankPrefix + r.BlankID()
	} else {
		raw = l.name(r)
	}
	return escape.EscapeNodeName(raw)
}

// name is prefix + local name. An IRI that is exactly a namespace bound to
// the default prefix has neither, so it is named by its hash instead.
func (l *Labeler) name(r rdf.Resource) string {
	if name := l.Prefix(r) + r.LocalName(); name != "" {
		return name
	}
	return HashedPrefix(r.URI())
}

// LiteralValue renders an object value. String literals are quoted and
// escaped, other literals keep their lexical form and resources are rendered
// as their full identifier.
func (l *Labeler) LiteralValue(node rdf.Node) string {
	switch n := node.(type) {
	case nil:
		return ""
	case rdf.Literal:
		if isStringDatatype(n.DatatypeURI()) {
			return `"` + escape.EscapeStringValue(n.Lexical) + `"`
		}
		return n.Lexical
	default:
		return node.String()
	}
}

func isStringDatatype(datatype string) bool {
	return datatype == rdf.XSDString || datatype == rdf.RDFLangString
}
