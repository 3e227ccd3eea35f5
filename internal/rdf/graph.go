package rdf

import "strings"

const blankPrefix = "_:"

// Statement is a single subject-predicate-object triple
type Statement struct {
	Subject   Resource
	Predicate Resource
	Object    Node
}

// Graph is an insertion-ordered, in-memory set of statements together with
// the prefixes declared for it. It is not safe for concurrent mutation;
// concurrent readers are fine once loading is complete.
type Graph struct {
	prefixes   Prefixes
	subjects   []string
	statements map[string][]Statement
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		prefixes:   Prefixes{},
		statements: make(map[string][]Statement),
	}
}

// SetPrefix declares prefix for namespace. An empty prefix declares the
// default namespace.
func (g *Graph) SetPrefix(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Prefixes returns the declared prefix table
func (g *Graph) Prefixes() Prefixes {
	return g.prefixes
}

// Resource returns a named resource bound to this graph
func (g *Graph) Resource(iri string) Resource {
	ns, local := SplitIRI(iri)
	return &graphResource{graph: g, iri: iri, namespace: ns, local: local}
}

// Blank returns a blank node bound to this graph
func (g *Graph) Blank(id string) Resource {
	return &graphResource{graph: g, blankID: id}
}

// Node resolves a term as written in a graph document: "_:id" is a blank
// node, anything else an IRI.
func (g *Graph) Node(term string) Resource {
	if id, ok := strings.CutPrefix(term, blankPrefix); ok {
		return g.Blank(id)
	}
	return g.Resource(term)
}

// Add appends a statement. Duplicate statements are ignored.
func (g *Graph) Add(subject Resource, predicate string, object Node) {
	key := NodeKey(subject)
	for _, st := range g.statements[key] {
		if st.Predicate.URI() == predicate && sameNode(st.Object, object) {
			return
		}
	}
	if _, seen := g.statements[key]; !seen {
		g.subjects = append(g.subjects, key)
	}
	g.statements[key] = append(g.statements[key], Statement{
		Subject:   g.rebind(subject),
		Predicate: g.Resource(predicate),
		Object:    g.rebindNode(object),
	})
}

// Subjects lists every resource that has at least one statement, in the
// order they were first added
func (g *Graph) Subjects() []Resource {
	out := make([]Resource, 0, len(g.subjects))
	for _, key := range g.subjects {
		out = append(out, g.Node(key))
	}
	return out
}

// Statements lists the statements with the given subject, in insertion order
func (g *Graph) Statements(subject Resource) []Statement {
	return g.statements[NodeKey(subject)]
}

// Len returns the number of statements
func (g *Graph) Len() int {
	n := 0
	for _, sts := range g.statements {
		n += len(sts)
	}
	return n
}

func (g *Graph) rebind(r Resource) Resource {
	if r.IsAnon() {
		return g.Blank(r.BlankID())
	}
	return g.Resource(r.URI())
}

func (g *Graph) rebindNode(n Node) Node {
	if r, ok := n.(Resource); ok {
		return g.rebind(r)
	}
	return n
}

type graphResource struct {
	graph     *Graph
	iri       string
	namespace string
	local     string
	blankID   string
}

func (r *graphResource) IsAnon() bool      { return r.iri == "" }
func (r *graphResource) BlankID() string   { return r.blankID }
func (r *graphResource) URI() string       { return r.iri }
func (r *graphResource) Namespace() string { return r.namespace }
func (r *graphResource) LocalName() string { return r.local }

func (r *graphResource) String() string {
	return NodeKey(r)
}

func (r *graphResource) Bindings() NamespaceBindings {
	return r.graph.prefixes
}

func (r *graphResource) Objects(predicate string) []Node {
	var out []Node
	for _, st := range r.graph.statements[NodeKey(r)] {
		if st.Predicate.URI() == predicate {
			out = append(out, st.Object)
		}
	}
	return out
}

// NodeKey identifies a node inside a graph: the IRI for named resources and
// "_:id" for blank nodes
func NodeKey(r Resource) string {
	if r.IsAnon() {
		return blankPrefix + r.BlankID()
	}
	return r.URI()
}

func sameNode(a, b Node) bool {
	ra, aIsRes := a.(Resource)
	rb, bIsRes := b.(Resource)
	if aIsRes != bIsRes {
		return false
	}
	if aIsRes {
		return NodeKey(ra) == NodeKey(rb)
	}
	la, aOK := a.(Literal)
	lb, bOK := b.(Literal)
	return aOK && bOK && la == lb
}
