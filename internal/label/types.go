package label

import (
	"github.com/MikeO7/rdflabel/internal/rdf"
)

// TypeSeparator joins a resource label and its type label
const TypeSeparator = ":"

// genericTypes are never a useful qualifier when more specific types exist
var genericTypes = map[string]bool{
	rdf.OWLThing:     true,
	rdf.RDFSResource: true,
}

// ResourceLabelWithType qualifies the resource label with its type label when
// the resource has exactly one named rdf:type, e.g. ex_alice:foaf_Person.
// With no type, or several, the bare label is returned unless
// Options.MostSpecificType picks one of them.
func (l *Labeler) ResourceLabelWithType(r rdf.Resource) string {
	base := l.ResourceLabel(r)

	types := DeclaredTypes(r)
	switch len(types) {
	case 0:
		return base
	case 1:
		return base + TypeSeparator + l.ResourceLabel(types[0])
	}

	if l.opts.MostSpecificType {
		if t, ok := l.MostSpecificType(types); ok {
			return base + TypeSeparator + l.ResourceLabel(t)
		}
	}
	return base
}

// DeclaredTypes returns the distinct named objects of the resource's rdf:type
// statements, in statement order. Blank node and literal objects are ignored.
func DeclaredTypes(r rdf.Resource) []rdf.Resource {
	var types []rdf.Resource
	seen := make(map[string]bool)
	for _, obj := range r.Objects(rdf.RDFType) {
		t, ok := obj.(rdf.Resource)
		if !ok || t.IsAnon() || seen[t.URI()] {
			continue
		}
		seen[t.URI()] = true
		types = append(types, t)
	}
	return types
}

// MostSpecificType picks one type out of candidates:
//  1. owl:Thing and rdfs:Resource are dropped
//  2. a candidate that is a strict ancestor of another candidate is dropped
//  3. of the remaining ones the one with the most ancestors wins, ties going
//     to the smallest label
//
// ok is false when no candidate survives step 1.
func (l *Labeler) MostSpecificType(candidates []rdf.Resource) (rdf.Resource, bool) {
	var pool []rdf.Resource
	ancestors := make(map[string]map[string]bool)
	for _, c := range candidates {
		if genericTypes[c.URI()] {
			continue
		}
		key := rdf.NodeKey(c)
		if _, dup := ancestors[key]; dup {
			continue
		}
		set := make(map[string]bool)
		for sc := range Superclasses(c) {
			set[rdf.NodeKey(sc)] = true
		}
		ancestors[key] = set
		pool = append(pool, c)
	}

	var remaining []rdf.Resource
	for _, c := range pool {
		ck := rdf.NodeKey(c)
		general := false
		for _, d := range pool {
			dk := rdf.NodeKey(d)
			if dk != ck && ancestors[dk][ck] && !ancestors[ck][dk] {
				general = true
				break
			}
		}
		if !general {
			remaining = append(remaining, c)
		}
	}

	var best rdf.Resource
	var bestDepth int
	var bestLabel string
	for _, c := range remaining {
		depth := len(ancestors[rdf.NodeKey(c)])
		lbl := l.ResourceLabel(c)
		if best == nil || depth > bestDepth || (depth == bestDepth && lbl < bestLabel) {
			best, bestDepth, bestLabel = c, depth, lbl
		}
	}
	return best, best != nil
}
