package label

import (
	"iter"
	"slices"

	"github.com/MikeO7/rdflabel/internal/rdf"
)

// Superclasses walks rdfs:subClassOf depth first (pre-order) and yields every
// ancestor of class once. Each range over the sequence starts a fresh walk.
// Already visited nodes are skipped, so cyclic hierarchies terminate; class
// itself is never yielded.
func Superclasses(class rdf.Resource) iter.Seq[rdf.Resource] {
	return func(yield func(rdf.Resource) bool) {
		visited := map[string]bool{rdf.NodeKey(class): true}

		var walk func(rdf.Resource) bool
		walk = func(c rdf.Resource) bool {
			for _, obj := range c.Objects(rdf.RDFSSubClassOf) {
				parent, ok := obj.(rdf.Resource)
				if !ok {
					continue
				}
				key := rdf.NodeKey(parent)
				if visited[key] {
					continue
				}
				visited[key] = true
				if !yield(parent) || !walk(parent) {
					return false
				}
			}
			return true
		}
		walk(class)
	}
}

// CollectSuperclasses returns all ancestors of class in traversal order
func CollectSuperclasses(class rdf.Resource) []rdf.Resource {
	return slices.Collect(Superclasses(class))
}
