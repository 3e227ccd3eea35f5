package label

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/MikeO7/rdflabel/internal/rdf"
	"github.com/MikeO7/rdflabel/internal/vocab"
)

// Separator joins a prefix and a local name
const Separator = "_"

// ResolvePrefix returns the label prefix for namespace, separator included:
//   - a locally declared prefix wins ("" for the default namespace, no separator)
//   - then the vocabulary registry
//   - otherwise a hashed prefix of the form "p<hash>_"
func ResolvePrefix(namespace string, local rdf.NamespaceBindings, registry *vocab.Registry) string {
	prefix, _ := resolvePrefix(namespace, local, registry)
	return prefix
}

// prefixSource records which tier answered, for debug logging
type prefixSource string

const (
	sourceLocal    prefixSource = "local"
	sourceRegistry prefixSource = "registry"
	sourceHash     prefixSource = "hash"
)

func resolvePrefix(namespace string, local rdf.NamespaceBindings, registry *vocab.Registry) (string, prefixSource) {
	if local != nil {
		if prefix, ok := local.PrefixFor(namespace); ok {
			if prefix == "" {
				return "", sourceLocal
			}
			return prefix + Separator, sourceLocal
		}
	}

	if prefix, ok := registry.Lookup(namespace); ok {
		return prefix + Separator, sourceRegistry
	}

	return HashedPrefix(namespace) + Separator, sourceHash
}

// HashedPrefix derives a stable prefix from the namespace IRI: "p" followed by
// the low 32 bits of its xxHash64 in decimal
func HashedPrefix(namespace string) string {
	return "p" + strconv.FormatUint(xxhash.Sum64String(namespace)&0xffffffff, 10)
}
