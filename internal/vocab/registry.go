// Package vocab holds the process-wide vocabulary registry: the canonical
// prefix of each well-known namespace, built once at startup from the Linked
// Open Vocabularies catalog (or its on-disk cache) and read-only afterwards.
package vocab

import "sort"

// Entry pairs a vocabulary prefix with its namespace IRI
type Entry struct {
	Prefix    string `yaml:"prefix"`
	Namespace string `yaml:"namespace"`
}

// Registry is an immutable namespace to prefix table. The zero value and a
// nil *Registry are both empty and safe to use.
type Registry struct {
	prefixes map[string]string
}

// NewRegistry builds a registry from entries. When a namespace appears more
// than once the first prefix wins. Entries with an empty prefix or namespace
// are skipped.
func NewRegistry(entries []Entry) *Registry {
	prefixes := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Prefix == "" || e.Namespace == "" {
			continue
		}
		if _, exists := prefixes[e.Namespace]; exists {
			continue
		}
		prefixes[e.Namespace] = e.Prefix
	}
	return &Registry{prefixes: prefixes}
}

// Lookup returns the canonical prefix for namespace
func (r *Registry) Lookup(namespace string) (string, bool) {
	if r == nil {
		return "", false
	}
	prefix, ok := r.prefixes[namespace]
	return prefix, ok
}

// Len returns the number of namespaces in the registry
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.prefixes)
}

// Entries returns a copy of the registry contents sorted by namespace
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, 0, len(r.prefixes))
	for ns, prefix := range r.prefixes {
		out = append(out, Entry{Prefix: prefix, Namespace: ns})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Namespace < out[j].Namespace
	})
	return out
}
