package vocab

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry([]Entry{
		{Prefix: "foaf", Namespace: "http://xmlns.com/foaf/0.1/"},
		{Prefix: "dcterms", Namespace: "http://purl.org/dc/terms/"},
		{Prefix: "friend", Namespace: "http://xmlns.com/foaf/0.1/"},
		{Prefix: "", Namespace: "http://example.org/empty-prefix#"},
		{Prefix: "nons", Namespace: ""},
		{Prefix: "foaf", Namespace: "http://xmlns.com/foaf/0.1/"},
	})

	tests := []struct {
		name      string
		namespace string
		prefix    string
		ok        bool
	}{
		{"first seen wins", "http://xmlns.com/foaf/0.1/", "foaf", true},
		{"single entry", "http://purl.org/dc/terms/", "dcterms", true},
		{"empty prefix skipped", "http://example.org/empty-prefix#", "", false},
		{"unknown", "http://www.w3.org/2000/01/rdf-schema#", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, ok := registry.Lookup(tt.namespace)
			if prefix != tt.prefix || ok != tt.ok {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.namespace, prefix, ok, tt.prefix, tt.ok)
			}
		})
	}

	if registry.Len() != 2 {
		t.Errorf("Len() = %d, want 2", registry.Len())
	}
}

func TestRegistryEntries(t *testing.T) {
	registry := NewRegistry([]Entry{
		{Prefix: "schema", Namespace: "http://schema.org/"},
		{Prefix: "dcterms", Namespace: "http://purl.org/dc/terms/"},
	})

	want := []Entry{
		{Prefix: "dcterms", Namespace: "http://purl.org/dc/terms/"},
		{Prefix: "schema", Namespace: "http://schema.org/"},
	}
	if diff := cmp.Diff(want, registry.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestNilRegistry(t *testing.T) {
	var registry *Registry

	if _, ok := registry.Lookup("http://xmlns.com/foaf/0.1/"); ok {
		t.Errorf("nil registry Lookup() should miss")
	}
	if registry.Len() != 0 {
		t.Errorf("nil registry Len() = %d", registry.Len())
	}
	if registry.Entries() != nil {
		t.Errorf("nil registry Entries() should be nil")
	}

	var zero Registry
	if _, ok := zero.Lookup("x"); ok || zero.Len() != 0 {
		t.Errorf("zero registry should be empty")
	}
}
