package rdf

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a small graph: a prefix table and a flat list
// of statements. Terms may be written as full IRIs, "_:id" blank nodes or
// prefix:local names using the declared prefixes.
type Document struct {
	Prefixes   map[string]string   `yaml:"prefixes"`
	Statements []DocumentStatement `yaml:"statements"`
}

// DocumentStatement is one triple. Exactly one of Object or Literal is set.
type DocumentStatement struct {
	Subject   string  `yaml:"subject"`
	Predicate string  `yaml:"predicate"`
	Object    string  `yaml:"object,omitempty"`
	Literal   *string `yaml:"literal,omitempty"`
	Datatype  string  `yaml:"datatype,omitempty"`
	Lang      string  `yaml:"lang,omitempty"`
}

// LoadDocument reads a YAML graph document from path
func LoadDocument(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument builds a graph from YAML graph document bytes
func ParseDocument(data []byte) (*Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	return doc.Graph()
}

// Graph validates the document and converts it into a Graph
func (d Document) Graph() (*Graph, error) {
	g := NewGraph()
	for prefix, ns := range d.Prefixes {
		g.SetPrefix(prefix, ns)
	}

	for i, st := range d.Statements {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}

		subject := g.Node(d.expand(st.Subject))
		predicate := d.expand(st.Predicate)

		var object Node
		if st.Literal != nil {
			object = Literal{
				Lexical:  *st.Literal,
				Datatype: d.expand(st.Datatype),
				Lang:     st.Lang,
			}
		} else {
			object = g.Node(d.expand(st.Object))
		}
		g.Add(subject, predicate, object)
	}
	return g, nil
}

func (s DocumentStatement) validate() error {
	switch {
	case s.Subject == "":
		return fmt.Errorf("subject is required")
	case s.Predicate == "":
		return fmt.Errorf("predicate is required")
	case strings.HasPrefix(s.Predicate, blankPrefix):
		return fmt.Errorf("predicate %q cannot be a blank node", s.Predicate)
	case s.Literal == nil && s.Object == "":
		return fmt.Errorf("one of object or literal is required")
	case s.Literal != nil && s.Object != "":
		return fmt.Errorf("object and literal are mutually exclusive")
	case s.Literal == nil && (s.Lang != "" || s.Datatype != ""):
		return fmt.Errorf("lang and datatype only apply to literals")
	case s.Lang != "" && s.Datatype != "":
		return fmt.Errorf("a literal cannot have both lang and datatype")
	}
	return nil
}

// expand rewrites prefix:local using the document prefixes. Anything else,
// including full IRIs whose scheme is not a declared prefix, is returned as is.
func (d Document) expand(term string) string {
	if term == "" || strings.HasPrefix(term, blankPrefix) {
		return term
	}
	prefix, local, ok := strings.Cut(term, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return term
	}
	if ns, declared := d.Prefixes[prefix]; declared {
		return ns + local
	}
	return term
}
