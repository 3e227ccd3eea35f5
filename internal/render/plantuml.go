// Package render draws a graph as a PlantUML object diagram using the labels
// produced by the label package.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/MikeO7/rdflabel/internal/label"
	"github.com/MikeO7/rdflabel/internal/rdf"
)

// Options control what the diagram shows
type Options struct {
	// WithTypes titles each object with its typed label (ex_alice:foaf_Person)
	WithTypes bool
}

// PlantUML writes g as an object diagram. Every subject becomes an object,
// literal values become fields and resource values become arrows. Arrow
// targets without statements of their own are declared as empty objects.
// rdf:type statements only feed the object title.
func PlantUML(w io.Writer, g *rdf.Graph, l *label.Labeler, opts Options) error {
	bw := bufio.NewWriter(w)

	title := func(r rdf.Resource) string {
		if opts.WithTypes {
			return l.ResourceLabelWithType(r)
		}
		return l.ResourceLabel(r)
	}

	fmt.Fprintln(bw, "@startuml")

	declared := make(map[string]bool)
	var edges []string
	var targets []rdf.Resource
	for _, subject := range g.Subjects() {
		id := l.ResourceLabel(subject)
		declared[id] = true

		var fields []string
		for _, st := range g.Statements(subject) {
			if st.Predicate.URI() == rdf.RDFType {
				continue
			}
			switch obj := st.Object.(type) {
			case rdf.Resource:
				targets = append(targets, obj)
				edges = append(edges, fmt.Sprintf("%s --> %s : %s",
					id, l.ResourceLabel(obj), l.PropertyLabel(st.Predicate, obj)))
			default:
				fields = append(fields, fmt.Sprintf("  %s = %s",
					l.PropertyLabel(st.Predicate, obj), l.LiteralValue(obj)))
			}
		}

		if len(fields) == 0 {
			fmt.Fprintf(bw, "object %q as %s\n", title(subject), id)
			continue
		}
		fmt.Fprintf(bw, "object %q as %s {\n", title(subject), id)
		for _, f := range fields {
			fmt.Fprintln(bw, f)
		}
		fmt.Fprintln(bw, "}")
	}

	for _, target := range targets {
		id := l.ResourceLabel(target)
		if declared[id] {
			continue
		}
		declared[id] = true
		fmt.Fprintf(bw, "object %q as %s\n", title(target), id)
	}

	for _, e := range edges {
		fmt.Fprintln(bw, e)
	}
	fmt.Fprintln(bw, "@enduml")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}
