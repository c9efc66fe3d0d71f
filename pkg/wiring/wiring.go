package wiring

import (
	"strings"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/template"
)

// Wiring maps edge indices to proteins. Unassigned edges are nil. A Wiring is
// never modified once shared; With returns a modified copy.
type Wiring []*biopart.Protein

// With returns a copy of w with edge e set to p
func (w Wiring) With(e int, p *biopart.Protein) Wiring {
	next := make(Wiring, len(w))
	copy(next, w)
	next[e] = p
	return next
}

// Uses reports whether p is already assigned to some edge
func (w Wiring) Uses(p *biopart.Protein) bool {
	for _, q := range w {
		if q != nil && q.Name == p.Name {
			return true
		}
	}
	return false
}

// Complete reports whether every edge is assigned
func (w Wiring) Complete() bool {
	for _, p := range w {
		if p == nil {
			return false
		}
	}
	return true
}

// Format renders the wiring as "edge=protein" pairs in edge order
func (w Wiring) Format(t *template.Template) string {
	parts := make([]string, len(w))
	for e, p := range w {
		name := "?"
		if p != nil {
			name = p.Name
		}
		parts[e] = t.Edge(e).ID + "=" + name
	}
	return strings.Join(parts, " ")
}

// regulators returns the proteins on v's regulating inputs that are assigned
func regulators(t *template.Template, w Wiring, v int) (tfs []*biopart.Protein, complete bool) {
	complete = true
	for _, e := range t.Vertex(v).Inputs {
		if t.Edge(e).Type == template.Neutral {
			continue
		}
		if w[e] == nil {
			complete = false
			continue
		}
		tfs = append(tfs, w[e])
	}
	return tfs, complete
}
