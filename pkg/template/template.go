// Package template models circuit topologies: genes (vertices) connected by
// the proteins they express (edges), with named input and output ports.
package template

import (
	"fmt"
	"strings"
)

// EdgeType is the regulatory effect of whatever protein is bound to an edge
type EdgeType string

const (
	Neutral    EdgeType = "0"
	Activating EdgeType = "+"
	Inhibiting EdgeType = "-"
)

// ParseEdgeType normalises a document edge type; empty means Neutral
func ParseEdgeType(s string) (EdgeType, error) {
	switch s {
	case "", "0":
		return Neutral, nil
	case "+":
		return Activating, nil
	case "-":
		return Inhibiting, nil
	}
	return "", fmt.Errorf("edge type %q", s)
}

// EdgeSignal says whether an environmental signal acts on the edge's protein
type EdgeSignal string

const (
	NoSignal         EdgeSignal = ""
	SignalActivating EdgeSignal = "+"
	SignalInhibiting EdgeSignal = "-"
)

// ParseEdgeSignal converts a document edge signal
func ParseEdgeSignal(s string) (EdgeSignal, error) {
	switch s {
	case "":
		return NoSignal, nil
	case "+":
		return SignalActivating, nil
	case "-":
		return SignalInhibiting, nil
	}
	return "", fmt.Errorf("edge signal %q", s)
}

// EdgeClass is derived from which ends of an edge are connected
type EdgeClass int

const (
	Unconnected EdgeClass = iota
	Input
	Output
	Internal
)

func (c EdgeClass) String() string {
	switch c {
	case Input:
		return "input"
	case Output:
		return "output"
	case Internal:
		return "internal"
	default:
		return "unconnected"
	}
}

// Vertex is one regulated gene. Inputs and Output are edge indices; Output is
// -1 when the gene drives nothing.
type Vertex struct {
	ID     string
	Inputs []int
	Output int
}

// Edge is one wire. Srcs and Dsts are vertex indices.
type Edge struct {
	ID     string
	Type   EdgeType
	Signal EdgeSignal
	Srcs   []int
	Dsts   []int
}

// Class derives the edge classification
func (e Edge) Class() EdgeClass {
	switch {
	case len(e.Srcs) == 0 && len(e.Dsts) > 0:
		return Input
	case len(e.Srcs) > 0 && len(e.Dsts) == 0:
		return Output
	case len(e.Srcs) > 0:
		return Internal
	default:
		return Unconnected
	}
}

// Port names an edge at the template boundary
type Port struct {
	ID   string
	Edge int
}

// Template is an immutable circuit topology. Vertices and edges are addressed
// by index; indices are stable for the template's lifetime.
type Template struct {
	ID       string
	vertices []Vertex
	edges    []Edge
	inputs   []Port
	outputs  []Port

	vertexIndex map[string]int
	edgeIndex   map[string]int
}

// NumVertices returns the number of genes
func (t *Template) NumVertices() int {
	return len(t.vertices)
}

// NumEdges returns the number of wires
func (t *Template) NumEdges() int {
	return len(t.edges)
}

// Vertex returns vertex i. The returned slices must not be modified.
func (t *Template) Vertex(i int) Vertex {
	return t.vertices[i]
}

// Edge returns edge i. The returned slices must not be modified.
func (t *Template) Edge(i int) Edge {
	return t.edges[i]
}

// VertexIndex looks a vertex up by id
func (t *Template) VertexIndex(id string) (int, bool) {
	i, ok := t.vertexIndex[id]
	return i, ok
}

// EdgeIndex looks an edge up by id
func (t *Template) EdgeIndex(id string) (int, bool) {
	i, ok := t.edgeIndex[id]
	return i, ok
}

// Inputs returns the input ports in declaration order
func (t *Template) Inputs() []Port {
	return append([]Port(nil), t.inputs...)
}

// Outputs returns the output ports in declaration order
func (t *Template) Outputs() []Port {
	return append([]Port(nil), t.outputs...)
}

// InputPort returns the edge behind input port id
func (t *Template) InputPort(id string) (int, bool) {
	return findPort(t.inputs, id)
}

// OutputPort returns the edge behind output port id
func (t *Template) OutputPort(id string) (int, bool) {
	return findPort(t.outputs, id)
}

func findPort(ports []Port, id string) (int, bool) {
	for _, p := range ports {
		if p.ID == id {
			return p.Edge, true
		}
	}
	return -1, false
}

// IsInputPort reports whether edge e is behind an input port
func (t *Template) IsInputPort(e int) bool {
	for _, p := range t.inputs {
		if p.Edge == e {
			return true
		}
	}
	return false
}

// IsOutputPort reports whether edge e is behind an output port
func (t *Template) IsOutputPort(e int) bool {
	for _, p := range t.outputs {
		if p.Edge == e {
			return true
		}
	}
	return false
}

// RegulationPattern returns one "+" per activating input followed by one "-"
// per inhibiting input. Neutral inputs contribute nothing.
func (t *Template) RegulationPattern(v int) string {
	var plus, minus int
	for _, e := range t.vertices[v].Inputs {
		switch t.edges[e].Type {
		case Activating:
			plus++
		case Inhibiting:
			minus++
		}
	}
	return strings.Repeat("+", plus) + strings.Repeat("-", minus)
}

// String dumps the template deterministically
func (t *Template) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "template %s\n", t.ID)

	sb.WriteString("vertices:\n")
	for i, v := range t.vertices {
		out := "-"
		if v.Output >= 0 {
			out = t.edges[v.Output].ID
		}
		fmt.Fprintf(&sb, "  %s in=[%s] out=%s pattern=%q\n", v.ID, t.edgeIDs(v.Inputs), out, t.RegulationPattern(i))
	}

	sb.WriteString("edges:\n")
	for _, e := range t.edges {
		fmt.Fprintf(&sb, "  %s type=%s signal=%q src=[%s] dst=[%s] %s\n",
			e.ID, e.Type, string(e.Signal), t.vertexIDs(e.Srcs), t.vertexIDs(e.Dsts), e.Class())
	}

	sb.WriteString("inputs:\n")
	for _, p := range t.inputs {
		fmt.Fprintf(&sb, "  %s -> %s\n", p.ID, t.edges[p.Edge].ID)
	}
	sb.WriteString("outputs:\n")
	for _, p := range t.outputs {
		fmt.Fprintf(&sb, "  %s -> %s\n", p.ID, t.edges[p.Edge].ID)
	}
	return sb.String()
}

func (t *Template) edgeIDs(idx []int) string {
	ids := make([]string, len(idx))
	for i, e := range idx {
		ids[i] = t.edges[e].ID
	}
	return strings.Join(ids, ",")
}

func (t *Template) vertexIDs(idx []int) string {
	ids := make([]string, len(idx))
	for i, v := range idx {
		ids[i] = t.vertices[v].ID
	}
	return strings.Join(ids, ",")
}
