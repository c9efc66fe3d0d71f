package template

import "fmt"

// Builder is the only writer of a Template. Errors are sticky: the first one
// is returned from every later call and from Build.
type Builder struct {
	t   *Template
	err error
}

// NewBuilder starts an empty template
func NewBuilder(id string) *Builder {
	return &Builder{t: &Template{
		ID:          id,
		vertexIndex: make(map[string]int),
		edgeIndex:   make(map[string]int),
	}}
}

func (b *Builder) fail(element string, cause error, detail string) error {
	if b.err == nil {
		b.err = malformed(b.t.ID, element, cause, detail)
	}
	return b.err
}

// AddVertex adds a gene and returns its index
func (b *Builder) AddVertex(id string) (int, error) {
	if b.err != nil {
		return -1, b.err
	}
	if _, ok := b.t.vertexIndex[id]; ok {
		return -1, b.fail(id, ErrDuplicateID, "vertex")
	}
	i := len(b.t.vertices)
	b.t.vertices = append(b.t.vertices, Vertex{ID: id, Output: -1})
	b.t.vertexIndex[id] = i
	return i, nil
}

// AddEdge adds a wire and returns its index
func (b *Builder) AddEdge(id string, typ EdgeType, sig EdgeSignal) (int, error) {
	if b.err != nil {
		return -1, b.err
	}
	if _, ok := b.t.edgeIndex[id]; ok {
		return -1, b.fail(id, ErrDuplicateID, "edge")
	}
	if typ == "" {
		typ = Neutral
	}
	i := len(b.t.edges)
	b.t.edges = append(b.t.edges, Edge{ID: id, Type: typ, Signal: sig})
	b.t.edgeIndex[id] = i
	return i, nil
}

// Feed makes edge an input of vertex. Feeding the same pair twice is a no-op.
func (b *Builder) Feed(edge, vertex int) error {
	if err := b.check(edge, vertex); err != nil {
		return err
	}
	v := &b.t.vertices[vertex]
	for _, in := range v.Inputs {
		if in == edge {
			return nil
		}
	}
	v.Inputs = append(v.Inputs, edge)
	e := &b.t.edges[edge]
	e.Dsts = append(e.Dsts, vertex)
	return nil
}

// Drive makes edge the output of vertex
func (b *Builder) Drive(vertex, edge int) error {
	if err := b.check(edge, vertex); err != nil {
		return err
	}
	v := &b.t.vertices[vertex]
	switch v.Output {
	case edge:
		return nil
	case -1:
	default:
		return b.fail(v.ID, ErrMultipleOutputs,
			fmt.Sprintf("%s and %s", b.t.edges[v.Output].ID, b.t.edges[edge].ID))
	}
	v.Output = edge
	e := &b.t.edges[edge]
	e.Srcs = append(e.Srcs, vertex)
	return nil
}

func (b *Builder) check(edge, vertex int) error {
	if b.err != nil {
		return b.err
	}
	if vertex < 0 || vertex >= len(b.t.vertices) {
		return b.fail(fmt.Sprint(vertex), ErrUnknownVertex, "index out of range")
	}
	if edge < 0 || edge >= len(b.t.edges) {
		return b.fail(fmt.Sprint(edge), ErrUnknownEdge, "index out of range")
	}
	return nil
}

// AddInput declares an input port
func (b *Builder) AddInput(id string, edge int) error {
	return b.addPort(&b.t.inputs, id, edge)
}

// AddOutput declares an output port
func (b *Builder) AddOutput(id string, edge int) error {
	return b.addPort(&b.t.outputs, id, edge)
}

func (b *Builder) addPort(ports *[]Port, id string, edge int) error {
	if b.err != nil {
		return b.err
	}
	if edge < 0 || edge >= len(b.t.edges) {
		return b.fail(id, ErrUnknownEdge, "port")
	}
	if _, ok := findPort(*ports, id); ok {
		return b.fail(id, ErrDuplicateID, "port")
	}
	*ports = append(*ports, Port{ID: id, Edge: edge})
	return nil
}

// Build freezes the template. The builder must not be used afterwards.
func (b *Builder) Build() (*Template, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, v := range b.t.vertices {
		var neutral, regulated bool
		for _, e := range v.Inputs {
			if b.t.edges[e].Type == Neutral {
				neutral = true
			} else {
				regulated = true
			}
		}
		if neutral && regulated {
			return nil, b.fail(v.ID, ErrMixedRegulation, "")
		}
	}
	t := b.t
	b.t = nil
	return t, nil
}
