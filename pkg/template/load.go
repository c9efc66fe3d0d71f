package template

import (
	"slices"
	"strings"
)

// Load builds template id from src. Subnetworks are built first, each once,
// and merged into the parent with their ids prefixed by "<subnetwork id>.".
func Load(src Source, id string) (*Template, error) {
	l := &loader{
		src:   src,
		color: make(map[string]color),
		built: make(map[string]*Template),
	}
	return l.load(id)
}

type color int

const (
	white color = iota // not visited
	gray               // on the current path
	black              // built
)

type loader struct {
	src   Source
	color map[string]color
	built map[string]*Template
	path  []string
}

func (l *loader) load(id string) (*Template, error) {
	switch l.color[id] {
	case black:
		return l.built[id], nil
	case gray:
		start := slices.Index(l.path, id)
		cycle := append(slices.Clone(l.path[start:]), id)
		return nil, malformed(l.path[len(l.path)-1], id, ErrRecursiveTemplate, strings.Join(cycle, " -> "))
	}

	l.color[id] = gray
	l.path = append(l.path, id)

	doc, err := l.src.Document(id)
	if err != nil {
		return nil, err
	}

	children := make([]*Template, len(doc.Subnetworks))
	for i, sn := range doc.Subnetworks {
		child, err := l.load(sn.Template)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	t, err := compose(doc, children)
	if err != nil {
		return nil, err
	}

	l.path = l.path[:len(l.path)-1]
	l.color[id] = black
	l.built[id] = t
	return t, nil
}

// FromDocument builds a template that has no subnetworks
func FromDocument(doc *Document) (*Template, error) {
	if len(doc.Subnetworks) > 0 {
		return nil, malformed(doc.ID, doc.Subnetworks[0].ID, ErrUnknownTemplate, "subnetworks need a Source")
	}
	return compose(doc, nil)
}

// composer merges one document with its already built children. Children are
// read, never written.
type composer struct {
	b        *Builder
	doc      *Document
	children []*Template
	subIndex map[string]int
	vbase    []int
	edgeMap  [][]int
}

func compose(doc *Document, children []*Template) (*Template, error) {
	c := &composer{
		b:        NewBuilder(doc.ID),
		doc:      doc,
		children: children,
		subIndex: make(map[string]int, len(children)),
		vbase:    make([]int, len(children)),
		edgeMap:  make([][]int, len(children)),
	}
	for i, sn := range doc.Subnetworks {
		if _, dup := c.subIndex[sn.ID]; dup {
			return nil, malformed(doc.ID, sn.ID, ErrDuplicateID, "subnetwork")
		}
		c.subIndex[sn.ID] = i
	}

	steps := []func() error{
		c.addLocal,
		c.addChildren,
		c.addConnections,
		c.addPorts,
		c.checkDangling,
		c.wireChildren,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return c.b.Build()
}

func (c *composer) fail(element string, cause error, detail string) error {
	return c.b.fail(element, cause, detail)
}

func (c *composer) addLocal() error {
	for _, v := range c.doc.Vertices {
		if _, err := c.b.AddVertex(v.ID); err != nil {
			return err
		}
	}
	for _, ed := range c.doc.Edges {
		typ, err := ParseEdgeType(ed.Type)
		if err != nil {
			return c.fail(ed.ID, ErrInvalidDocument, err.Error())
		}
		sig, err := ParseEdgeSignal(ed.Signal)
		if err != nil {
			return c.fail(ed.ID, ErrInvalidDocument, err.Error())
		}
		e, err := c.b.AddEdge(ed.ID, typ, sig)
		if err != nil {
			return err
		}
		for _, src := range ed.From {
			v, ok := c.b.t.vertexIndex[src]
			if !ok {
				return c.fail(src, ErrUnknownVertex, "source of edge "+ed.ID)
			}
			if err := c.b.Drive(v, e); err != nil {
				return err
			}
		}
		for _, dst := range ed.To {
			v, ok := c.b.t.vertexIndex[dst]
			if !ok {
				return c.fail(dst, ErrUnknownVertex, "destination of edge "+ed.ID)
			}
			if err := c.b.Feed(e, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// addChildren copies every sub-vertex and every sub-edge that is not behind
// a port. Port edges are resolved by connections or parent ports.
func (c *composer) addChildren() error {
	for i, child := range c.children {
		prefix := c.doc.Subnetworks[i].ID + "."
		c.vbase[i] = len(c.b.t.vertices)
		for _, v := range child.vertices {
			if _, err := c.b.AddVertex(prefix + v.ID); err != nil {
				return err
			}
		}
		c.edgeMap[i] = make([]int, len(child.edges))
		for ce, e := range child.edges {
			c.edgeMap[i][ce] = -1
			if child.IsInputPort(ce) || child.IsOutputPort(ce) {
				continue
			}
			pe, err := c.b.AddEdge(prefix+e.ID, e.Type, e.Signal)
			if err != nil {
				return err
			}
			c.edgeMap[i][ce] = pe
		}
	}
	return nil
}

// portEdge resolves a subnetwork port to the child's edge index
func (c *composer) portEdge(ref PortRefDoc, input bool) (sub, edge int, err error) {
	sub, ok := c.subIndex[ref.Network]
	if !ok {
		return -1, -1, c.fail(ref.Network, ErrUnknownSubnetwork, "")
	}
	child := c.children[sub]
	if input {
		edge, ok = child.InputPort(ref.Port)
	} else {
		edge, ok = child.OutputPort(ref.Port)
	}
	if !ok {
		dir := "output"
		if input {
			dir = "input"
		}
		return -1, -1, c.fail(ref.Network+"."+ref.Port, ErrUnknownPort, dir+" port of "+child.ID)
	}
	return sub, edge, nil
}

func (c *composer) bind(ref PortRefDoc, sub, edge, parent int) error {
	if c.edgeMap[sub][edge] >= 0 {
		return c.fail(ref.Network+"."+ref.Port, ErrPortReused, "")
	}
	c.edgeMap[sub][edge] = parent
	return nil
}

// addConnections creates one edge per connection. Its type comes from the
// first destination port and its signal from the first source port.
func (c *composer) addConnections() error {
	for _, conn := range c.doc.Connections {
		dsub, dedge, err := c.portEdge(conn.To[0], true)
		if err != nil {
			return err
		}
		ssub, sedge, err := c.portEdge(conn.From[0], false)
		if err != nil {
			return err
		}
		typ := c.children[dsub].edges[dedge].Type
		sig := c.children[ssub].edges[sedge].Signal

		pe, err := c.b.AddEdge(conn.ID, typ, sig)
		if err != nil {
			return err
		}
		for _, ref := range conn.From {
			sub, edge, err := c.portEdge(ref, false)
			if err != nil {
				return err
			}
			if err := c.bind(ref, sub, edge, pe); err != nil {
				return err
			}
		}
		for _, ref := range conn.To {
			sub, edge, err := c.portEdge(ref, true)
			if err != nil {
				return err
			}
			if err := c.bind(ref, sub, edge, pe); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *composer) addPorts() error {
	for _, p := range c.doc.Inputs {
		e, err := c.resolvePort(p, true)
		if err != nil {
			return err
		}
		if err := c.b.AddInput(p.ID, e); err != nil {
			return err
		}
	}
	for _, p := range c.doc.Outputs {
		e, err := c.resolvePort(p, false)
		if err != nil {
			return err
		}
		if err := c.b.AddOutput(p.ID, e); err != nil {
			return err
		}
	}
	return nil
}

// resolvePort returns the parent edge behind a port, exporting a sub-port
// edge on first use. A sub-port already satisfied by a connection resolves
// to the connection edge.
func (c *composer) resolvePort(p PortDoc, input bool) (int, error) {
	if (p.Edge == "") == (p.Network == "") {
		return -1, c.fail(p.ID, ErrAmbiguousPort, "")
	}
	if p.Edge != "" {
		e, ok := c.b.t.edgeIndex[p.Edge]
		if !ok {
			return -1, c.fail(p.Edge, ErrUnknownEdge, "port "+p.ID)
		}
		return e, nil
	}

	ref := PortRefDoc{Network: p.Network, Port: p.Port}
	sub, edge, err := c.portEdge(ref, input)
	if err != nil {
		return -1, err
	}
	if pe := c.edgeMap[sub][edge]; pe >= 0 {
		return pe, nil
	}
	ce := c.children[sub].edges[edge]
	pe, err := c.b.AddEdge(p.Network+"."+ce.ID, ce.Type, ce.Signal)
	if err != nil {
		return -1, err
	}
	c.edgeMap[sub][edge] = pe
	return pe, nil
}

func (c *composer) checkDangling() error {
	for i, child := range c.children {
		for _, ports := range [][]Port{child.inputs, child.outputs} {
			for _, p := range ports {
				if c.edgeMap[i][p.Edge] < 0 {
					return c.fail(c.doc.Subnetworks[i].ID+"."+p.ID, ErrDanglingPort, "")
				}
			}
		}
	}
	return nil
}

// wireChildren reconnects sub-vertices through the edge map, keeping each
// vertex's input order.
func (c *composer) wireChildren() error {
	for i, child := range c.children {
		for j, v := range child.vertices {
			pv := c.vbase[i] + j
			for _, in := range v.Inputs {
				if err := c.b.Feed(c.edgeMap[i][in], pv); err != nil {
					return err
				}
			}
			if v.Output >= 0 {
				if err := c.b.Drive(pv, c.edgeMap[i][v.Output]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
