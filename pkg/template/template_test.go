package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-genenet/pkg/catalog/catalogtest"
)

func fixtures() MapSource {
	return MapSource(catalogtest.Templates)
}

func edgeIDs(t *Template) []string {
	ids := make([]string, t.NumEdges())
	for i := range ids {
		ids[i] = t.Edge(i).ID
	}
	return ids
}

func vertexIDs(t *Template) []string {
	ids := make([]string, t.NumVertices())
	for i := range ids {
		ids[i] = t.Vertex(i).ID
	}
	return ids
}

// TestLoad_Demultiplexer tests a flat template
func TestLoad_Demultiplexer(t *testing.T) {
	tmpl, err := Load(fixtures(), "Demultiplexer0")
	require.NoError(t, err)

	assert.Equal(t, []string{"v0", "v1", "v2"}, vertexIDs(tmpl))
	assert.Equal(t, []string{"a", "b", "w", "out0", "out1"}, edgeIDs(tmpl))

	classes := map[string]EdgeClass{"a": Input, "b": Input, "w": Internal, "out0": Output, "out1": Output}
	for id, want := range classes {
		e, ok := tmpl.EdgeIndex(id)
		require.True(t, ok, id)
		edge := tmpl.Edge(e)
		assert.Equal(t, want, edge.Class(), id)
	}

	a, _ := tmpl.EdgeIndex("a")
	assert.Equal(t, Inhibiting, tmpl.Edge(a).Type)
	assert.Equal(t, SignalInhibiting, tmpl.Edge(a).Signal)
	assert.True(t, tmpl.IsInputPort(a))
	assert.False(t, tmpl.IsOutputPort(a))

	out0, _ := tmpl.EdgeIndex("out0")
	assert.Equal(t, Neutral, tmpl.Edge(out0).Type)

	v2, _ := tmpl.VertexIndex("v2")
	assert.Equal(t, "--", tmpl.RegulationPattern(v2))
	v0, _ := tmpl.VertexIndex("v0")
	assert.Equal(t, "-", tmpl.RegulationPattern(v0))

	in, ok := tmpl.InputPort("b")
	require.True(t, ok)
	assert.Equal(t, "b", tmpl.Edge(in).ID)
	_, ok = tmpl.OutputPort("a")
	assert.False(t, ok)
	assert.Len(t, tmpl.Inputs(), 2)
	assert.Len(t, tmpl.Outputs(), 2)
	assert.Empty(t, tmpl.FeedbackLoops())
}

// TestLoad_Composition tests merging subnetworks through connections
func TestLoad_Composition(t *testing.T) {
	tmpl, err := Load(fixtures(), "NotChain")
	require.NoError(t, err)

	assert.Equal(t, []string{"n0.v", "n1.v", "n2.r"}, vertexIDs(tmpl))
	assert.Equal(t, []string{"c0", "c1", "n0.in", "n2.out"}, edgeIDs(tmpl))

	c0, _ := tmpl.EdgeIndex("c0")
	edge := tmpl.Edge(c0)
	assert.Equal(t, Inhibiting, edge.Type, "type from the destination port")
	assert.Equal(t, NoSignal, edge.Signal, "signal from the source port")
	assert.Equal(t, Internal, edge.Class())

	n0v, _ := tmpl.VertexIndex("n0.v")
	n1v, _ := tmpl.VertexIndex("n1.v")
	assert.Equal(t, []int{n0v}, edge.Srcs)
	assert.Equal(t, []int{n1v}, edge.Dsts)
	assert.Equal(t, c0, tmpl.Vertex(n0v).Output)
	assert.Equal(t, []int{c0}, tmpl.Vertex(n1v).Inputs)

	in, ok := tmpl.InputPort("in")
	require.True(t, ok)
	assert.Equal(t, "n0.in", tmpl.Edge(in).ID)
	assert.Equal(t, SignalInhibiting, tmpl.Edge(in).Signal)

	y, ok := tmpl.OutputPort("y")
	require.True(t, ok)
	assert.Equal(t, "n2.out", tmpl.Edge(y).ID)
	assert.Equal(t, Neutral, tmpl.Edge(y).Type)
}

// TestLoad_ChildrenUnchanged tests that a shared child is built once and
// never modified by its parents
func TestLoad_ChildrenUnchanged(t *testing.T) {
	l := &loader{src: fixtures(), color: map[string]color{}, built: map[string]*Template{}}
	_, err := l.load("NotChain")
	require.NoError(t, err)

	gate := l.built["NotGate"]
	require.NotNil(t, gate)
	assert.Equal(t, []string{"v"}, vertexIDs(gate))
	assert.Equal(t, []string{"in", "out"}, edgeIDs(gate))
	assert.Equal(t, []int{0}, gate.Vertex(0).Inputs)
	assert.Equal(t, 1, gate.Vertex(0).Output)
}

// TestLoad_Nested tests prefixes across two levels of composition
func TestLoad_Nested(t *testing.T) {
	src := fixtures()
	src["Outer"] = `id: Outer
subnetworks:
  - {id: m, template: NotChain}
inputs:
  - {id: x, network: m, port: in}
outputs:
  - {id: z, network: m, port: y}
`
	tmpl, err := Load(src, "Outer")
	require.NoError(t, err)
	assert.Equal(t, []string{"m.n0.v", "m.n1.v", "m.n2.r"}, vertexIDs(tmpl))
	assert.Equal(t, []string{"m.c0", "m.c1", "m.n0.in", "m.n2.out"}, edgeIDs(tmpl))
}

// TestLoad_ExportConnected tests that a port satisfied by a connection
// resolves to the connection edge
func TestLoad_ExportConnected(t *testing.T) {
	src := fixtures()
	src["Tap"] = `id: Tap
subnetworks:
  - {id: n0, template: NotGate}
  - {id: n1, template: NotGate}
connections:
  - {id: c, from: [{network: n0, port: out}], to: [{network: n1, port: in}]}
inputs:
  - {id: in, network: n0, port: in}
outputs:
  - {id: mid, network: n0, port: out}
  - {id: out, network: n1, port: out}
`
	tmpl, err := Load(src, "Tap")
	require.NoError(t, err)
	mid, ok := tmpl.OutputPort("mid")
	require.True(t, ok)
	assert.Equal(t, "c", tmpl.Edge(mid).ID)
	assert.Equal(t, []string{"c", "n0.in", "n1.out"}, edgeIDs(tmpl))
}

// TestLoad_Errors tests malformed templates
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unknown vertex",
			doc:  "id: X\nvertices: [{id: v}]\nedges: [{id: e, type: \"-\", to: [u]}]\n",
			want: ErrUnknownVertex,
		},
		{
			name: "duplicate vertex",
			doc:  "id: X\nvertices: [{id: v}, {id: v}]\n",
			want: ErrDuplicateID,
		},
		{
			name: "duplicate edge",
			doc:  "id: X\nvertices: [{id: v}]\nedges: [{id: e, to: [v]}, {id: e, from: [v]}]\n",
			want: ErrDuplicateID,
		},
		{
			name: "mixed regulation",
			doc:  "id: X\nvertices: [{id: v}]\nedges: [{id: a, type: \"-\", to: [v]}, {id: b, type: \"0\", to: [v]}]\n",
			want: ErrMixedRegulation,
		},
		{
			name: "two outputs",
			doc:  "id: X\nvertices: [{id: v}]\nedges: [{id: a, from: [v]}, {id: b, from: [v]}]\n",
			want: ErrMultipleOutputs,
		},
		{
			name: "unknown subnetwork",
			doc:  "id: X\nsubnetworks: [{id: n0, template: NotGate}]\ninputs: [{id: in, network: n9, port: in}]\n",
			want: ErrUnknownSubnetwork,
		},
		{
			name: "unknown sub-port",
			doc:  "id: X\nsubnetworks: [{id: n0, template: NotGate}]\ninputs: [{id: in, network: n0, port: nope}]\n",
			want: ErrUnknownPort,
		},
		{
			name: "dangling sub-port",
			doc:  "id: X\nsubnetworks: [{id: n0, template: NotGate}]\ninputs: [{id: in, network: n0, port: in}]\n",
			want: ErrDanglingPort,
		},
		{
			name: "edge and network",
			doc:  "id: X\nvertices: [{id: v}]\nedges: [{id: e, to: [v]}]\ninputs: [{id: in, edge: e, network: n0, port: in}]\n",
			want: ErrAmbiguousPort,
		},
		{
			name: "port names nothing",
			doc:  "id: X\ninputs: [{id: in}]\n",
			want: ErrAmbiguousPort,
		},
		{
			name: "port reused",
			doc: `id: X
subnetworks: [{id: n0, template: NotGate}, {id: n1, template: NotGate}]
connections:
  - {id: c0, from: [{network: n0, port: out}], to: [{network: n1, port: in}]}
  - {id: c1, from: [{network: n0, port: out}], to: [{network: n1, port: in}]}
`,
			want: ErrPortReused,
		},
		{
			name: "unknown template",
			doc:  "id: X\nsubnetworks: [{id: n0, template: Missing}]\n",
			want: ErrUnknownTemplate,
		},
		{
			name: "self reference",
			doc:  "id: X\nsubnetworks: [{id: n0, template: X}]\n",
			want: ErrRecursiveTemplate,
		},
		{
			name: "bad edge type",
			doc:  "id: X\nedges: [{id: e, type: \"*\"}]\n",
			want: ErrInvalidDocument,
		},
		{
			name: "unknown field",
			doc:  "id: X\ncolour: red\n",
			want: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fixtures()
			src["X"] = tt.doc
			_, err := Load(src, "X")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var mte *MalformedTemplateError
			assert.True(t, errors.As(err, &mte), "error %v is not a MalformedTemplateError", err)
		})
	}
}

// TestLoad_MutualRecursion tests cycle detection across templates
func TestLoad_MutualRecursion(t *testing.T) {
	src := MapSource{
		"A": "id: A\nsubnetworks: [{id: b, template: B}]\n",
		"B": "id: B\nsubnetworks: [{id: c, template: C}]\n",
		"C": "id: C\nsubnetworks: [{id: a, template: A}]\n",
	}
	_, err := Load(src, "A")
	require.ErrorIs(t, err, ErrRecursiveTemplate)
	assert.Contains(t, err.Error(), "A -> B -> C -> A")
}

// TestLoad_SharedChildIsNotRecursion tests that a diamond is not a cycle
func TestLoad_SharedChildIsNotRecursion(t *testing.T) {
	src := fixtures()
	src["Pair"] = `id: Pair
subnetworks:
  - {id: l, template: NotChain}
  - {id: r, template: NotChain}
inputs:
  - {id: a, network: l, port: in}
  - {id: b, network: r, port: in}
outputs:
  - {id: x, network: l, port: y}
  - {id: y, network: r, port: y}
`
	tmpl, err := Load(src, "Pair")
	require.NoError(t, err)
	assert.Equal(t, 6, tmpl.NumVertices())
}

// TestDocumentMismatch tests that a document id must match its key
func TestDocumentMismatch(t *testing.T) {
	_, err := Load(MapSource{"A": "id: B\n"}, "A")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

// TestDirSource tests reading templates from disk
func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"NotGate", "Reporter", "NotChain"} {
		path := filepath.Join(dir, id+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(catalogtest.Templates[id]), 0o644))
	}

	tmpl, err := Load(DirSource{Dir: dir}, "NotChain")
	require.NoError(t, err)
	assert.Equal(t, 3, tmpl.NumVertices())

	_, err = Load(DirSource{Dir: dir}, "Demultiplexer0")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

// TestFeedbackLoops tests regulation cycle detection
func TestFeedbackLoops(t *testing.T) {
	tmpl, err := Load(fixtures(), "Repressilator")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"v0", "v1", "v2"}}, tmpl.FeedbackLoops())

	b := NewBuilder("self")
	v, _ := b.AddVertex("v")
	e, _ := b.AddEdge("e", Inhibiting, NoSignal)
	require.NoError(t, b.Drive(v, e))
	require.NoError(t, b.Feed(e, v))
	self, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"v"}}, self.FeedbackLoops())

	chain, err := Load(fixtures(), "NotChain")
	require.NoError(t, err)
	assert.Empty(t, chain.FeedbackLoops())
}

// TestBuilder tests direct construction
func TestBuilder(t *testing.T) {
	b := NewBuilder("manual")
	v0, err := b.AddVertex("v0")
	require.NoError(t, err)
	v1, _ := b.AddVertex("v1")
	act, _ := b.AddEdge("act", Activating, SignalActivating)
	inh, _ := b.AddEdge("inh", Inhibiting, NoSignal)
	out, _ := b.AddEdge("out", "", NoSignal)

	require.NoError(t, b.Feed(inh, v1))
	require.NoError(t, b.Feed(act, v1))
	require.NoError(t, b.Feed(act, v1))
	require.NoError(t, b.Drive(v0, inh))
	require.NoError(t, b.Drive(v0, inh))
	require.NoError(t, b.Drive(v1, out))
	require.NoError(t, b.AddInput("a", act))
	require.NoError(t, b.AddOutput("o", out))
	assert.ErrorIs(t, b.Feed(act, 99), ErrUnknownVertex)

	// errors are sticky
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrUnknownVertex)

	b = NewBuilder("manual")
	v0, _ = b.AddVertex("v0")
	v1, _ = b.AddVertex("v1")
	act, _ = b.AddEdge("act", Activating, SignalActivating)
	inh, _ = b.AddEdge("inh", Inhibiting, NoSignal)
	out, _ = b.AddEdge("out", "", NoSignal)
	require.NoError(t, b.Feed(inh, v1))
	require.NoError(t, b.Feed(act, v1))
	require.NoError(t, b.Drive(v0, inh))
	require.NoError(t, b.Drive(v1, out))
	require.NoError(t, b.AddInput("a", act))
	assert.ErrorIs(t, b.AddInput("a", act), ErrDuplicateID)

	b = NewBuilder("manual")
	v0, _ = b.AddVertex("v0")
	v1, _ = b.AddVertex("v1")
	act, _ = b.AddEdge("act", Activating, SignalActivating)
	inh, _ = b.AddEdge("inh", Inhibiting, NoSignal)
	out, _ = b.AddEdge("out", "", NoSignal)
	require.NoError(t, b.Feed(inh, v1))
	require.NoError(t, b.Feed(act, v1))
	require.NoError(t, b.Drive(v0, inh))
	require.NoError(t, b.Drive(v1, out))
	tmpl, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "+-", tmpl.RegulationPattern(v1), "activators first")
	assert.Equal(t, "", tmpl.RegulationPattern(v0))
	assert.Equal(t, Neutral, tmpl.Edge(out).Type)
	assert.Equal(t, Unconnected, Edge{}.Class())
	assert.Equal(t, Input, tmpl.Edge(act).Class())
}

// TestString tests the deterministic dump
func TestString(t *testing.T) {
	tmpl, err := Load(fixtures(), "NotChain")
	require.NoError(t, err)
	s := tmpl.String()

	assert.Equal(t, s, tmpl.String())
	for _, want := range []string{
		"template NotChain\n",
		`  n1.v in=[c0] out=c1 pattern="-"`,
		`  c0 type=- signal="" src=[n0.v] dst=[n1.v] internal`,
		"  in -> n0.in\n",
		"  y -> n2.out\n",
	} {
		assert.Contains(t, s, want)
	}
	assert.Less(t, strings.Index(s, "vertices:"), strings.Index(s, "edges:"))
}

// TestParseEdge tests the type and signal parsers
func TestParseEdge(t *testing.T) {
	for in, want := range map[string]EdgeType{"": Neutral, "0": Neutral, "+": Activating, "-": Inhibiting} {
		got, err := ParseEdgeType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseEdgeType("x")
	assert.Error(t, err)

	for in, want := range map[string]EdgeSignal{"": NoSignal, "+": SignalActivating, "-": SignalInhibiting} {
		got, err := ParseEdgeSignal(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = ParseEdgeSignal("0")
	assert.Error(t, err)
}

// TestDocumentMarshal tests that a marshalled document loads back
func TestDocumentMarshal(t *testing.T) {
	doc, err := ParseDocument([]byte(catalogtest.Templates["Demultiplexer0"]))
	require.NoError(t, err)
	data, err := doc.Marshal()
	require.NoError(t, err)

	again, err := ParseDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc, again)

	tmpl, err := FromDocument(again)
	require.NoError(t, err)
	assert.Equal(t, 5, tmpl.NumEdges())

	chain, err := ParseDocument([]byte(catalogtest.Templates["NotChain"]))
	require.NoError(t, err)
	_, err = FromDocument(chain)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
