package catalogtest

import (
	"testing"

	"github.com/dd0wney/cluso-genenet/pkg/catalog"
)

// Demultiplexer builds the demultiplexer catalog: signal inhibitors iim0 and
// iim1, monomers i0m0..i0m{n-1}, reporters reporter0 and reporter1, one
// promoter per library and one RBS. Besides the libraries for iim0 and
// iim0+iim1, it holds a library iim1+i0m{j} for every bit j set in mask.
func Demultiplexer(t testing.TB, seed uint64, monomers int, mask uint64, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()
	g := NewGenerator(seed, 1, 1, opts...)
	g.SignalInhibitors(2)
	g.Monomers(monomers)
	g.AddReporters(2)

	g.ConstitutivePromoters()
	g.SinglePromoters(g.IIM[0])
	g.DoublePromoters(g.IIM[0], g.IIM[1])
	for j, m := range g.I0M {
		if j < 64 && mask&(1<<j) != 0 {
			g.DoublePromoters(g.IIM[1], m)
		}
	}

	g.RBSs()
	g.Codings(g.Reporters)
	g.Codings(g.IIM)
	g.Codings(g.I0M)
	g.Terminator()

	c, err := g.Build()
	if err != nil {
		t.Fatalf("build demultiplexer catalog: %v", err)
	}
	return c
}

// Demultiplexer0 admits exactly one wiring of the Demultiplexer0 template
func Demultiplexer0(t testing.TB, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()
	return Demultiplexer(t, 1, 1, 1, opts...)
}

// Demultiplexer1 admits ten wirings of the Demultiplexer0 template, one per
// monomer on the free edge
func Demultiplexer1(t testing.TB, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()
	return Demultiplexer(t, 1, 10, 1<<10-1, opts...)
}

// NotChain backs the NotChain template: signal inhibitor iim0, monomers i0m0
// and i0m1, reporter0, single-operator libraries for the three inhibitors
// and two RBSs.
func NotChain(t testing.TB, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()
	g := NewGenerator(1, 1, 2, opts...)
	g.SignalInhibitors(1)
	g.Monomers(2)
	g.AddReporters(1)

	g.SinglePromoters(g.IIM[0])
	g.SinglePromoters(g.I0M[0])
	g.SinglePromoters(g.I0M[1])

	g.RBSs()
	g.Codings(g.Reporters)
	g.Codings(g.IIM)
	g.Codings(g.I0M)
	g.Terminator()

	c, err := g.Build()
	if err != nil {
		t.Fatalf("build not-chain catalog: %v", err)
	}
	return c
}

// Templates holds template documents by id
var Templates = map[string]string{
	"Demultiplexer0": `id: Demultiplexer0
vertices:
  - id: v0
  - id: v1
  - id: v2
edges:
  - {id: a, type: "-", signal: "-", to: [v0, v1]}
  - {id: b, type: "-", signal: "-", to: [v1, v2]}
  - {id: w, type: "-", from: [v0], to: [v2]}
  - {id: out0, type: "0", from: [v1]}
  - {id: out1, type: "0", from: [v2]}
inputs:
  - {id: a, edge: a}
  - {id: b, edge: b}
outputs:
  - {id: out0, edge: out0}
  - {id: out1, edge: out1}
`,
	"NotGate": `id: NotGate
vertices:
  - id: v
edges:
  - {id: in, type: "-", signal: "-", to: [v]}
  - {id: out, type: "-", from: [v]}
inputs:
  - {id: in, edge: in}
outputs:
  - {id: out, edge: out}
`,
	"Reporter": `id: Reporter
vertices:
  - id: r
edges:
  - {id: in, type: "-", signal: "-", to: [r]}
  - {id: out, type: "0", from: [r]}
inputs:
  - {id: in, edge: in}
outputs:
  - {id: out, edge: out}
`,
	"NotChain": `id: NotChain
subnetworks:
  - {id: n0, template: NotGate}
  - {id: n1, template: NotGate}
  - {id: n2, template: Reporter}
connections:
  - id: c0
    from: [{network: n0, port: out}]
    to: [{network: n1, port: in}]
  - id: c1
    from: [{network: n1, port: out}]
    to: [{network: n2, port: in}]
inputs:
  - {id: in, network: n0, port: in}
outputs:
  - {id: y, network: n2, port: out}
`,
	"Repressilator": `id: Repressilator
vertices:
  - id: v0
  - id: v1
  - id: v2
edges:
  - {id: e01, type: "-", from: [v0], to: [v1]}
  - {id: e12, type: "-", from: [v1], to: [v2]}
  - {id: e20, type: "-", from: [v2], to: [v0]}
`,
}

// Settings holds circuit settings documents by template id
var Settings = map[string]string{
	"Demultiplexer0": `name: demux
template: Demultiplexer0
inputs:
  a: iim0
  b: iim1
outputs:
  out0: reporter0
  out1: reporter1
state_time: 3600
visual: false
timing:
  a: "0011"
  b: "0101"
  out0: "1000"
  out1: "0100"
`,
	"NotChain": `name: notnot
template: NotChain
inputs:
  in: iim0
outputs:
  y: reporter0
state_time: 1800
timing:
  in: "01"
  y: "10"
`,
}
