package network

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
)

var (
	rbs0      = &biopart.RBS{Name: "rbs0", KTranslation: 0.00625}
	term      = &biopart.Terminator{Name: "t"}
	reporter0 = &biopart.Protein{Name: "reporter0", Role: biopart.RoleReporter, KDeg: 0.0012}
	pcRep     = &biopart.ProteinCoding{Name: "pc_reporter0", Protein: reporter0, KDegMRNA: 0.002}
)

func gene(p *biopart.Promoter, coding *biopart.ProteinCoding) biopart.ProteinGenerator {
	return biopart.ProteinGenerator{Promoter: p, RBS: rbs0, Coding: coding, Terminator: term}
}

func inhibitor(name string, signal *biopart.Signal) *biopart.Protein {
	return &biopart.Protein{
		Name: name, Role: biopart.RoleInhibitor, KDeg: 0.0005,
		Signal: signal, KBindSignal: 0.000833, KUnbindSignal: 0.00167,
	}
}

func promoter(name string, tfs ...*biopart.Protein) *biopart.Promoter {
	p := &biopart.Promoter{Name: name, KTranscription: 0.008}
	for _, tf := range tfs {
		p.Operators = append(p.Operators, biopart.Operator{TF: tf, KBindTF: 0.003, KUnbindTF: 0.0015})
	}
	return p
}

// reactions returns the printed reactions of m
func reactions(m *Model) []string {
	out := make([]string, len(m.Reactions))
	for i, r := range m.Reactions {
		out[i] = r.String()
	}
	return out
}

func countGeneReactions(m *Model, gene string) (transcription, linked, induction int) {
	for _, r := range m.Reactions {
		if !strings.HasPrefix(r.Reactants[0], gene) {
			continue
		}
		switch {
		case len(r.Products) == 2 && r.Products[1] == mRNAName(0):
			transcription++
		case len(r.Reactants) == 2 && !strings.HasPrefix(r.Reactants[1], "i"):
			induction++
		default:
			linked++
		}
	}
	return
}

// TestCompile_SingleInhibitor tests the full model of a one-operator gene
// repressed by a TF without a signal
func TestCompile_SingleInhibitor(t *testing.T) {
	i0m0 := inhibitor("i0m0", nil)
	d := biopart.NewDevice("not", []biopart.ProteinGenerator{gene(promoter("pm_i0m0_0", i0m0), pcRep)}, nil)

	m := Compile(d)

	want := `Model: (6 species, 8 reactions)
@species
  pg0_gene_0 (1)
  pg0_gene_1 (0)
  pg0_mRNA (0)
  i0m0 (0)
  reporter0 (0)
  empty_set (0)
@reactions
  pg0_gene_0 -> pg0_gene_0 + pg0_mRNA (0.008)
  pg0_gene_0 + i0m0 -> pg0_gene_1 (0.003)
  pg0_gene_1 -> pg0_gene_0 + i0m0 (0.0015)
  pg0_gene_1 -> pg0_gene_0 + empty_set (0.0005)
  pg0_mRNA -> pg0_mRNA + reporter0 (0.00625)
  pg0_mRNA -> empty_set (0.002)
  i0m0 -> empty_set (0.0005)
  reporter0 -> empty_set (0.0012)
`
	assert.Equal(t, want, m.String())
	assert.Equal(t, "not", m.Device)

	transcription, linked, induction := countGeneReactions(m, "pg0_gene_")
	assert.Equal(t, 1, transcription)
	assert.Equal(t, 3, linked)
	assert.Equal(t, 0, induction)
}

// TestCompile_Constitutive tests a promoter without operators
func TestCompile_Constitutive(t *testing.T) {
	d := biopart.NewDevice("const", []biopart.ProteinGenerator{gene(promoter("pm_const"), pcRep)}, nil)
	m := Compile(d)

	s, ok := m.Lookup("pg0_gene_")
	require.True(t, ok)
	assert.Equal(t, 1, s.Initial)
	assert.Equal(t, "pg0_gene_ -> pg0_gene_ + pg0_mRNA (0.008)", m.Reactions[0].String())

	// a zero base rate emits no transcription
	silent := promoter("pm_silent")
	silent.KTranscription = 0
	m = Compile(biopart.NewDevice("silent", []biopart.ProteinGenerator{gene(silent, pcRep)}, nil))
	transcription, _, _ := countGeneReactions(m, "pg0_gene_")
	assert.Zero(t, transcription)
}

// TestCompile_TwoOperators tests occupancy enumeration and signal induction
func TestCompile_TwoOperators(t *testing.T) {
	es := &biopart.Signal{Name: "es_iim1", Inhibiting: true}
	iim1 := inhibitor("iim1", es)
	i0m0 := inhibitor("i0m0", nil)
	gens := []biopart.ProteinGenerator{gene(promoter("pm_iim1_i0m0_0", iim1, i0m0), pcRep)}

	withoutSignal := Compile(biopart.NewDevice("d", gens, nil))
	var genes []string
	for _, name := range withoutSignal.SpeciesNames() {
		if strings.HasPrefix(name, "pg0_gene_") {
			genes = append(genes, name)
		}
	}
	assert.Equal(t, []string{"pg0_gene_00", "pg0_gene_01", "pg0_gene_10", "pg0_gene_11"}, genes)

	transcription, linked, induction := countGeneReactions(withoutSignal, "pg0_gene_")
	assert.Equal(t, 1, transcription)
	assert.Equal(t, 12, linked)
	assert.Equal(t, 0, induction)

	// the first character is the first operator
	rs := reactions(withoutSignal)
	assert.Contains(t, rs, "pg0_gene_00 + iim1 -> pg0_gene_10 (0.003)")
	assert.Contains(t, rs, "pg0_gene_10 + i0m0 -> pg0_gene_11 (0.003)")
	assert.Contains(t, rs, "pg0_gene_11 -> pg0_gene_01 + empty_set (0.0005)")

	withSignal := Compile(biopart.NewDevice("d", gens, []*biopart.Signal{es}))
	_, linked, induction = countGeneReactions(withSignal, "pg0_gene_")
	assert.Equal(t, 12, linked)
	assert.Equal(t, 2, induction)

	rs = reactions(withSignal)
	assert.Contains(t, rs, "pg0_gene_10 + es_iim1 -> pg0_gene_00 + iim1_es_iim1 (0.000833)")
	assert.Contains(t, rs, "pg0_gene_11 + es_iim1 -> pg0_gene_01 + iim1_es_iim1 (0.000833)")
	assert.Contains(t, rs, "iim1 + es_iim1 -> iim1_es_iim1 (0.000833)")
	assert.Contains(t, rs, "iim1_es_iim1 -> iim1 + es_iim1 (0.00167)")
	assert.Contains(t, rs, "iim1_es_iim1 -> es_iim1 + empty_set (0.0005)")

	names := withSignal.SpeciesNames()
	assert.Equal(t, EmptySet, names[len(names)-1])
	assert.Equal(t, []string{"es_iim1", "iim1_es_iim1"}, names[len(names)-3:len(names)-1])
}

// TestCompile_ActivatedTF tests that a TF needing an activating signal binds
// DNA as its complex
func TestCompile_ActivatedTF(t *testing.T) {
	ara := &biopart.Signal{Name: "ara"}
	act := &biopart.Protein{
		Name: "a0m0", Role: biopart.RoleActivator, KDeg: 0.0007,
		Signal: ara, KBindSignal: 0.0008, KTranscription: 0.02,
	}
	p := &biopart.Promoter{Name: "pm_a0m0_0", KTranscription: 0.001, Operators: []biopart.Operator{
		{TF: act, KBindTF: 0.003, KUnbindTF: 0.0015},
	}}
	m := Compile(biopart.NewDevice("on", []biopart.ProteinGenerator{gene(p, pcRep)}, []*biopart.Signal{ara}))

	rs := reactions(m)
	assert.Contains(t, rs, "pg0_gene_0 -> pg0_gene_0 + pg0_mRNA (0.001)")
	assert.Contains(t, rs, "pg0_gene_1 -> pg0_gene_1 + pg0_mRNA (0.02)")
	assert.Contains(t, rs, "pg0_gene_0 + a0m0_ara -> pg0_gene_1 (0.003)")
	assert.Contains(t, rs, "pg0_gene_1 -> pg0_gene_0 + a0m0_ara (0.0015)")
	assert.Contains(t, rs, "pg0_gene_1 -> pg0_gene_0 + ara + empty_set (0.0007)")
	assert.Contains(t, rs, "a0m0 + ara -> a0m0_ara (0.0008)")
	assert.Contains(t, rs, "a0m0_ara -> ara + empty_set (0.0007)")
	assert.NotContains(t, rs, "a0m0_ara -> a0m0 + ara (0)")

	for _, r := range rs {
		assert.NotContains(t, r, "+ ara -> pg0_gene", "activated TFs are not induced off DNA")
	}
}

// TestCompile_Oligomer tests association and dissociation of a dimer
func TestCompile_Oligomer(t *testing.T) {
	sub := &biopart.Protein{Name: "i0d0_subm", Role: biopart.RoleSubunit, KDeg: 0.0009}
	dimer := &biopart.Protein{Name: "i0d0", Role: biopart.RoleInhibitor, KDeg: 0.0004, Subunit: sub, KBind: 0.0005, KUnbind: 0.00002}
	m := Compile(biopart.NewDevice("dimer", []biopart.ProteinGenerator{gene(promoter("pm_i0d0_0", dimer), pcRep)}, nil))

	rs := reactions(m)
	assert.Contains(t, rs, "i0d0_subm + i0d0_subm -> i0d0 (0.0005)")
	assert.Contains(t, rs, "i0d0 -> i0d0_subm + i0d0_subm (2e-05)")
	assert.Contains(t, rs, "i0d0_subm -> empty_set (0.0009)")

	_, ok := m.Lookup("i0d0_subm")
	assert.True(t, ok)
}

// TestCompile_Generators tests that genes are numbered in device order
func TestCompile_Generators(t *testing.T) {
	i0m0 := inhibitor("i0m0", nil)
	pcI0M0 := &biopart.ProteinCoding{Name: "pc_i0m0", Protein: i0m0, KDegMRNA: 0.003}
	d := biopart.NewDevice("chain", []biopart.ProteinGenerator{
		gene(promoter("pm_const"), pcI0M0),
		gene(promoter("pm_i0m0_0", i0m0), pcRep),
	}, nil)
	m := Compile(d)

	rs := reactions(m)
	assert.Contains(t, rs, "pg0_mRNA -> pg0_mRNA + i0m0 (0.00625)")
	assert.Contains(t, rs, "pg1_mRNA -> pg1_mRNA + reporter0 (0.00625)")
	assert.Contains(t, rs, "pg1_gene_0 + i0m0 -> pg1_gene_1 (0.003)")
	assert.Equal(t, []string{"pg0_gene_", "pg0_mRNA", "pg1_gene_0", "pg1_gene_1", "pg1_mRNA", "i0m0", "reporter0", EmptySet},
		m.SpeciesNames())
}

// TestCompile_Properties tests occupancy counts and idempotence over
// generated promoters
func TestCompile_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	build := func(k int, signalled []bool) *biopart.Device {
		var tfs []*biopart.Protein
		var present []*biopart.Signal
		for i := range k {
			var s *biopart.Signal
			if signalled[i] {
				s = &biopart.Signal{Name: fmt.Sprintf("es%d", i), Inhibiting: true}
				present = append(present, s)
			}
			tfs = append(tfs, inhibitor(fmt.Sprintf("i0m%d", i), s))
		}
		return biopart.NewDevice("gen", []biopart.ProteinGenerator{gene(promoter("pm", tfs...), pcRep)}, present)
	}

	properties.Property("2^k states and 3 reactions per neighbouring pair", prop.ForAll(
		func(k int, signalled []bool) bool {
			m := Compile(build(k, signalled))

			states := 0
			for _, name := range m.SpeciesNames() {
				if strings.HasPrefix(name, "pg0_gene_") {
					states++
				}
			}
			pairs := 0
			if k > 0 {
				pairs = k << (k - 1)
			}
			induced := 0
			for i := range k {
				if signalled[i] {
					induced += 1 << max(k-1, 0)
				}
			}
			transcription, linked, induction := countGeneReactions(m, "pg0_gene_")
			return states == 1<<k && transcription == 1 && linked == 3*pairs && induction == induced
		},
		gen.IntRange(0, 5),
		gen.SliceOfN(5, gen.Bool()),
	))

	properties.Property("compiling twice gives the same model", prop.ForAll(
		func(k int, signalled []bool) bool {
			d := build(k, signalled)
			var a, b bytes.Buffer
			if WriteFernML(&a, Compile(d)) != nil || WriteFernML(&b, Compile(d)) != nil {
				return false
			}
			return Compile(d).String() == Compile(d).String() && a.String() == b.String()
		},
		gen.IntRange(0, 5),
		gen.SliceOfN(5, gen.Bool()),
	))

	properties.TestingRun(t)
}

// TestFernML tests the XML writer and reading it back
func TestFernML(t *testing.T) {
	es := &biopart.Signal{Name: "es_iim1", Inhibiting: true}
	d := biopart.NewDevice("d", []biopart.ProteinGenerator{
		gene(promoter("pm_iim1_i0m0_0", inhibitor("iim1", es), inhibitor("i0m0", nil)), pcRep),
	}, []*biopart.Signal{es})
	m := Compile(d)

	var buf bytes.Buffer
	require.NoError(t, WriteFernML(&buf, m))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<fernml version="1.0">`)
	assert.Contains(t, out, `<species name="pg0_gene_00" initialAmount="1"></species>`)
	assert.Contains(t, out, `<reaction kineticConstant="0.003">`)
	assert.Contains(t, out, `<speciesReference name="iim1"></speciesReference>`)

	back, err := ReadFernML(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Species, back.Species)
	assert.Equal(t, reactions(m), reactions(back))
}

// TestReadFernML_Errors tests malformed input
func TestReadFernML_Errors(t *testing.T) {
	_, err := ReadFernML(strings.NewReader("<fernml"))
	assert.ErrorContains(t, err, "read fernml")

	_, err = ReadFernML(strings.NewReader(`<fernml version="2.0"></fernml>`))
	assert.ErrorContains(t, err, "unsupported version")
}

// TestCompileAll tests concurrent compilation, ordering and metrics
func TestCompileAll(t *testing.T) {
	var devices []*biopart.Device
	for i := range 20 {
		tf := inhibitor(fmt.Sprintf("i0m%d", i), nil)
		ops := make([]*biopart.Protein, i%4)
		for j := range ops {
			ops[j] = tf
		}
		devices = append(devices, biopart.NewDevice(fmt.Sprintf("d%d", i),
			[]biopart.ProteinGenerator{gene(promoter("pm", ops...), pcRep)}, nil))
	}

	var buf bytes.Buffer
	reg := metrics.NewRegistry()
	c := NewCompiler(WithMetrics(reg), WithLogger(logging.NewJSONLogger(&buf, logging.DebugLevel)))

	models, err := c.CompileAll(context.Background(), devices, 4)
	require.NoError(t, err)
	require.Len(t, models, len(devices))
	for i, m := range models {
		assert.Equal(t, devices[i].Name, m.Device)
		assert.Equal(t, Compile(devices[i]).String(), m.String())
	}

	var metric dto.Metric
	require.NoError(t, reg.NetworkModelsTotal.Write(&metric))
	assert.Equal(t, 20.0, metric.Counter.GetValue())
	assert.Contains(t, buf.String(), `"msg":"models compiled"`)
	assert.Equal(t, 20, strings.Count(buf.String(), `"msg":"model compiled"`))
}

// TestCompileAll_Cancelled tests that a cancelled context is reported
func TestCompileAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := biopart.NewDevice("d", []biopart.ProteinGenerator{gene(promoter("pm"), pcRep)}, nil)
	_, err := NewCompiler().CompileAll(ctx, []*biopart.Device{d, d}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
