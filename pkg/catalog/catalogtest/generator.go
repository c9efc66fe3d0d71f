// Package catalogtest builds deterministic part catalogs, templates and
// settings for tests.
package catalogtest

import (
	"fmt"
	"math/rand/v2"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/catalog"
)

// Rate ranges for generated parts, in molecules and seconds
var (
	KDegProtein  = [2]float64{0.000183, 0.00167}
	KDegMRNA     = [2]float64{0.00144, 0.00385}
	KBindProtein = [2]float64{0.0001, 0.001}
	KBindTF      = [2]float64{0.00278, 0.00417}
	KUnbindTF    = [2]float64{0.00139, 0.00208}
	KTranscribe  = [2]float64{0.00625, 0.01}
	KTranslate   = [2]float64{0.00625, 0.01}
)

const (
	KUnbindProtein = 0.0000167
	KBindSignal    = 0.000833
	KUnbindSignal  = 0.00167
	KDegReporter   = 0.0012
)

// Generator adds named families of parts to a catalog builder. The same seed
// always yields the same catalog.
type Generator struct {
	rnd        *rand.Rand
	b          *catalog.Builder
	perLibrary int
	rbsCount   int
	libraries  map[string]bool

	IIM       []*biopart.Protein // inhibitors switched off by a signal
	I0M       []*biopart.Protein // monomer inhibitors
	I0D       []*biopart.Protein // dimer inhibitors
	I0T       []*biopart.Protein // tetramer inhibitors
	Reporters []*biopart.Protein
}

// NewGenerator creates a generator producing perLibrary promoters per library
// and rbsCount RBSs
func NewGenerator(seed uint64, perLibrary, rbsCount int, opts ...catalog.Option) *Generator {
	return &Generator{
		rnd:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		b:          catalog.NewBuilder(opts...),
		perLibrary: max(perLibrary, 1),
		rbsCount:   rbsCount,
		libraries:  make(map[string]bool),
	}
}

func (g *Generator) param(r [2]float64) float64 {
	return r[0] + g.rnd.Float64()*(r[1]-r[0])
}

// paramRange picks a sub-range inside r, each end moving in by at most a quarter
func (g *Generator) paramRange(r [2]float64) (float64, float64) {
	quarter := (r[1] - r[0]) / 4
	return r[0] + g.rnd.Float64()*quarter, r[1] - g.rnd.Float64()*quarter
}

func (g *Generator) steps(lo, hi float64) (float64, float64) {
	if g.perLibrary == 1 {
		return lo, 0
	}
	return lo, (hi - lo) / float64(g.perLibrary-1)
}

// SignalInhibitors adds n inhibitors iim{i}, each released by signal es_iim{i}
func (g *Generator) SignalInhibitors(n int) {
	for range n {
		i := len(g.IIM)
		s := &biopart.Signal{Name: fmt.Sprintf("es_iim%d", i), Inhibiting: true}
		p := &biopart.Protein{
			Name:          fmt.Sprintf("iim%d", i),
			Role:          biopart.RoleInhibitor,
			KDeg:          g.param(KDegProtein),
			Signal:        s,
			KBindSignal:   KBindSignal,
			KUnbindSignal: KUnbindSignal,
		}
		g.b.AddSignal(s)
		g.b.AddProtein(p)
		g.IIM = append(g.IIM, p)
	}
}

// Monomers adds n monomer inhibitors i0m{i}
func (g *Generator) Monomers(n int) {
	for range n {
		p := &biopart.Protein{
			Name: fmt.Sprintf("i0m%d", len(g.I0M)),
			Role: biopart.RoleInhibitor,
			KDeg: g.param(KDegProtein),
		}
		g.b.AddProtein(p)
		g.I0M = append(g.I0M, p)
	}
}

// Dimers adds n dimer inhibitors i0d{i} built from subunit i0d{i}_subm
func (g *Generator) Dimers(n int) {
	for range n {
		i := len(g.I0D)
		sub := &biopart.Protein{Name: fmt.Sprintf("i0d%d_subm", i), Role: biopart.RoleSubunit, KDeg: g.param(KDegProtein)}
		p := &biopart.Protein{
			Name:    fmt.Sprintf("i0d%d", i),
			Role:    biopart.RoleInhibitor,
			KDeg:    g.param(KDegProtein),
			Subunit: sub,
			KBind:   g.param(KBindProtein),
			KUnbind: KUnbindProtein,
		}
		g.b.AddProtein(sub, p)
		g.I0D = append(g.I0D, p)
	}
}

// Tetramers adds n tetramer inhibitors i0t{i}: two i0t{i}_subd dimers, each
// of two i0t{i}_subm monomers
func (g *Generator) Tetramers(n int) {
	for range n {
		i := len(g.I0T)
		subm := &biopart.Protein{Name: fmt.Sprintf("i0t%d_subm", i), Role: biopart.RoleSubunit, KDeg: g.param(KDegProtein)}
		subd := &biopart.Protein{
			Name:    fmt.Sprintf("i0t%d_subd", i),
			Role:    biopart.RoleSubunit,
			KDeg:    g.param(KDegProtein),
			Subunit: subm,
			KBind:   g.param(KBindProtein),
			KUnbind: KUnbindProtein,
		}
		p := &biopart.Protein{
			Name:    fmt.Sprintf("i0t%d", i),
			Role:    biopart.RoleInhibitor,
			KDeg:    g.param(KDegProtein),
			Subunit: subd,
			KBind:   g.param(KBindProtein),
			KUnbind: KUnbindProtein,
		}
		g.b.AddProtein(subm, subd, p)
		g.I0T = append(g.I0T, p)
	}
}

// AddReporters adds n reporters reporter{i}
func (g *Generator) AddReporters(n int) {
	for range n {
		p := &biopart.Protein{
			Name: fmt.Sprintf("reporter%d", len(g.Reporters)),
			Role: biopart.RoleReporter,
			KDeg: KDegReporter,
		}
		g.b.AddProtein(p)
		g.Reporters = append(g.Reporters, p)
	}
}

// ConstitutivePromoters adds the unregulated library pm_{i}
func (g *Generator) ConstitutivePromoters() {
	current, step := g.steps(KTranscribe[0], KTranscribe[1])
	for i := range g.perLibrary {
		g.b.AddPromoter(&biopart.Promoter{Name: fmt.Sprintf("pm_%d", i), KTranscription: current})
		current += step
	}
	g.libraries[""] = true
}

// SinglePromoters adds a library pm_{tf}_{i} with one operator for tf
func (g *Generator) SinglePromoters(tf *biopart.Protein) {
	current, step := g.steps(g.paramRange(KTranscribe))
	for i := range g.perLibrary {
		g.b.AddPromoter(&biopart.Promoter{
			Name:           fmt.Sprintf("pm_%s_%d", tf.Name, i),
			KTranscription: current,
			Operators:      []biopart.Operator{g.operator(tf)},
		})
		current += step
	}
	g.libraries[biopart.TFKey([]*biopart.Protein{tf})] = true
}

// DoublePromoters adds a library pm_{tf0}_{tf1}_{i} with operators for both
// TFs. It reports false, adding nothing, when that library already exists.
func (g *Generator) DoublePromoters(tf0, tf1 *biopart.Protein) bool {
	key := biopart.TFKey([]*biopart.Protein{tf0, tf1})
	if tf0.Name == tf1.Name || g.libraries[key] {
		return false
	}
	g.libraries[key] = true

	current, step := g.steps(g.paramRange(KTranscribe))
	for i := range g.perLibrary {
		g.b.AddPromoter(&biopart.Promoter{
			Name:           fmt.Sprintf("pm_%s_%s_%d", tf0.Name, tf1.Name, i),
			KTranscription: current,
			Operators:      []biopart.Operator{g.operator(tf0), g.operator(tf1)},
		})
		current += step
	}
	return true
}

func (g *Generator) operator(tf *biopart.Protein) biopart.Operator {
	return biopart.Operator{TF: tf, KBindTF: g.param(KBindTF), KUnbindTF: g.param(KUnbindTF)}
}

// RBSs adds rbs{i} spread evenly over the translation range
func (g *Generator) RBSs() {
	current, step := KTranslate[0], 0.0
	if g.rbsCount > 1 {
		step = (KTranslate[1] - KTranslate[0]) / float64(g.rbsCount-1)
	}
	for i := range g.rbsCount {
		g.b.AddRBS(&biopart.RBS{Name: fmt.Sprintf("rbs%d", i), KTranslation: current})
		current += step
	}
}

// Codings adds pc_{protein} for each protein
func (g *Generator) Codings(ps []*biopart.Protein) {
	for _, p := range ps {
		g.b.AddProteinCoding(&biopart.ProteinCoding{
			Name:     "pc_" + p.Name,
			Protein:  p,
			KDegMRNA: g.param(KDegMRNA),
		})
	}
}

// Terminator adds the single terminator "t"
func (g *Generator) Terminator() {
	g.b.AddTerminator(&biopart.Terminator{Name: "t"})
}

// Build returns the generated catalog
func (g *Generator) Build() (*catalog.Catalog, error) {
	return g.b.Build()
}
