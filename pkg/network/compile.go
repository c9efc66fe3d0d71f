package network

import (
	"fmt"
	"math/bits"
	"strconv"
	"time"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
)

// Compiler turns devices into models. A Compiler holds no per-device state
// and is safe for concurrent use.
type Compiler struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Compiler
type Option func(*Compiler)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithMetrics records every compiled model in r
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Compiler) {
		c.metrics = r
	}
}

// NewCompiler creates a compiler
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile builds the model of d with a default compiler
func Compile(d *biopart.Device) *Model {
	return NewCompiler().Compile(d)
}

// Compile builds the model of d. Species and reactions are emitted per gene
// in generator order, then per protein and per signal in name order, and the
// empty set last. The same device always yields the same model.
func (c *Compiler) Compile(d *biopart.Device) *Model {
	start := time.Now()

	m := &Model{Device: d.Name}
	for i, g := range d.Generators {
		addGenerator(m, d, g, i)
	}
	for _, p := range d.AllProteins() {
		addProtein(m, p)
	}
	for _, s := range d.Signals {
		addSignal(m, d, s)
	}
	m.addSpecies(EmptySet, 0)

	elapsed := time.Since(start)
	c.logger.Debug("model compiled",
		logging.Component("network"),
		logging.Device(d.Name),
		logging.Int("species", len(m.Species)),
		logging.Int("reactions", len(m.Reactions)),
		logging.Latency(elapsed),
	)
	if c.metrics != nil {
		c.metrics.RecordCompile(len(m.Species), len(m.Reactions), elapsed)
	}
	return m
}

func geneName(i int, occupancy string) string {
	return fmt.Sprintf("pg%d_gene_%s", i, occupancy)
}

func mRNAName(i int) string {
	return fmt.Sprintf("pg%d_mRNA", i)
}

// occupancy renders n as a k-character binary string, most significant bit
// first. Character i is operator i.
func occupancy(n, k int) string {
	if k == 0 {
		return ""
	}
	s := strconv.FormatUint(uint64(n), 2)
	for len(s) < k {
		s = "0" + s
	}
	return s
}

func addGenerator(m *Model, d *biopart.Device, g biopart.ProteinGenerator, i int) {
	addPromoter(m, d, g.Promoter, i)

	mRNA := mRNAName(i)
	m.addSpecies(mRNA, 0)
	m.add(newReaction(g.RBS.KTranslation, []string{mRNA}, mRNA, g.Product().Name))
	m.add(newReaction(g.Coding.KDegMRNA, []string{mRNA}, EmptySet))
}

func addPromoter(m *Model, d *biopart.Device, p *biopart.Promoter, i int) {
	k := len(p.Operators)
	states := 1 << k

	for n := range states {
		occ := occupancy(n, k)
		gene := geneName(i, occ)
		initial := 0
		if n == 0 {
			initial = 1
		}
		m.addSpecies(gene, initial)

		rate := p.KTranscription
		if k > 0 {
			rate = p.TranscriptionRate(occ)
		}
		if rate > 0 {
			m.add(newReaction(rate, []string{gene}, gene, mRNAName(i)))
		}
	}

	for n := range states {
		for j := range n {
			diff := n ^ j
			if bits.OnesCount(uint(diff)) != 1 {
				continue
			}
			// j has the differing operator free, n has it bound
			op := p.Operators[k-1-bits.TrailingZeros(uint(diff))]
			addBinding(m, d, op, geneName(i, occupancy(j, k)), geneName(i, occupancy(n, k)))
		}
	}
}

// addBinding emits binding, unbinding and bound degradation of op's TF, plus
// signal induction when the TF's inhibiting signal is on the device
func addBinding(m *Model, d *biopart.Device, op biopart.Operator, free, bound string) {
	tf := op.TF
	tfName := tf.Name
	if tf.Activated() {
		tfName = tf.ComplexName()
	}

	m.add(newReaction(op.KBindTF, []string{free, tfName}, bound))
	m.add(newReaction(op.KUnbindTF, []string{bound}, free, tfName))
	if tf.Activated() {
		m.add(newReaction(tf.KDeg, []string{bound}, free, tf.Signal.Name, EmptySet))
	} else {
		m.add(newReaction(tf.KDeg, []string{bound}, free, EmptySet))
	}

	// Induction only strips signal-inhibited TFs off the DNA. An activated TF
	// binds as its complex, so its signal is already on the operator and no
	// induction reaction is emitted for it.
	if tf.Inhibited() && d.HasSignal(tf.Signal) {
		m.add(newReaction(tf.KBindSignal, []string{bound, tf.Signal.Name}, free, tf.ComplexName()))
	}
}

func addProtein(m *Model, p *biopart.Protein) {
	m.addSpecies(p.Name, 0)
	if !p.IsMonomer() {
		sub := p.Subunit.Name
		m.add(newReaction(p.KBind, []string{sub, sub}, p.Name))
		m.add(newReaction(p.KUnbind, []string{p.Name}, sub, sub))
	}
	m.add(newReaction(p.KDeg, []string{p.Name}, EmptySet))
}

func addSignal(m *Model, d *biopart.Device, s *biopart.Signal) {
	m.addSpecies(s.Name, 0)
	for _, tf := range d.SignalTFs(s) {
		cx := tf.Name + "_" + s.Name
		m.addSpecies(cx, 0)
		m.add(newReaction(tf.KBindSignal, []string{tf.Name, s.Name}, cx))
		if tf.KUnbindSignal > 0 {
			m.add(newReaction(tf.KUnbindSignal, []string{cx}, tf.Name, s.Name))
		}
		m.add(newReaction(tf.KDeg, []string{cx}, s.Name, EmptySet))
	}
}
