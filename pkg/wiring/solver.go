// Package wiring assigns catalog proteins to template edges by depth-first
// backtracking with forward pruning, then turns each assignment into a
// buildable Device.
package wiring

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
	"github.com/dd0wney/cluso-genenet/pkg/settings"
	"github.com/dd0wney/cluso-genenet/pkg/template"
)

// ConfigurationError reports settings that disagree with the template
type ConfigurationError = settings.ConfigurationError

// Search modes, also used as metric and log labels
const (
	ModeFirst  = "first"
	ModeAll    = "all"
	ModeRandom = "random"
)

// Solver searches wirings of one template over one catalog. A Solver is not
// safe for concurrent use: its random source is shared by every run.
type Solver struct {
	tmpl *template.Template
	cat  *catalog.Catalog
	set  *settings.Settings

	initial  Wiring               // fixed port edges, assigned up front
	free     []int                // unassigned edges in template order
	pools    [][]*biopart.Protein // candidates per edge
	patterns []string             // regulation pattern per vertex

	rnd          *rand.Rand
	logger       logging.Logger
	metrics      *metrics.Registry
	maxSolutions int
}

// Option configures a Solver
type Option func(*Solver)

// WithSeed seeds the solver's random source
func WithSeed(seed uint64) Option {
	return func(s *Solver) {
		s.rnd = newRand(seed)
	}
}

// WithRand sets the solver's random source
func WithRand(r *rand.Rand) Option {
	return func(s *Solver) {
		s.rnd = r
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(s *Solver) {
		s.logger = l
	}
}

// WithMetrics records searches and devices in r
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Solver) {
		s.metrics = r
	}
}

// WithMaxSolutions caps how many wirings All collects. Zero means no cap.
func WithMaxSolutions(n int) Option {
	return func(s *Solver) {
		s.maxSolutions = max(n, 0)
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSolver checks set against t and prepares the candidate pools. Input port
// edges are fixed to their settings protein, output port edges to their
// reporter. Free "-" edges draw from the catalog's active inhibitors, free
// "+" edges from its active activators and free "0" edges from its reporters.
func NewSolver(t *template.Template, c *catalog.Catalog, set *settings.Settings, opts ...Option) (*Solver, error) {
	if err := set.Check(t); err != nil {
		return nil, err
	}

	s := &Solver{
		tmpl:   t,
		cat:    c,
		set:    set,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = newRand(1)
	}

	fixed := make(map[int]*biopart.Protein, len(set.Inputs)+len(set.Outputs))
	for _, b := range set.Outputs {
		fixed[b.Edge] = b.Protein
	}
	for _, b := range set.Inputs {
		fixed[b.Edge] = b.Protein
	}

	s.initial = make(Wiring, t.NumEdges())
	s.pools = make([][]*biopart.Protein, t.NumEdges())
	for e := range t.NumEdges() {
		if p, ok := fixed[e]; ok {
			s.initial[e] = p
			s.pools[e] = []*biopart.Protein{p}
			continue
		}
		s.free = append(s.free, e)
		switch t.Edge(e).Type {
		case template.Inhibiting:
			s.pools[e] = c.ActiveInhibitors()
		case template.Activating:
			s.pools[e] = c.ActiveActivators()
		default:
			s.pools[e] = c.ProteinsByRole(biopart.RoleReporter, false)
		}
	}

	s.patterns = make([]string, t.NumVertices())
	for v := range t.NumVertices() {
		s.patterns[v] = t.RegulationPattern(v)
	}
	return s, nil
}

// Template returns the solver's template
func (s *Solver) Template() *template.Template {
	return s.tmpl
}

// Pool returns the candidate proteins for edge e
func (s *Solver) Pool(e int) []*biopart.Protein {
	return append([]*biopart.Protein(nil), s.pools[e]...)
}
