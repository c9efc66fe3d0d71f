package wiring

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
)

// search is one depth-first run over the edges in template order
type search struct {
	s     *Solver
	ctx   context.Context
	pools [][]*biopart.Protein
	emit  func(Wiring) bool

	nodes      int
	backtracks int
	solutions  int
	err        error
}

// assign tries every candidate for the k-th free edge and descends. It
// returns false once the run must stop.
func (sr *search) assign(w Wiring, k int) bool {
	if k == len(sr.s.free) {
		sr.solutions++
		return sr.emit(w)
	}
	e := sr.s.free[k]
	for _, p := range sr.pools[e] {
		if err := sr.ctx.Err(); err != nil {
			sr.err = err
			return false
		}
		if w.Uses(p) {
			continue
		}
		sr.nodes++
		next := w.With(e, p)
		if !sr.consistent(next, sr.s.tmpl.Edge(e).Dsts) {
			sr.backtracks++
			continue
		}
		if !sr.assign(next, k+1) {
			return false
		}
	}
	return true
}

// consistent runs the forward check on vertices: each needs a library
// representative with its regulation pattern binding every TF assigned to its
// inputs. Once all inputs are assigned the pattern and the containment force
// an exact library match.
func (sr *search) consistent(w Wiring, vertices []int) bool {
	for _, v := range vertices {
		tfs, _ := regulators(sr.s.tmpl, w, v)
		if len(sr.s.cat.MatchingRepresentatives(sr.s.patterns[v], tfs)) == 0 {
			return false
		}
	}
	return true
}

func (s *Solver) allVertices() []int {
	vs := make([]int, s.tmpl.NumVertices())
	for i := range vs {
		vs[i] = i
	}
	return vs
}

// run drives one search, logging and recording it. emit receives each
// complete wiring and returns false to stop.
func (s *Solver) run(ctx context.Context, mode string, pools [][]*biopart.Protein, emit func(Wiring) bool) error {
	log := s.logger.With(
		logging.Component("wiring"),
		logging.RunID(uuid.New().String()),
		logging.Template(s.tmpl.ID),
		logging.Mode(mode),
	)
	timer := logging.StartTimer(log, "wiring search finished")
	log.Debug("wiring search started", logging.Int("free_edges", len(s.free)))

	sr := &search{s: s, ctx: ctx, pools: pools, emit: emit}
	if sr.consistent(s.initial, s.allVertices()) {
		sr.assign(s.initial, 0)
	}

	outcome := metrics.OutcomeSolved
	fields := []logging.Field{
		logging.Count(sr.solutions),
		logging.Int("nodes", sr.nodes),
		logging.Int("backtracks", sr.backtracks),
	}
	switch {
	case sr.err != nil:
		outcome = metrics.OutcomeCancelled
		timer.EndError(sr.err, fields...)
	case sr.solutions == 0:
		outcome = metrics.OutcomeUnsatisfiable
		timer.End(fields...)
	default:
		timer.End(fields...)
	}
	if s.metrics != nil {
		s.metrics.RecordSearch(mode, outcome, timer.Elapsed(), sr.nodes, sr.backtracks, sr.solutions)
	}
	return sr.err
}

// First returns the first wiring in search order, or nil when none exists
func (s *Solver) First(ctx context.Context) (Wiring, error) {
	return s.first(ctx, ModeFirst, s.pools)
}

// Random shuffles every candidate pool with the solver's random source and
// returns the first wiring of the shuffled search. The sample is seeded, not
// uniform over all wirings.
func (s *Solver) Random(ctx context.Context) (Wiring, error) {
	return s.first(ctx, ModeRandom, s.shuffledPools())
}

func (s *Solver) first(ctx context.Context, mode string, pools [][]*biopart.Protein) (Wiring, error) {
	var found Wiring
	err := s.run(ctx, mode, pools, func(w Wiring) bool {
		found = w
		return false
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// All enumerates every wiring in search order, up to the WithMaxSolutions
// cap. The search is exponential; bound it with ctx or the cap. On
// cancellation the wirings found so far are returned with ctx's error.
func (s *Solver) All(ctx context.Context) ([]Wiring, error) {
	var all []Wiring
	err := s.run(ctx, ModeAll, s.pools, func(w Wiring) bool {
		all = append(all, w)
		return s.maxSolutions == 0 || len(all) < s.maxSolutions
	})
	return all, err
}

func (s *Solver) shuffledPools() [][]*biopart.Protein {
	pools := make([][]*biopart.Protein, len(s.pools))
	for e, pool := range s.pools {
		p := slices.Clone(pool)
		s.rnd.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
		pools[e] = p
	}
	return pools
}
