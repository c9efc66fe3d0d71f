package wiring

import (
	"slices"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// Variations returns every device that differs from d in exactly one
// generator, either by another promoter of the same library or by another
// RBS. d itself is not included.
func (s *Solver) Variations(d *biopart.Device) []*biopart.Device {
	var out []*biopart.Device
	for i, g := range d.Generators {
		if g.Promoter != nil {
			for _, pm := range s.cat.PromoterLibrary(g.Promoter.TFs()) {
				if pm.Name == g.Promoter.Name {
					continue
				}
				v := g
				v.Promoter = pm
				out = append(out, d.WithGenerator(i, v))
			}
		}
		for _, rbs := range s.cat.RBSs() {
			if g.RBS != nil && rbs.Name == g.RBS.Name {
				continue
			}
			v := g
			v.RBS = rbs
			out = append(out, d.WithGenerator(i, v))
		}
	}
	return out
}

// MutateRBS replaces the RBS of a random generator with a random catalog RBS.
// It reports whether the RBS changed; d is never modified.
func (s *Solver) MutateRBS(d *biopart.Device) (*biopart.Device, bool) {
	rbss := s.cat.RBSs()
	if len(d.Generators) == 0 || len(rbss) == 0 {
		return d, false
	}
	i := s.rnd.IntN(len(d.Generators))
	g := d.Generators[i]
	rbs := rbss[s.rnd.IntN(len(rbss))]
	changed := g.RBS == nil || g.RBS.Name != rbs.Name
	g.RBS = rbs
	return d.WithGenerator(i, g), changed
}

// MutatePromoterStrength replaces the promoter of a random generator with a
// random promoter of the same library.
func (s *Solver) MutatePromoterStrength(d *biopart.Device) (*biopart.Device, bool) {
	if len(d.Generators) == 0 {
		return d, false
	}
	i := s.rnd.IntN(len(d.Generators))
	g := d.Generators[i]
	if g.Promoter == nil {
		return d, false
	}
	lib := s.cat.PromoterLibrary(g.Promoter.TFs())
	if len(lib) == 0 {
		return d, false
	}
	pm := lib[s.rnd.IntN(len(lib))]
	changed := pm.Name != g.Promoter.Name
	g.Promoter = pm
	return d.WithGenerator(i, g), changed
}

// MutateTF swaps one expressed TF for an unused active TF of the same role.
// Every promoter binding the old TF moves to a library binding the new one
// and every generator expressing it switches coding part. When no such swap
// exists d is returned unchanged.
func (s *Solver) MutateTF(d *biopart.Device) (*biopart.Device, bool) {
	var candidates []*biopart.Protein
	for _, p := range d.ExpressedProteins() {
		if p.IsTF() {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return d, false
	}
	old := candidates[s.rnd.IntN(len(candidates))]

	pool := s.cat.ActiveInhibitors()
	if old.Role == biopart.RoleActivator {
		pool = s.cat.ActiveActivators()
	}
	if len(pool) == 0 {
		return d, false
	}
	repl := pool[s.rnd.IntN(len(pool))]
	used := biopart.ProteinNames(d.AllProteins())
	if repl.Name == old.Name || slices.Contains(used, repl.Name) {
		return d, false
	}
	coding, ok := s.cat.CodingFor(repl)
	if !ok {
		return d, false
	}

	gens := slices.Clone(d.Generators)
	for i, g := range gens {
		if g.Promoter == nil {
			continue
		}
		tfs := g.Promoter.TFs()
		at := slices.IndexFunc(tfs, func(p *biopart.Protein) bool { return p.Name == old.Name })
		if at < 0 {
			continue
		}
		tfs[at] = repl
		reps := s.cat.MatchingRepresentatives(g.Promoter.RegulationPattern(), tfs)
		if len(reps) == 0 {
			return d, false
		}
		lib := s.cat.PromoterLibrary(reps[s.rnd.IntN(len(reps))].TFs())
		gens[i].Promoter = lib[s.rnd.IntN(len(lib))]
	}
	for i, g := range gens {
		if p := g.Product(); p != nil && p.Name == old.Name {
			gens[i].Coding = coding
		}
	}
	return biopart.NewDevice(d.Name, gens, d.Signals), true
}
