package wiring

import (
	"context"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
)

// gene is what one vertex needs once its wiring is fixed
type gene struct {
	library []*biopart.Promoter
	coding  *biopart.ProteinCoding
}

// partGap explains why a wiring cannot become a device
type partGap struct {
	vertex  string
	protein string
	reason  string
}

// resolve finds the promoter library and coding part of every vertex. A
// non-nil gap means the wiring cannot become a device.
func (s *Solver) resolve(w Wiring) ([]gene, *partGap) {
	if len(s.cat.RBSs()) == 0 {
		return nil, &partGap{reason: "catalog has no RBS"}
	}
	if len(s.cat.Terminators()) == 0 {
		return nil, &partGap{reason: "catalog has no terminator"}
	}
	genes := make([]gene, s.tmpl.NumVertices())
	for v := range genes {
		vertex := s.tmpl.Vertex(v)
		tfs, complete := regulators(s.tmpl, w, v)
		if !complete {
			return nil, &partGap{vertex: vertex.ID, reason: "vertex is not fully wired"}
		}
		lib := s.cat.PromoterLibrary(tfs)
		if len(lib) == 0 {
			return nil, &partGap{vertex: vertex.ID, reason: "no promoter library binds " + biopart.TFKey(tfs)}
		}
		if vertex.Output < 0 || w[vertex.Output] == nil {
			return nil, &partGap{vertex: vertex.ID, reason: "vertex expresses nothing"}
		}
		product := w[vertex.Output]
		coding, ok := s.cat.CodingFor(product)
		if !ok {
			return nil, &partGap{vertex: vertex.ID, protein: product.Name, reason: "no coding part"}
		}
		genes[v] = gene{library: lib, coding: coding}
	}
	return genes, nil
}

// signals returns the signals of the input proteins
func (s *Solver) signals() []*biopart.Signal {
	var out []*biopart.Signal
	for _, b := range s.set.Inputs {
		if b.Protein.Signal != nil {
			out = append(out, b.Protein.Signal)
		}
	}
	return out
}

func (s *Solver) dropped(w Wiring, gap *partGap) {
	fields := []logging.Field{
		logging.Template(s.tmpl.ID),
		logging.String("reason", gap.reason),
		logging.String("wiring", w.Format(s.tmpl)),
	}
	if gap.vertex != "" {
		fields = append(fields, logging.Vertex(gap.vertex))
	}
	if gap.protein != "" {
		fields = append(fields, logging.Protein(gap.protein))
	}
	s.logger.Warn("device dropped", fields...)
	if s.metrics != nil {
		s.metrics.RecordDevice(metrics.DeviceDropped)
	}
}

func (s *Solver) instantiated(n int) {
	if s.metrics == nil {
		return
	}
	for range n {
		s.metrics.RecordDevice(metrics.DeviceInstantiated)
	}
}

// build picks one promoter, RBS and terminator per vertex with pick, which
// returns an index below n. It returns nil when the wiring has a part gap.
func (s *Solver) build(w Wiring, pick func(n int) int) *biopart.Device {
	genes, gap := s.resolve(w)
	if gap != nil {
		s.dropped(w, gap)
		return nil
	}
	rbss, terms := s.cat.RBSs(), s.cat.Terminators()
	gens := make([]biopart.ProteinGenerator, len(genes))
	for v, g := range genes {
		gens[v] = biopart.ProteinGenerator{
			Promoter:   g.library[pick(len(g.library))],
			RBS:        rbss[pick(len(rbss))],
			Coding:     g.coding,
			Terminator: terms[pick(len(terms))],
		}
	}
	s.instantiated(1)
	return biopart.NewDevice(s.set.Name, gens, s.signals())
}

// Device builds w with the first promoter of each library and the first RBS
// and terminator. It returns nil when a part cannot be resolved.
func (s *Solver) Device(w Wiring) *biopart.Device {
	return s.build(w, func(int) int { return 0 })
}

// FirstDevice builds the first wiring with the first parts. A nil device with
// a nil error means there is no device.
func (s *Solver) FirstDevice(ctx context.Context) (*biopart.Device, error) {
	w, err := s.First(ctx)
	if err != nil || w == nil {
		return nil, err
	}
	return s.Device(w), nil
}

// RandomDevice builds a random wiring with random library promoters, RBSs
// and terminators.
func (s *Solver) RandomDevice(ctx context.Context) (*biopart.Device, error) {
	w, err := s.Random(ctx)
	if err != nil || w == nil {
		return nil, err
	}
	return s.build(w, s.rnd.IntN), nil
}

// AllDevices expands every wiring into one device per combination of library
// promoter and RBS across its vertices, all with the first terminator.
// Wirings with a part gap are skipped.
func (s *Solver) AllDevices(ctx context.Context) ([]*biopart.Device, error) {
	wirings, err := s.All(ctx)
	var devices []*biopart.Device
	for _, w := range wirings {
		devices = append(devices, s.expand(w)...)
	}
	return devices, err
}

func (s *Solver) expand(w Wiring) []*biopart.Device {
	genes, gap := s.resolve(w)
	if gap != nil {
		s.dropped(w, gap)
		return nil
	}
	rbss := s.cat.RBSs()
	term := s.cat.Terminators()[0]
	signals := s.signals()

	// odometer over promoter-major (promoter, RBS) choices, last vertex fastest
	choice := make([]int, len(genes))
	var out []*biopart.Device
	for {
		gens := make([]biopart.ProteinGenerator, len(genes))
		for v, g := range genes {
			gens[v] = biopart.ProteinGenerator{
				Promoter:   g.library[choice[v]/len(rbss)],
				RBS:        rbss[choice[v]%len(rbss)],
				Coding:     g.coding,
				Terminator: term,
			}
		}
		out = append(out, biopart.NewDevice(s.set.Name, gens, signals))

		v := len(choice) - 1
		for ; v >= 0; v-- {
			choice[v]++
			if choice[v] < len(genes[v].library)*len(rbss) {
				break
			}
			choice[v] = 0
		}
		if v < 0 {
			break
		}
	}
	s.instantiated(len(out))
	return out
}
