package biopart

// mapResolver resolves names from the parts of a handful of test fixtures
type mapResolver struct {
	promoters map[string]*Promoter
	rbs       map[string]*RBS
	codings   map[string]*ProteinCoding
	terms     map[string]*Terminator
	signals   map[string]*Signal
}

func (m *mapResolver) Promoter(n string) (*Promoter, bool) {
	p, ok := m.promoters[n]
	return p, ok
}

func (m *mapResolver) RBS(n string) (*RBS, bool) {
	p, ok := m.rbs[n]
	return p, ok
}

func (m *mapResolver) ProteinCoding(n string) (*ProteinCoding, bool) {
	p, ok := m.codings[n]
	return p, ok
}

func (m *mapResolver) Terminator(n string) (*Terminator, bool) {
	p, ok := m.terms[n]
	return p, ok
}

func (m *mapResolver) Signal(n string) (*Signal, bool) {
	p, ok := m.signals[n]
	return p, ok
}

// fixture is a two-gene demultiplexer-like device:
//
//	gene 0: pm_iim0_0 (iim0-) -> i0m0
//	gene 1: pm_iim1_i0m0_0 (iim1-, i0m0-) -> reporter0
type fixture struct {
	esIIM0, esIIM1, esAct *Signal
	iim0, iim1, i0m0      *Protein
	sub, dimer, act       *Protein
	reporter              *Protein
	pmIIM0, pmPair, pmAct *Promoter
	rbs0, rbs1            *RBS
	pcI0M0, pcRep, pcSub  *ProteinCoding
	term                  *Terminator
	resolver              *mapResolver
}

func newFixture() *fixture {
	f := &fixture{}
	f.esIIM0 = &Signal{Name: "es_iim0", Inhibiting: true}
	f.esIIM1 = &Signal{Name: "es_iim1", Inhibiting: true}
	f.esAct = &Signal{Name: "ara", Inhibiting: false}

	f.iim0 = &Protein{Name: "iim0", Role: RoleInhibitor, KDeg: 0.001, Signal: f.esIIM0, KBindSignal: 0.000833, KUnbindSignal: 0.00167}
	f.iim1 = &Protein{Name: "iim1", Role: RoleInhibitor, KDeg: 0.001, Signal: f.esIIM1, KBindSignal: 0.000833, KUnbindSignal: 0.00167}
	f.i0m0 = &Protein{Name: "i0m0", Role: RoleInhibitor, KDeg: 0.0005}
	f.sub = &Protein{Name: "i0d0_subm", Role: RoleSubunit, KDeg: 0.0009}
	f.dimer = &Protein{Name: "i0d0", Role: RoleInhibitor, KDeg: 0.0004, Subunit: f.sub, KBind: 0.0005, KUnbind: 0.0000167}
	f.act = &Protein{Name: "a0m0", Role: RoleActivator, KDeg: 0.0007, Signal: f.esAct, KBindSignal: 0.0008, KTranscription: 0.02}
	f.reporter = &Protein{Name: "reporter0", Role: RoleReporter, KDeg: 0.0012}

	f.pmIIM0 = &Promoter{Name: "pm_iim0_0", KTranscription: 0.008, Operators: []Operator{
		{TF: f.iim0, KBindTF: 0.003, KUnbindTF: 0.0015},
	}}
	f.pmPair = &Promoter{Name: "pm_iim1_i0m0_0", KTranscription: 0.009, Operators: []Operator{
		{TF: f.iim1, KBindTF: 0.003, KUnbindTF: 0.0015},
		{TF: f.i0m0, KBindTF: 0.004, KUnbindTF: 0.002},
	}}
	f.pmAct = &Promoter{Name: "pm_a0m0_0", KTranscription: 0.001, Operators: []Operator{
		{TF: f.act, KBindTF: 0.003, KUnbindTF: 0.0015},
	}}

	f.rbs0 = &RBS{Name: "rbs0", KTranslation: 0.00625}
	f.rbs1 = &RBS{Name: "rbs1", KTranslation: 0.01}
	f.pcI0M0 = &ProteinCoding{Name: "pc_i0m0", Protein: f.i0m0, KDegMRNA: 0.002}
	f.pcRep = &ProteinCoding{Name: "pc_reporter0", Protein: f.reporter, KDegMRNA: 0.003}
	f.pcSub = &ProteinCoding{Name: "pc_i0d0_subm", Protein: f.sub, KDegMRNA: 0.003}
	f.term = &Terminator{Name: "t"}

	f.resolver = &mapResolver{
		promoters: map[string]*Promoter{f.pmIIM0.Name: f.pmIIM0, f.pmPair.Name: f.pmPair, f.pmAct.Name: f.pmAct},
		rbs:       map[string]*RBS{f.rbs0.Name: f.rbs0, f.rbs1.Name: f.rbs1},
		codings:   map[string]*ProteinCoding{f.pcI0M0.Name: f.pcI0M0, f.pcRep.Name: f.pcRep, f.pcSub.Name: f.pcSub},
		terms:     map[string]*Terminator{f.term.Name: f.term},
		signals:   map[string]*Signal{f.esIIM0.Name: f.esIIM0, f.esIIM1.Name: f.esIIM1, f.esAct.Name: f.esAct},
	}
	return f
}

func (f *fixture) device() *Device {
	return NewDevice("demux", []ProteinGenerator{
		{Promoter: f.pmIIM0, RBS: f.rbs0, Coding: f.pcI0M0, Terminator: f.term},
		{Promoter: f.pmPair, RBS: f.rbs1, Coding: f.pcRep, Terminator: f.term},
	}, []*Signal{f.esIIM1, f.esIIM0})
}
