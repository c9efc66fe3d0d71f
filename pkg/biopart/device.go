package biopart

// Device is a buildable circuit: an ordered list of genes and the
// environmental signals applied to it.
type Device struct {
	Name       string
	Generators []ProteinGenerator
	// Signals is a set kept sorted by name
	Signals []*Signal
}

// NewDevice copies generators and normalises signals into a sorted set
func NewDevice(name string, generators []ProteinGenerator, signals []*Signal) *Device {
	gens := make([]ProteinGenerator, len(generators))
	copy(gens, generators)
	return &Device{Name: name, Generators: gens, Signals: signalSet(signals)}
}

func signalSet(signals []*Signal) []*Signal {
	seen := make(map[string]bool, len(signals))
	out := make([]*Signal, 0, len(signals))
	for _, s := range signals {
		if s == nil || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	SortSignals(out)
	return out
}

// WithGenerator returns a copy of d with generator i replaced
func (d *Device) WithGenerator(i int, g ProteinGenerator) *Device {
	c := NewDevice(d.Name, d.Generators, d.Signals)
	c.Generators[i] = g
	return c
}

// HasSignal reports whether s is applied to the device
func (d *Device) HasSignal(s *Signal) bool {
	if s == nil {
		return false
	}
	for _, t := range d.Signals {
		if t.Name == s.Name {
			return true
		}
	}
	return false
}

// Equal compares name, generators by part name, and signal names
func (d *Device) Equal(o *Device) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Name != o.Name || len(d.Generators) != len(o.Generators) || len(d.Signals) != len(o.Signals) {
		return false
	}
	for i := range d.Generators {
		if !d.Generators[i].sameParts(o.Generators[i]) {
			return false
		}
	}
	for i := range d.Signals {
		if d.Signals[i].Name != o.Signals[i].Name {
			return false
		}
	}
	return true
}

// ExpressedProteins returns the products of all generators, sorted by name
func (d *Device) ExpressedProteins() []*Protein {
	return d.expressed().sorted()
}

// TFMonomers returns the monomers of every TF bound by a device promoter
func (d *Device) TFMonomers() []*Protein {
	return d.tfMonomers().sorted()
}

// TFOligomers returns every oligomer in the subunit chains of bound TFs
func (d *Device) TFOligomers() []*Protein {
	set := make(proteinSet)
	d.eachOperator(func(o Operator) { o.TF.collectOligomers(set) })
	return set.sorted()
}

// AllProteins returns expressed proteins, TF monomers and TF oligomers
func (d *Device) AllProteins() []*Protein {
	set := d.expressed()
	d.eachOperator(func(o Operator) {
		o.TF.collectMonomers(set)
		o.TF.collectOligomers(set)
	})
	return set.sorted()
}

// PossibleSignals returns the signals that bind some TF on a device promoter
func (d *Device) PossibleSignals() []*Signal {
	var out []*Signal
	d.eachOperator(func(o Operator) {
		if o.TF.Signal != nil {
			out = append(out, o.TF.Signal)
		}
	})
	return signalSet(out)
}

// SignalTFs returns the TFs on device promoters that bind s, sorted by name
func (d *Device) SignalTFs(s *Signal) []*Protein {
	set := make(proteinSet)
	d.eachOperator(func(o Operator) {
		if o.TF.Signal != nil && o.TF.Signal.Name == s.Name {
			set.add(o.TF)
		}
	})
	return set.sorted()
}

// InputProteins are TF monomers the device does not express itself
func (d *Device) InputProteins() []*Protein {
	expressed := d.expressed()
	set := make(proteinSet)
	for _, p := range d.tfMonomers() {
		if !expressed.has(p) {
			set.add(p)
		}
	}
	return set.sorted()
}

// OutputProteins are expressed proteins that regulate nothing on the device
func (d *Device) OutputProteins() []*Protein {
	monomers := d.tfMonomers()
	set := make(proteinSet)
	for _, p := range d.expressed() {
		if !monomers.has(p) {
			set.add(p)
		}
	}
	return set.sorted()
}

// InternalProteins are expressed and also regulate a device promoter
func (d *Device) InternalProteins() []*Protein {
	expressed := d.expressed()
	set := make(proteinSet)
	for _, p := range d.tfMonomers() {
		if expressed.has(p) {
			set.add(p)
		}
	}
	return set.sorted()
}

// IncompatibleProteins equals InputProteins: TFs the device depends on but
// cannot produce.
func (d *Device) IncompatibleProteins() []*Protein {
	return d.InputProteins()
}

// IncompatibleSignals are applied signals that no device TF responds to
func (d *Device) IncompatibleSignals() []*Signal {
	possible := make(map[string]bool)
	for _, s := range d.PossibleSignals() {
		possible[s.Name] = true
	}
	var out []*Signal
	for _, s := range d.Signals {
		if !possible[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

func (d *Device) expressed() proteinSet {
	set := make(proteinSet)
	for _, g := range d.Generators {
		set.add(g.Product())
	}
	return set
}

func (d *Device) tfMonomers() proteinSet {
	set := make(proteinSet)
	d.eachOperator(func(o Operator) { o.TF.collectMonomers(set) })
	return set
}

func (d *Device) eachOperator(fn func(Operator)) {
	for _, g := range d.Generators {
		if g.Promoter == nil {
			continue
		}
		for _, o := range g.Promoter.Operators {
			fn(o)
		}
	}
}
