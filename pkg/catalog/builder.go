package catalog

import (
	"errors"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/validation"
)

// Builder assembles a Catalog. Parts are kept in the order they are added;
// Build checks names and references.
type Builder struct {
	opts        options
	signals     []*biopart.Signal
	proteins    []*biopart.Protein
	promoters   []*biopart.Promoter
	rbss        []*biopart.RBS
	codings     []*biopart.ProteinCoding
	terminators []*biopart.Terminator
	devices     []*biopart.Device
}

// NewBuilder creates an empty builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{opts: options{cacheSize: DefaultCacheSize}}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// AddSignal adds environmental signals
func (b *Builder) AddSignal(s ...*biopart.Signal) *Builder {
	b.signals = append(b.signals, s...)
	return b
}

// AddProtein adds proteins. Subunits and signals they reference must be
// added too.
func (b *Builder) AddProtein(p ...*biopart.Protein) *Builder {
	b.proteins = append(b.proteins, p...)
	return b
}

// AddPromoter adds promoters
func (b *Builder) AddPromoter(p ...*biopart.Promoter) *Builder {
	b.promoters = append(b.promoters, p...)
	return b
}

// AddRBS adds ribosome binding sites
func (b *Builder) AddRBS(r ...*biopart.RBS) *Builder {
	b.rbss = append(b.rbss, r...)
	return b
}

// AddProteinCoding adds coding parts
func (b *Builder) AddProteinCoding(pc ...*biopart.ProteinCoding) *Builder {
	b.codings = append(b.codings, pc...)
	return b
}

// AddTerminator adds terminators
func (b *Builder) AddTerminator(t ...*biopart.Terminator) *Builder {
	b.terminators = append(b.terminators, t...)
	return b
}

// AddDevice adds stored devices
func (b *Builder) AddDevice(d ...*biopart.Device) *Builder {
	b.devices = append(b.devices, d...)
	return b
}

// Build validates the parts and returns the catalog. Every problem found is
// reported, joined into one error.
func (b *Builder) Build() (*Catalog, error) {
	c := &Catalog{
		signals:          slices.Clone(b.signals),
		proteins:         slices.Clone(b.proteins),
		promoters:        slices.Clone(b.promoters),
		rbss:             slices.Clone(b.rbss),
		codings:          slices.Clone(b.codings),
		terminators:      slices.Clone(b.terminators),
		devices:          slices.Clone(b.devices),
		libIndex:         make(map[string]int),
		signalByName:     make(map[string]*biopart.Signal),
		proteinByName:    make(map[string]*biopart.Protein),
		promoterByName:   make(map[string]*biopart.Promoter),
		rbsByName:        make(map[string]*biopart.RBS),
		codingByName:     make(map[string]*biopart.ProteinCoding),
		terminatorByName: make(map[string]*biopart.Terminator),
		deviceByName:     make(map[string]*biopart.Device),
		codingByProtein:  make(map[string]*biopart.ProteinCoding),
		metrics:          b.opts.metrics,
	}

	var errs []error
	fail := func(kind biopart.Kind, name string, sentinel error, format string, args ...any) {
		errs = append(errs, NewError("build").Part(kind, name).Causef(sentinel, format, args...).Err())
	}
	checkName := func(kind biopart.Kind, name string) bool {
		if err := validation.ValidateName(name); err != nil {
			fail(kind, name, ErrInvalidPart, "%v", err)
			return false
		}
		return true
	}

	for _, s := range b.signals {
		if !checkName(biopart.KindSignal, s.Name) {
			continue
		}
		if _, dup := c.signalByName[s.Name]; dup {
			fail(biopart.KindSignal, s.Name, ErrDuplicatePart, "signal added twice")
			continue
		}
		c.signalByName[s.Name] = s
	}

	for _, p := range b.proteins {
		kind := p.Role.Kind()
		if !checkName(kind, p.Name) {
			continue
		}
		if _, dup := c.proteinByName[p.Name]; dup {
			fail(kind, p.Name, ErrDuplicatePart, "protein names are shared across roles")
			continue
		}
		c.proteinByName[p.Name] = p
	}
	for _, p := range b.proteins {
		kind := p.Role.Kind()
		if p.KDeg < 0 || p.KBind < 0 || p.KUnbind < 0 || p.KBindSignal < 0 || p.KUnbindSignal < 0 || p.KTranscription < 0 {
			fail(kind, p.Name, ErrInvalidPart, "negative rate constant")
		}
		if p.Subunit != nil && c.proteinByName[p.Subunit.Name] != p.Subunit {
			fail(kind, p.Name, ErrDanglingReference, "subunit %s", p.Subunit.Name)
		}
		if p.Signal != nil && c.signalByName[p.Signal.Name] != p.Signal {
			fail(kind, p.Name, ErrDanglingReference, "signal %s", p.Signal.Name)
		}
	}

	for _, pm := range b.promoters {
		if !checkName(biopart.KindPromoter, pm.Name) {
			continue
		}
		if _, dup := c.promoterByName[pm.Name]; dup {
			fail(biopart.KindPromoter, pm.Name, ErrDuplicatePart, "promoter added twice")
			continue
		}
		ok := pm.KTranscription >= 0
		if !ok {
			fail(biopart.KindPromoter, pm.Name, ErrInvalidPart, "negative transcription rate")
		}
		for i, o := range pm.Operators {
			switch {
			case o.TF == nil:
				fail(biopart.KindPromoter, pm.Name, ErrInvalidPart, "operator %d has no TF", i)
				ok = false
			case c.proteinByName[o.TF.Name] != o.TF:
				fail(biopart.KindPromoter, pm.Name, ErrDanglingReference, "operator %d binds %s", i, o.TF.Name)
				ok = false
			case !o.TF.IsTF():
				fail(biopart.KindPromoter, pm.Name, ErrInvalidPart, "operator %d binds %s, a %s", i, o.TF.Name, o.TF.Role)
				ok = false
			}
		}
		if !ok {
			continue
		}
		c.promoterByName[pm.Name] = pm
		key := pm.LibraryKey()
		if i, found := c.libIndex[key]; found {
			c.libraries[i] = append(c.libraries[i], pm)
			continue
		}
		c.libIndex[key] = len(c.libraries)
		c.libraries = append(c.libraries, []*biopart.Promoter{pm})
	}

	for _, r := range b.rbss {
		if !checkName(biopart.KindRBS, r.Name) {
			continue
		}
		if _, dup := c.rbsByName[r.Name]; dup {
			fail(biopart.KindRBS, r.Name, ErrDuplicatePart, "RBS added twice")
			continue
		}
		c.rbsByName[r.Name] = r
	}

	for _, pc := range b.codings {
		if !checkName(biopart.KindProteinCoding, pc.Name) {
			continue
		}
		if _, dup := c.codingByName[pc.Name]; dup {
			fail(biopart.KindProteinCoding, pc.Name, ErrDuplicatePart, "coding part added twice")
			continue
		}
		if pc.Protein == nil || c.proteinByName[pc.Protein.Name] != pc.Protein {
			fail(biopart.KindProteinCoding, pc.Name, ErrDanglingReference, "coded protein missing")
			continue
		}
		c.codingByName[pc.Name] = pc
		if _, seen := c.codingByProtein[pc.Protein.Name]; !seen {
			c.codingByProtein[pc.Protein.Name] = pc
		}
	}

	for _, t := range b.terminators {
		if !checkName(biopart.KindTerminator, t.Name) {
			continue
		}
		if _, dup := c.terminatorByName[t.Name]; dup {
			fail(biopart.KindTerminator, t.Name, ErrDuplicatePart, "terminator added twice")
			continue
		}
		c.terminatorByName[t.Name] = t
	}

	for _, d := range b.devices {
		if !checkName(biopart.KindDevice, d.Name) {
			continue
		}
		if _, dup := c.deviceByName[d.Name]; dup {
			fail(biopart.KindDevice, d.Name, ErrDuplicatePart, "device added twice")
			continue
		}
		if err := c.checkDevice(d); err != nil {
			fail(biopart.KindDevice, d.Name, ErrDanglingReference, "%v", err)
			continue
		}
		c.deviceByName[d.Name] = d
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	cache, err := lru.New[string, []*biopart.Promoter](max(b.opts.cacheSize, 1))
	if err != nil {
		return nil, err
	}
	c.matches = cache

	if c.metrics != nil {
		for _, k := range biopart.Kinds() {
			c.metrics.SetCatalogParts(k.String(), c.Len(k))
		}
	}
	return c, nil
}

func (c *Catalog) checkDevice(d *biopart.Device) error {
	for _, g := range d.Generators {
		if !g.Complete() {
			return errors.New("generator " + g.String() + " is incomplete")
		}
		if c.promoterByName[g.Promoter.Name] != g.Promoter ||
			c.rbsByName[g.RBS.Name] != g.RBS ||
			c.codingByName[g.Coding.Name] != g.Coding ||
			c.terminatorByName[g.Terminator.Name] != g.Terminator {
			return errors.New("generator " + g.String() + " uses parts outside the catalog")
		}
	}
	for _, s := range d.Signals {
		if c.signalByName[s.Name] != s {
			return errors.New("signal " + s.Name + " is not in the catalog")
		}
	}
	return nil
}

// Builder returns a builder preloaded with every part of c, for deriving a
// new catalog
func (c *Catalog) Builder(opts ...Option) *Builder {
	b := NewBuilder(opts...)
	b.AddSignal(c.signals...)
	b.AddProtein(c.proteins...)
	b.AddPromoter(c.promoters...)
	b.AddRBS(c.rbss...)
	b.AddProteinCoding(c.codings...)
	b.AddTerminator(c.terminators...)
	b.AddDevice(c.devices...)
	return b
}
