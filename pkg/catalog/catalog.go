// Package catalog holds the immutable view of the biological parts available
// to the wiring solver: proteins by role, promoters grouped into libraries,
// and the RBS, coding and terminator pools.
package catalog

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
)

// DefaultCacheSize bounds the representative-match cache
const DefaultCacheSize = 4096

// Option configures a catalog at build time
type Option func(*options)

type options struct {
	cacheSize int
	metrics   *metrics.Registry
}

// WithCacheSize sets the number of memoised representative lookups
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithMetrics reports cache lookups and part counts to r
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// Catalog is a read-only set of parts. It is safe for concurrent use.
// A changed part set means building a new Catalog.
type Catalog struct {
	signals     []*biopart.Signal
	proteins    []*biopart.Protein
	promoters   []*biopart.Promoter
	rbss        []*biopart.RBS
	codings     []*biopart.ProteinCoding
	terminators []*biopart.Terminator
	devices     []*biopart.Device

	// libraries group promoters by TF set, both in insertion order
	libraries [][]*biopart.Promoter
	libIndex  map[string]int

	signalByName     map[string]*biopart.Signal
	proteinByName    map[string]*biopart.Protein
	promoterByName   map[string]*biopart.Promoter
	rbsByName        map[string]*biopart.RBS
	codingByName     map[string]*biopart.ProteinCoding
	terminatorByName map[string]*biopart.Terminator
	deviceByName     map[string]*biopart.Device
	codingByProtein  map[string]*biopart.ProteinCoding

	matches *lru.Cache[string, []*biopart.Promoter]
	metrics *metrics.Registry
}

var _ biopart.Resolver = (*Catalog)(nil)

// Signals returns every environmental signal
func (c *Catalog) Signals() []*biopart.Signal {
	return slices.Clone(c.signals)
}

// Proteins returns every protein in insertion order
func (c *Catalog) Proteins() []*biopart.Protein {
	return slices.Clone(c.proteins)
}

// ProteinsByRole returns the proteins with the given role. With activeOnly
// set, proteins that need an activating signal before they bind DNA are
// left out.
func (c *Catalog) ProteinsByRole(role biopart.Role, activeOnly bool) []*biopart.Protein {
	var out []*biopart.Protein
	for _, p := range c.proteins {
		if p.Role != role {
			continue
		}
		if activeOnly && p.Activated() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ActiveInhibitors returns the inhibitors usable on internal "-" edges
func (c *Catalog) ActiveInhibitors() []*biopart.Protein {
	return c.ProteinsByRole(biopart.RoleInhibitor, true)
}

// ActiveActivators returns the activators usable on internal "+" edges
func (c *Catalog) ActiveActivators() []*biopart.Protein {
	return c.ProteinsByRole(biopart.RoleActivator, true)
}

// Promoters returns every promoter in insertion order
func (c *Catalog) Promoters() []*biopart.Promoter {
	return slices.Clone(c.promoters)
}

// Libraries returns the promoter libraries in insertion order
func (c *Catalog) Libraries() [][]*biopart.Promoter {
	out := make([][]*biopart.Promoter, len(c.libraries))
	for i, lib := range c.libraries {
		out[i] = slices.Clone(lib)
	}
	return out
}

// PromoterLibrary returns the promoters binding exactly the TF set tfs, or
// nil when there is no such library
func (c *Catalog) PromoterLibrary(tfs []*biopart.Protein) []*biopart.Promoter {
	i, ok := c.libIndex[biopart.TFKey(tfs)]
	if !ok {
		return nil
	}
	return slices.Clone(c.libraries[i])
}

// Representatives returns the first promoter of every library
func (c *Catalog) Representatives() []*biopart.Promoter {
	out := make([]*biopart.Promoter, len(c.libraries))
	for i, lib := range c.libraries {
		out[i] = lib[0]
	}
	return out
}

// MatchingRepresentatives returns the library representatives with the given
// regulation pattern that bind every TF in tfs. Results are memoised and the
// returned slice is shared, so callers must not modify it.
func (c *Catalog) MatchingRepresentatives(pattern string, tfs []*biopart.Protein) []*biopart.Promoter {
	key := pattern + "|" + biopart.TFKey(tfs)
	if hit, ok := c.matches.Get(key); ok {
		c.recordLookup(true)
		return hit
	}
	c.recordLookup(false)

	var out []*biopart.Promoter
	for _, lib := range c.libraries {
		rep := lib[0]
		if rep.RegulationPattern() == pattern && rep.BindsAll(nonNil(tfs)) {
			out = append(out, rep)
		}
	}
	c.matches.Add(key, out)
	return out
}

func (c *Catalog) recordLookup(hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(hit)
	}
}

func nonNil(tfs []*biopart.Protein) []*biopart.Protein {
	out := make([]*biopart.Protein, 0, len(tfs))
	for _, tf := range tfs {
		if tf != nil {
			out = append(out, tf)
		}
	}
	return out
}

// RBSs returns every RBS in insertion order
func (c *Catalog) RBSs() []*biopart.RBS {
	return slices.Clone(c.rbss)
}

// Terminators returns every terminator in insertion order
func (c *Catalog) Terminators() []*biopart.Terminator {
	return slices.Clone(c.terminators)
}

// ProteinCodings returns every protein-coding part in insertion order
func (c *Catalog) ProteinCodings() []*biopart.ProteinCoding {
	return slices.Clone(c.codings)
}

// Devices returns the stored devices in insertion order
func (c *Catalog) Devices() []*biopart.Device {
	return slices.Clone(c.devices)
}

// CodingFor returns the first coding part that encodes p
func (c *Catalog) CodingFor(p *biopart.Protein) (*biopart.ProteinCoding, bool) {
	if p == nil {
		return nil, false
	}
	pc, ok := c.codingByProtein[p.Name]
	return pc, ok
}

// Len returns the number of parts of one kind
func (c *Catalog) Len(kind biopart.Kind) int {
	switch kind {
	case biopart.KindSignal:
		return len(c.signals)
	case biopart.KindPromoter:
		return len(c.promoters)
	case biopart.KindRBS:
		return len(c.rbss)
	case biopart.KindProteinCoding:
		return len(c.codings)
	case biopart.KindTerminator:
		return len(c.terminators)
	case biopart.KindDevice:
		return len(c.devices)
	}
	n := 0
	for _, p := range c.proteins {
		if p.Role.Kind() == kind {
			n++
		}
	}
	return n
}

// Protein looks a protein up by name
func (c *Catalog) Protein(name string) (*biopart.Protein, bool) {
	p, ok := c.proteinByName[name]
	return p, ok
}

// Signal looks a signal up by name
func (c *Catalog) Signal(name string) (*biopart.Signal, bool) {
	s, ok := c.signalByName[name]
	return s, ok
}

// Promoter looks a promoter up by name
func (c *Catalog) Promoter(name string) (*biopart.Promoter, bool) {
	p, ok := c.promoterByName[name]
	return p, ok
}

// RBS looks an RBS up by name
func (c *Catalog) RBS(name string) (*biopart.RBS, bool) {
	r, ok := c.rbsByName[name]
	return r, ok
}

// ProteinCoding looks a coding part up by name
func (c *Catalog) ProteinCoding(name string) (*biopart.ProteinCoding, bool) {
	pc, ok := c.codingByName[name]
	return pc, ok
}

// Terminator looks a terminator up by name
func (c *Catalog) Terminator(name string) (*biopart.Terminator, bool) {
	t, ok := c.terminatorByName[name]
	return t, ok
}

// Device looks a stored device up by name
func (c *Catalog) Device(name string) (*biopart.Device, bool) {
	d, ok := c.deviceByName[name]
	return d, ok
}
