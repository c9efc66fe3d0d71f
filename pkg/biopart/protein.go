package biopart

import (
	"fmt"
	"sort"
)

// Role is the function a protein plays in a circuit
type Role int

const (
	RoleInhibitor Role = iota
	RoleActivator
	RoleSubunit
	RoleReporter
)

func (r Role) String() string {
	switch r {
	case RoleInhibitor:
		return "inhibitor"
	case RoleActivator:
		return "activator"
	case RoleSubunit:
		return "subunit"
	case RoleReporter:
		return "reporter"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Kind maps the role to its catalog kind
func (r Role) Kind() Kind {
	switch r {
	case RoleActivator:
		return KindActivator
	case RoleSubunit:
		return KindSubunit
	case RoleReporter:
		return KindReporter
	default:
		return KindInhibitor
	}
}

// ParseRole converts a role name to a Role
func ParseRole(s string) (Role, error) {
	for _, r := range []Role{RoleInhibitor, RoleActivator, RoleSubunit, RoleReporter} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown protein role %q", s)
}

// Signal is an environmental small molecule that binds a transcription factor.
// An inhibiting signal releases its TF from DNA; an activating signal is
// required for its TF to bind.
type Signal struct {
	Name       string
	Inhibiting bool
}

func (s *Signal) String() string {
	return s.Name
}

// Protein is a catalog protein. Identity is the name.
//
// A protein with a Subunit is a homo-oligomer formed from two copies of the
// subunit. Subunits may themselves be oligomers.
type Protein struct {
	Name string
	Role Role
	KDeg float64

	Subunit *Protein
	KBind   float64
	KUnbind float64

	Signal        *Signal
	KBindSignal   float64
	KUnbindSignal float64

	// KTranscription is the rate an activator drives when bound
	KTranscription float64
}

func (p *Protein) String() string {
	return p.Name
}

// IsMonomer reports whether p has no subunit
func (p *Protein) IsMonomer() bool {
	return p.Subunit == nil
}

// IsTF reports whether p regulates transcription
func (p *Protein) IsTF() bool {
	return p.Role == RoleInhibitor || p.Role == RoleActivator
}

// Monomer follows the subunit chain down to the monomer
func (p *Protein) Monomer() *Protein {
	for p.Subunit != nil {
		p = p.Subunit
	}
	return p
}

// RespondsToSignal reports whether an environmental signal binds p
func (p *Protein) RespondsToSignal() bool {
	return p.Signal != nil
}

// Inhibited reports whether p is switched off by its signal
func (p *Protein) Inhibited() bool {
	return p.Signal != nil && p.Signal.Inhibiting
}

// Activated reports whether p needs its signal before it can bind DNA
func (p *Protein) Activated() bool {
	return p.Signal != nil && !p.Signal.Inhibiting
}

// ComplexName is the species name of p bound to its signal
func (p *Protein) ComplexName() string {
	if p.Signal == nil {
		return p.Name
	}
	return p.Name + "_" + p.Signal.Name
}

func (p *Protein) collectMonomers(set proteinSet) {
	set.add(p.Monomer())
}

func (p *Protein) collectOligomers(set proteinSet) {
	for q := p; q.Subunit != nil; q = q.Subunit {
		set.add(q)
	}
}

// proteinSet is a name-keyed set with deterministic iteration
type proteinSet map[string]*Protein

func (s proteinSet) add(p *Protein) {
	if p != nil {
		s[p.Name] = p
	}
}

func (s proteinSet) has(p *Protein) bool {
	_, ok := s[p.Name]
	return ok
}

func (s proteinSet) sorted() []*Protein {
	out := make([]*Protein, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	SortProteins(out)
	return out
}

// SortProteins orders proteins by name
func SortProteins(ps []*Protein) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
}

// SortSignals orders signals by name
func SortSignals(ss []*Signal) {
	sort.Slice(ss, func(i, j int) bool { return ss[i].Name < ss[j].Name })
}

// ProteinNames returns the names of ps in order
func ProteinNames(ps []*Protein) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}
