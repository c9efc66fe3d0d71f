package biopart

import (
	"sort"
	"strings"
)

// Operator is a promoter binding site for one transcription factor
type Operator struct {
	TF        *Protein
	KBindTF   float64
	KUnbindTF float64
}

// Promoter drives transcription at KTranscription, modulated by the TFs bound
// to its operators.
type Promoter struct {
	Name           string
	Operators      []Operator
	KTranscription float64
}

func (p *Promoter) String() string {
	return p.Name
}

// TFs returns the TF of every operator, in operator order
func (p *Promoter) TFs() []*Protein {
	tfs := make([]*Protein, len(p.Operators))
	for i, o := range p.Operators {
		tfs[i] = o.TF
	}
	return tfs
}

// RegulationPattern returns one "+" per distinct activator followed by one "-"
// per distinct inhibitor. Two operators for the same TF count once.
func (p *Promoter) RegulationPattern() string {
	seen := make(map[string]bool, len(p.Operators))
	var plus, minus int
	for _, o := range p.Operators {
		if seen[o.TF.Name] {
			continue
		}
		seen[o.TF.Name] = true
		if o.TF.Role == RoleActivator {
			plus++
		} else {
			minus++
		}
	}
	return strings.Repeat("+", plus) + strings.Repeat("-", minus)
}

// LibraryKey identifies the promoter's library: the sorted set of TF names.
// Promoters in the same library differ only in rates.
func (p *Promoter) LibraryKey() string {
	return TFKey(p.TFs())
}

// SameLibrary reports whether p and other bind the same set of TFs
func (p *Promoter) SameLibrary(other *Promoter) bool {
	return p.LibraryKey() == other.LibraryKey()
}

// BindsActivatedTFs reports whether any operator binds a TF that needs an
// activating signal
func (p *Promoter) BindsActivatedTFs() bool {
	for _, o := range p.Operators {
		if o.TF.Activated() {
			return true
		}
	}
	return false
}

// BindsAll reports whether every TF in tfs binds some operator of p
func (p *Promoter) BindsAll(tfs []*Protein) bool {
	bound := make(map[string]bool, len(p.Operators))
	for _, o := range p.Operators {
		bound[o.TF.Name] = true
	}
	for _, tf := range tfs {
		if !bound[tf.Name] {
			return false
		}
	}
	return true
}

// TranscriptionRate returns the rate for an occupancy string where character i
// is '1' when operator i is bound. A bound inhibitor stops transcription. A
// bound activator sets the rate to the greater of the base rate and its own
// rate; with several bound activators the last one decides.
func (p *Promoter) TranscriptionRate(occupancy string) float64 {
	if len(p.Operators) == 0 {
		return p.KTranscription
	}
	rate := p.KTranscription
	for i, o := range p.Operators {
		if i >= len(occupancy) || occupancy[i] != '1' {
			continue
		}
		if o.TF.Role != RoleActivator {
			return 0
		}
		rate = max(p.KTranscription, o.TF.KTranscription)
	}
	return rate
}

// TFKey returns the sorted, de-duplicated TF names joined by commas
func TFKey(tfs []*Protein) string {
	names := make([]string, 0, len(tfs))
	seen := make(map[string]bool, len(tfs))
	for _, tf := range tfs {
		if tf == nil || seen[tf.Name] {
			continue
		}
		seen[tf.Name] = true
		names = append(names, tf.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
