package biopart

import "fmt"

// RBS is a ribosome binding site
type RBS struct {
	Name         string
	KTranslation float64
}

func (r *RBS) String() string {
	return r.Name
}

// ProteinCoding is the coding sequence of one protein
type ProteinCoding struct {
	Name     string
	Protein  *Protein
	KDegMRNA float64
}

func (c *ProteinCoding) String() string {
	return c.Name
}

// Terminator ends a transcript
type Terminator struct {
	Name string
}

func (t *Terminator) String() string {
	return t.Name
}

// ProteinGenerator is one gene: promoter, RBS, coding part and terminator
type ProteinGenerator struct {
	Promoter   *Promoter
	RBS        *RBS
	Coding     *ProteinCoding
	Terminator *Terminator
}

// Product is the protein the generator expresses
func (g ProteinGenerator) Product() *Protein {
	if g.Coding == nil {
		return nil
	}
	return g.Coding.Protein
}

// Complete reports whether all four parts are set
func (g ProteinGenerator) Complete() bool {
	return g.Promoter != nil && g.RBS != nil && g.Coding != nil && g.Terminator != nil && g.Coding.Protein != nil
}

// String returns "(promoter,rbs,coding,terminator)". Missing parts print empty.
func (g ProteinGenerator) String() string {
	name := func(s fmt.Stringer, missing bool) string {
		if missing {
			return ""
		}
		return s.String()
	}
	return "(" +
		name(g.Promoter, g.Promoter == nil) + "," +
		name(g.RBS, g.RBS == nil) + "," +
		name(g.Coding, g.Coding == nil) + "," +
		name(g.Terminator, g.Terminator == nil) + ")"
}

// sameParts compares generators by part name
func (g ProteinGenerator) sameParts(o ProteinGenerator) bool {
	return g.String() == o.String()
}
