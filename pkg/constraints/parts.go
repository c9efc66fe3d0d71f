package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// PartsResolved requires every gene to have all four parts. With Parts set,
// every part and signal name must also resolve in the catalog.
type PartsResolved struct {
	Parts PartSource
}

// Name returns the constraint name
func (c *PartsResolved) Name() string {
	return "PartsResolved"
}

// Validate checks every generator and signal of d
func (c *PartsResolved) Validate(d *biopart.Device) ([]Violation, error) {
	violations := make([]Violation, 0)

	missing := func(i int, kind biopart.Kind) {
		violations = append(violations, Violation{
			Type:       MissingPart,
			Severity:   Error,
			Generator:  generatorIndex(i),
			Constraint: c.Name(),
			Message:    fmt.Sprintf("gene %d has no %s", i, kind),
			Details:    map[string]any{"kind": kind.String()},
		})
	}
	unknown := func(i *int, kind biopart.Kind, name string) {
		violations = append(violations, Violation{
			Type:       UnknownPart,
			Severity:   Error,
			Generator:  i,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("%s %s is not in the catalog", kind, name),
			Details:    map[string]any{"kind": kind.String(), "name": name},
		})
	}

	for i, g := range d.Generators {
		if g.Promoter == nil {
			missing(i, biopart.KindPromoter)
		} else if c.Parts != nil {
			if _, ok := c.Parts.Promoter(g.Promoter.Name); !ok {
				unknown(generatorIndex(i), biopart.KindPromoter, g.Promoter.Name)
			}
		}
		if g.RBS == nil {
			missing(i, biopart.KindRBS)
		} else if c.Parts != nil {
			if _, ok := c.Parts.RBS(g.RBS.Name); !ok {
				unknown(generatorIndex(i), biopart.KindRBS, g.RBS.Name)
			}
		}
		if g.Coding == nil || g.Coding.Protein == nil {
			missing(i, biopart.KindProteinCoding)
		} else if c.Parts != nil {
			if _, ok := c.Parts.ProteinCoding(g.Coding.Name); !ok {
				unknown(generatorIndex(i), biopart.KindProteinCoding, g.Coding.Name)
			}
		}
		if g.Terminator == nil {
			missing(i, biopart.KindTerminator)
		} else if c.Parts != nil {
			if _, ok := c.Parts.Terminator(g.Terminator.Name); !ok {
				unknown(generatorIndex(i), biopart.KindTerminator, g.Terminator.Name)
			}
		}
	}

	if c.Parts != nil {
		for _, s := range d.Signals {
			if _, ok := c.Parts.Signal(s.Name); !ok {
				unknown(nil, biopart.KindSignal, s.Name)
			}
		}
	}
	return violations, nil
}
