package constraints

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// PromoterAvailability requires every gene's promoter to belong to a catalog
// library binding exactly its TF set
type PromoterAvailability struct {
	Parts PartSource
}

// Name returns the constraint name
func (c *PromoterAvailability) Name() string {
	return "PromoterAvailability"
}

// Validate checks the library of every promoter in d
func (c *PromoterAvailability) Validate(d *biopart.Device) ([]Violation, error) {
	if c.Parts == nil {
		return nil, errors.New("no catalog")
	}
	violations := make([]Violation, 0)

	for i, g := range d.Generators {
		if g.Promoter == nil {
			continue
		}
		tfs := g.Promoter.TFs()
		lib := c.Parts.PromoterLibrary(tfs)
		if inLibrary(lib, g.Promoter) {
			continue
		}
		key := biopart.TFKey(tfs)
		msg := fmt.Sprintf("gene %d: no promoter library binds {%s}", i, key)
		if len(lib) > 0 {
			msg = fmt.Sprintf("gene %d: promoter %s is not in the library for {%s}", i, g.Promoter.Name, key)
		}
		violations = append(violations, Violation{
			Type:       NoPromoterLibrary,
			Severity:   Error,
			Generator:  generatorIndex(i),
			Constraint: c.Name(),
			Message:    msg,
			Details: map[string]any{
				"promoter": g.Promoter.Name,
				"pattern":  g.Promoter.RegulationPattern(),
				"tfs":      key,
			},
		})
	}
	return violations, nil
}

func inLibrary(lib []*biopart.Promoter, p *biopart.Promoter) bool {
	for _, q := range lib {
		if q.Name == p.Name {
			return true
		}
	}
	return false
}
