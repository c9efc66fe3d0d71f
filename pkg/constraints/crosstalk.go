package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// CrossTalkFree requires every protein to be expressed by at most one gene
type CrossTalkFree struct{}

// Name returns the constraint name
func (c *CrossTalkFree) Name() string {
	return "CrossTalkFree"
}

// Validate reports each gene expressing a protein an earlier gene expresses
func (c *CrossTalkFree) Validate(d *biopart.Device) ([]Violation, error) {
	violations := make([]Violation, 0)
	first := make(map[string]int, len(d.Generators))

	for i, g := range d.Generators {
		p := g.Product()
		if p == nil {
			continue
		}
		j, seen := first[p.Name]
		if !seen {
			first[p.Name] = i
			continue
		}
		violations = append(violations, Violation{
			Type:       CrossTalk,
			Severity:   Error,
			Generator:  generatorIndex(i),
			Constraint: c.Name(),
			Message:    fmt.Sprintf("genes %d and %d both express %s", j, i, p.Name),
			Details:    map[string]any{"protein": p.Name, "first": j},
		})
	}
	return violations, nil
}
