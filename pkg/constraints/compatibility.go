package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// CompatibleProteins warns about TFs the device needs but does not express.
// These are the device's inputs and must come from elsewhere.
type CompatibleProteins struct{}

// Name returns the constraint name
func (c *CompatibleProteins) Name() string {
	return "CompatibleProteins"
}

// Validate lists every incompatible protein of d
func (c *CompatibleProteins) Validate(d *biopart.Device) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, p := range d.IncompatibleProteins() {
		violations = append(violations, Violation{
			Type:       IncompatibleProtein,
			Severity:   Warning,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("%s regulates the device but is not expressed by it", p.Name),
			Details:    map[string]any{"protein": p.Name},
		})
	}
	return violations, nil
}

// CompatibleSignals warns about applied signals no device TF responds to
type CompatibleSignals struct{}

// Name returns the constraint name
func (c *CompatibleSignals) Name() string {
	return "CompatibleSignals"
}

// Validate lists every incompatible signal of d
func (c *CompatibleSignals) Validate(d *biopart.Device) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, s := range d.IncompatibleSignals() {
		violations = append(violations, Violation{
			Type:       IncompatibleSignal,
			Severity:   Warning,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("signal %s binds no TF of the device", s.Name),
			Details:    map[string]any{"signal": s.Name},
		})
	}
	return violations, nil
}
