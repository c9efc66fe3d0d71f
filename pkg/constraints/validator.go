package constraints

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// ValidationResult contains the results of validating a device against constraints
type ValidationResult struct {
	Valid      bool        // True if no Error violations were found
	Violations []Violation // List of all violations
	CheckedAt  time.Time   // When validation was performed
}

// GetViolationsBySeverity returns the violations at one severity
func (vr *ValidationResult) GetViolationsBySeverity(severity Severity) []Violation {
	return vr.filter(func(v Violation) bool { return v.Severity == severity })
}

// GetViolationsByType returns the violations of one type
func (vr *ValidationResult) GetViolationsByType(violationType ViolationType) []Violation {
	return vr.filter(func(v Violation) bool { return v.Type == violationType })
}

func (vr *ValidationResult) filter(keep func(Violation) bool) []Violation {
	out := []Violation{}
	for _, v := range vr.Violations {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// String lists one violation per line, or "ok"
func (vr *ValidationResult) String() string {
	if len(vr.Violations) == 0 {
		return "ok"
	}
	var sb strings.Builder
	for _, v := range vr.Violations {
		fmt.Fprintf(&sb, "%s %s: %s\n", v.Severity, v.Type, v.Message)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Validator manages a set of constraints and validates devices against them
type Validator struct {
	constraints []Constraint
}

// NewValidator creates a new empty validator
func NewValidator() *Validator {
	return &Validator{
		constraints: make([]Constraint, 0),
	}
}

// NewDeviceValidator returns a validator with every device check. Checks
// needing the catalog are skipped when parts is nil.
func NewDeviceValidator(parts PartSource) *Validator {
	v := NewValidator()
	v.AddConstraints([]Constraint{
		&PartsResolved{Parts: parts},
		&CrossTalkFree{},
		&CompatibleProteins{},
		&CompatibleSignals{},
	})
	if parts != nil {
		v.AddConstraint(&PromoterAvailability{Parts: parts})
	}
	return v
}

// AddConstraint adds a constraint to the validator
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// AddConstraints adds multiple constraints to the validator
func (v *Validator) AddConstraints(constraints []Constraint) {
	v.constraints = append(v.constraints, constraints...)
}

// Validate runs all constraints against the device and returns the results
func (v *Validator) Validate(d *biopart.Device) (*ValidationResult, error) {
	if d == nil {
		return nil, fmt.Errorf("validate: nil device")
	}
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	for _, constraint := range v.constraints {
		violations, err := constraint.Validate(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", constraint.Name(), err)
		}

		if slices.ContainsFunc(violations, func(v Violation) bool { return v.Severity == Error }) {
			result.Valid = false
		}
		result.Violations = append(result.Violations, violations...)
	}

	return result, nil
}

// GetConstraints returns all constraints in the validator
func (v *Validator) GetConstraints() []Constraint {
	return v.constraints
}

// ClearConstraints removes all constraints from the validator
func (v *Validator) ClearConstraints() {
	v.constraints = make([]Constraint, 0)
}
