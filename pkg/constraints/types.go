// Package constraints checks finished devices against the rules a wiring
// search guarantees, so that devices parsed from text or edited by hand can
// be verified after the fact.
package constraints

import (
	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// PartSource defines the catalog lookups constraints need.
// *catalog.Catalog satisfies it.
type PartSource interface {
	biopart.Resolver
	PromoterLibrary(tfs []*biopart.Protein) []*biopart.Promoter
}

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	MissingPart ViolationType = iota
	UnknownPart
	NoPromoterLibrary
	CrossTalk
	IncompatibleProtein
	IncompatibleSignal
)

func (vt ViolationType) String() string {
	switch vt {
	case MissingPart:
		return "MissingPart"
	case UnknownPart:
		return "UnknownPart"
	case NoPromoterLibrary:
		return "NoPromoterLibrary"
	case CrossTalk:
		return "CrossTalk"
	case IncompatibleProtein:
		return "IncompatibleProtein"
	case IncompatibleSignal:
		return "IncompatibleSignal"
	default:
		return "Unknown"
	}
}

// Violation represents a constraint violation
type Violation struct {
	Type       ViolationType
	Severity   Severity
	Generator  *int // gene index, nil for device-wide violations
	Constraint string
	Message    string
	Details    map[string]any
}

// Constraint is the interface that all device checks implement
type Constraint interface {
	// Validate checks the constraint against the device
	// Returns a list of violations (empty if valid)
	Validate(d *biopart.Device) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}

func generatorIndex(i int) *int {
	return &i
}
