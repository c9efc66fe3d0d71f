package biopart

import "fmt"

// Kind identifies a catalog item type. Each kind has a fixed storage directory.
type Kind int

const (
	KindPromoter Kind = iota
	KindRBS
	KindProteinCoding
	KindTerminator
	KindInhibitor
	KindActivator
	KindSubunit
	KindReporter
	KindSignal
	KindDevice
)

var kindTable = [...]struct {
	name string
	dir  string
}{
	KindPromoter:      {"promoter", "promoters"},
	KindRBS:           {"rbs", "rbs"},
	KindProteinCoding: {"protein_coding", "protein_coding"},
	KindTerminator:    {"terminator", "terminators"},
	KindInhibitor:     {"inhibitor", "proteins/inhibitors"},
	KindActivator:     {"activator", "proteins/activators"},
	KindSubunit:       {"subunit", "proteins/subunits"},
	KindReporter:      {"reporter", "proteins/reporters"},
	KindSignal:        {"signal", "signals"},
	KindDevice:        {"device", "devices"},
}

// Kinds returns every kind in storage order. Signals and subunits come before
// the proteins that reference them.
func Kinds() []Kind {
	return []Kind{
		KindSignal, KindSubunit, KindInhibitor, KindActivator, KindReporter,
		KindPromoter, KindRBS, KindProteinCoding, KindTerminator, KindDevice,
	}
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindTable)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTable[k].name
}

// Dir returns the storage directory of the kind, relative to a catalog root
func (k Kind) Dir() string {
	if !k.valid() {
		return ""
	}
	return kindTable[k].dir
}

// ParseKind converts a kind name to a Kind
func ParseKind(s string) (Kind, error) {
	for k := range kindTable {
		if kindTable[k].name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown part kind %q", s)
}
