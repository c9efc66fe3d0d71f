package biopart

import (
	"fmt"
	"strings"
)

// Report returns a human-readable summary of the device interface and its
// self-consistency.
func (d *Device) Report() string {
	inputs := d.InputProteins()
	outputs := d.OutputProteins()
	internal := d.InternalProteins()

	var sb strings.Builder
	sb.WriteString("*** Report ***\n\n")

	sb.WriteString("#OVERVIEW\n")
	fmt.Fprintf(&sb, "Number of protein generators: %d\n", len(d.Generators))
	fmt.Fprintf(&sb, "Number of external signals: %d\n", len(d.Signals))
	fmt.Fprintf(&sb, "Number of input proteins: %d\n", len(inputs))
	fmt.Fprintf(&sb, "Number of internal proteins (internal signals): %d\n", len(internal))
	fmt.Fprintf(&sb, "Number of output proteins (reporters): %d\n\n", len(outputs))

	sb.WriteString("#INTERFACE\n")
	in := signalNames(d.Signals)
	in = append(in, ProteinNames(inputs)...)
	writeList(&sb, "Input", in)
	writeList(&sb, "Output", ProteinNames(outputs))
	writeList(&sb, "Internal", ProteinNames(internal))

	sb.WriteString("\n#DEVICE CHECK\n")
	writeList(&sb, "Incompatible proteins", ProteinNames(d.IncompatibleProteins()))
	writeList(&sb, "Incompatible signals", signalNames(d.IncompatibleSignals()))

	sb.WriteString("\n*** End report ***\n")
	return sb.String()
}

func writeList(sb *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(sb, "%s: -\n", label)
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, strings.Join(names, ", "))
}

func signalNames(ss []*Signal) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name
	}
	return names
}
