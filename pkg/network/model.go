// Package network compiles a Device into a mass-action reaction network.
package network

import (
	"fmt"
	"strconv"
	"strings"
)

// EmptySet is the sink species degradation reactions produce
const EmptySet = "empty_set"

// Species is a named molecule count
type Species struct {
	Name    string
	Initial int
}

func (s Species) String() string {
	return fmt.Sprintf("%s (%d)", s.Name, s.Initial)
}

// Reaction converts reactants into products at a constant rate
type Reaction struct {
	Reactants []string
	Products  []string
	Rate      float64
}

func newReaction(rate float64, reactants []string, products ...string) Reaction {
	return Reaction{Reactants: reactants, Products: products, Rate: rate}
}

// String returns "a + b -> c (rate)"
func (r Reaction) String() string {
	return strings.Join(r.Reactants, " + ") + " -> " + strings.Join(r.Products, " + ") +
		" (" + formatRate(r.Rate) + ")"
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', -1, 64)
}

// Model is the compiled network of one device
type Model struct {
	Device    string
	Species   []Species
	Reactions []Reaction
}

func (m *Model) addSpecies(name string, initial int) {
	m.Species = append(m.Species, Species{Name: name, Initial: initial})
}

func (m *Model) add(r Reaction) {
	m.Reactions = append(m.Reactions, r)
}

// Lookup returns the species called name
func (m *Model) Lookup(name string) (Species, bool) {
	for _, s := range m.Species {
		if s.Name == name {
			return s, true
		}
	}
	return Species{}, false
}

// SpeciesNames returns species names in emission order
func (m *Model) SpeciesNames() []string {
	names := make([]string, len(m.Species))
	for i, s := range m.Species {
		names[i] = s.Name
	}
	return names
}

// String prints a header followed by @species and @reactions sections
func (m *Model) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Model: (%d species, %d reactions)\n", len(m.Species), len(m.Reactions))
	sb.WriteString("@species\n")
	for _, s := range m.Species {
		sb.WriteString("  " + s.String() + "\n")
	}
	sb.WriteString("@reactions\n")
	for _, r := range m.Reactions {
		sb.WriteString("  " + r.String() + "\n")
	}
	return sb.String()
}
