package network

import (
	"encoding/xml"
	"fmt"
	"io"
)

// FernMLVersion is the format version written to the root element
const FernMLVersion = "1.0"

type fernML struct {
	XMLName   xml.Name       `xml:"fernml"`
	Version   string         `xml:"version,attr"`
	Species   []fernSpecies  `xml:"listOfSpecies>species"`
	Reactions []fernReaction `xml:"listOfReactions>reaction"`
}

type fernSpecies struct {
	Name    string `xml:"name,attr"`
	Initial int    `xml:"initialAmount,attr"`
}

type fernReaction struct {
	Rate      float64   `xml:"kineticConstant,attr"`
	Reactants []fernRef `xml:"listOfReactants>speciesReference"`
	Products  []fernRef `xml:"listOfProducts>speciesReference"`
}

type fernRef struct {
	Name string `xml:"name,attr"`
}

func refs(names []string) []fernRef {
	out := make([]fernRef, len(names))
	for i, n := range names {
		out[i] = fernRef{Name: n}
	}
	return out
}

func names(refs []fernRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name
	}
	return out
}

// WriteFernML writes m as an indented FernML document
func WriteFernML(w io.Writer, m *Model) error {
	doc := fernML{Version: FernMLVersion}
	for _, s := range m.Species {
		doc.Species = append(doc.Species, fernSpecies(s))
	}
	for _, r := range m.Reactions {
		doc.Reactions = append(doc.Reactions, fernReaction{
			Rate:      r.Rate,
			Reactants: refs(r.Reactants),
			Products:  refs(r.Products),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write fernml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write fernml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write fernml: %w", err)
	}
	return nil
}

// ReadFernML parses a FernML document written by WriteFernML
func ReadFernML(r io.Reader) (*Model, error) {
	var doc fernML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("read fernml: %w", err)
	}
	if doc.Version != FernMLVersion {
		return nil, fmt.Errorf("read fernml: unsupported version %q", doc.Version)
	}

	m := &Model{}
	for _, s := range doc.Species {
		m.addSpecies(s.Name, s.Initial)
	}
	for _, r := range doc.Reactions {
		m.add(Reaction{Reactants: names(r.Reactants), Products: names(r.Products), Rate: r.Rate})
	}
	return m, nil
}
