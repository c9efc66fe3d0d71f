// Package settings reads circuit settings: which proteins drive a template's
// input ports, which reporters its outputs express, and the intended timing.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/template"
	"github.com/dd0wney/cluso-genenet/pkg/validation"
)

// Document is the YAML form of circuit settings
type Document struct {
	Name      string            `yaml:"name" validate:"required,partname"`
	Template  string            `yaml:"template" validate:"required,partname"`
	Inputs    map[string]string `yaml:"inputs" validate:"dive,keys,partname,endkeys,partname"`
	Outputs   map[string]string `yaml:"outputs" validate:"dive,keys,partname,endkeys,partname"`
	StateTime int               `yaml:"state_time" validate:"gt=0"`
	Visual    bool              `yaml:"visual"`
	Timing    map[string]string `yaml:"timing,omitempty" validate:"dive,keys,partname,endkeys,binary"`
}

// Parse decodes and validates a settings document
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := validation.Struct(&doc); err != nil {
		return nil, fmt.Errorf("settings %s: %w", doc.Name, err)
	}
	return &doc, nil
}

// LoadFile reads a settings document from disk
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Timings parses the timing diagram. All plots must have the same length.
func (d *Document) Timings() (map[string][]bool, error) {
	plots := make(map[string][]bool, len(d.Timing))
	length := -1
	for _, port := range sortedKeys(d.Timing) {
		s := d.Timing[port]
		if length >= 0 && len(s) != length {
			return nil, Errorf(d.Name, port, ErrTiming, "length %d, want %d", len(s), length)
		}
		length = len(s)
		plot := make([]bool, len(s))
		for i, c := range s {
			switch c {
			case '0':
			case '1':
				plot[i] = true
			default:
				return nil, Errorf(d.Name, port, ErrTiming, "%q is not binary", s)
			}
		}
		plots[port] = plot
	}
	return plots, nil
}

// Binding fixes the protein behind one template port
type Binding struct {
	Port    string
	Edge    int
	Protein *biopart.Protein
}

// Settings are resolved against a template and a catalog
type Settings struct {
	Name      string
	Template  string
	Inputs    []Binding // template input port order
	Outputs   []Binding // template output port order
	StateTime int
	Visual    bool
	Timing    map[string][]bool
}

// Resolve binds every template port to a catalog protein and checks the
// result with Check.
func (d *Document) Resolve(t *template.Template, c *catalog.Catalog) (*Settings, error) {
	if d.Template != t.ID {
		return nil, Errorf(d.Name, "", ErrTemplateMismatch, "%s, template is %s", d.Template, t.ID)
	}
	if err := d.checkCardinality(t); err != nil {
		return nil, err
	}

	s := &Settings{
		Name:      d.Name,
		Template:  t.ID,
		StateTime: d.StateTime,
		Visual:    d.Visual,
	}
	bind := func(port template.Port, name string) (Binding, error) {
		p, ok := c.Protein(name)
		if !ok {
			return Binding{}, Errorf(d.Name, port.ID, ErrUnknownProtein, "%s", name)
		}
		return Binding{Port: port.ID, Edge: port.Edge, Protein: p}, nil
	}
	for _, port := range t.Inputs() {
		b, err := bind(port, d.Inputs[port.ID])
		if err != nil {
			return nil, err
		}
		s.Inputs = append(s.Inputs, b)
	}
	for _, port := range t.Outputs() {
		b, err := bind(port, d.Outputs[port.ID])
		if err != nil {
			return nil, err
		}
		s.Outputs = append(s.Outputs, b)
	}

	timing, err := d.Timings()
	if err != nil {
		return nil, err
	}
	for port := range timing {
		_, in := t.InputPort(port)
		_, out := t.OutputPort(port)
		if !in && !out {
			return nil, Errorf(d.Name, port, ErrTiming, "no such port")
		}
	}
	s.Timing = timing

	if err := s.Check(t); err != nil {
		return nil, err
	}
	return s, nil
}

// Check verifies resolved settings against t. An input whose edge carries an
// inhibiting signal must be a signal-inhibited inhibitor; any other input
// must be an activator, and one on an activating-signal edge must need its
// signal. Outputs must be reporters and no protein may sit on two ports.
// Signals on internal edges are allowed; the solver fills those edges from
// the usual pools.
func (s *Settings) Check(t *template.Template) error {
	if s.Template != t.ID {
		return Errorf(s.Name, "", ErrTemplateMismatch, "%s, template is %s", s.Template, t.ID)
	}
	if len(s.Inputs) != len(t.Inputs()) {
		return Errorf(s.Name, "", ErrCardinality, "%d inputs, template has %d", len(s.Inputs), len(t.Inputs()))
	}
	if len(s.Outputs) != len(t.Outputs()) {
		return Errorf(s.Name, "", ErrCardinality, "%d outputs, template has %d", len(s.Outputs), len(t.Outputs()))
	}

	used := make(map[string]string)
	check := func(b Binding, lookup func(string) (int, bool)) error {
		if e, ok := lookup(b.Port); !ok || e != b.Edge {
			return Errorf(s.Name, b.Port, ErrCardinality, "no such port on edge %d", b.Edge)
		}
		if b.Protein == nil {
			return Errorf(s.Name, b.Port, ErrUnknownProtein, "no protein")
		}
		if other, dup := used[b.Protein.Name]; dup {
			return Errorf(s.Name, b.Port, ErrSharedProtein, "%s also on %s", b.Protein.Name, other)
		}
		used[b.Protein.Name] = b.Port
		return nil
	}

	for _, b := range s.Inputs {
		if err := check(b, t.InputPort); err != nil {
			return err
		}
		if err := checkInput(s.Name, b.Port, b.Protein, t.Edge(b.Edge)); err != nil {
			return err
		}
	}
	for _, b := range s.Outputs {
		if err := check(b, t.OutputPort); err != nil {
			return err
		}
		if b.Protein.Role != biopart.RoleReporter {
			return Errorf(s.Name, b.Port, ErrRoleMismatch, "%s is a %s, want reporter", b.Protein.Name, b.Protein.Role)
		}
	}
	return nil
}

func checkInput(name, port string, p *biopart.Protein, e template.Edge) error {
	if e.Signal == template.SignalInhibiting {
		if p.Role != biopart.RoleInhibitor {
			return Errorf(name, port, ErrRoleMismatch, "%s is a %s, want inhibitor", p.Name, p.Role)
		}
		if !p.Inhibited() {
			return Errorf(name, port, ErrSignalResponse, "%s is not released by an inhibiting signal", p.Name)
		}
		return nil
	}
	if p.Role != biopart.RoleActivator {
		return Errorf(name, port, ErrRoleMismatch, "%s is a %s, want activator", p.Name, p.Role)
	}
	if e.Signal == template.SignalActivating && !p.Activated() {
		return Errorf(name, port, ErrSignalResponse, "%s does not need an activating signal", p.Name)
	}
	return nil
}

func (d *Document) checkCardinality(t *template.Template) error {
	check := func(kind string, ports []template.Port, bound map[string]string) error {
		ids := make([]string, len(ports))
		for i, p := range ports {
			ids[i] = p.ID
			if _, ok := bound[p.ID]; !ok {
				return Errorf(d.Name, p.ID, ErrCardinality, "%s port has no protein", kind)
			}
		}
		for _, id := range sortedKeys(bound) {
			if !slices.Contains(ids, id) {
				return Errorf(d.Name, id, ErrCardinality, "template %s has no %s port", t.ID, kind)
			}
		}
		return nil
	}
	if err := check("input", t.Inputs(), d.Inputs); err != nil {
		return err
	}
	return check("output", t.Outputs(), d.Outputs)
}

// InputProteins returns the input proteins in port order
func (s *Settings) InputProteins() []*biopart.Protein {
	ps := make([]*biopart.Protein, len(s.Inputs))
	for i, b := range s.Inputs {
		ps[i] = b.Protein
	}
	return ps
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
