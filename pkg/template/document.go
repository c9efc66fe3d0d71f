package template

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-genenet/pkg/validation"
)

// Document is the YAML source form of one template
type Document struct {
	ID          string          `yaml:"id" json:"id" validate:"required,partname"`
	Subnetworks []SubnetworkDoc `yaml:"subnetworks,omitempty" json:"subnetworks,omitempty" validate:"dive"`
	Connections []ConnectionDoc `yaml:"connections,omitempty" json:"connections,omitempty" validate:"dive"`
	Vertices    []VertexDoc     `yaml:"vertices,omitempty" json:"vertices,omitempty" validate:"dive"`
	Edges       []EdgeDoc       `yaml:"edges,omitempty" json:"edges,omitempty" validate:"dive"`
	Inputs      []PortDoc       `yaml:"inputs,omitempty" json:"inputs,omitempty" validate:"dive"`
	Outputs     []PortDoc       `yaml:"outputs,omitempty" json:"outputs,omitempty" validate:"dive"`
}

// SubnetworkDoc instantiates another template under a local id
type SubnetworkDoc struct {
	ID       string `yaml:"id" json:"id" validate:"required,partname"`
	Template string `yaml:"template" json:"template" validate:"required,partname"`
}

// PortRefDoc names a port of a subnetwork
type PortRefDoc struct {
	Network string `yaml:"network" json:"network" validate:"required,partname"`
	Port    string `yaml:"port" json:"port" validate:"required,partname"`
}

// ConnectionDoc joins subnetwork output ports to subnetwork input ports
type ConnectionDoc struct {
	ID   string       `yaml:"id" json:"id" validate:"required,partname"`
	From []PortRefDoc `yaml:"from" json:"from" validate:"min=1,dive"`
	To   []PortRefDoc `yaml:"to" json:"to" validate:"min=1,dive"`
}

type VertexDoc struct {
	ID string `yaml:"id" json:"id" validate:"required,partname"`
}

type EdgeDoc struct {
	ID     string   `yaml:"id" json:"id" validate:"required,partname"`
	Type   string   `yaml:"type,omitempty" json:"type,omitempty" validate:"edgetype"`
	Signal string   `yaml:"signal,omitempty" json:"signal,omitempty" validate:"edgesignal"`
	From   []string `yaml:"from,omitempty" json:"from,omitempty" validate:"dive,partname"`
	To     []string `yaml:"to,omitempty" json:"to,omitempty" validate:"dive,partname"`
}

// PortDoc exports either a local edge or a subnetwork port
type PortDoc struct {
	ID      string `yaml:"id" json:"id" validate:"required,partname"`
	Edge    string `yaml:"edge,omitempty" json:"edge,omitempty" validate:"omitempty,partname"`
	Network string `yaml:"network,omitempty" json:"network,omitempty" validate:"omitempty,partname"`
	Port    string `yaml:"port,omitempty" json:"port,omitempty" validate:"required_with=Network,omitempty,partname"`
}

// ParseDocument decodes and validates one template document. Unknown fields
// are rejected.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, malformed(doc.ID, "", ErrInvalidDocument, err.Error())
	}
	if err := validation.Struct(&doc); err != nil {
		return nil, malformed(doc.ID, "", ErrInvalidDocument, err.Error())
	}
	return &doc, nil
}

// Marshal encodes the document as YAML
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
