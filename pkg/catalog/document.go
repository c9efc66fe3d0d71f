package catalog

import (
	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// Part documents are shared by the YAML store and the snapshot. References
// between parts are by name.

type signalDoc struct {
	Name       string `yaml:"name" json:"name" validate:"required,partname"`
	Inhibiting bool   `yaml:"inhibiting" json:"inhibiting"`
}

type proteinDoc struct {
	Name           string  `yaml:"name" json:"name" validate:"required,partname"`
	Role           string  `yaml:"role" json:"role" validate:"required,oneof=inhibitor activator subunit reporter"`
	KDeg           float64 `yaml:"k_deg" json:"k_deg" validate:"gte=0"`
	Subunit        string  `yaml:"subunit,omitempty" json:"subunit,omitempty" validate:"omitempty,partname"`
	KBind          float64 `yaml:"k_bind,omitempty" json:"k_bind,omitempty" validate:"gte=0"`
	KUnbind        float64 `yaml:"k_unbind,omitempty" json:"k_unbind,omitempty" validate:"gte=0"`
	Signal         string  `yaml:"signal,omitempty" json:"signal,omitempty" validate:"omitempty,partname"`
	KBindSignal    float64 `yaml:"k_bind_signal,omitempty" json:"k_bind_signal,omitempty" validate:"gte=0"`
	KUnbindSignal  float64 `yaml:"k_unbind_signal,omitempty" json:"k_unbind_signal,omitempty" validate:"gte=0"`
	KTranscription float64 `yaml:"k_transcription,omitempty" json:"k_transcription,omitempty" validate:"gte=0"`
}

type operatorDoc struct {
	TF        string  `yaml:"tf" json:"tf" validate:"required,partname"`
	KBindTF   float64 `yaml:"k_bind_tf" json:"k_bind_tf" validate:"gte=0"`
	KUnbindTF float64 `yaml:"k_unbind_tf" json:"k_unbind_tf" validate:"gte=0"`
}

type promoterDoc struct {
	Name           string        `yaml:"name" json:"name" validate:"required,partname"`
	KTranscription float64       `yaml:"k_transcription" json:"k_transcription" validate:"gte=0"`
	Operators      []operatorDoc `yaml:"operators,omitempty" json:"operators,omitempty" validate:"dive"`
}

type rbsDoc struct {
	Name         string  `yaml:"name" json:"name" validate:"required,partname"`
	KTranslation float64 `yaml:"k_translation" json:"k_translation" validate:"gte=0"`
}

type codingDoc struct {
	Name     string  `yaml:"name" json:"name" validate:"required,partname"`
	Protein  string  `yaml:"protein" json:"protein" validate:"required,partname"`
	KDegMRNA float64 `yaml:"k_deg_mrna" json:"k_deg_mrna" validate:"gte=0"`
}

type terminatorDoc struct {
	Name string `yaml:"name" json:"name" validate:"required,partname"`
}

type deviceDoc struct {
	Name string `yaml:"name" json:"name" validate:"required,partname"`
	Text string `yaml:"text" json:"text" validate:"required"`
}

// document is a whole catalog in dependency order
type document struct {
	Signals     []signalDoc     `yaml:"signals" json:"signals" validate:"dive"`
	Proteins    []proteinDoc    `yaml:"proteins" json:"proteins" validate:"dive"`
	Promoters   []promoterDoc   `yaml:"promoters" json:"promoters" validate:"dive"`
	RBSs        []rbsDoc        `yaml:"rbs" json:"rbs" validate:"dive"`
	Codings     []codingDoc     `yaml:"protein_coding" json:"protein_coding" validate:"dive"`
	Terminators []terminatorDoc `yaml:"terminators" json:"terminators" validate:"dive"`
	Devices     []deviceDoc     `yaml:"devices" json:"devices" validate:"dive"`
}

func (c *Catalog) document() *document {
	d := &document{}
	for _, s := range c.signals {
		d.Signals = append(d.Signals, signalDoc{Name: s.Name, Inhibiting: s.Inhibiting})
	}
	for _, p := range c.proteins {
		d.Proteins = append(d.Proteins, proteinToDoc(p))
	}
	for _, pm := range c.promoters {
		doc := promoterDoc{Name: pm.Name, KTranscription: pm.KTranscription}
		for _, o := range pm.Operators {
			doc.Operators = append(doc.Operators, operatorDoc{TF: o.TF.Name, KBindTF: o.KBindTF, KUnbindTF: o.KUnbindTF})
		}
		d.Promoters = append(d.Promoters, doc)
	}
	for _, r := range c.rbss {
		d.RBSs = append(d.RBSs, rbsDoc{Name: r.Name, KTranslation: r.KTranslation})
	}
	for _, pc := range c.codings {
		d.Codings = append(d.Codings, codingDoc{Name: pc.Name, Protein: pc.Protein.Name, KDegMRNA: pc.KDegMRNA})
	}
	for _, t := range c.terminators {
		d.Terminators = append(d.Terminators, terminatorDoc{Name: t.Name})
	}
	for _, dev := range c.devices {
		d.Devices = append(d.Devices, deviceDoc{Name: dev.Name, Text: dev.String()})
	}
	return d
}

func proteinToDoc(p *biopart.Protein) proteinDoc {
	doc := proteinDoc{
		Name:           p.Name,
		Role:           p.Role.String(),
		KDeg:           p.KDeg,
		KBind:          p.KBind,
		KUnbind:        p.KUnbind,
		KBindSignal:    p.KBindSignal,
		KUnbindSignal:  p.KUnbindSignal,
		KTranscription: p.KTranscription,
	}
	if p.Subunit != nil {
		doc.Subunit = p.Subunit.Name
	}
	if p.Signal != nil {
		doc.Signal = p.Signal.Name
	}
	return doc
}

// partIndex resolves names while a document is turned back into parts
type partIndex struct {
	signals     map[string]*biopart.Signal
	proteins    map[string]*biopart.Protein
	promoters   map[string]*biopart.Promoter
	rbss        map[string]*biopart.RBS
	codings     map[string]*biopart.ProteinCoding
	terminators map[string]*biopart.Terminator
}

func (x *partIndex) Promoter(name string) (*biopart.Promoter, bool) {
	p, ok := x.promoters[name]
	return p, ok
}

func (x *partIndex) RBS(name string) (*biopart.RBS, bool) {
	r, ok := x.rbss[name]
	return r, ok
}

func (x *partIndex) ProteinCoding(name string) (*biopart.ProteinCoding, bool) {
	pc, ok := x.codings[name]
	return pc, ok
}

func (x *partIndex) Terminator(name string) (*biopart.Terminator, bool) {
	t, ok := x.terminators[name]
	return t, ok
}

func (x *partIndex) Signal(name string) (*biopart.Signal, bool) {
	s, ok := x.signals[name]
	return s, ok
}

// build resolves references by name and hands the parts to a Builder. The
// first part with a given name wins resolution; the Builder reports the
// duplicate.
func (d *document) build(opts ...Option) (*Catalog, error) {
	b := NewBuilder(opts...)
	x := &partIndex{
		signals:     make(map[string]*biopart.Signal),
		proteins:    make(map[string]*biopart.Protein),
		promoters:   make(map[string]*biopart.Promoter),
		rbss:        make(map[string]*biopart.RBS),
		codings:     make(map[string]*biopart.ProteinCoding),
		terminators: make(map[string]*biopart.Terminator),
	}

	for _, doc := range d.Signals {
		s := &biopart.Signal{Name: doc.Name, Inhibiting: doc.Inhibiting}
		b.AddSignal(s)
		if _, ok := x.signals[s.Name]; !ok {
			x.signals[s.Name] = s
		}
	}

	proteins := make([]*biopart.Protein, len(d.Proteins))
	for i, doc := range d.Proteins {
		role, err := biopart.ParseRole(doc.Role)
		if err != nil {
			return nil, NewError("decode").Part(biopart.KindInhibitor, doc.Name).Causef(ErrInvalidPart, "%v", err).Err()
		}
		p := &biopart.Protein{
			Name:           doc.Name,
			Role:           role,
			KDeg:           doc.KDeg,
			KBind:          doc.KBind,
			KUnbind:        doc.KUnbind,
			KBindSignal:    doc.KBindSignal,
			KUnbindSignal:  doc.KUnbindSignal,
			KTranscription: doc.KTranscription,
		}
		if doc.Signal != "" {
			s, ok := x.signals[doc.Signal]
			if !ok {
				return nil, NewError("decode").Part(role.Kind(), doc.Name).Causef(ErrDanglingReference, "signal %s", doc.Signal).Err()
			}
			p.Signal = s
		}
		proteins[i] = p
		if _, ok := x.proteins[p.Name]; !ok {
			x.proteins[p.Name] = p
		}
	}
	for i, doc := range d.Proteins {
		if doc.Subunit == "" {
			continue
		}
		sub, ok := x.proteins[doc.Subunit]
		if !ok {
			return nil, NewError("decode").Part(proteins[i].Role.Kind(), doc.Name).Causef(ErrDanglingReference, "subunit %s", doc.Subunit).Err()
		}
		proteins[i].Subunit = sub
	}
	b.AddProtein(proteins...)

	for _, doc := range d.Promoters {
		pm := &biopart.Promoter{Name: doc.Name, KTranscription: doc.KTranscription}
		for _, od := range doc.Operators {
			tf, ok := x.proteins[od.TF]
			if !ok {
				return nil, NewError("decode").Part(biopart.KindPromoter, doc.Name).Causef(ErrDanglingReference, "TF %s", od.TF).Err()
			}
			pm.Operators = append(pm.Operators, biopart.Operator{TF: tf, KBindTF: od.KBindTF, KUnbindTF: od.KUnbindTF})
		}
		b.AddPromoter(pm)
		if _, ok := x.promoters[pm.Name]; !ok {
			x.promoters[pm.Name] = pm
		}
	}

	for _, doc := range d.RBSs {
		r := &biopart.RBS{Name: doc.Name, KTranslation: doc.KTranslation}
		b.AddRBS(r)
		if _, ok := x.rbss[r.Name]; !ok {
			x.rbss[r.Name] = r
		}
	}

	for _, doc := range d.Codings {
		p, ok := x.proteins[doc.Protein]
		if !ok {
			return nil, NewError("decode").Part(biopart.KindProteinCoding, doc.Name).Causef(ErrDanglingReference, "protein %s", doc.Protein).Err()
		}
		pc := &biopart.ProteinCoding{Name: doc.Name, Protein: p, KDegMRNA: doc.KDegMRNA}
		b.AddProteinCoding(pc)
		if _, ok := x.codings[pc.Name]; !ok {
			x.codings[pc.Name] = pc
		}
	}

	for _, doc := range d.Terminators {
		t := &biopart.Terminator{Name: doc.Name}
		b.AddTerminator(t)
		if _, ok := x.terminators[t.Name]; !ok {
			x.terminators[t.Name] = t
		}
	}

	for _, doc := range d.Devices {
		dev, err := biopart.ParseDevice(doc.Text, x)
		if err != nil {
			return nil, NewError("decode").Part(biopart.KindDevice, doc.Name).Cause(err).Err()
		}
		dev.Name = doc.Name
		b.AddDevice(dev)
	}

	return b.Build()
}
