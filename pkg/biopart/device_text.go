package biopart

import (
	"strings"
)

// Resolver looks parts up by name. The catalog implements it.
type Resolver interface {
	Promoter(name string) (*Promoter, bool)
	RBS(name string) (*RBS, bool)
	ProteinCoding(name string) (*ProteinCoding, bool)
	Terminator(name string) (*Terminator, bool)
	Signal(name string) (*Signal, bool)
}

// String returns the single-line form |name[(pm,rbs,pc,t);...],{s1,s2}|
func (d *Device) String() string {
	var sb strings.Builder
	sb.WriteString("|")
	sb.WriteString(d.Name)
	sb.WriteString("[")
	for i, g := range d.Generators {
		if i > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(g.String())
	}
	sb.WriteString("],{")
	for i, s := range d.Signals {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(s.Name)
	}
	sb.WriteString("}|")
	return sb.String()
}

// ParseDevice reads the single-line device form, resolving part names
// through r. Whitespace around names is ignored.
func ParseDevice(text string, r Resolver) (*Device, error) {
	s := strings.TrimSpace(text)
	malformed := func(reason string) error {
		return &ParseError{Input: text, Reason: reason, Cause: ErrMalformedDevice}
	}

	if len(s) < 2 || s[0] != '|' || s[len(s)-1] != '|' {
		return nil, malformed("missing '|' delimiters")
	}
	s = s[1 : len(s)-1]

	open := strings.IndexByte(s, '[')
	closing := strings.LastIndexByte(s, ']')
	if open < 0 || closing < open {
		return nil, malformed("missing generator list")
	}
	name := strings.TrimSpace(s[:open])
	if name == "" {
		return nil, malformed("missing device name")
	}

	var gens []ProteinGenerator
	if body := strings.TrimSpace(s[open+1 : closing]); body != "" {
		for _, item := range strings.Split(body, ";") {
			g, err := parseGenerator(strings.TrimSpace(item), r, text)
			if err != nil {
				return nil, err
			}
			gens = append(gens, g)
		}
	}

	rest := strings.TrimSpace(s[closing+1:])
	if !strings.HasPrefix(rest, ",") {
		return nil, malformed("missing signal set")
	}
	rest = strings.TrimSpace(rest[1:])
	if len(rest) < 2 || rest[0] != '{' || rest[len(rest)-1] != '}' {
		return nil, malformed("signal set must be enclosed in braces")
	}

	var signals []*Signal
	for _, sn := range strings.Split(rest[1:len(rest)-1], ",") {
		sn = strings.TrimSpace(sn)
		if sn == "" {
			continue
		}
		sig, ok := r.Signal(sn)
		if !ok {
			return nil, unknownPart(text, KindSignal, sn)
		}
		signals = append(signals, sig)
	}

	return NewDevice(name, gens, signals), nil
}

func parseGenerator(item string, r Resolver, text string) (ProteinGenerator, error) {
	if len(item) < 2 || item[0] != '(' || item[len(item)-1] != ')' {
		return ProteinGenerator{}, &ParseError{Input: text, Reason: "generator " + item + " must be enclosed in parentheses", Cause: ErrMalformedDevice}
	}
	parts := strings.Split(item[1:len(item)-1], ",")
	if len(parts) != 4 {
		return ProteinGenerator{}, &ParseError{Input: text, Reason: "generator " + item + " must list four parts", Cause: ErrMalformedDevice}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var g ProteinGenerator
	var ok bool
	if g.Promoter, ok = r.Promoter(parts[0]); !ok {
		return g, unknownPart(text, KindPromoter, parts[0])
	}
	if g.RBS, ok = r.RBS(parts[1]); !ok {
		return g, unknownPart(text, KindRBS, parts[1])
	}
	if g.Coding, ok = r.ProteinCoding(parts[2]); !ok {
		return g, unknownPart(text, KindProteinCoding, parts[2])
	}
	if g.Terminator, ok = r.Terminator(parts[3]); !ok {
		return g, unknownPart(text, KindTerminator, parts[3])
	}
	return g, nil
}

func unknownPart(text string, kind Kind, name string) error {
	return &ParseError{Input: text, Kind: kind, Name: name, Cause: ErrUnknownPart}
}
