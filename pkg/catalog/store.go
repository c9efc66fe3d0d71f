package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/validation"
)

const partExt = ".yaml"

// PartPath returns where the YAML store keeps a part: <root>/<kind dir>/<name>.yaml
func PartPath(root string, kind biopart.Kind, name string) string {
	return filepath.Join(root, kind.Dir(), name+partExt)
}

// Save writes every part of c as one YAML file under root
func Save(c *Catalog, root string) error {
	d := c.document()

	write := func(kind biopart.Kind, name string, v any) error {
		path := PartPath(root, kind, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return NewError("save").Part(kind, name).Path(path).Cause(err).Err()
		}
		data, err := yaml.Marshal(v)
		if err != nil {
			return NewError("save").Part(kind, name).Cause(err).Err()
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return NewError("save").Part(kind, name).Path(path).Cause(err).Err()
		}
		return nil
	}

	for _, s := range d.Signals {
		if err := write(biopart.KindSignal, s.Name, s); err != nil {
			return err
		}
	}
	for _, p := range d.Proteins {
		role, _ := biopart.ParseRole(p.Role)
		if err := write(role.Kind(), p.Name, p); err != nil {
			return err
		}
	}
	for _, pm := range d.Promoters {
		if err := write(biopart.KindPromoter, pm.Name, pm); err != nil {
			return err
		}
	}
	for _, r := range d.RBSs {
		if err := write(biopart.KindRBS, r.Name, r); err != nil {
			return err
		}
	}
	for _, pc := range d.Codings {
		if err := write(biopart.KindProteinCoding, pc.Name, pc); err != nil {
			return err
		}
	}
	for _, t := range d.Terminators {
		if err := write(biopart.KindTerminator, t.Name, t); err != nil {
			return err
		}
	}
	for _, dev := range d.Devices {
		if err := write(biopart.KindDevice, dev.Name, dev); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a catalog written by Save. Kind directories that do not exist
// are treated as empty. Within a kind, parts load in file-name order.
func Load(root string, opts ...Option) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, NewError("load").Path(root).Cause(err).Err()
	}
	if !info.IsDir() {
		return nil, NewError("load").Path(root).Cause(errors.New("not a directory")).Err()
	}

	d := &document{}
	for _, kind := range biopart.Kinds() {
		if err := loadKind(root, kind, d); err != nil {
			return nil, err
		}
	}
	return d.build(opts...)
}

func loadKind(root string, kind biopart.Kind, d *document) error {
	dir := filepath.Join(root, kind.Dir())
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return NewError("load").Path(dir).Cause(err).Err()
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), partExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		name := strings.TrimSuffix(e.Name(), partExt)

		switch kind {
		case biopart.KindSignal:
			doc, err := readPart[signalDoc](path, kind, name)
			if err != nil {
				return err
			}
			d.Signals = append(d.Signals, doc)
		case biopart.KindInhibitor, biopart.KindActivator, biopart.KindSubunit, biopart.KindReporter:
			doc, err := readPart[proteinDoc](path, kind, name)
			if err != nil {
				return err
			}
			if doc.Role != roleOf(kind) {
				return NewError("load").Part(kind, name).Path(path).Causef(ErrInvalidPart, "role %s stored under %s", doc.Role, kind.Dir()).Err()
			}
			d.Proteins = append(d.Proteins, doc)
		case biopart.KindPromoter:
			doc, err := readPart[promoterDoc](path, kind, name)
			if err != nil {
				return err
			}
			d.Promoters = append(d.Promoters, doc)
		case biopart.KindRBS:
			doc, err := readPart[rbsDoc](path, kind, name)
			if err != nil {
				return err
			}
			d.RBSs = append(d.RBSs, doc)
		case biopart.KindProteinCoding:
			doc, err := readPart[codingDoc](path, kind, name)
			if err != nil {
				return err
			}
			d.Codings = append(d.Codings, doc)
		case biopart.KindTerminator:
			doc, err := readPart[terminatorDoc](path, kind, name)
			if err != nil {
				return err
			}
			d.Terminators = append(d.Terminators, doc)
		case biopart.KindDevice:
			doc, err := readPart[deviceDoc](path, kind, name)
			if err != nil {
				return err
			}
			d.Devices = append(d.Devices, doc)
		}
	}
	return nil
}

func roleOf(kind biopart.Kind) string {
	for _, r := range []biopart.Role{biopart.RoleInhibitor, biopart.RoleActivator, biopart.RoleSubunit, biopart.RoleReporter} {
		if r.Kind() == kind {
			return r.String()
		}
	}
	return ""
}

// readPart decodes one YAML part file. Unknown fields are rejected and the
// part name must match the file name.
func readPart[T any](path string, kind biopart.Kind, name string) (T, error) {
	var doc T
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, NewError("load").Part(kind, name).Path(path).Cause(err).Err()
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return doc, NewError("load").Part(kind, name).Path(path).Causef(ErrInvalidPart, "%v", err).Err()
	}
	if err := validation.Struct(&doc); err != nil {
		return doc, NewError("load").Part(kind, name).Path(path).Causef(ErrInvalidPart, "%v", err).Err()
	}
	if got := partName(doc); got != name {
		return doc, NewError("load").Part(kind, name).Path(path).Causef(ErrInvalidPart, "file holds part %q", got).Err()
	}
	return doc, nil
}

func partName(doc any) string {
	switch d := doc.(type) {
	case signalDoc:
		return d.Name
	case proteinDoc:
		return d.Name
	case promoterDoc:
		return d.Name
	case rbsDoc:
		return d.Name
	case codingDoc:
		return d.Name
	case terminatorDoc:
		return d.Name
	case deviceDoc:
		return d.Name
	}
	return fmt.Sprint(doc)
}
