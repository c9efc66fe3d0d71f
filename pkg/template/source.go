package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source resolves template ids to documents
type Source interface {
	Document(id string) (*Document, error)
}

// DirSource reads <Dir>/<id>.yaml
type DirSource struct {
	Dir string
}

func (s DirSource) Document(id string) (*Document, error) {
	path := filepath.Join(s.Dir, id+".yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, malformed(id, "", ErrUnknownTemplate, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", id, err)
	}
	return checkID(id, data)
}

// MapSource holds YAML documents in memory, keyed by template id
type MapSource map[string]string

func (s MapSource) Document(id string) (*Document, error) {
	data, ok := s[id]
	if !ok {
		return nil, malformed(id, "", ErrUnknownTemplate, "")
	}
	return checkID(id, []byte(data))
}

func checkID(id string, data []byte) (*Document, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	if doc.ID != id {
		return nil, malformed(id, doc.ID, ErrInvalidDocument, "document id does not match")
	}
	return doc, nil
}
