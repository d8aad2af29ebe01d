package snapshot

import (
	"io"
	"os"

	"github.com/ritamzico/graphdb/internal/store"
	"gopkg.in/yaml.v3"
)

// WriteText YAML-encodes s's full contents to w, for the
// human-inspectable persistence form (spec §6).
func WriteText(w io.Writer, s *store.Store) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(toDocument(s))
}

// ReadText decodes a YAML-encoded snapshot from r and loads it into s.
func ReadText(r io.Reader, s *store.Store) error {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return err
	}
	doc.restore(s)
	return nil
}

// SaveTextFile writes s to path as YAML.
func SaveTextFile(path string, s *store.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteText(f, s)
}

// LoadTextFile reads a YAML-encoded snapshot from path into s.
func LoadTextFile(path string, s *store.Store) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReadText(f, s)
}
