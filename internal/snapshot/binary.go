package snapshot

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/ritamzico/graphdb/internal/store"
)

// WriteBinary gob-encodes s's full contents to w.
func WriteBinary(w io.Writer, s *store.Store) error {
	return gob.NewEncoder(w).Encode(toDocument(s))
}

// ReadBinary decodes a gob-encoded snapshot from r and loads it into s,
// replacing s's existing contents.
func ReadBinary(r io.Reader, s *store.Store) error {
	var doc document
	if err := gob.NewDecoder(r).Decode(&doc); err != nil {
		return err
	}
	doc.restore(s)
	return nil
}

// SaveBinaryFile writes s to path as a gob-encoded snapshot.
func SaveBinaryFile(path string, s *store.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteBinary(f, s)
}

// LoadBinaryFile reads a gob-encoded snapshot from path into s.
func LoadBinaryFile(path string, s *store.Store) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReadBinary(f, s)
}
