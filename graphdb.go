// Package graphdb is the embedded, in-process property-graph database's
// top-level façade: construct a DB, run Cypher-subset queries against
// it, and persist it to durable storage. It plays the same role this
// lineage's top-level package played for its probabilistic graph model —
// New/Load/Save/Query — generalised to a property graph and a real query
// language.
package graphdb

import (
	"context"
	"io"

	"github.com/ritamzico/graphdb/internal/engine"
	"github.com/ritamzico/graphdb/internal/result"
	"github.com/ritamzico/graphdb/internal/snapshot"
	"github.com/ritamzico/graphdb/internal/store"
	"github.com/ritamzico/graphdb/internal/txn"
)

// Result is the outcome of a single query: its column names and rows.
type Result = result.Set

// DB is an embedded graph database instance: one Store plus the engine
// that parses and runs queries against it.
type DB struct {
	Store  *store.Store
	engine *engine.Engine
}

// New returns an empty DB.
func New() *DB {
	s := store.New()
	return &DB{Store: s, engine: engine.New(s)}
}

func fromStore(s *store.Store) *DB {
	return &DB{Store: s, engine: engine.New(s)}
}

// Load reads a binary (gob) snapshot from r into a new DB.
func Load(r io.Reader) (*DB, error) {
	s := store.New()
	if err := snapshot.ReadBinary(r, s); err != nil {
		return nil, err
	}
	return fromStore(s), nil
}

// LoadFile reads a binary snapshot file into a new DB.
func LoadFile(path string) (*DB, error) {
	s := store.New()
	if err := snapshot.LoadBinaryFile(path, s); err != nil {
		return nil, err
	}
	return fromStore(s), nil
}

// LoadText reads a YAML text snapshot from r into a new DB.
func LoadText(r io.Reader) (*DB, error) {
	s := store.New()
	if err := snapshot.ReadText(r, s); err != nil {
		return nil, err
	}
	return fromStore(s), nil
}

// LoadTextFile reads a YAML text snapshot file into a new DB.
func LoadTextFile(path string) (*DB, error) {
	s := store.New()
	if err := snapshot.LoadTextFile(path, s); err != nil {
		return nil, err
	}
	return fromStore(s), nil
}

// Query parses and executes a single query string.
func (db *DB) Query(query string) (*Result, error) {
	return db.engine.Execute(query)
}

// QueryContext is Query with caller-supplied cancellation.
func (db *DB) QueryContext(ctx context.Context, query string) (*Result, error) {
	return db.engine.ExecuteWithContext(ctx, query)
}

// Save writes the DB as a binary (gob) snapshot to w.
func (db *DB) Save(w io.Writer) error {
	return snapshot.WriteBinary(w, db.Store)
}

// SaveFile writes the DB as a binary snapshot file.
func (db *DB) SaveFile(path string) error {
	return snapshot.SaveBinaryFile(path, db.Store)
}

// SaveText writes the DB as a YAML text snapshot to w.
func (db *DB) SaveText(w io.Writer) error {
	return snapshot.WriteText(w, db.Store)
}

// SaveTextFile writes the DB as a YAML text snapshot file.
func (db *DB) SaveTextFile(path string) error {
	return snapshot.SaveTextFile(path, db.Store)
}

// Transaction runs fn inside a scoped transaction (spec §4.2): fn's
// queries run directly against db, and on error (or panic) every
// mutation fn made is rolled back.
func (db *DB) Transaction(fn func() error) error {
	return txn.WithTransaction(db.Store, func(*txn.Tx) error {
		return fn()
	})
}
