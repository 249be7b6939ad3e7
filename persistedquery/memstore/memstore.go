// Package memstore is an in-memory persistedquery.Store, suitable for tests
// and examples. Registered queries are serialized to bytes with msgpack, the
// way the teacher corpus encodes opaque cursor tokens, rather than kept as
// live AST pointers, so a memstore round-trips the same way a real
// network-backed store would.
package memstore

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/nilsbr/gqlcore/parser"
	"github.com/nilsbr/gqlcore/persistedquery"
	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/validator"
)

// record is what's actually kept per id: the raw query text, msgpack-encoded
// so that Store behaves like a real out-of-process persisted-query backend
// rather than just handing back a shared *ast.Document.
type record struct {
	Query string `msgpack:"query"`
}

// Store is a concurrency-safe, in-memory persistedquery.Store. Queries are
// parsed lazily, on each Lookup, which does not validate them;
// LookupWithSchema also validates against the schema passed to it.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: map[string][]byte{}}
}

// Register associates id with query, overwriting any existing registration.
func (s *Store) Register(id, query string) error {
	b, err := msgpack.Marshal(&record{Query: query})
	if err != nil {
		return errors.Wrap(err, "error encoding persisted query record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = map[string][]byte{}
	}
	s.records[id] = b
	return nil
}

// Lookup implements persistedquery.Store.
func (s *Store) Lookup(ctx context.Context, id string) (persistedquery.LookupResult, error) {
	s.mu.RLock()
	b, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return persistedquery.LookupResult{Kind: persistedquery.Unknown}, nil
	}

	var rec record
	if err := msgpack.Unmarshal(b, &rec); err != nil {
		return persistedquery.LookupResult{}, errors.Wrap(err, "error decoding persisted query record")
	}

	doc, parseErrs := parser.ParseDocument([]byte(rec.Query))
	if len(parseErrs) > 0 {
		return persistedquery.LookupResult{Kind: persistedquery.ParseError, ParseErr: parseErrs[0]}, nil
	}

	return persistedquery.LookupResult{Kind: persistedquery.Result, Document: doc}, nil
}

// LookupWithSchema behaves like Lookup, but also validates the parsed
// document against s, returning ValidateErrors if validation fails. It's
// separate from Lookup because validation requires a schema and features,
// which aren't part of the persistedquery.Store interface.
func (s *Store) LookupWithSchema(ctx context.Context, id string, sch *schema.Schema, features schema.FeatureSet) (persistedquery.LookupResult, error) {
	result, err := s.Lookup(ctx, id)
	if err != nil || result.Kind != persistedquery.Result {
		return result, err
	}
	if errs := validator.ValidateDocument(result.Document, sch, features); len(errs) > 0 {
		return persistedquery.LookupResult{Kind: persistedquery.ValidateErrors, ValidateErrs: errs}, nil
	}
	result.Schema = sch
	return result, nil
}
