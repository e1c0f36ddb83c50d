// Package store loads and saves the console document as one JSON value under a fixed key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/hrconsole/internal"
	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/storage"
)

// ErrCorruptDocument marks a stored value that is not a JSON object of the expected shape.
var ErrCorruptDocument = errors.New("stored document is corrupt")

// Loaded is the result of Load. Warning is set when the stored value could not be used and the
// defaults were returned in its place.
type Loaded struct {
	Document *document.Document
	Warning  error
}

type Store struct {
	kv      storage.KeyValue
	key     string
	timeout time.Duration
	logger  *slog.Logger
}

func New(kv storage.KeyValue, key string, timeout time.Duration, logger *slog.Logger) *Store {
	if key == "" {
		key = internal.DefaultStorageKey
	}
	return &Store{kv: kv, key: key, timeout: timeout, logger: logger}
}

func (s *Store) Key() string {
	return s.key
}

// Load never fails: a missing key yields the defaults, an unusable one yields the defaults and a
// warning.
func (s *Store) Load(ctx context.Context) Loaded {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, found, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return s.fallback(fmt.Errorf("read %q: %w", s.key, err))
	}
	if !found {
		s.logger.Debug("no stored document, using defaults", "key", s.key)
		return Loaded{Document: document.Default()}
	}

	doc, err := Decode([]byte(raw))
	if err != nil {
		return s.fallback(err)
	}

	s.logger.Debug("document loaded",
		"key", s.key,
		"accounts", len(doc.Accounts),
		"employees", len(doc.Employees),
		"departments", len(doc.Departments),
		"requests", len(doc.Requests))
	return Loaded{Document: doc}
}

func (s *Store) fallback(warning error) Loaded {
	s.logger.Warn("stored document unusable, falling back to defaults", "key", s.key, "error", warning)
	return Loaded{Document: document.Default(), Warning: warning}
}

// Save replaces the stored value with the whole document.
func (s *Store) Save(ctx context.Context, doc *document.Document) error {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.kv.SetItem(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to save document", "key", s.key, "error", err)
		return fmt.Errorf("write %q: %w", s.key, err)
	}
	return nil
}

// Encode serializes doc with empty collections as [].
func Encode(doc *document.Document) ([]byte, error) {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode merges the stored object over the defaults one level deep: each top-level key present in
// the stored object replaces the default value wholesale, absent keys keep the default and unknown
// keys are dropped.
func Decode(data []byte) (*document.Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrCorruptDocument)
	}

	doc := document.Default()
	fields := map[string]any{
		"currentUserId": &doc.CurrentUserID,
		"accounts":      &doc.Accounts,
		"employees":     &doc.Employees,
		"departments":   &doc.Departments,
		"requests":      &doc.Requests,
	}
	for name, target := range fields {
		raw, ok := top[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrCorruptDocument, name, err)
		}
	}
	doc.Normalize()
	return doc, nil
}
