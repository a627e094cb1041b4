/*
Package jsonfile provides the config-file implementation of catalog.Store.

PURPOSE:
  Administrators historically maintain the catalog in a config.json
  they sometimes edit by hand, and other tooling parks its own keys in
  the same file. This store reads and writes the catalog document
  inside that file while leaving every foreign top-level key exactly as
  it found it.

FILE SHAPE:
  {
    "app_settings": { ... },          <- untouched, whatever it holds
    "occupations": [ ... ],           <- owned by this store
    "default_occupation": "MOZO",     <- owned
    "default_local_group": "OTHER"    <- owned
  }

MISSING FILE:
  Load on a missing file returns an empty catalog with the shipped
  defaults; the file is created on first Save.

SEE ALSO:
  - factory: The catalog document schema
  - store/sqlite: The relational alternative
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
	"github.com/warp/uniform-engine/factory"
)

// Store persists the catalog inside a shared JSON config file.
type Store struct {
	path    string
	factory *factory.CatalogFactory
	log     logrus.FieldLogger
	mu      sync.Mutex
}

func New(path string, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		path:    path,
		factory: factory.NewCatalogFactory(log),
		log:     log,
	}
}

// Load reads the catalog document out of the config file.
func (s *Store) Load(_ context.Context) (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readFile()
	if err != nil {
		return nil, err
	}

	var doc factory.CatalogJSON
	merged, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode config: %w", err)
	}
	if err := json.Unmarshal(merged, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog document in %s: %w", s.path, err)
	}
	return s.factory.Parse(doc), nil
}

// Save writes the catalog document back, preserving foreign keys.
func (s *Store) Save(_ context.Context, c *catalog.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readFile()
	if err != nil {
		return err
	}

	doc := s.factory.Render(c)
	for key, value := range map[string]any{
		"occupations":         doc.Occupations,
		"default_occupation":  doc.DefaultOccupation,
		"default_local_group": doc.DefaultLocalGroup,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		raw[key] = json.RawMessage(encoded)
	}

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// readFile returns the decoded top-level object, empty when the file
// does not exist yet.
func (s *Store) readFile() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	raw := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.path, err)
		}
	}
	return raw, nil
}

var _ catalog.Store = (*Store)(nil)
