/*
store.go - Persistence interface for the catalog

PURPOSE:
  Defines the interface between the catalog and its durable store. The
  engine never touches a Store; it consumes loaded Catalog snapshots.
  Administrative surfaces load, mutate a clone, save, then swap the
  active snapshot.

ROUND-TRIP CONTRACT:
  Save persists the full occupation list plus the two defaults
  verbatim. Implementations that share their file or tables with other
  tooling must preserve unknown fields administrators added out-of-band
  (see store/jsonfile).

IMPLEMENTATIONS:
  - store/jsonfile: config-file store, preserves foreign top-level keys
  - store/sqlite:   relational store for server deployments
  - catalog/store:  in-memory store for tests

SEE ALSO:
  - catalog.go: The mutations whose results get saved
*/
package catalog

import "context"

// Store loads and saves the full catalog. Load on an empty store
// returns an empty catalog with the shipped defaults, not an error.
type Store interface {
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, c *Catalog) error
}
