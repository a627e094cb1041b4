/*
Package sqlite provides a SQLite-backed implementation of catalog.Store.

PURPOSE:
  Server deployments keep the catalog in a database instead of a shared
  config file. The same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  occupations:     One row per occupation, synonyms as a JSON array
  garments:        One row per garment, spec as a JSON document
                   (the same fragment the config-file format uses)
  catalog_defaults: default_occupation / default_local_group

CASCADE:
  garments.occupation_name references occupations(name) ON DELETE
  CASCADE, so deleting an occupation also removes its garments - the
  only destructive path the data model allows.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block
  and crash recovery improves.

USAGE:
  store, err := sqlite.New("./data/catalog.db", log)
  cat, err := store.Load(ctx)

SEE ALSO:
  - catalog/store.go: Interface definition
  - store/jsonfile:   Config-file implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
	"github.com/warp/uniform-engine/factory"
)

// Store implements catalog.Store using SQLite.
type Store struct {
	db      *sql.DB
	factory *factory.CatalogFactory
	log     logrus.FieldLogger
}

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, factory: factory.NewCatalogFactory(log), log: log}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS occupations (
		name TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		synonyms_json TEXT NOT NULL DEFAULT '[]',
		is_active INTEGER NOT NULL DEFAULT 1,
		description TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS garments (
		occupation_name TEXT NOT NULL
			REFERENCES occupations(name) ON DELETE CASCADE,
		prenda_type TEXT NOT NULL,
		spec_json TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (occupation_name, prenda_type)
	);

	CREATE INDEX IF NOT EXISTS idx_garments_occupation
		ON garments(occupation_name, position);

	CREATE TABLE IF NOT EXISTS catalog_defaults (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the full catalog.
func (s *Store) Load(ctx context.Context) (*catalog.Catalog, error) {
	doc := factory.CatalogJSON{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, display_name, synonyms_json, is_active, description
		FROM occupations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load occupations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var occ factory.OccupationJSON
		var synonymsJSON string
		var active bool
		if err := rows.Scan(&occ.Name, &occ.DisplayName, &synonymsJSON, &active, &occ.Description); err != nil {
			return nil, fmt.Errorf("scan occupation: %w", err)
		}
		occ.IsActive = &active
		if err := json.Unmarshal([]byte(synonymsJSON), &occ.Synonyms); err != nil {
			return nil, fmt.Errorf("decode synonyms for %s: %w", occ.Name, err)
		}
		if occ.Prendas, err = s.loadGarments(ctx, occ.Name); err != nil {
			return nil, err
		}
		doc.Occupations = append(doc.Occupations, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load occupations: %w", err)
	}

	doc.DefaultOccupation, err = s.loadDefault(ctx, "default_occupation")
	if err != nil {
		return nil, err
	}
	doc.DefaultLocalGroup, err = s.loadDefault(ctx, "default_local_group")
	if err != nil {
		return nil, err
	}

	return s.factory.Parse(doc), nil
}

func (s *Store) loadGarments(ctx context.Context, occupation string) ([]factory.GarmentJSON, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spec_json FROM garments
		WHERE occupation_name = ? ORDER BY position`, occupation)
	if err != nil {
		return nil, fmt.Errorf("load garments for %s: %w", occupation, err)
	}
	defer rows.Close()

	var specs []factory.GarmentJSON
	for rows.Next() {
		var specJSON string
		if err := rows.Scan(&specJSON); err != nil {
			return nil, fmt.Errorf("scan garment for %s: %w", occupation, err)
		}
		var spec factory.GarmentJSON
		if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
			return nil, fmt.Errorf("decode garment for %s: %w", occupation, err)
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

func (s *Store) loadDefault(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM catalog_defaults WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load default %s: %w", key, err)
	}
	return value, nil
}

// Save replaces the stored catalog with c, atomically.
func (s *Store) Save(ctx context.Context, c *catalog.Catalog) error {
	doc := s.factory.Render(c)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	// Full replace: occupations cascade to garments.
	if _, err := tx.ExecContext(ctx, `DELETE FROM occupations`); err != nil {
		return fmt.Errorf("clear occupations: %w", err)
	}

	for i, occ := range doc.Occupations {
		synonyms, err := json.Marshal(occ.Synonyms)
		if err != nil {
			return fmt.Errorf("encode synonyms for %s: %w", occ.Name, err)
		}
		active := occ.IsActive == nil || *occ.IsActive
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO occupations (name, display_name, synonyms_json, is_active, description, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			occ.Name, occ.DisplayName, string(synonyms), active, occ.Description, i); err != nil {
			return fmt.Errorf("insert occupation %s: %w", occ.Name, err)
		}

		for j, g := range occ.Prendas {
			spec, err := json.Marshal(g)
			if err != nil {
				return fmt.Errorf("encode garment %s/%s: %w", occ.Name, g.PrendaType, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO garments (occupation_name, prenda_type, spec_json, position)
				VALUES (?, ?, ?, ?)`,
				occ.Name, g.PrendaType, string(spec), j); err != nil {
				return fmt.Errorf("insert garment %s/%s: %w", occ.Name, g.PrendaType, err)
			}
		}
	}

	for key, value := range map[string]string{
		"default_occupation":  doc.DefaultOccupation,
		"default_local_group": doc.DefaultLocalGroup,
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_defaults (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("save default %s: %w", key, err)
		}
	}

	return tx.Commit()
}

var _ catalog.Store = (*Store)(nil)
