package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/uniform-engine/catalog"
	"github.com/warp/uniform-engine/store/jsonfile"
)

func newTestStore(t *testing.T) (*jsonfile.Store, string) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	path := filepath.Join(t.TempDir(), "config.json")
	return jsonfile.New(path, log), path
}

func TestLoad_MissingFile(t *testing.T) {
	// A missing file is not an error: the catalog is empty and carries
	// the shipped defaults.
	store, _ := newTestStore(t)

	cat, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Occupations)
	assert.Equal(t, "MOZO", cat.DefaultOccupation)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	// GIVEN: The preset catalog saved to a fresh file
	// WHEN: Loading it back
	// THEN: Names, synonyms, and prices survive

	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, catalog.DefaultCatalog()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, len(catalog.DefaultCatalog().Occupations), len(loaded.Occupations))

	mozo, ok := loaded.Lookup("MESERO")
	require.True(t, ok, "synonyms must survive the round trip")
	assert.Equal(t, "MOZO", mozo.Name)

	camisa, ok := mozo.Garment("CAMISA")
	require.True(t, ok)
	assert.True(t, camisa.IsPrimary)
	assert.True(t, camisa.Prices.Get(catalog.SizeSML, catalog.LocationOther).
		Equal(decimal.RequireFromString("18.5")))
}

func TestSave_PreservesForeignKeys(t *testing.T) {
	// GIVEN: A config file where other tooling keeps its own settings
	// WHEN: Saving the catalog
	// THEN: The foreign keys survive byte for byte

	store, path := newTestStore(t)
	ctx := context.Background()

	seed := `{
  "app_settings": {"theme": "dark", "language": "es"},
  "occupations": [],
  "default_occupation": "MOZO"
}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	require.NoError(t, store.Save(ctx, catalog.DefaultCatalog()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "app_settings")
	assert.JSONEq(t, `{"theme": "dark", "language": "es"}`, string(raw["app_settings"]))
	assert.Contains(t, raw, "occupations")
}

func TestSave_Overwrite(t *testing.T) {
	// A second save replaces the catalog keys, not appends to them.
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, catalog.DefaultCatalog()))

	small := &catalog.Catalog{
		DefaultOccupation: "DELIVERY",
		DefaultLocation:   "OTHER",
		Occupations: []catalog.Occupation{
			{Name: "DELIVERY", Active: true, Garments: []catalog.GarmentSpec{
				{GarmentType: "POLO", Class: catalog.ClassUpper, IsPrimary: true, HasSizes: true},
			}},
		},
	}
	require.NoError(t, store.Save(ctx, small))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Occupations, 1)
	assert.Equal(t, "DELIVERY", loaded.DefaultOccupation)
}
