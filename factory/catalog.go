/*
Package factory provides JSON to Go catalog conversion.

PURPOSE:
  Converts the JSON catalog document into catalog.Catalog values and
  back. This keeps the document format in one place - the config-file
  store and the relational store both persist this shape, and it stays
  byte-compatible with the configuration files administrators already
  maintain by hand.

JSON SCHEMA:
  {
    "occupations": [
      {
        "name": "MOZO",
        "display_name": "Mozo",
        "synonyms": ["MESERO"],
        "prendas": [
          {
            "prenda_type": "CAMISA",
            "display_name": "Camisa",
            "garment_type": "UPPER",
            "is_primary": true,
            "has_sizes": true,
            "price_sml_other": 18.5,
            "price_xl_other": 20.0,
            ...
          }
        ],
        "is_active": true
      }
    ],
    "default_occupation": "MOZO",
    "default_local_group": "OTHER"
  }

KEY FEATURES:
  - Sets sensible defaults (is_active true, has_sizes true)
  - Auto-detects garment class when garment_type is blank
    (PANTALON-like types are LOWER, everything else UPPER)
  - Skips garments with no type, logging a warning, rather than
    failing the whole load

USAGE:
  f := factory.NewCatalogFactory(log)
  cat := f.Parse(doc)          // CatalogJSON -> *catalog.Catalog
  doc := f.Render(cat)         // *catalog.Catalog -> CatalogJSON

SEE ALSO:
  - catalog/types.go: Target types
  - store/jsonfile:   Persists CatalogJSON inside config.json
  - store/sqlite:     Persists garments as CatalogJSON fragments
*/
package factory

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of the full catalog document.
type CatalogJSON struct {
	Occupations       []OccupationJSON `json:"occupations"`
	DefaultOccupation string           `json:"default_occupation"`
	DefaultLocalGroup string           `json:"default_local_group"`
}

// OccupationJSON is the JSON representation of one occupation.
type OccupationJSON struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name,omitempty"`
	Synonyms    []string      `json:"synonyms"`
	Prendas     []GarmentJSON `json:"prendas"`
	IsActive    *bool         `json:"is_active,omitempty"`
	Description string        `json:"description,omitempty"`
}

// GarmentJSON is the JSON representation of one garment, with the nine
// price cells flattened the way the configuration file spells them.
type GarmentJSON struct {
	PrendaType      string `json:"prenda_type"`
	DisplayName     string `json:"display_name,omitempty"`
	GarmentType     string `json:"garment_type,omitempty"` // UPPER, LOWER, ACCESSORY
	IsPrimary       bool   `json:"is_primary,omitempty"`
	IsRequired      bool   `json:"is_required,omitempty"`
	HasSizes        *bool  `json:"has_sizes,omitempty"`
	DefaultQuantity int    `json:"default_quantity,omitempty"`

	PriceSMLOther     float64 `json:"price_sml_other"`
	PriceXLOther      float64 `json:"price_xl_other"`
	PriceXXLOther     float64 `json:"price_xxl_other"`
	PriceSMLTarapoto  float64 `json:"price_sml_tarapoto"`
	PriceXLTarapoto   float64 `json:"price_xl_tarapoto"`
	PriceXXLTarapoto  float64 `json:"price_xxl_tarapoto"`
	PriceSMLSanIsidro float64 `json:"price_sml_san_isidro"`
	PriceXLSanIsidro  float64 `json:"price_xl_san_isidro"`
	PriceXXLSanIsidro float64 `json:"price_xxl_san_isidro"`
}

// =============================================================================
// FACTORY
// =============================================================================

// CatalogFactory converts between CatalogJSON and catalog.Catalog.
type CatalogFactory struct {
	log logrus.FieldLogger
}

func NewCatalogFactory(log logrus.FieldLogger) *CatalogFactory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogFactory{log: log}
}

// Parse converts a JSON document into a catalog value.
func (f *CatalogFactory) Parse(doc CatalogJSON) *catalog.Catalog {
	cat := &catalog.Catalog{
		DefaultOccupation: doc.DefaultOccupation,
		DefaultLocation:   doc.DefaultLocalGroup,
	}
	if cat.DefaultOccupation == "" {
		cat.DefaultOccupation = "MOZO"
	}
	if cat.DefaultLocation == "" {
		cat.DefaultLocation = "OTHER"
	}

	for _, occ := range doc.Occupations {
		parsed, ok := f.ParseOccupation(occ)
		if !ok {
			f.log.Warn("skipping occupation with no name")
			continue
		}
		cat.Occupations = append(cat.Occupations, parsed)
	}
	return cat
}

// ParseOccupation converts one occupation entry, reporting false when
// the entry has no name.
func (f *CatalogFactory) ParseOccupation(occ OccupationJSON) (catalog.Occupation, bool) {
	if strings.TrimSpace(occ.Name) == "" {
		return catalog.Occupation{}, false
	}
	parsed := catalog.Occupation{
		Name:        strings.ToUpper(strings.TrimSpace(occ.Name)),
		DisplayName: occ.DisplayName,
		Synonyms:    append([]string(nil), occ.Synonyms...),
		Active:      occ.IsActive == nil || *occ.IsActive,
		Description: occ.Description,
	}
	if parsed.DisplayName == "" {
		parsed.DisplayName = parsed.Name
	}
	for _, g := range occ.Prendas {
		spec, ok := f.ParseGarment(g)
		if !ok {
			f.log.WithField("occupation", parsed.Name).Warn("skipping prenda with missing data")
			continue
		}
		parsed.Garments = append(parsed.Garments, spec)
	}
	return parsed, true
}

// ParseGarment converts one garment entry, reporting false when the
// entry has no prenda type.
func (f *CatalogFactory) ParseGarment(g GarmentJSON) (catalog.GarmentSpec, bool) {
	garmentType := strings.ToUpper(strings.TrimSpace(g.PrendaType))
	if garmentType == "" {
		return catalog.GarmentSpec{}, false
	}

	spec := catalog.GarmentSpec{
		GarmentType:     garmentType,
		DisplayName:     g.DisplayName,
		Class:           parseClass(g.GarmentType, garmentType),
		IsPrimary:       g.IsPrimary,
		IsRequired:      g.IsRequired,
		HasSizes:        g.HasSizes == nil || *g.HasSizes,
		DefaultQuantity: g.DefaultQuantity,
		Prices:          make(catalog.PriceMatrix),
	}

	cells := []struct {
		size  catalog.SizeBucket
		loc   catalog.LocationBucket
		value float64
	}{
		{catalog.SizeSML, catalog.LocationOther, g.PriceSMLOther},
		{catalog.SizeXL, catalog.LocationOther, g.PriceXLOther},
		{catalog.SizeXXL, catalog.LocationOther, g.PriceXXLOther},
		{catalog.SizeSML, catalog.LocationTarapoto, g.PriceSMLTarapoto},
		{catalog.SizeXL, catalog.LocationTarapoto, g.PriceXLTarapoto},
		{catalog.SizeXXL, catalog.LocationTarapoto, g.PriceXXLTarapoto},
		{catalog.SizeSML, catalog.LocationSanIsidro, g.PriceSMLSanIsidro},
		{catalog.SizeXL, catalog.LocationSanIsidro, g.PriceXLSanIsidro},
		{catalog.SizeXXL, catalog.LocationSanIsidro, g.PriceXXLSanIsidro},
	}
	for _, c := range cells {
		if c.value != 0 {
			spec.Prices.Set(c.size, c.loc, decimal.NewFromFloat(c.value))
		}
	}
	return spec, true
}

// parseClass maps the document's garment_type field to a class,
// auto-detecting from the prenda type when the field is blank.
func parseClass(declared, garmentType string) catalog.GarmentClass {
	switch strings.ToUpper(strings.TrimSpace(declared)) {
	case string(catalog.ClassUpper):
		return catalog.ClassUpper
	case string(catalog.ClassLower):
		return catalog.ClassLower
	case string(catalog.ClassAccessory):
		return catalog.ClassAccessory
	}
	if strings.Contains(garmentType, "PANTALON") || strings.Contains(garmentType, "PANTS") {
		return catalog.ClassLower
	}
	if strings.Contains(garmentType, "CORBATA") {
		return catalog.ClassAccessory
	}
	return catalog.ClassUpper
}

// Render converts a catalog value back into its JSON document.
func (f *CatalogFactory) Render(cat *catalog.Catalog) CatalogJSON {
	doc := CatalogJSON{
		DefaultOccupation: cat.DefaultOccupation,
		DefaultLocalGroup: cat.DefaultLocation,
	}
	for _, occ := range cat.Occupations {
		doc.Occupations = append(doc.Occupations, f.RenderOccupation(occ))
	}
	if doc.Occupations == nil {
		doc.Occupations = []OccupationJSON{}
	}
	return doc
}

// RenderOccupation converts one occupation back into its JSON entry.
func (f *CatalogFactory) RenderOccupation(occ catalog.Occupation) OccupationJSON {
	active := occ.Active
	rendered := OccupationJSON{
		Name:        occ.Name,
		DisplayName: occ.DisplayName,
		Synonyms:    append([]string(nil), occ.Synonyms...),
		IsActive:    &active,
		Description: occ.Description,
	}
	if rendered.Synonyms == nil {
		rendered.Synonyms = []string{}
	}
	for _, g := range occ.Garments {
		rendered.Prendas = append(rendered.Prendas, RenderGarment(g))
	}
	if rendered.Prendas == nil {
		rendered.Prendas = []GarmentJSON{}
	}
	return rendered
}

// RenderGarment converts one garment spec back into its JSON entry.
func RenderGarment(g catalog.GarmentSpec) GarmentJSON {
	hasSizes := g.HasSizes
	cell := func(size catalog.SizeBucket, loc catalog.LocationBucket) float64 {
		v, _ := g.Prices.Get(size, loc).Float64()
		return v
	}
	return GarmentJSON{
		PrendaType:      g.GarmentType,
		DisplayName:     g.DisplayName,
		GarmentType:     string(g.Class),
		IsPrimary:       g.IsPrimary,
		IsRequired:      g.IsRequired,
		HasSizes:        &hasSizes,
		DefaultQuantity: g.DefaultQuantity,

		PriceSMLOther:     cell(catalog.SizeSML, catalog.LocationOther),
		PriceXLOther:      cell(catalog.SizeXL, catalog.LocationOther),
		PriceXXLOther:     cell(catalog.SizeXXL, catalog.LocationOther),
		PriceSMLTarapoto:  cell(catalog.SizeSML, catalog.LocationTarapoto),
		PriceXLTarapoto:   cell(catalog.SizeXL, catalog.LocationTarapoto),
		PriceXXLTarapoto:  cell(catalog.SizeXXL, catalog.LocationTarapoto),
		PriceSMLSanIsidro: cell(catalog.SizeSML, catalog.LocationSanIsidro),
		PriceXLSanIsidro:  cell(catalog.SizeXL, catalog.LocationSanIsidro),
		PriceXXLSanIsidro: cell(catalog.SizeXXL, catalog.LocationSanIsidro),
	}
}
