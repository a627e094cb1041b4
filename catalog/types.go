/*
Package catalog provides the canonical occupation and garment price tables.

PURPOSE:
  This package contains the read-mostly data model the resolution engine
  operates on: occupations with their synonym sets, garment specifications,
  and the size-by-location price matrices. Whether pricing a waiter's
  shirts in Lima or a security guard's blazer in Tarapoto, the same tables
  answer the lookup.

KEY CONCEPTS IN THIS FILE (types.go):
  - SizeBucket/LocationBucket: The two axes of every price matrix
  - PriceMatrix: size x location -> unit price (decimal)
  - GarmentSpec: One uniform item an occupation can receive
  - Occupation: Canonical job title, synonyms, and its garment list
  - Catalog: The full table plus engine defaults

DESIGN PRINCIPLES:
  1. Snapshot semantics: Engine batches hold one Catalog value; admin
     mutations clone first and swap after (copy-on-write)
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Explicit axes: Prices are indexed by enum values, never by
     dynamically composed field names

USAGE:
  cat := catalog.DefaultCatalog()
  occ, ok := cat.Lookup("MESERO")         // synonym -> MOZO
  spec, ok := occ.Garment("CAMISA")
  price := spec.Prices.Get(catalog.SizeSML, catalog.LocationOther)

SEE ALSO:
  - catalog.go: Lookups, validation, and admin mutations
  - location.go: Free-text location and size normalization
  - presets.go: The shipped default table
*/
package catalog

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICE AXES - Size and location buckets
// =============================================================================

// SizeBucket is the size axis of a price matrix. Individual sizes S, M
// and L share one bucket; see SizeBucketOf for the collapsing rules.
type SizeBucket string

const (
	SizeSML SizeBucket = "SML"
	SizeXL  SizeBucket = "XL"
	SizeXXL SizeBucket = "XXL"
)

// LocationBucket is the pricing-region axis of a price matrix.
type LocationBucket string

const (
	LocationOther     LocationBucket = "OTHER"
	LocationTarapoto  LocationBucket = "TARAPOTO"
	LocationSanIsidro LocationBucket = "SAN_ISIDRO"
)

// SizeBuckets and LocationBuckets list the axes in display order.
var (
	SizeBuckets     = []SizeBucket{SizeSML, SizeXL, SizeXXL}
	LocationBuckets = []LocationBucket{LocationOther, LocationTarapoto, LocationSanIsidro}
)

// =============================================================================
// PRICE MATRIX - size x location -> unit price
// =============================================================================

// PriceMatrix holds unit prices per size and location bucket. Absent
// cells price at zero; the table does not distinguish "explicitly free"
// from "never configured" (parity with the source configuration format).
type PriceMatrix map[SizeBucket]map[LocationBucket]decimal.Decimal

// Get returns the unit price for a cell, decimal.Zero when unset.
func (m PriceMatrix) Get(size SizeBucket, loc LocationBucket) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m[size][loc]
}

// Set stores a unit price, allocating rows as needed.
func (m PriceMatrix) Set(size SizeBucket, loc LocationBucket, price decimal.Decimal) {
	row, ok := m[size]
	if !ok {
		row = make(map[LocationBucket]decimal.Decimal, len(LocationBuckets))
		m[size] = row
	}
	row[loc] = price
}

// Clone returns a deep copy of the matrix.
func (m PriceMatrix) Clone() PriceMatrix {
	out := make(PriceMatrix, len(m))
	for size, row := range m {
		rowCopy := make(map[LocationBucket]decimal.Decimal, len(row))
		for loc, price := range row {
			rowCopy[loc] = price
		}
		out[size] = rowCopy
	}
	return out
}

// =============================================================================
// GARMENT SPECIFICATION
// =============================================================================

// GarmentClass partitions garments by which declared size applies.
type GarmentClass string

const (
	ClassUpper     GarmentClass = "UPPER"
	ClassLower     GarmentClass = "LOWER"
	ClassAccessory GarmentClass = "ACCESSORY"
)

// GarmentSpec describes one uniform item an occupation can receive.
type GarmentSpec struct {
	// GarmentType is the canonical token, e.g. "POLO", "CAMISA".
	GarmentType string

	// DisplayName is the human form used on rendered documents,
	// e.g. "Polo". Defaults to a title-cased GarmentType when blank.
	DisplayName string

	Class GarmentClass

	// IsPrimary marks the garment the sets calculator counts by.
	// At most one garment per occupation carries this flag.
	IsPrimary bool

	IsRequired      bool
	HasSizes        bool
	DefaultQuantity int

	Prices PriceMatrix
}

// Clone returns a deep copy of the spec.
func (g GarmentSpec) Clone() GarmentSpec {
	out := g
	out.Prices = g.Prices.Clone()
	return out
}

// =============================================================================
// OCCUPATION
// =============================================================================

// Occupation is a canonical job title with its synonym set and garment list.
type Occupation struct {
	// Name is canonical and unique across the catalog, always uppercase.
	Name string

	DisplayName string

	// Synonyms are matched case-insensitively during resolution. A
	// synonym belongs to exactly one occupation at a time; on conflict
	// the last written occupation wins.
	Synonyms []string

	// Garments is ordered; document rendering preserves this order.
	Garments []GarmentSpec

	Active      bool
	Description string
}

// Clone returns a deep copy of the occupation.
func (o Occupation) Clone() Occupation {
	out := o
	out.Synonyms = append([]string(nil), o.Synonyms...)
	out.Garments = make([]GarmentSpec, len(o.Garments))
	for i, g := range o.Garments {
		out.Garments[i] = g.Clone()
	}
	return out
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the full occupation table plus the engine defaults loaded
// from the durable store. Treat loaded values as immutable snapshots:
// mutate via Clone() and swap the active reference when done.
type Catalog struct {
	Occupations []Occupation

	// DefaultOccupation is used when a row carries no job title at all.
	DefaultOccupation string

	// DefaultLocation is the pricing location assumed when a sheet
	// carries no recognizable store location.
	DefaultLocation string
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Occupations:       make([]Occupation, len(c.Occupations)),
		DefaultOccupation: c.DefaultOccupation,
		DefaultLocation:   c.DefaultLocation,
	}
	for i, o := range c.Occupations {
		out.Occupations[i] = o.Clone()
	}
	return out
}
