/*
pricing.go - Price resolution over the catalog's 4D lookup

PURPOSE:
  Prices a built garment list: occupation x garment x size x location.
  Sizes collapse into the three matrix buckets, free-text locations
  normalize into the three pricing regions, and every miss contributes
  zero with a warning instead of failing the row.

ZERO VS MISSING:
  A configured price of exactly zero is valid ("free at this location")
  and indistinguishable in the matrix from a never-configured cell; the
  "no price" warning fires only when the garment itself is absent from
  the occupation. The conflation at cell level is inherited from the
  configuration format and preserved on purpose.
*/
package engine

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// Pricer resolves garment prices against one catalog snapshot.
type Pricer struct {
	catalog *catalog.Catalog
	log     logrus.FieldLogger
}

func NewPricer(cat *catalog.Catalog, log logrus.FieldLogger) *Pricer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pricer{catalog: cat, log: log}
}

// Total prices a garment list for one employee. Unknown occupations and
// unconfigured garments contribute zero and warn; the computation never
// fails.
func (p *Pricer) Total(occupation string, garments []ResolvedGarment, location string, trail *warnTrail) decimal.Decimal {
	total := decimal.Zero

	occ, ok := p.catalog.Lookup(occupation)
	if !ok {
		if len(garments) > 0 {
			trail.warnf(logrus.Fields{"occupation": occupation},
				"occupation %q not in catalog, pricing at zero", occupation)
		}
		return total
	}

	loc := catalog.NormalizeLocation(location)
	for _, g := range garments {
		if g.Quantity <= 0 {
			continue
		}
		spec, ok := occ.Garment(g.Type)
		if !ok {
			trail.warnf(logrus.Fields{"occupation": occ.Name, "garment": g.Type},
				"no price configured for %s on %s, contributing zero", g.Type, occ.Name)
			continue
		}
		unit := spec.Prices.Get(catalog.SizeBucketOf(g.Size), loc)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(g.Quantity))))
	}
	return total
}

// Unit returns the single-unit price for one garment line, zero when
// the occupation or garment is not configured.
func (p *Pricer) Unit(occupation string, g ResolvedGarment, location string) decimal.Decimal {
	occ, ok := p.catalog.Lookup(occupation)
	if !ok {
		return decimal.Zero
	}
	spec, ok := occ.Garment(g.Type)
	if !ok {
		return decimal.Zero
	}
	return spec.Prices.Get(catalog.SizeBucketOf(g.Size), catalog.NormalizeLocation(location))
}
