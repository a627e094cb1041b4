/*
location.go - Free-text location and size normalization

PURPOSE:
  Store locations arrive as free text copied off a request sheet
  ("LIMA E ICA PROVINCIA", "VILLA STEAKHOUSE", "SAN ISIDRO"). Declared
  sizes arrive as whatever the employee wrote ("M", "2XL", blank).
  This file collapses both into the fixed price-matrix axes.

MATCHING ORDER:
  Location patterns are an ordered table evaluated most-specific-first,
  so "SAN ISIDRO" wins before a bare "SAN" containment and the matching
  order stays reproducible.

SEE ALSO:
  - types.go: The bucket enums these produce
*/
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// locationPatterns maps free-text fragments to pricing regions,
// most specific first.
var locationPatterns = []struct {
	Token  string
	Bucket LocationBucket
}{
	{"SAN ISIDRO", LocationSanIsidro},
	{"VILLA STEAKHOUSE", LocationSanIsidro},
	{"VILLA", LocationSanIsidro},
	{"SAN", LocationSanIsidro},
	{"TARAPOTO", LocationTarapoto},
	{"LIMA", LocationOther},
	{"ICA", LocationOther},
	{"PATIO", LocationOther},
}

// NormalizeLocation buckets a free-text store location into a pricing
// region. Unrecognized strings default to OTHER.
func NormalizeLocation(raw string) LocationBucket {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	for _, p := range locationPatterns {
		if strings.Contains(upper, p.Token) {
			return p.Bucket
		}
	}
	return LocationOther
}

// SizeBucketOf collapses a declared size into a price-matrix bucket:
// S, M and L share SML; XL stays XL; anything else (XXL, 2XL, free
// text) buckets as XXL.
func SizeBucketOf(size string) SizeBucket {
	switch strings.ToUpper(strings.TrimSpace(size)) {
	case "S", "M", "L", "SML":
		return SizeSML
	case "XL":
		return SizeXL
	default:
		return SizeXXL
	}
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad price %q", ErrInvalid, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative price %q", ErrInvalid, s)
	}
	return d, nil
}
