/*
Package engine implements the occupation resolution and pricing engine.

PURPOSE:
  Turns one messy spreadsheet row - a free-text job title, a sparse grid
  of per-column quantities, declared sizes, a store location - into a
  canonical occupation, a normalized garment list, a total price, and a
  "sets" count for authorization paperwork.

PIPELINE:
  raw row -> Resolver (canonical occupation)
          -> Classifier (columns relevant to that occupation/location)
          -> Builder (quantities + business rules -> garment list)
          -> Pricer (4D lookup: occupation x garment x size x location)
          -> Sets (primary garment count, mode fallback)

DESIGN PRINCIPLES:
  1. Never fatal: a batch of hundreds of rows must not abort on one bad
     cell or one missing catalog entry. Every degradation contributes
     zero and surfaces as a warning.
  2. Snapshot reads: the engine holds one immutable catalog snapshot;
     admin mutations swap in a new one between batches.
  3. Deterministic matching: every heuristic is an ordered table, never
     an unordered map walk.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmployeeRow: One row's worth of engine input
  - ResolvedGarment: One normalized garment-list entry
  - Result: Everything the engine produces per employee

SEE ALSO:
  - resolver.go: Job-title and gender resolution
  - columns.go:  Column table and classifier
  - builder.go:  Garment list construction and business rules
  - pricing.go:  Price resolution
  - sets.go:     Sets (juegos) calculation
  - engine.go:   The facade tying the pipeline together
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// =============================================================================
// INPUT - One employee row
// =============================================================================

// EmployeeRow is the engine's input for a single employee. Quantities
// carries raw cell text keyed by column identifier: blank or zero means
// "not requested", non-numeric text is skipped with a warning.
type EmployeeRow struct {
	Name          string
	Document      string
	RawOccupation string
	SizeUpper     string
	SizeLower     string

	// Location is the free text store location of the row's sheet,
	// e.g. "LIMA E ICA PROVINCIA" or "VILLA STEAKHOUSE".
	Location string

	Quantities map[string]string
}

// =============================================================================
// OUTPUT - Resolved garments and the per-employee result
// =============================================================================

// ResolvedGarment is one entry of the built garment list. Two raw
// columns normalizing to the same type stay two entries; the builder
// never merges them.
type ResolvedGarment struct {
	Type        string
	DisplayName string
	Quantity    int
	Size        string
	Class       catalog.GarmentClass
}

// Label renders the garment the way authorization documents print it,
// e.g. "Camisa Talla M". Sizeless garments print the bare name.
func (g ResolvedGarment) Label() string {
	name := g.DisplayName
	if name == "" {
		name = titleCase(g.Type)
	}
	if g.Size == "" {
		return name
	}
	return fmt.Sprintf("%s Talla %s", name, strings.ToUpper(g.Size))
}

// Result is everything the engine produces for one employee.
type Result struct {
	Name       string
	Occupation string
	Garments   []ResolvedGarment
	Total      decimal.Decimal
	Sets       int

	// Warnings mirrors what was logged: unresolved occupations,
	// missing prices, malformed cells. Never fatal.
	Warnings []string
}

// SizeFromLabel recovers the declared size from a rendered label like
// "Polo Talla M". Labels without a size marker read as "M", the most
// common size on file.
func SizeFromLabel(label string) string {
	upper := strings.ToUpper(strings.TrimSpace(label))
	if idx := strings.Index(upper, "TALLA "); idx >= 0 {
		if size := strings.TrimSpace(upper[idx+len("TALLA "):]); size != "" {
			return size
		}
	}
	return "M"
}

// GarmentFromLabel rebuilds a priceable garment line from a rendered
// document label. The garment name is the text before the size marker;
// the size reads back through SizeFromLabel.
func GarmentFromLabel(label string, quantity int) ResolvedGarment {
	name := strings.TrimSpace(label)
	if idx := strings.Index(strings.ToUpper(name), " TALLA "); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	typ := NormalizeGarmentType(strings.ReplaceAll(strings.ToUpper(name), " ", "_"))
	return ResolvedGarment{
		Type:        typ,
		DisplayName: name,
		Quantity:    quantity,
		Size:        SizeFromLabel(label),
		Class:       classOf(typ),
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// parseQuantity interprets one raw cell. ok reports a usable positive
// integer; malformed reports text that was neither blank nor numeric.
// Decimals like "2.0" count as their integer part, matching how the
// cells come out of spreadsheet exports.
func parseQuantity(raw string) (qty int, ok bool, malformed bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, true
	}
	qty = int(f)
	return qty, qty > 0, false
}

func titleCase(token string) string {
	token = strings.ReplaceAll(strings.ToLower(token), "_", " ")
	words := strings.Fields(token)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// warnTrail both logs a warning and records it on the result.
type warnTrail struct {
	log  logrus.FieldLogger
	msgs []string
}

func (w *warnTrail) warnf(fields logrus.Fields, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.log.WithFields(fields).Warn(msg)
	w.msgs = append(w.msgs, msg)
}
