/*
builder.go - Garment list construction and business-rule overlays

PURPOSE:
  Walks the columns the classifier selected, keeps the ones with a
  positive quantity, and emits one ResolvedGarment per surviving column
  with the right declared size attached. Two columns normalizing to the
  same garment type stay separate entries - style variants in different
  columns are legitimately distinct lines.

BUSINESS RULES (applied after the raw list, idempotent):
  1. Male administrative staff always carry exactly one necktie entry
     with quantity 2 - added when absent, corrected when different.
  2. A blazer (SACO) never exceeds quantity 1, whatever the sheet says.

SEE ALSO:
  - columns.go: Column selection
  - pricing.go: What consumes the built list
*/
package engine

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// Builder turns selected columns plus raw quantities into the
// normalized garment list.
type Builder struct {
	classifier *Classifier
	log        logrus.FieldLogger
}

func NewBuilder(classifier *Classifier, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{classifier: classifier, log: log}
}

// Build constructs the garment list for one employee. columns is the
// full fixed table for the row; filtering to the occupation's group
// happens here.
func (b *Builder) Build(occupation string, row EmployeeRow, columns []ColumnDescriptor, trail *warnTrail) []ResolvedGarment {
	relevant := b.classifier.Relevant(occupation, columns, trail)

	var garments []ResolvedGarment
	for _, col := range relevant {
		raw, present := row.Quantities[col.ID]
		if !present {
			continue
		}
		qty, ok, malformed := parseQuantity(raw)
		if malformed {
			trail.warnf(logrus.Fields{"employee": row.Name, "column": col.ID},
				"ignoring malformed quantity %q in column %s", raw, col.ID)
			continue
		}
		if !ok {
			continue
		}

		class := classOf(col.GarmentType)
		garments = append(garments, ResolvedGarment{
			Type:        col.GarmentType,
			DisplayName: titleCase(col.GarmentType),
			Quantity:    qty,
			Size:        sizeFor(class, row),
			Class:       class,
		})
	}

	return ApplyBusinessRules(occupation, garments, b.log)
}

// classOf derives the garment class from its type: trousers are LOWER,
// neckties ACCESSORY, everything else UPPER.
func classOf(garmentType string) catalog.GarmentClass {
	upper := strings.ToUpper(garmentType)
	switch {
	case strings.Contains(upper, "PANTALON") || strings.Contains(upper, "PANTS"):
		return catalog.ClassLower
	case strings.Contains(upper, "CORBATA"):
		return catalog.ClassAccessory
	default:
		return catalog.ClassUpper
	}
}

// sizeFor picks the declared size matching the garment class. LOWER
// garments take the lower-body size, falling back to the upper-body
// size when blank; accessories carry no size.
func sizeFor(class catalog.GarmentClass, row EmployeeRow) string {
	switch class {
	case catalog.ClassLower:
		if s := strings.TrimSpace(row.SizeLower); s != "" {
			return strings.ToUpper(s)
		}
		return strings.ToUpper(strings.TrimSpace(row.SizeUpper))
	case catalog.ClassAccessory:
		return ""
	default:
		return strings.ToUpper(strings.TrimSpace(row.SizeUpper))
	}
}

// =============================================================================
// BUSINESS RULES
// =============================================================================

// maleAdminTitles are the canonical names that identify a male
// administrative role outright.
var maleAdminTitles = []string{
	"STAFF ADMINISTRATIVO (HOMBRE)",
	"STAFF ADMINISTRATIVO (H)",
	"ADMINISTRADOR (H)",
	"ADMINISTRADOR (HOMBRE)",
}

// isMaleAdmin reports whether an occupation denotes a male
// administrative role: an explicit canonical match, or any ADMIN token
// without a female marker.
func isMaleAdmin(occupation string) bool {
	upper := strings.ToUpper(strings.TrimSpace(occupation))
	for _, title := range maleAdminTitles {
		if strings.Contains(upper, title) {
			return true
		}
	}
	return strings.Contains(upper, "ADMIN") &&
		!strings.Contains(upper, "(M)") &&
		!strings.Contains(upper, "(F)") &&
		!strings.Contains(upper, "MUJER")
}

// ApplyBusinessRules applies the fixed overlays to a built list.
// Idempotent and order-independent: running it twice changes nothing.
func ApplyBusinessRules(occupation string, garments []ResolvedGarment, log logrus.FieldLogger) []ResolvedGarment {
	if log == nil {
		log = logrus.StandardLogger()
	}

	// Rule 1: male admin roles carry exactly one necktie entry, qty 2.
	if isMaleAdmin(occupation) {
		found := false
		for i := range garments {
			if strings.EqualFold(garments[i].Type, "CORBATA") {
				found = true
				if garments[i].Quantity != 2 {
					log.WithField("occupation", occupation).
						Infof("business rule: corrected CORBATA quantity from %d to 2", garments[i].Quantity)
					garments[i].Quantity = 2
				}
			}
		}
		if !found {
			log.WithField("occupation", occupation).Info("business rule: added 2 CORBATA for male admin")
			garments = append(garments, ResolvedGarment{
				Type:        "CORBATA",
				DisplayName: "Corbata",
				Quantity:    2,
				Class:       catalog.ClassAccessory,
			})
		}
	}

	// Rule 2: SACO caps at 1 for every occupation.
	for i := range garments {
		if strings.EqualFold(garments[i].Type, "SACO") && garments[i].Quantity > 1 {
			log.WithField("occupation", occupation).
				Infof("business rule: capped SACO quantity from %d to 1", garments[i].Quantity)
			garments[i].Quantity = 1
		}
	}

	return garments
}
