/*
columns.go - Column descriptors and the column classifier

PURPOSE:
  Request sheets carry one quantity column per (location group,
  occupation group, garment) triple, identified by names like
  "LIMA_ICA_SALON_CAMISA". This file parses those identifiers, holds
  the fixed column table, and decides which columns matter for a given
  occupation - the step that prevents a delivery rider's row from
  picking up waiter garments.

FALLBACK:
  When filtering by occupation group yields zero columns (a naming
  mismatch between sheet and table), the classifier returns ALL columns
  and warns. That can pull unrelated garments into a total, but the
  alternative is silently pricing an employee at zero; the safety net
  is deliberate.

SEE ALSO:
  - builder.go: Consumes the selected columns
*/
package engine

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// COLUMN DESCRIPTORS
// =============================================================================

// LocationGroup is the sheet-format location prefix of a column
// identifier. It is distinct from the pricing region: both LIMA_ICA and
// PATIOS_COMIDA price in the OTHER region.
type LocationGroup string

const (
	GroupLimaIca         LocationGroup = "LIMA_ICA"
	GroupPatiosComida    LocationGroup = "PATIOS_COMIDA"
	GroupVillaSteakhouse LocationGroup = "VILLA_STEAKHOUSE"
)

var locationGroups = []LocationGroup{GroupLimaIca, GroupPatiosComida, GroupVillaSteakhouse}

// ColumnDescriptor describes one quantity column. Built once from the
// fixed position table; immutable for the process lifetime.
type ColumnDescriptor struct {
	ID              string
	Location        LocationGroup
	OccupationGroup string
	GarmentType     string
}

// knownGarmentTokens is the ordered list of canonical garment tokens.
// Containment matching walks it in order, so more specific tokens must
// come before tokens they contain.
var knownGarmentTokens = []string{
	"CAMISA", "BLUSA", "POLO", "CASACA", "GORRA", "MANDILON", "ANDARIN",
	"PECHERA", "SACO", "PANTALON", "GARIBALDI", "CHAQUETA", "GORRO",
	"CHALECO", "CORBATA",
}

// columnOccupationGroups are the group tokens that can appear in a
// column identifier, longest first so ANFITRIONAJE wins over ANFITRION.
var columnOccupationGroups = []string{
	"ADMINISTRACION", "ANFITRIONAJE", "ANFITRION", "MANTENIMIENTO",
	"PRODUCCION", "SEGURIDAD", "AUDITORIA", "DELIVERY", "CORREDOR",
	"COUNTER", "CAJERO", "PACKER", "SALON", "CAJA", "BAR",
}

// suffix tokens that never identify a garment: gender markers, sleeve
// variants, numeric disambiguators.
var garmentSuffixTokens = map[string]bool{
	"H": true, "M": true, "MANGA": true, "CORTA": true, "LARGA": true,
	"1": true, "2": true, "3": true, "4": true, "5": true,
}

// NormalizeGarmentType extracts the canonical garment token from a
// column fragment like "SACO_H" or "POLO_MANGA_CORTA". Falls back to
// the last non-suffix underscore part, uppercased.
func NormalizeGarmentType(fragment string) string {
	upper := strings.ToUpper(strings.TrimSpace(fragment))
	for _, token := range knownGarmentTokens {
		if strings.Contains(upper, token) {
			return token
		}
	}
	parts := strings.Split(upper, "_")
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if p != "" && !garmentSuffixTokens[p] {
			return p
		}
	}
	return strings.ReplaceAll(upper, " ", "_")
}

// ParseColumnID decodes a column identifier into its descriptor.
// Accepts both the current LOCATION_GROUP_GARMENT format and the
// legacy GROUP_GARMENT format without a location prefix. Returns
// false for columns that are not garment quantity columns.
func ParseColumnID(id string) (ColumnDescriptor, bool) {
	upper := strings.ToUpper(strings.TrimSpace(id))
	if upper == "" {
		return ColumnDescriptor{}, false
	}

	desc := ColumnDescriptor{ID: id}
	rest := upper
	for _, loc := range locationGroups {
		if strings.HasPrefix(upper, string(loc)+"_") {
			desc.Location = loc
			rest = strings.TrimPrefix(upper, string(loc)+"_")
			break
		}
	}

	for _, group := range columnOccupationGroups {
		if strings.HasPrefix(rest, group+"_") {
			desc.OccupationGroup = group
			rest = strings.TrimPrefix(rest, group+"_")
			break
		}
	}

	garment := NormalizeGarmentType(rest)
	known := false
	for _, token := range knownGarmentTokens {
		if token == garment {
			known = true
			break
		}
	}
	if !known && desc.OccupationGroup == "" {
		return ColumnDescriptor{}, false
	}
	desc.GarmentType = garment
	return desc, true
}

// =============================================================================
// OCCUPATION -> GROUP TABLE
// =============================================================================

// occupationGroupTable maps canonical occupation names to the column
// group that carries their garments. Ordered most specific first;
// matched exactly, then by containment so suffixed variants like
// "MOZO (EVENTUAL)" still land on MOZO's group.
var occupationGroupTable = []struct {
	Token string
	Group string
}{
	{"STAFF ADMINISTRATIVO", "ADMINISTRACION"},
	{"ADMINISTRADOR", "ADMINISTRACION"},
	{"ADMIN", "ADMINISTRACION"},
	{"ANFITRIONAJE", "ANFITRIONAJE"},
	{"ANFITRION", "ANFITRIONAJE"},
	{"MOTORIZADO", "DELIVERY"},
	{"DELIVERY", "DELIVERY"},
	{"REPARTIDOR", "DELIVERY"},
	{"PACKER", "PACKER"},
	{"EMPACADOR", "PACKER"},
	{"BARTENDER", "BAR"},
	{"BARMAN", "BAR"},
	{"CAJERO", "CAJA"},
	{"CAJERA", "CAJA"},
	{"CAJA", "CAJA"},
	{"VIGILANTE", "SEGURIDAD"},
	{"SEGURIDAD", "SEGURIDAD"},
	{"PRODUCCION", "PRODUCCION"},
	{"COCINA", "PRODUCCION"},
	{"COCINERO", "PRODUCCION"},
	{"CHEF", "PRODUCCION"},
	{"CORREDOR", "CORREDOR"},
	{"RUNNER", "CORREDOR"},
	{"AZAFATA", "SALON"},
	{"AZAFATO", "SALON"},
	{"MESERO", "SALON"},
	{"MESERA", "SALON"},
	{"MOZA", "SALON"},
	{"MOZO", "SALON"},
	{"BAR", "BAR"},
}

// columnGroupAliases canonicalizes descriptor group tokens that name
// the same aisle under an older header spelling. CAJERO_* and
// ANFITRION_* columns carry the CAJA and ANFITRIONAJE garments.
var columnGroupAliases = map[string]string{
	"CAJERO":    "CAJA",
	"ANFITRION": "ANFITRIONAJE",
}

func canonicalColumnGroup(group string) string {
	if canon, ok := columnGroupAliases[group]; ok {
		return canon
	}
	return group
}

// OccupationGroupFor finds the column group for a canonical occupation.
func OccupationGroupFor(occupation string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(occupation))
	for _, e := range occupationGroupTable {
		if upper == e.Token {
			return e.Group, true
		}
	}
	for _, e := range occupationGroupTable {
		if strings.Contains(upper, e.Token) {
			return e.Group, true
		}
	}
	return "", false
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier selects, from a fixed column table, the columns relevant
// to one occupation on one row.
type Classifier struct {
	log logrus.FieldLogger
}

func NewClassifier(log logrus.FieldLogger) *Classifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Classifier{log: log}
}

// Relevant returns the columns whose occupation group matches the
// occupation's group. Villa Steakhouse rows resolve SALON staff across
// the aisle: CORREDOR columns are included too. An empty filter result
// falls back to all columns with a warning rather than pricing the
// employee at zero.
func (c *Classifier) Relevant(occupation string, columns []ColumnDescriptor, trail *warnTrail) []ColumnDescriptor {
	group, ok := OccupationGroupFor(occupation)
	if !ok {
		trail.warnf(logrus.Fields{"occupation": occupation},
			"no column group for occupation %q, using all columns", occupation)
		return columns
	}

	var selected []ColumnDescriptor
	for _, col := range columns {
		if canonicalColumnGroup(col.OccupationGroup) == group {
			selected = append(selected, col)
		}
	}

	if group == "SALON" && hasVillaColumns(columns) {
		for _, col := range columns {
			if col.OccupationGroup == "CORREDOR" {
				selected = append(selected, col)
			}
		}
	}

	if len(selected) == 0 {
		trail.warnf(logrus.Fields{"occupation": occupation, "group": group},
			"column filter for group %s matched nothing for %q, using all columns", group, occupation)
		return columns
	}
	return selected
}

func hasVillaColumns(columns []ColumnDescriptor) bool {
	for _, col := range columns {
		if col.Location == GroupVillaSteakhouse {
			return true
		}
	}
	return false
}

// =============================================================================
// FIXED COLUMN TABLE
// =============================================================================

// baseColumnGrid is the per-group garment layout shared by every
// location block of the request sheet.
var baseColumnGrid = []struct {
	Group    string
	Garments []string
}{
	{"SALON", []string{"CAMISA", "BLUSA", "MANDILON", "ANDARIN"}},
	{"DELIVERY", []string{"POLO", "CASACA", "GORRA"}},
	{"PACKER", []string{"POLO", "GORRA"}},
	{"BAR", []string{"CAMISA", "BLUSA", "POLO", "PECHERA"}},
	{"CAJA", []string{"CAMISA", "BLUSA"}},
	{"SEGURIDAD", []string{"CAMISA", "BLUSA", "SACO"}},
	{"ANFITRIONAJE", []string{"CAMISA", "CASACA", "SACO_H"}},
	{"PRODUCCION", []string{"CHAQUETA", "POLO", "POLO_MANGA_CORTA", "PANTALON", "PECHERA", "GARIBALDI"}},
}

// DefaultColumnTable builds the full fixed column table: the base grid
// repeated for each location group, plus the CORREDOR columns that only
// exist on the Villa Steakhouse block.
func DefaultColumnTable() []ColumnDescriptor {
	var table []ColumnDescriptor
	for _, loc := range locationGroups {
		for _, row := range baseColumnGrid {
			for _, garment := range row.Garments {
				id := string(loc) + "_" + row.Group + "_" + garment
				table = append(table, ColumnDescriptor{
					ID:              id,
					Location:        loc,
					OccupationGroup: row.Group,
					GarmentType:     NormalizeGarmentType(garment),
				})
			}
		}
	}
	for _, garment := range []string{"POLO", "GORRA"} {
		id := string(GroupVillaSteakhouse) + "_CORREDOR_" + garment
		table = append(table, ColumnDescriptor{
			ID:              id,
			Location:        GroupVillaSteakhouse,
			OccupationGroup: "CORREDOR",
			GarmentType:     garment,
		})
	}
	return table
}

// ColumnsFromRow parses the column identifiers present in one row's
// quantity map into descriptors, skipping anything that is not a
// garment column.
func ColumnsFromRow(quantities map[string]string) []ColumnDescriptor {
	var cols []ColumnDescriptor
	for id := range quantities {
		if desc, ok := ParseColumnID(id); ok {
			cols = append(cols, desc)
		}
	}
	// Map iteration order is random; keep output deterministic.
	sort.Slice(cols, func(i, j int) bool { return cols[i].ID < cols[j].ID })
	return cols
}
