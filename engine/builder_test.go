package engine

import (
	"testing"

	"github.com/warp/uniform-engine/catalog"
)

func newTestBuilder() *Builder {
	return NewBuilder(NewClassifier(quietLogger()), quietLogger())
}

// =============================================================================
// BUILD TESTS
// =============================================================================

func TestBuild_PositiveQuantitiesOnly(t *testing.T) {
	// GIVEN: A waiter row with one positive, one zero, and one blank cell
	// WHEN: Building the garment list
	// THEN: Only the positive cell produces a garment

	b := newTestBuilder()
	row := EmployeeRow{
		Name:      "JUAN PEREZ",
		SizeUpper: "M",
		Quantities: map[string]string{
			"LIMA_ICA_SALON_CAMISA":   "2",
			"LIMA_ICA_SALON_MANDILON": "0",
			"LIMA_ICA_SALON_ANDARIN":  "",
		},
	}

	garments := b.Build("MOZO", row, ColumnsFromRow(row.Quantities), newTrail())
	if len(garments) != 1 {
		t.Fatalf("expected 1 garment, got %d", len(garments))
	}
	g := garments[0]
	if g.Type != "CAMISA" || g.Quantity != 2 || g.Size != "M" {
		t.Errorf("unexpected garment %+v", g)
	}
	if g.Class != catalog.ClassUpper {
		t.Errorf("expected UPPER class, got %s", g.Class)
	}
}

func TestBuild_DecimalAndMalformedCells(t *testing.T) {
	// GIVEN: A spreadsheet export with "2.0" and "dos" cells
	// WHEN: Building
	// THEN: "2.0" counts as 2, "dos" is skipped with a warning

	b := newTestBuilder()
	row := EmployeeRow{
		Name:      "JUAN PEREZ",
		SizeUpper: "L",
		Quantities: map[string]string{
			"LIMA_ICA_SALON_CAMISA":  "2.0",
			"LIMA_ICA_SALON_ANDARIN": "dos",
		},
	}
	trail := newTrail()

	garments := b.Build("MOZO", row, ColumnsFromRow(row.Quantities), trail)
	if len(garments) != 1 || garments[0].Quantity != 2 {
		t.Errorf("expected one garment with quantity 2, got %+v", garments)
	}
	if len(trail.msgs) != 1 {
		t.Errorf("expected one malformed-cell warning, got %v", trail.msgs)
	}
}

func TestBuild_DuplicateTypesStaySeparate(t *testing.T) {
	// GIVEN: Short-sleeve and regular polo columns, both positive
	// WHEN: Building for a kitchen occupation
	// THEN: Two separate POLO entries come out, not one merged entry

	b := newTestBuilder()
	row := EmployeeRow{
		Name:      "JUAN PEREZ",
		SizeUpper: "M",
		Quantities: map[string]string{
			"LIMA_ICA_PRODUCCION_POLO":             "1",
			"LIMA_ICA_PRODUCCION_POLO_MANGA_CORTA": "2",
		},
	}

	garments := b.Build("PRODUCCION", row, ColumnsFromRow(row.Quantities), newTrail())
	if len(garments) != 2 {
		t.Fatalf("expected 2 separate POLO entries, got %d", len(garments))
	}
	total := garments[0].Quantity + garments[1].Quantity
	if total != 3 {
		t.Errorf("expected quantities 1 and 2, got total %d", total)
	}
}

func TestBuild_SizesByClass(t *testing.T) {
	// GIVEN: Distinct upper and lower sizes on the row
	// WHEN: Building trousers and a jacket
	// THEN: Trousers take the lower size, the jacket the upper

	b := newTestBuilder()
	row := EmployeeRow{
		Name:      "JUAN PEREZ",
		SizeUpper: "m",
		SizeLower: "xl",
		Quantities: map[string]string{
			"LIMA_ICA_PRODUCCION_CHAQUETA": "1",
			"LIMA_ICA_PRODUCCION_PANTALON": "1",
		},
	}

	garments := b.Build("PRODUCCION", row, ColumnsFromRow(row.Quantities), newTrail())
	bySize := map[string]string{}
	for _, g := range garments {
		bySize[g.Type] = g.Size
	}
	if bySize["CHAQUETA"] != "M" {
		t.Errorf("expected CHAQUETA size M, got %q", bySize["CHAQUETA"])
	}
	if bySize["PANTALON"] != "XL" {
		t.Errorf("expected PANTALON size XL, got %q", bySize["PANTALON"])
	}
}

func TestBuild_LowerFallsBackToUpperSize(t *testing.T) {
	b := newTestBuilder()
	row := EmployeeRow{
		Name:       "JUAN PEREZ",
		SizeUpper:  "L",
		Quantities: map[string]string{"LIMA_ICA_PRODUCCION_PANTALON": "1"},
	}

	garments := b.Build("PRODUCCION", row, ColumnsFromRow(row.Quantities), newTrail())
	if len(garments) != 1 || garments[0].Size != "L" {
		t.Errorf("expected PANTALON to fall back to upper size L, got %+v", garments)
	}
}

// =============================================================================
// BUSINESS RULE TESTS
// =============================================================================

func TestApplyBusinessRules_MaleAdminGetsCorbata(t *testing.T) {
	// GIVEN: A male admin list without a necktie
	// WHEN: Applying the rules
	// THEN: One CORBATA with quantity 2 appears

	garments := ApplyBusinessRules("STAFF ADMINISTRATIVO (HOMBRE)", []ResolvedGarment{
		{Type: "CAMISA", Quantity: 2, Class: catalog.ClassUpper},
	}, quietLogger())

	var corbata *ResolvedGarment
	for i := range garments {
		if garments[i].Type == "CORBATA" {
			corbata = &garments[i]
		}
	}
	if corbata == nil {
		t.Fatal("expected CORBATA to be added")
	}
	if corbata.Quantity != 2 {
		t.Errorf("expected CORBATA quantity 2, got %d", corbata.Quantity)
	}
	if corbata.Class != catalog.ClassAccessory {
		t.Errorf("expected ACCESSORY class, got %s", corbata.Class)
	}
}

func TestApplyBusinessRules_CorbataQuantityCorrected(t *testing.T) {
	garments := ApplyBusinessRules("STAFF ADMINISTRATIVO (HOMBRE)", []ResolvedGarment{
		{Type: "CORBATA", Quantity: 5, Class: catalog.ClassAccessory},
	}, quietLogger())

	if len(garments) != 1 || garments[0].Quantity != 2 {
		t.Errorf("expected existing CORBATA corrected to 2, got %+v", garments)
	}
}

func TestApplyBusinessRules_FemaleAdminNoCorbata(t *testing.T) {
	garments := ApplyBusinessRules("STAFF ADMINISTRATIVO (MUJER)", []ResolvedGarment{
		{Type: "BLUSA", Quantity: 2, Class: catalog.ClassUpper},
	}, quietLogger())

	for _, g := range garments {
		if g.Type == "CORBATA" {
			t.Error("female admin must not receive a necktie")
		}
	}
}

func TestApplyBusinessRules_SacoCapped(t *testing.T) {
	// The blazer cap applies to every occupation, not only admins.
	garments := ApplyBusinessRules("SEGURIDAD", []ResolvedGarment{
		{Type: "SACO", Quantity: 3, Class: catalog.ClassUpper},
	}, quietLogger())

	if garments[0].Quantity != 1 {
		t.Errorf("expected SACO capped at 1, got %d", garments[0].Quantity)
	}
}

func TestApplyBusinessRules_Idempotent(t *testing.T) {
	// GIVEN: A list the rules already processed
	// WHEN: Applying them again
	// THEN: Nothing changes

	once := ApplyBusinessRules("STAFF ADMINISTRATIVO (HOMBRE)", []ResolvedGarment{
		{Type: "CAMISA", Quantity: 2, Class: catalog.ClassUpper},
		{Type: "SACO", Quantity: 2, Class: catalog.ClassUpper},
	}, quietLogger())
	twice := ApplyBusinessRules("STAFF ADMINISTRATIVO (HOMBRE)", append([]ResolvedGarment(nil), once...), quietLogger())

	if len(once) != len(twice) {
		t.Fatalf("rule application not idempotent: %d then %d garments", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("garment %d changed on second application: %+v vs %+v", i, once[i], twice[i])
		}
	}
}
