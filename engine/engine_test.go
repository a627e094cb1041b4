package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
	"github.com/warp/uniform-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	opts = append([]engine.Option{engine.WithLogger(log)}, opts...)
	return engine.New(catalog.DefaultCatalog(), opts...)
}

func waiterRow(name string) engine.EmployeeRow {
	return engine.EmployeeRow{
		Name:          name,
		Document:      "45678912",
		RawOccupation: "MOZO",
		SizeUpper:     "M",
		Location:      "LIMA E ICA PROVINCIA",
		Quantities: map[string]string{
			"LIMA_ICA_SALON_CAMISA": "2",
		},
	}
}

// =============================================================================
// PROCESS TESTS
// =============================================================================

func TestProcess_Waiter(t *testing.T) {
	// GIVEN: A waiter requesting 2 shirts size M in the Lima region
	// WHEN: Processing the row
	// THEN: Total 37.00, sets 2, no warnings

	e := newTestEngine(t)
	res := e.Process(waiterRow("JUAN PEREZ"))

	if res.Occupation != "MOZO" {
		t.Errorf("expected MOZO, got %s", res.Occupation)
	}
	if !res.Total.Equal(decimal.RequireFromString("37.00")) {
		t.Errorf("expected total 37.00, got %v", res.Total)
	}
	if res.Sets != 2 {
		t.Errorf("expected 2 sets, got %d", res.Sets)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected clean row, got warnings %v", res.Warnings)
	}
	if len(res.Garments) != 1 || res.Garments[0].Label() != "Camisa Talla M" {
		t.Errorf("unexpected garments %+v", res.Garments)
	}
}

func TestProcess_SynonymAndOtherGroupsIgnored(t *testing.T) {
	// GIVEN: A MESERO row whose sheet also carries a delivery column
	// WHEN: Processing
	// THEN: The synonym resolves and the delivery column is ignored

	e := newTestEngine(t)
	res := e.Process(engine.EmployeeRow{
		Name:          "ROSA QUISPE",
		RawOccupation: "MESERO",
		SizeUpper:     "S",
		Location:      "TARAPOTO",
		Quantities: map[string]string{
			"LIMA_ICA_SALON_CAMISA":   "1",
			"LIMA_ICA_DELIVERY_POLO":  "3",
			"LIMA_ICA_DELIVERY_GORRA": "1",
		},
	})

	if res.Occupation != "MOZO" {
		t.Errorf("expected MOZO via synonym, got %s", res.Occupation)
	}
	if len(res.Garments) != 1 || res.Garments[0].Type != "CAMISA" {
		t.Errorf("expected only the CAMISA column, got %+v", res.Garments)
	}
	// CAMISA S at TARAPOTO is 19.50.
	if !res.Total.Equal(decimal.RequireFromString("19.50")) {
		t.Errorf("expected 19.50, got %v", res.Total)
	}
}

func TestProcess_UnknownOccupationDegrades(t *testing.T) {
	// Unknown titles never fail the row: the garments build, the total
	// degrades to zero, and the warnings say why.
	e := newTestEngine(t)
	res := e.Process(engine.EmployeeRow{
		Name:          "PEDRO RAMOS",
		RawOccupation: "GERENTE GENERAL",
		SizeUpper:     "L",
		Location:      "LIMA",
		Quantities:    map[string]string{"LIMA_ICA_SALON_CAMISA": "2"},
	})

	if res.Occupation != "GERENTE GENERAL" {
		t.Errorf("expected pass-through, got %s", res.Occupation)
	}
	if !res.Total.IsZero() {
		t.Errorf("expected zero total, got %v", res.Total)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected warnings for unknown occupation")
	}
}

func TestProcess_MaleAdminCorbata(t *testing.T) {
	// GIVEN: A male admin requesting shirts but no necktie column
	// WHEN: Processing
	// THEN: The necktie rule adds 2 CORBATA and the total includes them

	e := newTestEngine(t)
	res := e.Process(engine.EmployeeRow{
		Name:          "CARLOS DIAZ",
		RawOccupation: "STAFF ADMINISTRATIVO (HOMBRE)",
		SizeUpper:     "M",
		Location:      "LIMA",
		Quantities:    map[string]string{"LIMA_ICA_ADMINISTRACION_CAMISA": "2"},
	})

	var corbata int
	for _, g := range res.Garments {
		if g.Type == "CORBATA" {
			corbata = g.Quantity
		}
	}
	if corbata != 2 {
		t.Fatalf("expected CORBATA quantity 2, got %d", corbata)
	}
	// 2 x 18.50 shirts + 2 x 10.00 neckties.
	if !res.Total.Equal(decimal.RequireFromString("57.00")) {
		t.Errorf("expected 57.00, got %v", res.Total)
	}
}

// =============================================================================
// REPRICE TESTS
// =============================================================================

func TestReprice_RenderedList(t *testing.T) {
	// GIVEN: An authorization list as it was printed, quantities edited
	// WHEN: Re-pricing for MOZO in the Lima region
	// THEN: Types and sizes read back from the labels; total and sets
	//       match a fresh quote

	e := newTestEngine(t)
	res := e.Reprice("MOZO", []engine.RenderedLine{
		{Label: "Camisa Talla M", Quantity: 2},
		{Label: "Mandilon", Quantity: 0},
	}, "LIMA E ICA PROVINCIA")

	if res.Occupation != "MOZO" {
		t.Errorf("expected MOZO, got %s", res.Occupation)
	}
	if !res.Total.Equal(decimal.RequireFromString("37.00")) {
		t.Errorf("expected total 37.00, got %v", res.Total)
	}
	if res.Sets != 2 {
		t.Errorf("expected 2 sets, got %d", res.Sets)
	}
	if len(res.Garments) != 1 {
		t.Fatalf("expected the zero-quantity line dropped, got %v", res.Garments)
	}
	if res.Garments[0].Size != "M" {
		t.Errorf("expected size M from label, got %q", res.Garments[0].Size)
	}
}

func TestReprice_SizelessLabelDefaultsToM(t *testing.T) {
	// A label without a size marker prices in the SML bucket.
	e := newTestEngine(t)
	res := e.Reprice("MOZO", []engine.RenderedLine{
		{Label: "Camisa", Quantity: 1},
	}, "LIMA")

	if !res.Total.Equal(decimal.RequireFromString("18.50")) {
		t.Errorf("expected 18.50, got %v", res.Total)
	}
}

func TestReprice_SynonymOccupation(t *testing.T) {
	e := newTestEngine(t)
	res := e.Reprice("MESERO", []engine.RenderedLine{
		{Label: "Camisa Talla XL", Quantity: 1},
	}, "TARAPOTO")

	if res.Occupation != "MOZO" {
		t.Errorf("expected synonym to normalize to MOZO, got %s", res.Occupation)
	}
	if !res.Total.Equal(decimal.RequireFromString("21.00")) {
		t.Errorf("expected XL/TARAPOTO price 21.00, got %v", res.Total)
	}
}

// =============================================================================
// BATCH TESTS
// =============================================================================

func TestProcessBatch_OrderPreserved(t *testing.T) {
	// GIVEN: 20 rows processed across 4 workers
	// WHEN: Batch processing
	// THEN: Results land at their input index regardless of scheduling

	e := newTestEngine(t)
	rows := make([]engine.EmployeeRow, 20)
	for i := range rows {
		rows[i] = waiterRow(fmt.Sprintf("EMPLOYEE %02d", i))
	}

	batch := e.ProcessBatch(context.Background(), rows, 4)
	if batch.RunID == "" {
		t.Error("expected a run identifier")
	}
	if len(batch.Results) != len(rows) {
		t.Fatalf("expected %d results, got %d", len(rows), len(batch.Results))
	}
	for i, res := range batch.Results {
		if res.Name != rows[i].Name {
			t.Errorf("result %d belongs to %s", i, res.Name)
		}
		if !res.Total.Equal(decimal.RequireFromString("37.00")) {
			t.Errorf("result %d total %v", i, res.Total)
		}
	}
}

func TestProcessBatch_CanceledContext(t *testing.T) {
	// A canceled context stops dispatching; the call still returns with
	// zero values for unprocessed rows instead of hanging.
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []engine.EmployeeRow{waiterRow("A"), waiterRow("B")}
	batch := e.ProcessBatch(ctx, rows, 2)
	if len(batch.Results) != 2 {
		t.Errorf("expected index-aligned result slice, got %d", len(batch.Results))
	}
}

func TestProcessBatch_ZeroWorkers(t *testing.T) {
	e := newTestEngine(t)
	batch := e.ProcessBatch(context.Background(), []engine.EmployeeRow{waiterRow("A")}, 0)
	if len(batch.Results) != 1 || batch.Results[0].Occupation != "MOZO" {
		t.Errorf("expected one processed result, got %+v", batch.Results)
	}
}
