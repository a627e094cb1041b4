package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/uniform-engine/api"
	"github.com/warp/uniform-engine/catalog/store"
	"github.com/warp/uniform-engine/factory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	mem := store.NewMemory()
	h := api.NewHandler(mem, log)
	require.NoError(t, h.LoadCatalog(context.Background()))

	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, mem
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// =============================================================================
// CATALOG ENDPOINT TESTS
// =============================================================================

func TestGetCatalog_SeedsPresets(t *testing.T) {
	// An empty store comes up seeded with the preset catalog.
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := decode[factory.CatalogJSON](t, resp)
	assert.NotEmpty(t, doc.Occupations)
	assert.Equal(t, "MOZO", doc.DefaultOccupation)
}

func TestOccupationCRUD(t *testing.T) {
	srv, mem := newTestServer(t)

	// Create.
	resp := do(t, http.MethodPost, srv.URL+"/api/occupations", factory.OccupationJSON{
		Name:     "LAVAPLATOS",
		Synonyms: []string{"STEWARD"},
		Prendas: []factory.GarmentJSON{
			{PrendaType: "MANDILON", IsPrimary: true, PriceSMLOther: 18.00},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Read back by synonym.
	resp = do(t, http.MethodGet, srv.URL+"/api/occupations/STEWARD", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	occ := decode[factory.OccupationJSON](t, resp)
	assert.Equal(t, "LAVAPLATOS", occ.Name)

	// Duplicate create conflicts.
	resp = do(t, http.MethodPost, srv.URL+"/api/occupations", factory.OccupationJSON{Name: "LAVAPLATOS"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Mutation reached the persistent store, not only the snapshot.
	stored, err := mem.Load(context.Background())
	require.NoError(t, err)
	_, found := stored.Lookup("LAVAPLATOS")
	assert.True(t, found)

	// Delete.
	resp = do(t, http.MethodDelete, srv.URL+"/api/occupations/LAVAPLATOS", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/occupations/LAVAPLATOS", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSynonymEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/occupations/MOZO/synonyms", api.SynonymRequest{Synonym: "GARZON"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/occupations/GARZON", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Attaching a synonym that belongs elsewhere conflicts.
	resp = do(t, http.MethodPost, srv.URL+"/api/occupations/DELIVERY/synonyms", api.SynonymRequest{Synonym: "GARZON"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/occupations/MOZO/synonyms/GARZON", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/occupations/GARZON", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetPrice(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/api/occupations/MOZO/garments/CAMISA/price", api.PriceRequest{
		Size: "XL", Location: "TARAPOTO", Price: "23.75",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/occupations/MOZO", nil)
	occ := decode[factory.OccupationJSON](t, resp)
	var camisa *factory.GarmentJSON
	for i := range occ.Prendas {
		if occ.Prendas[i].PrendaType == "CAMISA" {
			camisa = &occ.Prendas[i]
		}
	}
	require.NotNil(t, camisa)
	assert.InDelta(t, 23.75, camisa.PriceXLTarapoto, 0.001)

	// Bad bucket names are rejected before touching the catalog.
	resp = do(t, http.MethodPut, srv.URL+"/api/occupations/MOZO/garments/CAMISA/price", api.PriceRequest{
		Size: "GIGANTE", Location: "TARAPOTO", Price: "10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetCatalog(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodDelete, srv.URL+"/api/occupations/MOZO", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/catalog/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/occupations/MOZO", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// =============================================================================
// QUOTE ENDPOINT TESTS
// =============================================================================

func TestQuote(t *testing.T) {
	// GIVEN: A waiter requesting 2 shirts size M in the Lima region
	// WHEN: Quoting
	// THEN: Total 37.00, sets 2, priced lines

	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/quote", api.QuoteRequest{
		Name:       "JUAN PEREZ",
		Occupation: "MOZO",
		SizeUpper:  "M",
		Location:   "LIMA E ICA PROVINCIA",
		Quantities: map[string]string{"LIMA_ICA_SALON_CAMISA": "2"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	quote := decode[api.QuoteResponse](t, resp)
	assert.Equal(t, "MOZO", quote.Occupation)
	assert.Equal(t, "37.00", quote.Total)
	assert.Equal(t, 2, quote.Sets)
	require.Len(t, quote.Garments, 1)
	assert.Equal(t, "18.50", quote.Garments[0].UnitPrice)
	assert.Equal(t, "37.00", quote.Garments[0].LineTotal)
	assert.Empty(t, quote.Warnings)
}

func TestQuoteBatch(t *testing.T) {
	srv, _ := newTestServer(t)

	req := api.BatchQuoteRequest{Workers: 3}
	for i := 0; i < 6; i++ {
		req.Rows = append(req.Rows, api.QuoteRequest{
			Name:       "EMPLOYEE",
			Occupation: "MOZO",
			SizeUpper:  "M",
			Location:   "LIMA",
			Quantities: map[string]string{"LIMA_ICA_SALON_CAMISA": "1"},
		})
	}

	resp := do(t, http.MethodPost, srv.URL+"/api/quote/batch", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	batch := decode[api.BatchQuoteResponse](t, resp)
	assert.NotEmpty(t, batch.RunID)
	require.Len(t, batch.Results, 6)
	for _, r := range batch.Results {
		assert.Equal(t, "18.50", r.Total)
	}
}

func TestReprice(t *testing.T) {
	// GIVEN: A printed authorization list whose quantities were edited
	// WHEN: Posting it to the reprice endpoint
	// THEN: Labels turn back into priced lines and the total is fresh

	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/quote/reprice", api.RepriceRequest{
		Occupation: "MOZO",
		Location:   "LIMA E ICA PROVINCIA",
		Lines: []api.RenderedLineDTO{
			{Label: "Camisa Talla M", Quantity: 2},
			{Label: "Mandilon", Quantity: 0},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	quote := decode[api.QuoteResponse](t, resp)
	assert.Equal(t, "MOZO", quote.Occupation)
	assert.Equal(t, "37.00", quote.Total)
	assert.Equal(t, 2, quote.Sets)
	require.Len(t, quote.Garments, 1)
	assert.Equal(t, "18.50", quote.Garments[0].UnitPrice)
	assert.Equal(t, "M", quote.Garments[0].Size)
}

func TestQuoteWorkbook(t *testing.T) {
	// GIVEN: A request workbook with one sheet, metadata, and two rows
	// WHEN: Posting the raw .xlsx to the workbook quote endpoint
	// THEN: Every row of the sheet comes back priced under one run ID

	srv, _ := newTestServer(t)

	f := excelize.NewFile()
	cells := map[string]string{
		"C3": "15/01/2026",
		"C4": "LIMA E ICA PROVINCIA",
		"C5": "PATRICIA SOTO",

		"B8": "APELLIDOS Y NOMBRES",
		"C8": "DNI",
		"D8": "CARGO",
		"H8": "TALLA SUPERIOR",
		"I8": "TALLA INFERIOR",
		"J8": "LIMA_ICA_SALON_CAMISA",

		"B9": "PEREZ GOMEZ, JUAN",
		"D9": "MOZO",
		"H9": "M",
		"J9": "2",

		"B10": "QUISPE ROJAS, ROSA",
		"D10": "MESERO",
		"H10": "S",
		"J10": "1",
	}
	for ref, value := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/quote/workbook", "application/octet-stream", buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wb := decode[api.WorkbookQuoteResponse](t, resp)
	require.Len(t, wb.Sheets, 1)

	sheet := wb.Sheets[0]
	assert.Equal(t, "Sheet1", sheet.Sheet)
	assert.Equal(t, "LIMA E ICA PROVINCIA", sheet.Store)
	assert.NotEmpty(t, sheet.RunID)
	require.Len(t, sheet.Results, 2)

	assert.Equal(t, "MOZO", sheet.Results[0].Occupation)
	assert.Equal(t, "37.00", sheet.Results[0].Total)
	assert.Equal(t, "MOZO", sheet.Results[1].Occupation)
	assert.Equal(t, "18.50", sheet.Results[1].Total)
}

func TestQuoteWorkbook_RejectsGarbage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/quote/workbook", "application/octet-stream",
		bytes.NewBufferString("not a workbook"))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
