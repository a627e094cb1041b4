/*
handlers.go - HTTP API handlers for the uniform pricing engine

PURPOSE:
  Exposes catalog management and pricing via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Catalog:
    GET    /api/catalog                  Full catalog document
    PUT    /api/catalog                  Replace the catalog
    POST   /api/catalog/reset            Restore the built-in presets
    PUT    /api/catalog/defaults         Update fallback occupation/location

  Occupations:
    GET    /api/occupations              List occupations
    POST   /api/occupations              Add occupation
    GET    /api/occupations/{name}       Get one occupation
    PUT    /api/occupations/{name}       Update occupation
    DELETE /api/occupations/{name}       Delete occupation (garments cascade)
    POST   /api/occupations/{name}/synonyms           Add synonym
    DELETE /api/occupations/{name}/synonyms/{synonym} Remove synonym
    POST   /api/occupations/{name}/garments           Add garment
    PUT    /api/occupations/{name}/garments/{type}    Update garment
    DELETE /api/occupations/{name}/garments/{type}    Delete garment
    PUT    /api/occupations/{name}/garments/{type}/price  Set one price cell

  Quotes:
    POST   /api/quote                    Price one employee row
    POST   /api/quote/batch              Price many rows concurrently
    POST   /api/quote/reprice            Re-total a rendered garment list
    POST   /api/quote/workbook           Price an uploaded request workbook

ARCHITECTURE:
  Handler holds the persistent store and an atomic pointer to the
  current catalog. Reads and quotes run lock-free against the current
  snapshot; every mutation clones the snapshot, applies the change,
  persists it, then swaps the pointer. A mutation that fails to persist
  leaves the previous snapshot in place.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Occupation or garment not found
  - 409: Duplicate occupation, garment, or synonym
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
	"github.com/warp/uniform-engine/engine"
	"github.com/warp/uniform-engine/factory"
	"github.com/warp/uniform-engine/xlsxsource"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   catalog.Store
	Factory *factory.CatalogFactory

	log     logrus.FieldLogger
	current atomic.Pointer[catalog.Catalog]

	// Mutations are serialized so concurrent clone-mutate-save cycles
	// cannot lose each other's writes.
	mu sync.Mutex
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store catalog.Store, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:   store,
		Factory: factory.NewCatalogFactory(log),
		log:     log,
	}
}

// LoadCatalog loads the catalog from the store into the live snapshot.
// An empty store is seeded with the built-in presets.
func (h *Handler) LoadCatalog(ctx context.Context) error {
	cat, err := h.Store.Load(ctx)
	if err != nil {
		return err
	}
	if len(cat.Occupations) == 0 {
		cat = catalog.DefaultCatalog()
		if err := h.Store.Save(ctx, cat); err != nil {
			return err
		}
		h.log.Info("empty store seeded with preset catalog")
	}
	h.current.Store(cat)
	return nil
}

// Catalog returns the live snapshot, loading it lazily on first use.
func (h *Handler) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	if cat := h.current.Load(); cat != nil {
		return cat, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if cat := h.current.Load(); cat != nil {
		return cat, nil
	}
	if err := h.LoadCatalog(ctx); err != nil {
		return nil, err
	}
	return h.current.Load(), nil
}

// mutate clones the live catalog, applies fn, persists the result, and
// swaps the snapshot. Domain errors from fn map to HTTP statuses.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(cat *catalog.Catalog) error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur := h.current.Load()
	if cur == nil {
		if err := h.LoadCatalog(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
			return false
		}
		cur = h.current.Load()
	}

	next := cur.Clone()
	if err := fn(next); err != nil {
		writeError(w, statusFor(err), "Catalog update rejected", err)
		return false
	}
	if errs := next.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Catalog update rejected", errors.Join(errs...))
		return false
	}
	if err := h.Store.Save(r.Context(), next); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist catalog", err)
		return false
	}
	h.current.Store(next)
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrOccupationNotFound),
		errors.Is(err, catalog.ErrGarmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrOccupationExists),
		errors.Is(err, catalog.ErrGarmentExists),
		errors.Is(err, catalog.ErrSynonymExists):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// GetCatalog returns the full catalog document.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.Render(cat))
}

// ReplaceCatalog replaces the whole catalog with the posted document.
func (h *Handler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	var doc factory.CatalogJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	parsed := h.Factory.Parse(doc)
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		*cat = *parsed
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, h.Factory.Render(h.current.Load()))
	}
}

// ResetCatalog restores the built-in presets.
func (h *Handler) ResetCatalog(w http.ResponseWriter, r *http.Request) {
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		*cat = *catalog.DefaultCatalog()
		return nil
	})
	if ok {
		h.log.Info("catalog reset to presets")
		writeJSON(w, http.StatusOK, h.Factory.Render(h.current.Load()))
	}
}

// UpdateDefaults updates the fallback occupation and location.
func (h *Handler) UpdateDefaults(w http.ResponseWriter, r *http.Request) {
	var req DefaultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		if req.DefaultOccupation != "" {
			name := strings.ToUpper(strings.TrimSpace(req.DefaultOccupation))
			if _, found := cat.Lookup(name); !found {
				return catalog.ErrOccupationNotFound
			}
			cat.DefaultOccupation = name
		}
		if req.DefaultLocalGroup != "" {
			cat.DefaultLocation = strings.ToUpper(strings.TrimSpace(req.DefaultLocalGroup))
		}
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, DefaultsRequest{
			DefaultOccupation: h.current.Load().DefaultOccupation,
			DefaultLocalGroup: h.current.Load().DefaultLocation,
		})
	}
}

// =============================================================================
// OCCUPATION HANDLERS
// =============================================================================

// ListOccupations returns all occupations.
func (h *Handler) ListOccupations(w http.ResponseWriter, r *http.Request) {
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	dtos := make([]factory.OccupationJSON, 0, len(cat.Occupations))
	for _, occ := range cat.Occupations {
		dtos = append(dtos, h.Factory.RenderOccupation(occ))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetOccupation returns one occupation by name or synonym.
func (h *Handler) GetOccupation(w http.ResponseWriter, r *http.Request) {
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	occ, found := cat.Lookup(chi.URLParam(r, "name"))
	if !found {
		writeError(w, http.StatusNotFound, "Occupation not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.RenderOccupation(*occ))
}

// CreateOccupation adds a new occupation.
func (h *Handler) CreateOccupation(w http.ResponseWriter, r *http.Request) {
	var doc factory.OccupationJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	occ, valid := h.Factory.ParseOccupation(doc)
	if !valid {
		writeError(w, http.StatusBadRequest, "Occupation name is required", nil)
		return
	}
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.AddOccupation(occ)
	})
	if ok {
		writeJSON(w, http.StatusCreated, h.Factory.RenderOccupation(occ))
	}
}

// UpdateOccupation replaces an occupation's definition.
func (h *Handler) UpdateOccupation(w http.ResponseWriter, r *http.Request) {
	var doc factory.OccupationJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	doc.Name = chi.URLParam(r, "name")
	occ, valid := h.Factory.ParseOccupation(doc)
	if !valid {
		writeError(w, http.StatusBadRequest, "Occupation name is required", nil)
		return
	}
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.UpdateOccupation(occ)
	})
	if ok {
		writeJSON(w, http.StatusOK, h.Factory.RenderOccupation(occ))
	}
}

// DeleteOccupation removes an occupation and all its garments.
func (h *Handler) DeleteOccupation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.DeleteOccupation(name)
	})
	if ok {
		w.WriteHeader(http.StatusNoContent)
	}
}

// AddSynonym attaches a synonym to an occupation.
func (h *Handler) AddSynonym(w http.ResponseWriter, r *http.Request) {
	var req SynonymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	name := chi.URLParam(r, "name")
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.AddSynonym(name, req.Synonym)
	})
	if ok {
		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveSynonym detaches a synonym from an occupation.
func (h *Handler) RemoveSynonym(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	synonym := chi.URLParam(r, "synonym")
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.RemoveSynonym(name, synonym)
	})
	if ok {
		w.WriteHeader(http.StatusNoContent)
	}
}

// =============================================================================
// GARMENT HANDLERS
// =============================================================================

// CreateGarment adds a garment to an occupation.
func (h *Handler) CreateGarment(w http.ResponseWriter, r *http.Request) {
	var doc factory.GarmentJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	spec, valid := h.Factory.ParseGarment(doc)
	if !valid {
		writeError(w, http.StatusBadRequest, "prenda_type is required", nil)
		return
	}
	name := chi.URLParam(r, "name")
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.AddGarment(name, spec)
	})
	if ok {
		writeJSON(w, http.StatusCreated, factory.RenderGarment(spec))
	}
}

// UpdateGarment replaces a garment's spec.
func (h *Handler) UpdateGarment(w http.ResponseWriter, r *http.Request) {
	var doc factory.GarmentJSON
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	doc.PrendaType = chi.URLParam(r, "type")
	spec, valid := h.Factory.ParseGarment(doc)
	if !valid {
		writeError(w, http.StatusBadRequest, "prenda_type is required", nil)
		return
	}
	name := chi.URLParam(r, "name")
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.UpdateGarment(name, spec)
	})
	if ok {
		writeJSON(w, http.StatusOK, factory.RenderGarment(spec))
	}
}

// DeleteGarment removes a garment from an occupation.
func (h *Handler) DeleteGarment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	garmentType := chi.URLParam(r, "type")
	ok := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.DeleteGarment(name, garmentType)
	})
	if ok {
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetPrice updates a single cell of a garment's price matrix.
func (h *Handler) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	size, ok := parseSizeBucket(req.Size)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown size bucket", nil)
		return
	}
	loc, ok := parseLocationBucket(req.Location)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown location bucket", nil)
		return
	}
	name := chi.URLParam(r, "name")
	garmentType := chi.URLParam(r, "type")
	saved := h.mutate(w, r, func(cat *catalog.Catalog) error {
		return cat.SetPrice(name, garmentType, size, loc, req.Price)
	})
	if saved {
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseSizeBucket(s string) (catalog.SizeBucket, bool) {
	v := catalog.SizeBucket(strings.ToUpper(strings.TrimSpace(s)))
	for _, b := range catalog.SizeBuckets {
		if v == b {
			return b, true
		}
	}
	return "", false
}

func parseLocationBucket(s string) (catalog.LocationBucket, bool) {
	v := catalog.LocationBucket(strings.ToUpper(strings.TrimSpace(s)))
	for _, b := range catalog.LocationBuckets {
		if v == b {
			return b, true
		}
	}
	return "", false
}

// =============================================================================
// QUOTE HANDLERS
// =============================================================================

// Quote prices one employee row against the live catalog.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	eng := engine.New(cat, engine.WithLogger(h.log))
	result := eng.Process(rowFromQuote(req))
	writeJSON(w, http.StatusOK, toQuoteResponse(cat, result, req.Location, h.log))
}

// QuoteBatch prices several rows concurrently.
func (h *Handler) QuoteBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	rows := make([]engine.EmployeeRow, len(req.Rows))
	for i, q := range req.Rows {
		rows[i] = rowFromQuote(q)
	}
	eng := engine.New(cat, engine.WithLogger(h.log))
	batch := eng.ProcessBatch(r.Context(), rows, req.Workers)

	resp := BatchQuoteResponse{
		RunID:   batch.RunID,
		Results: make([]QuoteResponse, len(batch.Results)),
	}
	for i, res := range batch.Results {
		resp.Results[i] = toQuoteResponse(cat, res, req.Rows[i].Location, h.log)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reprice totals an edited authorization garment list against the live
// catalog. Garment types and sizes are read back out of the rendered
// labels, so a list tweaked by hand gets a fresh total.
func (h *Handler) Reprice(w http.ResponseWriter, r *http.Request) {
	var req RepriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}
	lines := make([]engine.RenderedLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = engine.RenderedLine{Label: l.Label, Quantity: l.Quantity}
	}
	eng := engine.New(cat, engine.WithLogger(h.log))
	result := eng.Reprice(req.Occupation, lines, req.Location)
	writeJSON(w, http.StatusOK, toQuoteResponse(cat, result, req.Location, h.log))
}

// QuoteWorkbook parses an uploaded request workbook and prices every
// row of every sheet. The request body is the raw .xlsx file.
func (h *Handler) QuoteWorkbook(w http.ResponseWriter, r *http.Request) {
	sheets, err := xlsxsource.New(h.log).Load(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workbook", err)
		return
	}
	cat, err := h.Catalog(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	workers, _ := strconv.Atoi(r.URL.Query().Get("workers"))
	eng := engine.New(cat, engine.WithLogger(h.log))

	resp := WorkbookQuoteResponse{Sheets: make([]SheetQuoteDTO, 0, len(sheets))}
	for _, sheet := range sheets {
		batch := eng.ProcessBatch(r.Context(), sheet.Rows, workers)
		dto := SheetQuoteDTO{
			Sheet:         sheet.Name,
			Store:         sheet.Store,
			RequestDate:   sheet.RequestDate,
			Administrator: sheet.Administrator,
			RunID:         batch.RunID,
			Warnings:      sheet.Warnings,
			Results:       make([]QuoteResponse, len(batch.Results)),
		}
		if dto.Warnings == nil {
			dto.Warnings = []string{}
		}
		for i, res := range batch.Results {
			dto.Results[i] = toQuoteResponse(cat, res, sheet.Rows[i].Location, h.log)
		}
		resp.Sheets = append(resp.Sheets, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

func rowFromQuote(q QuoteRequest) engine.EmployeeRow {
	return engine.EmployeeRow{
		Name:          q.Name,
		Document:      q.Document,
		RawOccupation: q.Occupation,
		SizeUpper:     q.SizeUpper,
		SizeLower:     q.SizeLower,
		Location:      q.Location,
		Quantities:    q.Quantities,
	}
}

func toQuoteResponse(cat *catalog.Catalog, res engine.Result, location string, log logrus.FieldLogger) QuoteResponse {
	pricer := engine.NewPricer(cat, log)
	resp := QuoteResponse{
		Name:       res.Name,
		Occupation: res.Occupation,
		Garments:   make([]QuoteLineDTO, len(res.Garments)),
		Total:      res.Total.StringFixed(2),
		Sets:       res.Sets,
		Warnings:   res.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	for i, g := range res.Garments {
		unit := pricer.Unit(res.Occupation, g, location)
		resp.Garments[i] = QuoteLineDTO{
			GarmentType: g.Type,
			DisplayName: g.Label(),
			Quantity:    g.Quantity,
			Size:        g.Size,
			UnitPrice:   unit.StringFixed(2),
			LineTotal:   unit.Mul(decimal.NewFromInt(int64(g.Quantity))).StringFixed(2),
		}
	}
	return resp
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
