/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/catalog/*        Catalog document and defaults
  /api/occupations/*    Occupation, garment, synonym, price management
  /api/quote            Pricing

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog routes
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.GetCatalog)
			r.Put("/", h.ReplaceCatalog)
			r.Post("/reset", h.ResetCatalog)
			r.Put("/defaults", h.UpdateDefaults)
		})

		// Occupation routes
		r.Route("/occupations", func(r chi.Router) {
			r.Get("/", h.ListOccupations)
			r.Post("/", h.CreateOccupation)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", h.GetOccupation)
				r.Put("/", h.UpdateOccupation)
				r.Delete("/", h.DeleteOccupation)

				r.Post("/synonyms", h.AddSynonym)
				r.Delete("/synonyms/{synonym}", h.RemoveSynonym)

				r.Route("/garments", func(r chi.Router) {
					r.Post("/", h.CreateGarment)
					r.Put("/{type}", h.UpdateGarment)
					r.Delete("/{type}", h.DeleteGarment)
					r.Put("/{type}/price", h.SetPrice)
				})
			})
		})

		// Quote routes
		r.Route("/quote", func(r chi.Router) {
			r.Post("/", h.Quote)
			r.Post("/batch", h.QuoteBatch)
			r.Post("/reprice", h.Reprice)
			r.Post("/workbook", h.QuoteWorkbook)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}
