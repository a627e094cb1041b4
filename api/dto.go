/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Catalog payloads
  reuse the factory schema so the API and the configuration file stay
  in sync; quote payloads mirror the engine's row and result types.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/catalog.go: Catalog JSON schema reused for catalog payloads
*/
package api

// =============================================================================
// QUOTE DTOs
// =============================================================================

// QuoteRequest is one employee row to price.
type QuoteRequest struct {
	Name       string            `json:"name"`
	Document   string            `json:"document,omitempty"`
	Occupation string            `json:"occupation"`
	SizeUpper  string            `json:"size_upper,omitempty"`
	SizeLower  string            `json:"size_lower,omitempty"`
	Location   string            `json:"location,omitempty"`
	Quantities map[string]string `json:"quantities"`
}

// QuoteLineDTO is one priced garment line.
type QuoteLineDTO struct {
	GarmentType string `json:"garment_type"`
	DisplayName string `json:"display_name"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size,omitempty"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// QuoteResponse is the priced result for one employee.
type QuoteResponse struct {
	Name       string         `json:"name"`
	Occupation string         `json:"occupation"`
	Garments   []QuoteLineDTO `json:"garments"`
	Total      string         `json:"total"`
	Sets       int            `json:"sets"`
	Warnings   []string       `json:"warnings"`
}

// BatchQuoteRequest prices several rows in one call.
type BatchQuoteRequest struct {
	Rows    []QuoteRequest `json:"rows"`
	Workers int            `json:"workers,omitempty"`
}

// BatchQuoteResponse carries the run identifier and one result per
// input row, in input order.
type BatchQuoteResponse struct {
	RunID   string          `json:"run_id"`
	Results []QuoteResponse `json:"results"`
}

// RenderedLineDTO is one printed entry of an authorization list.
type RenderedLineDTO struct {
	Label    string `json:"label"` // e.g. "Camisa Talla M"
	Quantity int    `json:"quantity"`
}

// RepriceRequest re-totals an edited authorization garment list.
type RepriceRequest struct {
	Occupation string            `json:"occupation"`
	Location   string            `json:"location,omitempty"`
	Lines      []RenderedLineDTO `json:"lines"`
}

// SheetQuoteDTO is the priced output of one workbook sheet.
type SheetQuoteDTO struct {
	Sheet         string          `json:"sheet"`
	Store         string          `json:"store,omitempty"`
	RequestDate   string          `json:"request_date,omitempty"`
	Administrator string          `json:"administrator,omitempty"`
	RunID         string          `json:"run_id"`
	Warnings      []string        `json:"warnings"`
	Results       []QuoteResponse `json:"results"`
}

// WorkbookQuoteResponse prices every sheet of an uploaded workbook.
type WorkbookQuoteResponse struct {
	Sheets []SheetQuoteDTO `json:"sheets"`
}

// =============================================================================
// CATALOG MUTATION DTOs
// =============================================================================

// SynonymRequest adds a synonym to an occupation.
type SynonymRequest struct {
	Synonym string `json:"synonym"`
}

// PriceRequest sets one cell of a garment's price matrix.
type PriceRequest struct {
	Size     string `json:"size"`     // SML, XL, XXL
	Location string `json:"location"` // OTHER, TARAPOTO, SAN_ISIDRO
	Price    string `json:"price"`
}

// DefaultsRequest updates catalog-wide fallbacks.
type DefaultsRequest struct {
	DefaultOccupation string `json:"default_occupation,omitempty"`
	DefaultLocalGroup string `json:"default_local_group,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
