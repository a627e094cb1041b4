/*
engine.go - The engine facade and batch processing

PURPOSE:
  Wires the pipeline together: one Process call per employee row, and a
  ProcessBatch that fans rows out across workers. The engine holds a
  single immutable catalog snapshot for its lifetime; administrative
  mutation happens on a clone elsewhere and a new Engine (or swapped
  snapshot) picks it up between batches.

CONCURRENCY:
  Process is pure over its inputs and the snapshot; the only shared
  mutable state is the resolver's gender-prompt cache, which carries
  its own mutex. Rows therefore process safely in parallel. Batches are
  bounded by the fixed column table (about 70 columns per row), so no
  per-row cancellation exists; ProcessBatch checks the context between
  rows only.
*/
package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// Engine processes employee rows against one catalog snapshot.
type Engine struct {
	catalog  *catalog.Catalog
	columns  []ColumnDescriptor
	resolver *Resolver
	builder  *Builder
	pricer   *Pricer
	log      logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithColumns replaces the default fixed column table.
func WithColumns(columns []ColumnDescriptor) Option {
	return func(e *Engine) { e.columns = columns }
}

// WithGenderPrompt installs the callback for ambiguous gendered titles.
func WithGenderPrompt(prompt GenderPrompt) Option {
	return func(e *Engine) { e.resolver.prompt = prompt }
}

// WithLogger replaces the standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = log
		e.resolver.log = log
		e.builder.log = log
		e.builder.classifier.log = log
		e.pricer.log = log
	}
}

// New builds an Engine over a catalog snapshot. The snapshot must not
// be mutated while the engine is in use.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	log := logrus.StandardLogger()
	classifier := NewClassifier(log)
	e := &Engine{
		catalog:  cat,
		columns:  DefaultColumnTable(),
		resolver: NewResolver(cat, nil, log),
		builder:  NewBuilder(classifier, log),
		pricer:   NewPricer(cat, log),
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the snapshot the engine reads from.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Process resolves, builds, prices, and counts one employee row.
// It never fails; degradations surface on Result.Warnings.
func (e *Engine) Process(row EmployeeRow) Result {
	trail := &warnTrail{log: e.log}

	columns := e.columns
	if rowCols := ColumnsFromRow(row.Quantities); len(rowCols) > 0 {
		columns = rowCols
	}

	occupation := e.resolver.Resolve(row.Name, row.RawOccupation, row.Quantities, trail)
	garments := e.builder.Build(occupation, row, columns, trail)
	total := e.pricer.Total(occupation, garments, row.Location, trail)
	sets := Sets(e.catalog, occupation, garments, e.log)

	return Result{
		Name:       row.Name,
		Occupation: occupation,
		Garments:   garments,
		Total:      total,
		Sets:       sets,
		Warnings:   trail.msgs,
	}
}

// =============================================================================
// RE-PRICING RENDERED LISTS
// =============================================================================

// RenderedLine is one printed entry of an authorization garment list.
type RenderedLine struct {
	Label    string
	Quantity int
}

// Reprice totals a previously rendered garment list without rebuilding
// it from quantity columns: garment types and sizes read back out of
// the document labels. Used when an authorization list was edited by
// hand and needs a fresh total against the current catalog.
func (e *Engine) Reprice(occupation string, lines []RenderedLine, location string) Result {
	trail := &warnTrail{log: e.log}

	garments := make([]ResolvedGarment, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		garments = append(garments, GarmentFromLabel(line.Label, line.Quantity))
	}

	occ := e.catalog.Normalize(occupation)
	total := e.pricer.Total(occ, garments, location, trail)

	return Result{
		Occupation: occ,
		Garments:   garments,
		Total:      total,
		Sets:       Sets(e.catalog, occ, garments, e.log),
		Warnings:   trail.msgs,
	}
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// BatchResult holds the per-row results of one batch run, index-aligned
// with the input rows.
type BatchResult struct {
	RunID   string
	Results []Result
}

// ProcessBatch processes rows across the given number of workers. Each
// worker reads the same immutable snapshot; results land at their input
// index, so output order is deterministic regardless of scheduling.
// A canceled context stops dispatching further rows.
func (e *Engine) ProcessBatch(ctx context.Context, rows []EmployeeRow, workers int) BatchResult {
	if workers < 1 {
		workers = 1
	}
	e.resolver.ResetCache()

	batch := BatchResult{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(rows)),
	}

	indexes := make(chan int)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range indexes {
				batch.Results[i] = e.Process(rows[i])
			}
			done <- struct{}{}
		}()
	}

dispatch:
	for i := range rows {
		select {
		case <-ctx.Done():
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	for w := 0; w < workers; w++ {
		<-done
	}

	e.log.WithFields(logrus.Fields{"run_id": batch.RunID, "rows": len(rows), "workers": workers}).
		Info("batch processed")
	return batch
}
