// Package engine orchestrates catalog export runs: fetch, persist, record,
// notify.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/shop-catalog-exporter/internal/catalog"
	"github.com/donaldgifford/shop-catalog-exporter/internal/metrics"
	"github.com/donaldgifford/shop-catalog-exporter/internal/notify"
)

// CatalogFetcher abstracts the pagination loop for testability.
type CatalogFetcher interface {
	Fetch(ctx context.Context) (*catalog.FetchResult, error)
}

// RunRecord describes one export run, successful or not.
type RunRecord struct {
	ID         string    `json:"id"`
	Store      string    `json:"store"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Pages      int       `json:"pages"`
	Products   int       `json:"products"`
	StoppedAt  string    `json:"stopped_at,omitempty"`
	OutputPath string    `json:"output_path,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Engine runs exports end to end and keeps their history.
type Engine struct {
	fetcher    CatalogFetcher
	notifier   notify.Notifier
	history    *History
	log        *slog.Logger
	store      string
	outputPath string
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNotifier sets the run-completion notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithHistory sets the run history recorder.
func WithHistory(h *History) Option {
	return func(e *Engine) {
		e.history = h
	}
}

// New creates an Engine exporting the given store's catalog to outputPath.
func New(fetcher CatalogFetcher, store, outputPath string, opts ...Option) *Engine {
	e := &Engine{
		fetcher:    fetcher,
		store:      store,
		outputPath: outputPath,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = NewHistory(defaultHistorySize)
	}
	return e
}

// History exposes the engine's run history, for the status API.
func (e *Engine) History() *History {
	return e.history
}

// RunExport performs one complete export: fetch every page, write the
// catalog file, record the run, and notify. Fetch-side failures after the
// handshake never reach here (the fetcher soft-stops); the two fatal paths
// are a failed handshake and a failed file write.
func (e *Engine) RunExport(ctx context.Context) (*RunRecord, error) {
	start := time.Now()
	rec := &RunRecord{
		ID:        uuid.NewString(),
		Store:     e.store,
		StartedAt: start,
	}

	e.log.Info("export starting", "run_id", rec.ID, "store", e.store)

	res, err := e.fetcher.Fetch(ctx)
	if err != nil {
		return e.fail(rec, start, err)
	}

	rec.Pages = res.PagesUsed
	rec.Products = len(res.Products)
	rec.StoppedAt = res.StoppedAt
	rec.OutputPath = e.outputPath

	if err := catalog.WriteCatalog(e.outputPath, res.Products); err != nil {
		return e.fail(rec, start, err)
	}

	rec.DurationMS = time.Since(start).Milliseconds()

	metrics.ExportsTotal.Inc()
	metrics.ExportDuration.Observe(time.Since(start).Seconds())
	e.history.Add(*rec)

	e.log.Info("export finished",
		"run_id", rec.ID,
		"products", rec.Products,
		"pages", rec.Pages,
		"stopped_at", rec.StoppedAt,
		"output", rec.OutputPath,
	)

	if e.notifier != nil {
		summary := notify.RunSummary{
			RunID:      rec.ID,
			Store:      rec.Store,
			Products:   rec.Products,
			Pages:      rec.Pages,
			StoppedAt:  rec.StoppedAt,
			OutputPath: rec.OutputPath,
			Duration:   time.Since(start),
		}
		if err := e.notifier.ExportCompleted(ctx, summary); err != nil {
			e.log.Warn("run notification failed", "run_id", rec.ID, "error", err)
			metrics.NotificationFailuresTotal.Inc()
		}
	}

	return rec, nil
}

func (e *Engine) fail(rec *RunRecord, start time.Time, err error) (*RunRecord, error) {
	rec.Error = err.Error()
	rec.DurationMS = time.Since(start).Milliseconds()

	metrics.ExportErrorsTotal.Inc()
	e.history.Add(*rec)

	e.log.Error("export failed", "run_id", rec.ID, "error", err)
	return rec, err
}
