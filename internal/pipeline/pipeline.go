package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/extract"
	"github.com/ammarnisar/placescout/internal/metrics"
	"github.com/ammarnisar/placescout/internal/places"
	"github.com/ammarnisar/placescout/internal/report"
	"github.com/ammarnisar/placescout/internal/serp"
)

// Pipeline runs one collection pass: search, extract each located entry,
// optionally enrich, then export. It is a single linear pass; the only
// branch per entry is parsed vs skipped.
type Pipeline struct {
	Provider serp.Provider
	Strategy extract.Strategy
	Enricher *Enricher // optional detail-page pass
	Backend  export.Backend
	Format   string // metrics label for the export backend
	Logger   *slog.Logger
}

// Run executes the pipeline for q. Search and export failures are fatal
// and returned as *Failure with their kind; nothing is written on a search
// failure. Entry parse misses are counted in the summary and recovered.
// Zero extracted records still exports a header-only artifact and succeeds.
func (p *Pipeline) Run(ctx context.Context, q serp.Query) (report.Summary, error) {
	summary := report.Summary{
		RunID:     uuid.New().String(),
		Category:  q.Category,
		Locality:  q.Locality,
		StartTime: time.Now().UTC(),
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if p.Provider == nil || p.Strategy == nil || p.Backend == nil {
		return summary, fmt.Errorf("pipeline is missing a component")
	}

	logger.Info("starting run", "run_id", summary.RunID, "category", q.Category, "locality", q.Locality)

	entries, err := p.Provider.Search(ctx, q)
	if err != nil {
		kind := FailureNetwork
		label := "error"
		switch {
		case errors.Is(err, serp.ErrBlocked):
			kind = FailureBlocked
			label = "blocked"
		case errors.Is(err, serp.ErrUnparseable):
			kind = FailureParse
		}
		metrics.SearchesTotal.WithLabelValues(label).Inc()
		summary.Finish()
		return summary, &Failure{Kind: kind, Err: err}
	}
	metrics.SearchesTotal.WithLabelValues("ok").Inc()

	summary.EntriesFound = len(entries)

	var recs []places.Record
	for _, entry := range entries {
		rec, ok := p.Strategy.Extract(entry)
		if !ok {
			summary.EntriesSkipped++
			metrics.EntriesSkipped.Inc()
			continue
		}
		recs = append(recs, rec)
		metrics.EntriesExtracted.Inc()
	}
	summary.RecordsParsed = len(recs)
	logger.Info("extraction complete", "parsed", summary.RecordsParsed, "skipped", summary.EntriesSkipped)

	if p.Enricher != nil {
		summary.DetailsFetched = p.Enricher.Enrich(ctx, recs)
		logger.Info("enrichment complete", "fetched", summary.DetailsFetched)
	}

	rs := places.NewResultSet()
	for _, rec := range recs {
		rs.Add(rec)
	}

	if err := p.Backend.Write(ctx, rs); err != nil {
		summary.Finish()
		return summary, &Failure{Kind: FailureExport, Err: err}
	}
	metrics.ExportRows.WithLabelValues(p.Format).Add(float64(rs.Len()))

	summary.OutputPath = p.Backend.Path()
	summary.Finish()
	logger.Info("run complete", "rows", rs.Len(), "output", summary.OutputPath, "duration", summary.Duration)
	return summary, nil
}
