package pipeline

import (
	"context"
	"log/slog"

	"github.com/ammarnisar/placescout/internal/extract"
	"github.com/ammarnisar/placescout/internal/metrics"
	"github.com/ammarnisar/placescout/internal/places"
	"github.com/ammarnisar/placescout/internal/scrape"
)

// Enricher visits each record's linked page and fills Record.Details with a
// readable-text snippet. Fetches run sequentially in record order; pacing
// comes from the fetcher's own rate limiter. Any per-link failure leaves
// the record's Details empty and never fails the run.
type Enricher struct {
	Fetcher   *scrape.Fetcher
	Auditor   *scrape.RobotsAuditor // optional robots.txt enforcement
	UserAgent string                // agent name presented to robots.txt
	TextLimit int
	Logger    *slog.Logger
}

// Enrich mutates recs in place and returns the number of records whose
// details were fetched.
func (e *Enricher) Enrich(ctx context.Context, recs []places.Record) int {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	agent := e.UserAgent
	if agent == "" {
		agent = "*"
	}

	fetched := 0
	for i := range recs {
		if ctx.Err() != nil {
			return fetched
		}

		link := recs[i].Link
		if link == "" {
			metrics.DetailFetches.WithLabelValues("skipped").Inc()
			continue
		}

		if e.Auditor != nil {
			allowed, err := e.Auditor.IsAllowed(ctx, link, agent)
			if err != nil || !allowed {
				logger.Debug("detail page disallowed by robots.txt", "url", link)
				metrics.DetailFetches.WithLabelValues("robots_denied").Inc()
				continue
			}
		}

		res, err := e.Fetcher.Fetch(ctx, link)
		if err != nil || res.StatusCode < 200 || res.StatusCode > 299 {
			logger.Debug("detail fetch failed", "url", link, "err", err)
			metrics.DetailFetches.WithLabelValues("error").Inc()
			continue
		}

		metrics.FetchDuration.Observe(res.Duration.Seconds())
		metrics.DetailFetches.WithLabelValues("ok").Inc()

		recs[i].Details = extract.Text(res.Body, e.TextLimit)
		fetched++
	}
	return fetched
}
