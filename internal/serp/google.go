package serp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/ammarnisar/placescout/internal/bypass"
	"github.com/ammarnisar/placescout/internal/scrape"
)

// DefaultBaseURL is the production Google endpoint. Tests point BaseURL at
// an httptest server instead.
const DefaultBaseURL = "https://www.google.com"

// entrySelectors are tried in order; the first selector with any matches
// wins. Local-pack blocks come first because a "<category> in <locality>"
// query is answered with a local pack when the engine recognizes the
// locality; plain organic blocks are the fallback.
var entrySelectors = []string{
	"div.VkpGBb", // local pack result block
	"div.uMdZh",  // local finder result block
	"div.g",      // organic result block
}

// GoogleScrape implements Provider by scraping Google's HTML result page.
type GoogleScrape struct {
	BaseURL   string
	Fetcher   *scrape.Fetcher
	Detectors []bypass.Detector
	Logger    *slog.Logger
}

// NewGoogleScrape returns a provider using the given fetcher and the
// default endpoint and detectors.
func NewGoogleScrape(fetcher *scrape.Fetcher, logger *slog.Logger) *GoogleScrape {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleScrape{
		BaseURL:   DefaultBaseURL,
		Fetcher:   fetcher,
		Detectors: bypass.DefaultDetectors(),
		Logger:    logger,
	}
}

// Search fetches the result page for q and locates its entries. A transport
// failure or non-2xx status is an error wrapping ErrBadStatus; a detected
// block page is an error wrapping ErrBlocked. Zero located entries is not
// an error: an empty page and a drifted page markup are indistinguishable
// here, so the caller decides how to report it.
func (g *GoogleScrape) Search(ctx context.Context, q Query) ([]Entry, error) {
	searchURL := g.buildURL(q)
	g.Logger.Debug("searching", "url", searchURL, "category", q.Category, "locality", q.Locality)

	res, err := g.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search fetch: %w", err)
	}

	if bypass.Analyze(res, g.Detectors) {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, res.BlockSource)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	entries := locateEntries(doc)
	g.Logger.Info("search complete", "status", res.StatusCode, "entries", len(entries))
	if len(entries) == 0 {
		g.Logger.Warn("no entries located; either the query has no results or the page markup changed")
	}
	return entries, nil
}

func (g *GoogleScrape) buildURL(q Query) string {
	base := g.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	params := url.Values{}
	params.Set("q", q.Category+" in "+q.Locality)
	params.Set("hl", "en")
	if q.Limit > 0 {
		params.Set("num", strconv.Itoa(q.Limit))
	}

	return base + "/search?" + params.Encode()
}

func locateEntries(doc *goquery.Document) []Entry {
	for _, sel := range entrySelectors {
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		entries := make([]Entry, 0, found.Length())
		found.Each(func(_ int, s *goquery.Selection) {
			entries = append(entries, Entry{Selection: s})
		})
		return entries
	}
	return nil
}

// interface guard
var _ Provider = (*GoogleScrape)(nil)
