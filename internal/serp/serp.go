package serp

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"
)

// Query describes one search: a category term and a locality, combined into
// a single "<category> in <locality>" request. Limit caps the number of
// results asked of the engine; zero means the engine default.
type Query struct {
	Category string
	Locality string
	Limit    int
}

// Entry is one discrete result block located on the result page, before any
// field extraction has been attempted.
type Entry struct {
	Selection *goquery.Selection
}

// Provider abstracts a search engine that can return the result entries for
// a query. Implementations may scrape result pages or call official APIs.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Entry, error)
}

// Sentinel errors for callers that need to branch on the failure cause.
var (
	// ErrBadStatus indicates the engine answered with a non-success code.
	ErrBadStatus = errors.New("serp: non-success response")
	// ErrBlocked indicates the engine served a block or challenge page
	// instead of results.
	ErrBlocked = errors.New("serp: request blocked")
	// ErrUnparseable indicates the result document could not be parsed.
	ErrUnparseable = errors.New("serp: unparseable result page")
)
