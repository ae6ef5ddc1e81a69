package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/ammarnisar/placescout/internal/places"
	"github.com/ammarnisar/placescout/internal/serp"
)

// nameSelectors are tried in order; the first non-empty text wins.
var nameSelectors = []string{
	".dbg0pd",
	"span.OSrXXb",
	"h3",
	"[role=heading]",
}

// phoneRe matches a run of digits with the separators phone numbers use.
// A candidate must additionally contain at least minPhoneDigits digits, so
// street numbers ("45 Park Rd") never qualify.
var phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{5,}\d`)

const minPhoneDigits = 7

// GoogleLocal extracts Records from Google local-pack entries. The name
// comes from the heading; the remaining detail lines are classified into
// rating, opening-hours, phone and address lines.
type GoogleLocal struct{}

// Extract implements Strategy. An entry without an extractable name is a
// miss; a missing address or contact yields an empty field, not a miss.
func (GoogleLocal) Extract(e serp.Entry) (places.Record, bool) {
	if e.Selection == nil {
		return places.Record{}, false
	}

	name := firstText(e.Selection, nameSelectors)
	if name == "" {
		return places.Record{}, false
	}

	rec := places.Record{
		ID:        uuid.New().String(),
		Name:      name,
		Link:      firstHref(e.Selection),
		FetchedAt: time.Now().UTC(),
	}

	for _, line := range detailLines(e.Selection) {
		switch {
		case line == name:
			continue
		case isRatingLine(line):
			continue
		case isHoursLine(line):
			continue
		case phoneFrom(line) != "":
			if rec.Contact == "" {
				rec.Contact = phoneFrom(line)
			}
		case rec.Address == "":
			rec.Address = addressFrom(line)
		}
	}

	return rec, true
}

func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(s.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func firstHref(s *goquery.Selection) string {
	href, _ := s.Find("a[href]").First().Attr("href")
	return href
}

// detailLines returns the entry's detail rows. Local-pack entries keep them
// under .rllt__details; organic entries have no such block, so every direct
// text-bearing div is taken instead.
func detailLines(s *goquery.Selection) []string {
	var lines []string
	rows := s.Find(".rllt__details div")
	if rows.Length() == 0 {
		rows = s.Find("div")
	}
	rows.Each(func(_ int, row *goquery.Selection) {
		if row.Children().Length() > 0 {
			return // only leaf rows carry a single detail line
		}
		if text := strings.TrimSpace(row.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return lines
}

var ratingRe = regexp.MustCompile(`^\d[.,]\d`)

func isRatingLine(line string) bool {
	return ratingRe.MatchString(line) || strings.HasPrefix(line, "No reviews")
}

func isHoursLine(line string) bool {
	return strings.HasPrefix(line, "Open") ||
		strings.HasPrefix(line, "Closed") ||
		strings.HasPrefix(line, "Closes") ||
		strings.Contains(line, "24 hours")
}

func phoneFrom(line string) string {
	candidate := phoneRe.FindString(line)
	if candidate == "" {
		return ""
	}
	digits := 0
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return ""
	}
	return strings.TrimSpace(candidate)
}

// addressFrom strips the category prefix local-pack lines sometimes carry,
// e.g. "Coffee shop · 123 Main St".
func addressFrom(line string) string {
	if idx := strings.LastIndex(line, "·"); idx >= 0 {
		return strings.TrimSpace(line[idx+len("·"):])
	}
	return line
}

// interface guard
var _ Strategy = GoogleLocal{}
