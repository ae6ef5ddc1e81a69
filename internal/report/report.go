package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"
	"time"
)

// Summary contains the aggregated outcome of one collection run.
type Summary struct {
	RunID          string
	Category       string
	Locality       string
	EntriesFound   int
	RecordsParsed  int
	EntriesSkipped int
	DetailsFetched int
	OutputPath     string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// Finish stamps the end time and derives the duration.
func (s *Summary) Finish() {
	s.EndTime = time.Now().UTC()
	if !s.StartTime.IsZero() {
		s.Duration = s.EndTime.Sub(s.StartTime)
	}
}

// WriteJSON writes the summary to the provided writer in JSON format.
func WriteJSON(w io.Writer, summary Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// WriteText writes a human-readable text summary to the provided writer.
func WriteText(w io.Writer, summary Summary) error {
	const textTmpl = `Placescout Run Summary
----------------------
Run:       {{.RunID}}
Query:     {{.Category}} in {{.Locality}}
Time:      {{.StartTime.Format "2006-01-02 15:04:05"}} - {{.EndTime.Format "2006-01-02 15:04:05"}} ({{.Duration}})

Entries found:   {{.EntriesFound}}
Records parsed:  {{.RecordsParsed}}
Entries skipped: {{.EntriesSkipped}}
Details fetched: {{.DetailsFetched}}

Output: {{.OutputPath}}
`

	t, err := template.New("textReport").Parse(textTmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	if err := t.Execute(w, summary); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	return nil
}
