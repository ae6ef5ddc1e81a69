package places

import "time"

// Record is one extracted place entry. Name is the only required field;
// Address and Contact may be empty when the source entry did not carry them.
// Link and FetchedAt are stamped at extraction time, Details by the optional
// enrichment pass; all three are persisted only by the database export
// backends, never by the flat spreadsheet columns.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	Link      string    `json:"link,omitempty"`
	Details   string    `json:"details,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ResultSet is the ordered collection of Records produced by one run.
// Records are appended in extraction order and never deduplicated or merged.
type ResultSet struct {
	records []Record
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Add appends a record, preserving insertion order.
func (rs *ResultSet) Add(r Record) {
	rs.records = append(rs.records, r)
}

// Len reports the number of records collected so far.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Records returns a copy of the collected records in insertion order.
func (rs *ResultSet) Records() []Record {
	out := make([]Record, len(rs.records))
	copy(out, rs.records)
	return out
}

// At returns the i-th record. It panics if i is out of range, matching
// slice indexing semantics.
func (rs *ResultSet) At(i int) Record {
	return rs.records[i]
}
