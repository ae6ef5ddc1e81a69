package extract

import (
	"github.com/ammarnisar/placescout/internal/places"
	"github.com/ammarnisar/placescout/internal/serp"
)

// Strategy turns one located result entry into a Record. The boolean is
// false on a parse miss (no extractable name), in which case the entry is
// skipped and the record must be ignored. Keeping the page-structure
// knowledge behind this interface means markup drift is fixed in one
// strategy implementation, not in the pipeline.
type Strategy interface {
	Extract(e serp.Entry) (places.Record, bool)
}
