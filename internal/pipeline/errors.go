package pipeline

import (
	"errors"
	"fmt"
)

// FailureKind classifies the fatal failures a run can end with, so callers
// can branch on the cause instead of matching error strings.
type FailureKind int

const (
	// FailureNetwork covers unreachable hosts, transport errors and
	// non-success responses from the search engine.
	FailureNetwork FailureKind = iota + 1
	// FailureBlocked means the engine served a block or challenge page.
	FailureBlocked
	// FailureParse means the result document could not be parsed at all.
	// Individual entry parse misses are recovered, not failures.
	FailureParse
	// FailureExport covers errors while writing the export artifact.
	FailureExport
)

func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureBlocked:
		return "blocked"
	case FailureParse:
		return "parse"
	case FailureExport:
		return "export"
	default:
		return "unknown"
	}
}

// Failure is a fatal run error carrying its kind.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf extracts the FailureKind from err, or 0 when err carries none.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}
