package metrics

import (
	"sync/atomic"
)

// Metrics tracks counters for one validation run.
type Metrics struct {
	PRsScanned     uint64
	PRsPassed      uint64
	PRsFailed      uint64
	CommentsPosted uint64
	FetchWarnings  uint64
}

var global = &Metrics{}

// PRScanned increments the count of pull requests scanned.
func PRScanned() { atomic.AddUint64(&global.PRsScanned, 1) }

// PRPassed increments the count of pull requests that passed every check.
func PRPassed() { atomic.AddUint64(&global.PRsPassed, 1) }

// PRFailed increments the count of pull requests with at least one failure.
func PRFailed() { atomic.AddUint64(&global.PRsFailed, 1) }

// CommentPosted increments the count of report comments posted.
func CommentPosted() { atomic.AddUint64(&global.CommentsPosted, 1) }

// FetchWarning increments the count of PR resources that could not be fetched.
func FetchWarning() { atomic.AddUint64(&global.FetchWarnings, 1) }

// Get returns a snapshot of the current metrics.
func Get() Metrics {
	return Metrics{
		PRsScanned:     atomic.LoadUint64(&global.PRsScanned),
		PRsPassed:      atomic.LoadUint64(&global.PRsPassed),
		PRsFailed:      atomic.LoadUint64(&global.PRsFailed),
		CommentsPosted: atomic.LoadUint64(&global.CommentsPosted),
		FetchWarnings:  atomic.LoadUint64(&global.FetchWarnings),
	}
}

// Reset resets all metrics to zero (useful for testing).
func Reset() {
	atomic.StoreUint64(&global.PRsScanned, 0)
	atomic.StoreUint64(&global.PRsPassed, 0)
	atomic.StoreUint64(&global.PRsFailed, 0)
	atomic.StoreUint64(&global.CommentsPosted, 0)
	atomic.StoreUint64(&global.FetchWarnings, 0)
}
