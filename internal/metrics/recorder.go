package metrics

import "time"

// OutcomeLabel enumerates final run states.
type OutcomeLabel string

const (
	OutcomeClean    OutcomeLabel = "clean"
	OutcomeFindings OutcomeLabel = "findings"
	OutcomeFailed   OutcomeLabel = "failed"
)

// Recorder defines observability hooks for link checking. Implementations
// must be safe for concurrent use.
type Recorder interface {
	IncFilesChecked()
	IncLinksChecked(kind string)
	IncFinding(kind string)
	IncCacheLookup(hit bool)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFilesChecked()                {}
func (NoopRecorder) IncLinksChecked(string)          {}
func (NoopRecorder) IncFinding(string)               {}
func (NoopRecorder) IncCacheLookup(bool)             {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)      {}
