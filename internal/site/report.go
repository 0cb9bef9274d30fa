package site

import (
	stdErrors "errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/linkverify"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// BuildOutcome is the final result of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Report captures what a build did.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	Errors         []error
	Warnings       []error

	Removed     int // stale files deleted from the output root
	NavEntries  int
	Pages       int
	Listings    int
	Assets      int
	BrokenLinks []linkverify.BrokenLink

	Outcome BuildOutcome
}

// NewReport starts a report for buildID.
func NewReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
	}
}

func (r *Report) AddError(err error)   { r.Errors = append(r.Errors, err) }
func (r *Report) AddWarning(err error) { r.Warnings = append(r.Warnings, err) }

// RecordStageResult stores the result of stage and forwards it to recorder.
func (r *Report) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	r.StageResults[stage] = res
	if recorder != nil {
		recorder.IncStageResult(string(stage), stageMetric(res))
	}
}

// Finish sets the end time and derives the outcome.
func (r *Report) Finish() {
	r.End = time.Now()
	r.Outcome = r.deriveOutcome()
}

func (r *Report) deriveOutcome() BuildOutcome {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if stdErrors.As(e, &se) && se.Kind == StageErrorCanceled {
				return OutcomeCanceled
			}
		}
		return OutcomeFailed
	}
	if len(r.Warnings) > 0 {
		return OutcomeWarning
	}
	return OutcomeSuccess
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("pages=%d listings=%d assets=%d nav=%d removed=%d broken_links=%d duration=%s outcome=%s",
		r.Pages, r.Listings, r.Assets, r.NavEntries, r.Removed, len(r.BrokenLinks),
		r.Duration().Truncate(time.Millisecond), r.Outcome)
}

func outcomeMetric(o BuildOutcome) metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case OutcomeFailed:
		return metrics.BuildOutcomeFailed
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeSuccess
	}
}
