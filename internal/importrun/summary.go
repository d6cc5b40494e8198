package importrun

import (
	"time"

	"projimport/internal/diagnostic"
	"projimport/internal/entity"
)

// PassSummary reports the outcome of one entity pass.
type PassSummary struct {
	Kind     entity.Kind
	Produced int
	Dropped  int
	Skipped  bool
	Duration time.Duration
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID       string
	Passes      []PassSummary
	Diagnostics *diagnostic.Diagnostics
}

// Pass returns the summary of kind's pass.
func (s *Summary) Pass(kind entity.Kind) (PassSummary, bool) {
	for _, p := range s.Passes {
		if p.Kind == kind {
			return p, true
		}
	}

	return PassSummary{}, false
}

// Totals returns the produced and dropped counts over every pass.
func (s *Summary) Totals() (produced, dropped int) {
	for _, p := range s.Passes {
		produced += p.Produced
		dropped += p.Dropped
	}

	return produced, dropped
}
