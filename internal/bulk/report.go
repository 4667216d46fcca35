package bulk

import "fmt"

// Outcome classifies how a publishing run ended.
type Outcome string

const (
	OutcomeAll     Outcome = "all"
	OutcomePartial Outcome = "partial"
	OutcomeNone    Outcome = "none"
)

// Report summarizes a publishing run. Success and Failure always add up to
// Total; items the run never reached count as failures.
type Report struct {
	Success int
	Failure int
	Total   int
}

// Outcome reports whether every item, some items or no item went through.
func (r Report) Outcome() Outcome {
	switch {
	case r.Total == 0 || r.Success == r.Total:
		return OutcomeAll
	case r.Success == 0:
		return OutcomeNone
	default:
		return OutcomePartial
	}
}

// Message renders the user-facing summary for the run.
func (r Report) Message() string {
	switch r.Outcome() {
	case OutcomeAll:
		return fmt.Sprintf("%d items scheduled", r.Success)
	case OutcomeNone:
		return fmt.Sprintf("no items scheduled, %d failed", r.Failure)
	default:
		return fmt.Sprintf("%d items scheduled, %d failed", r.Success, r.Failure)
	}
}
