package model

import "time"

// Interval is a grading period's bounds in epoch milliseconds.
type Interval struct {
	StartMs int64 `json:"start"`
	EndMs   int64 `json:"end"`
}

// Contains reports whether a due date (epoch ms) falls inside the interval,
// inclusive on both ends. The listing, alerts and averaging paths all use
// this mode; only date-to-run resolution is strict (see service.PeriodService).
func (iv Interval) Contains(ms int64) bool {
	return ms >= iv.StartMs && ms <= iv.EndMs
}

// selectorKind discriminates the PeriodSelector variants.
type selectorKind int

const (
	selectCurrent selectorKind = iota
	selectRun
	selectDate
	selectAll
)

// PeriodSelector names the grading period a query targets. It is a tagged
// variant: exactly one of run id, date, "all" or "current" applies, resolved
// by the period service rather than by optional-field sniffing.
type PeriodSelector struct {
	kind  selectorKind
	runID int
	date  time.Time
}

// SelectCurrent targets the period containing the current date.
func SelectCurrent() PeriodSelector {
	return PeriodSelector{kind: selectCurrent}
}

// SelectRun targets an explicit report-card run by ordinal index.
func SelectRun(runID int) PeriodSelector {
	return PeriodSelector{kind: selectRun, runID: runID}
}

// SelectDate targets the period containing the given date.
func SelectDate(date time.Time) PeriodSelector {
	return PeriodSelector{kind: selectDate, date: date}
}

// SelectAll bypasses interval filtering entirely.
func SelectAll() PeriodSelector {
	return PeriodSelector{kind: selectAll}
}

// IsAll reports whether the selector bypasses interval filtering.
func (s PeriodSelector) IsAll() bool { return s.kind == selectAll }

// IsRun returns the explicit run id, if that is what the selector carries.
func (s PeriodSelector) IsRun() (int, bool) {
	return s.runID, s.kind == selectRun
}

// IsDate returns the explicit date, if that is what the selector carries.
func (s PeriodSelector) IsDate() (time.Time, bool) {
	return s.date, s.kind == selectDate
}

// ResolvedPeriod is the outcome of resolving a PeriodSelector. An
// unresolvable selector (out-of-range run, date outside the school year,
// date exactly on a boundary) yields Resolved == false — a sentinel the
// caller must check, never an error or a panic.
type ResolvedPeriod struct {
	All      bool
	Resolved bool
	RunID    int
	Interval Interval
}
