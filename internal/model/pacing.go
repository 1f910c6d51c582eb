package model

import "time"

// PacingStatus classifies actual spend rate against the rate needed to
// exhaust budget exactly on schedule.
type PacingStatus string

const (
	PacingOnTrack        PacingStatus = "ON_TRACK"
	PacingSlightlyBehind PacingStatus = "SLIGHTLY_BEHIND"
	PacingBehind         PacingStatus = "BEHIND"
	// PacingUnknown is used when the actual daily rate is undefined
	// (no days elapsed yet). Rendered blank, like any undefined metric.
	PacingUnknown PacingStatus = ""
)

// PacingTimeline holds the inclusive day counts for a flight window. Today is
// counted in both DaysPassed and DaysLeft; the rate formulas downstream are
// defined against that overlap, so it must not be "corrected".
type PacingTimeline struct {
	StartDate  time.Time
	EndDate    time.Time
	Today      time.Time
	TotalDays  int
	DaysPassed int
	DaysLeft   int
}

// BudgetStatus holds the spend-vs-budget portion of a pacing snapshot. When a
// budget override is in effect, Budget is the override, not the portfolio sum.
type BudgetStatus struct {
	Budget           float64
	TotalSpend       float64
	SpendPercentage  *float64
	ShouldHaveSpent  float64
	BudgetProjection *float64
}

// DailyPacing holds the rate comparison and the resulting status.
type DailyPacing struct {
	TargetDailyRate   float64
	ActualDailyRate   *float64
	RequiredDailyRate *float64
	Status            PacingStatus
}

// PacingSnapshot is the full "how are we pacing" answer, recomputed per
// request from a portfolio total and a timeline. It carries no state.
type PacingSnapshot struct {
	Timeline PacingTimeline
	Budget   BudgetStatus
	Daily    DailyPacing
}
