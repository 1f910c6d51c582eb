// Package pacing derives the budget-pacing snapshot: flight timeline counts,
// spend-vs-budget position, and the daily rate comparison that yields the
// ON_TRACK / SLIGHTLY_BEHIND / BEHIND status.
package pacing

import (
	"time"

	"adpace/internal/model"
	"adpace/internal/rollup"
)

// Status thresholds: actual/target >= 0.95 is on track, >= 0.80 slightly
// behind, anything lower behind.
const (
	onTrackThreshold        = 0.95
	slightlyBehindThreshold = 0.80
)

// Timeline computes the inclusive day counts for a flight window as of today.
// Today is counted in both DaysPassed and DaysLeft. That overlap is how the
// source system defines its rate formulas; changing it would silently shift
// required_daily_rate and the status for every in-flight campaign.
func Timeline(tl model.CampaignTimeline, today time.Time) model.PacingTimeline {
	start := model.DateOnly(tl.StartDate)
	end := model.DateOnly(tl.EndDate)
	day := model.DateOnly(today)

	passed := model.DaysBetween(start, day) + 1
	if passed < 0 {
		passed = 0
	}
	left := model.DaysBetween(day, end) + 1
	if left < 0 {
		left = 0
	}

	return model.PacingTimeline{
		StartDate:  start,
		EndDate:    end,
		Today:      day,
		TotalDays:  model.DaysBetween(start, end) + 1,
		DaysPassed: passed,
		DaysLeft:   left,
	}
}

// Calculate builds a pacing snapshot from the portfolio's total spend, the
// flight timeline, and the budget in effect (actual or caller override).
// A negative budget or an inverted timeline rejects the call; zero spend or
// zero elapsed days just leaves the affected rates undefined.
func Calculate(totalSpend float64, tl model.CampaignTimeline, budget float64, today time.Time) (model.PacingSnapshot, error) {
	if budget < 0 {
		return model.PacingSnapshot{}, model.NewInputError("budget", "negative budget %.2f", budget)
	}
	if model.DateOnly(tl.EndDate).Before(model.DateOnly(tl.StartDate)) {
		return model.PacingSnapshot{}, model.NewInputError("timeline",
			"end %s before start %s", model.DayKey(tl.EndDate), model.DayKey(tl.StartDate))
	}

	timeline := Timeline(tl, today)

	var snap model.PacingSnapshot
	snap.Timeline = timeline

	budgetStatus := model.BudgetStatus{
		Budget:     rollup.Round2(budget),
		TotalSpend: rollup.Round2(totalSpend),
	}
	if budget > 0 {
		budgetStatus.SpendPercentage = model.Float(rollup.Round4(totalSpend / budget * 100))
	}

	var target float64
	if timeline.TotalDays > 0 {
		target = budget / float64(timeline.TotalDays)
		budgetStatus.ShouldHaveSpent = rollup.Round2(target * float64(timeline.DaysPassed))
	}

	daily := model.DailyPacing{
		TargetDailyRate: rollup.Round2(target),
		Status:          model.PacingUnknown,
	}

	var actual *float64
	if timeline.DaysPassed > 0 {
		actual = model.Float(totalSpend / float64(timeline.DaysPassed))
		daily.ActualDailyRate = model.Float(rollup.Round2(*actual))
	}
	if timeline.DaysLeft > 0 {
		daily.RequiredDailyRate = model.Float(rollup.Round2((budget - totalSpend) / float64(timeline.DaysLeft)))
	}

	if actual != nil {
		daily.Status = classify(*actual, target)

		// Straight-line extrapolation of the current pace to the end date.
		if budget > 0 {
			projected := totalSpend + *actual*float64(timeline.DaysLeft)
			budgetStatus.BudgetProjection = model.Float(rollup.Round4(projected / budget * 100))
		}
	}

	snap.Budget = budgetStatus
	snap.Daily = daily
	return snap, nil
}

// classify maps the actual-vs-target rate onto the three-way status. A zero
// target means any spend at all is on track.
func classify(actual, target float64) model.PacingStatus {
	if target <= 0 {
		return model.PacingOnTrack
	}
	switch {
	case actual >= target*onTrackThreshold:
		return model.PacingOnTrack
	case actual >= target*slightlyBehindThreshold:
		return model.PacingSlightlyBehind
	default:
		return model.PacingBehind
	}
}
