package pacing

import (
	"testing"
	"time"

	"adpace/internal/model"
)

func d(y, m, day int) time.Time {
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

// A 61-day November-December flight, 28 days in. These exact counts include
// today on both sides; the rate formulas depend on that overlap.
func TestCalculate_MidFlight(t *testing.T) {
	tl := model.CampaignTimeline{
		StartDate: d(2025, 11, 1),
		EndDate:   d(2025, 12, 31),
	}
	snap, err := Calculate(205722, tl, 466000, d(2025, 11, 28))
	if err != nil {
		t.Fatal(err)
	}

	if snap.Timeline.TotalDays != 61 {
		t.Errorf("TotalDays = %d, want 61", snap.Timeline.TotalDays)
	}
	if snap.Timeline.DaysPassed != 28 {
		t.Errorf("DaysPassed = %d, want 28", snap.Timeline.DaysPassed)
	}
	if snap.Timeline.DaysLeft != 34 {
		t.Errorf("DaysLeft = %d, want 34", snap.Timeline.DaysLeft)
	}

	if got := snap.Daily.TargetDailyRate; got != 7639.34 {
		t.Errorf("TargetDailyRate = %v, want 7639.34", got)
	}
	if snap.Daily.ActualDailyRate == nil || *snap.Daily.ActualDailyRate != 7347.21 {
		t.Errorf("ActualDailyRate = %v, want 7347.21", snap.Daily.ActualDailyRate)
	}
	// 7347.21 / 7639.34 is about 0.962, above the 0.95 threshold.
	if snap.Daily.Status != model.PacingOnTrack {
		t.Errorf("Status = %q, want ON_TRACK", snap.Daily.Status)
	}

	if got := snap.Budget.ShouldHaveSpent; got != 213901.64 {
		t.Errorf("ShouldHaveSpent = %v, want 213901.64", got)
	}
	if snap.Daily.RequiredDailyRate == nil {
		t.Fatal("RequiredDailyRate should be defined with days left")
	}
}

func TestCalculate_StatusThresholds(t *testing.T) {
	// 10-day flight, budget 1000, so target is 100/day. Today is day 5:
	// days_passed=5. Spend drives actual = spend/5.
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 1), EndDate: d(2025, 6, 10)}
	today := d(2025, 6, 5)

	cases := []struct {
		spend float64
		want  model.PacingStatus
	}{
		{500, model.PacingOnTrack},        // actual 100, exactly target
		{475, model.PacingOnTrack},        // actual 95, exactly the threshold
		{474, model.PacingSlightlyBehind}, // actual 94.8, just under
		{400, model.PacingSlightlyBehind}, // actual 80, exactly the threshold
		{399, model.PacingBehind},         // actual 79.8, just under
		{0, model.PacingBehind},
	}
	for _, tc := range cases {
		snap, err := Calculate(tc.spend, tl, 1000, today)
		if err != nil {
			t.Fatal(err)
		}
		if snap.Daily.Status != tc.want {
			t.Errorf("spend %.0f: status = %q, want %q", tc.spend, snap.Daily.Status, tc.want)
		}
	}
}

// Raising the actual rate must never worsen the status.
func TestCalculate_StatusMonotonic(t *testing.T) {
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 1), EndDate: d(2025, 6, 10)}
	today := d(2025, 6, 5)

	rank := map[model.PacingStatus]int{
		model.PacingBehind:         0,
		model.PacingSlightlyBehind: 1,
		model.PacingOnTrack:        2,
	}

	prev := -1
	for spend := 0.0; spend <= 600; spend += 5 {
		snap, err := Calculate(spend, tl, 1000, today)
		if err != nil {
			t.Fatal(err)
		}
		r := rank[snap.Daily.Status]
		if r < prev {
			t.Fatalf("status worsened at spend %.0f: %q", spend, snap.Daily.Status)
		}
		prev = r
	}
}

func TestCalculate_BeforeFlightStart(t *testing.T) {
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 10), EndDate: d(2025, 6, 20)}
	snap, err := Calculate(0, tl, 1000, d(2025, 6, 1))
	if err != nil {
		t.Fatal(err)
	}

	if snap.Timeline.DaysPassed != 0 {
		t.Errorf("DaysPassed = %d, want 0", snap.Timeline.DaysPassed)
	}
	if snap.Daily.ActualDailyRate != nil {
		t.Error("ActualDailyRate should be undefined before the flight starts")
	}
	if snap.Daily.Status != model.PacingUnknown {
		t.Errorf("Status = %q, want unknown (blank)", snap.Daily.Status)
	}
	if snap.Budget.BudgetProjection != nil {
		t.Error("BudgetProjection should be undefined without an actual rate")
	}
}

func TestCalculate_AfterFlightEnd(t *testing.T) {
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 1), EndDate: d(2025, 6, 10)}
	snap, err := Calculate(900, tl, 1000, d(2025, 6, 20))
	if err != nil {
		t.Fatal(err)
	}

	if snap.Timeline.DaysLeft != 0 {
		t.Errorf("DaysLeft = %d, want 0", snap.Timeline.DaysLeft)
	}
	if snap.Daily.RequiredDailyRate != nil {
		t.Error("RequiredDailyRate should be undefined after the flight ends")
	}
	if snap.Daily.ActualDailyRate == nil {
		t.Error("ActualDailyRate should still be defined after the end")
	}
}

func TestCalculate_ZeroBudget(t *testing.T) {
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 1), EndDate: d(2025, 6, 10)}
	snap, err := Calculate(50, tl, 0, d(2025, 6, 5))
	if err != nil {
		t.Fatal(err)
	}

	if snap.Budget.SpendPercentage != nil {
		t.Error("SpendPercentage should be undefined for zero budget")
	}
	if snap.Daily.TargetDailyRate != 0 {
		t.Errorf("TargetDailyRate = %v, want 0", snap.Daily.TargetDailyRate)
	}
	// Zero target: any spend is on track.
	if snap.Daily.Status != model.PacingOnTrack {
		t.Errorf("Status = %q, want ON_TRACK for zero target", snap.Daily.Status)
	}
}

func TestCalculate_NegativeBudget(t *testing.T) {
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 1), EndDate: d(2025, 6, 10)}
	_, err := Calculate(0, tl, -1, d(2025, 6, 5))
	if !model.IsInputError(err) {
		t.Fatalf("want input error for negative budget, got %v", err)
	}
}

func TestCalculate_InvertedTimeline(t *testing.T) {
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 10), EndDate: d(2025, 6, 1)}
	_, err := Calculate(0, tl, 1000, d(2025, 6, 5))
	if !model.IsInputError(err) {
		t.Fatalf("want input error for inverted timeline, got %v", err)
	}
}

func TestCalculate_BudgetProjection(t *testing.T) {
	// Target 100/day, actual 100/day. days_passed=5 and days_left=6 overlap
	// on today, so the projection is 500 + 100*6 = 1100, 110% of budget.
	tl := model.CampaignTimeline{StartDate: d(2025, 6, 1), EndDate: d(2025, 6, 10)}
	snap, err := Calculate(500, tl, 1000, d(2025, 6, 5))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Budget.BudgetProjection == nil || *snap.Budget.BudgetProjection != 110.0 {
		t.Errorf("BudgetProjection = %v, want 110.0", snap.Budget.BudgetProjection)
	}
}
