// Package allocate spreads each campaign's remaining budget across future
// Monday-Sunday weeks, prorating weeks the campaign is only partially active.
package allocate

import (
	"sort"
	"time"

	"adpace/internal/model"
	"adpace/internal/rollup"
)

// DefaultWeeksFuture is the forecast horizon when the caller does not set one.
const DefaultWeeksFuture = 6

// NextWeekStart returns the Monday strictly after today's week. The current
// partial week is never allocated: forecasting starts with the first full
// week the caller can still act on.
func NextWeekStart(today time.Time) time.Time {
	day := model.DateOnly(today)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, 7-sinceMonday)
}

// Weeks generates n consecutive Monday-Sunday windows starting at the next
// week boundary after today.
func Weeks(today time.Time, n int) []model.DateRange {
	weeks := make([]model.DateRange, 0, n)
	start := NextWeekStart(today)
	for i := 0; i < n; i++ {
		ws := start.AddDate(0, 0, 7*i)
		weeks = append(weeks, model.DateRange{Start: ws, End: ws.AddDate(0, 0, 6)})
	}
	return weeks
}

// Allocate emits one row per campaign per future week that receives budget.
//
// Campaigns with no remaining budget or whose end date is not after today are
// skipped entirely; negative remainders mean "exclude", never a negative
// allocation. The daily rate spreads the remaining budget over the days left
// until the end date, clamped to the forecast horizon, and each week gets
// rate x overlap-days (the full-week amount when the campaign covers all
// seven days).
func Allocate(campaigns []model.CampaignMeta, weeksFuture int, today time.Time) []model.WeeklyAllocationRow {
	if weeksFuture <= 0 {
		weeksFuture = DefaultWeeksFuture
	}
	day := model.DateOnly(today)
	weeks := Weeks(day, weeksFuture)

	type plan struct {
		meta      model.CampaignMeta
		dailyRate float64
	}
	var plans []plan

	for _, c := range campaigns {
		remaining := c.Budget - c.SpentToDate
		if remaining <= 0 {
			continue
		}
		daysToEnd := model.DaysBetween(day, c.EndDate)
		if daysToEnd <= 0 {
			continue
		}
		remainingDays := daysToEnd
		if horizon := weeksFuture * 7; remainingDays > horizon {
			remainingDays = horizon
		}
		plans = append(plans, plan{
			meta:      c,
			dailyRate: remaining / float64(remainingDays),
		})
	}

	sort.Slice(plans, func(i, j int) bool {
		a, b := plans[i].meta, plans[j].meta
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})

	var rows []model.WeeklyAllocationRow
	for _, week := range weeks {
		for _, p := range plans {
			days := overlapDays(week, p.meta.StartDate, p.meta.EndDate)
			if days <= 0 {
				continue
			}
			rows = append(rows, model.WeeklyAllocationRow{
				WeekStart:    week.Start,
				WeekEnd:      week.End,
				CampaignID:   p.meta.ID,
				CampaignName: p.meta.Name,
				WeeklyBudget: rollup.Round2(p.dailyRate * float64(days)),
			})
		}
	}
	return rows
}

// overlapDays counts the days of [start,end] that fall inside the week,
// inclusive on both sides.
func overlapDays(week model.DateRange, start, end time.Time) int {
	s := model.DateOnly(start)
	e := model.DateOnly(end)
	if s.Before(week.Start) {
		s = week.Start
	}
	if e.After(week.End) {
		e = week.End
	}
	return model.DaysBetween(s, e) + 1
}
