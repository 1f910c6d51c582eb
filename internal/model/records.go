// Package model defines the domain records and result row types shared by the
// rollup, pacing, and allocation components.
package model

import (
	"time"

	"github.com/google/uuid"
)

// HourlyUsageRecord is one row of spend/impressions attributed to a specific
// UTC hour bucket. Records are read-only inputs; the engine never mutates them.
type HourlyUsageRecord struct {
	CampaignID  uuid.UUID
	LineItemID  uuid.UUID
	Year        int
	Month       int
	Day         int
	Hour        int
	Spend       float64
	Impressions int64
}

// UTCInstant returns the instant at the top of the record's UTC hour bucket.
func (r HourlyUsageRecord) UTCInstant() time.Time {
	return time.Date(r.Year, time.Month(r.Month), r.Day, r.Hour, 0, 0, 0, time.UTC)
}

// LocalDatedRecord is an hourly record plus its derived local calendar date.
// LocalDate is always computed from the hour instant, never from the UTC day
// label — relabeling a UTC day total shifts the date stamp without moving
// spend across the day boundary.
type LocalDatedRecord struct {
	HourlyUsageRecord
	LocalDate time.Time // midnight UTC, date-only value
}

// LineItem carries the human-readable name for a line item within a campaign.
type LineItem struct {
	ID   uuid.UUID
	Name string
}

// CampaignMeta is the externally supplied campaign metadata. Immutable for
// the duration of one engine run. EndDate >= StartDate.
type CampaignMeta struct {
	ID          uuid.UUID
	Name        string
	Budget      float64
	StartDate   time.Time
	EndDate     time.Time
	SpentToDate float64
	LineItems   []LineItem
}

// LineItemName resolves a line item ID to its name, falling back to the raw
// UUID string for line items the metadata lookup did not cover.
func (c CampaignMeta) LineItemName(id uuid.UUID) string {
	for _, li := range c.LineItems {
		if li.ID == id {
			return li.Name
		}
	}
	return id.String()
}

// CampaignTimeline is the flight window pacing is computed against.
type CampaignTimeline struct {
	StartDate time.Time
	EndDate   time.Time
}

// DateRange is an inclusive local-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DayKey formats a date-only value as the canonical map/sort key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DateOnly truncates t to its calendar date, pinned to midnight UTC so date
// keys compare bitwise regardless of the zone t was built in.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed whole-day distance from a to b, both
// interpreted as calendar dates.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// Float is a convenience for building optional metric values.
func Float(v float64) *float64 { return &v }
