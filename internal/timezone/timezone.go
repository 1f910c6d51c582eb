// Package timezone converts UTC hour buckets into local calendar dates and
// local date ranges into UTC query bounds. Every downstream date key depends
// on this package getting the hour-to-day redistribution right.
package timezone

import (
	"time"

	"adpace/internal/model"
)

// Common US abbreviations seen in report configs. Standard and daylight
// variants both map to the canonical IANA zone so DST is handled by the zone
// database rather than a fixed offset.
var abbreviations = map[string]string{
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"EST": "America/New_York",
	"EDT": "America/New_York",
}

// Resolve turns a timezone name into a *time.Location. Empty string and "UTC"
// are the identity zone; abbreviations resolve to their canonical IANA zone;
// anything else is looked up in the zone database. Unknown names are an
// input error.
func Resolve(name string) (*time.Location, error) {
	if name == "" || name == "UTC" || name == "utc" {
		return time.UTC, nil
	}
	if canonical, ok := abbreviations[name]; ok {
		name = canonical
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, model.NewInputError("timezone", "unknown timezone %q", name)
	}
	return loc, nil
}

// ToLocalDate builds the UTC instant at the top of the given hour, converts
// it into loc, and truncates to the local calendar date. Converting only the
// date portion would collapse to relabeling: a UTC day total re-tagged with a
// new date, wrong whenever loc's offset pushes local hours across midnight.
func ToLocalDate(year, month, day, hour int, loc *time.Location) time.Time {
	instant := time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
	return model.DateOnly(instant.In(loc))
}

// LocalDateOf is ToLocalDate applied to an hourly record.
func LocalDateOf(r model.HourlyUsageRecord, loc *time.Location) time.Time {
	return ToLocalDate(r.Year, r.Month, r.Day, r.Hour, loc)
}

// Localize derives local dates for a batch of hourly records.
func Localize(records []model.HourlyUsageRecord, loc *time.Location) []model.LocalDatedRecord {
	out := make([]model.LocalDatedRecord, len(records))
	for i, r := range records {
		out[i] = model.LocalDatedRecord{
			HourlyUsageRecord: r,
			LocalDate:         LocalDateOf(r, loc),
		}
	}
	return out
}

// ConvertDateRangeToUTC maps a local calendar-date range onto the UTC
// instants covering [start 00:00:00, end 23:59:59] in loc. Used to widen a
// query range before fetching UTC-bucketed records.
func ConvertDateRangeToUTC(localStart, localEnd time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if localEnd.Before(localStart) {
		return time.Time{}, time.Time{}, model.NewInputError("date_range",
			"end %s before start %s", model.DayKey(localEnd), model.DayKey(localStart))
	}
	s := model.DateOnly(localStart)
	e := model.DateOnly(localEnd)
	utcStart := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc).UTC()
	utcEnd := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 0, loc).UTC()
	return utcStart, utcEnd, nil
}

// QueryBounds converts a local date range into the inclusive YYYYMMDD UTC day
// bounds the usage stores are queried with.
func QueryBounds(localStart, localEnd time.Time, loc *time.Location) (int, int, error) {
	utcStart, utcEnd, err := ConvertDateRangeToUTC(localStart, localEnd, loc)
	if err != nil {
		return 0, 0, err
	}
	return DateInt(utcStart), DateInt(utcEnd), nil
}

// DateInt encodes a date as a YYYYMMDD integer.
func DateInt(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
