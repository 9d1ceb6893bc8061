package models

import "time"

// DateRange is an inclusive range of instants, compared at day granularity.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Normalize returns the range with Start and End swapped when reversed.
func (r DateRange) Normalize() DateRange {
	if r.End.Before(r.Start) {
		return DateRange{Start: r.End, End: r.Start}
	}
	return r
}

// DatePreset names a range relative to now.
type DatePreset string

const (
	PresetWeek        DatePreset = "week"
	PresetMonth       DatePreset = "month"
	PresetThreeMonths DatePreset = "3months"
	PresetSixMonths   DatePreset = "6months"
	PresetYear        DatePreset = "year"
)

var presetDays = map[DatePreset]int{
	PresetWeek:        7,
	PresetMonth:       30,
	PresetThreeMonths: 90,
	PresetSixMonths:   180,
	PresetYear:        365,
}

// Valid reports whether p is a known preset.
func (p DatePreset) Valid() bool {
	_, ok := presetDays[p]
	return ok
}

// Range returns the range ending at now. Unknown presets yield the month range.
func (p DatePreset) Range(now time.Time) DateRange {
	days, ok := presetDays[p]
	if !ok {
		days = presetDays[PresetMonth]
	}
	return DateRange{Start: now.Add(-time.Duration(days) * 24 * time.Hour), End: now}
}

// DefaultDateRange is the range a fresh state starts with: the last 30 days.
func DefaultDateRange(now time.Time) DateRange {
	return PresetMonth.Range(now)
}
