// Package dates computes the date-range filters used across the agenda,
// attendance, and reporting screens. Everything is a pure function of "now".
package dates

import (
	"net/url"
	"time"
)

// Filter values understood by Apply. Empty string means "no date filter".
const (
	FilterAyer          = "ayer"
	FilterHoy           = "hoy"
	FilterManana        = "manana"
	FilterSemanaPasada  = "semana_pasada"
	FilterSemanaProxima = "semana_proxima"
)

// Report windows.
const (
	RangeHoy    = "hoy"
	RangeSemana = "semana"
	RangeMes    = "mes"
)

type Range struct {
	Start time.Time
	End   time.Time
}

func ISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// Today truncates now to midnight in its own location.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// Day resolves the single-day filters. ok is false for week filters and
// unknown values.
func Day(filter string, now time.Time) (time.Time, bool) {
	today := Today(now)
	switch filter {
	case FilterHoy:
		return today, true
	case FilterAyer:
		return addDays(today, -1), true
	case FilterManana:
		return addDays(today, 1), true
	}
	return time.Time{}, false
}

// Week resolves the Monday-Sunday span of the week before or after the
// current one. Sunday belongs to the week that is ending.
func Week(filter string, now time.Time) (Range, bool) {
	if filter != FilterSemanaPasada && filter != FilterSemanaProxima {
		return Range{}, false
	}
	today := Today(now)
	weekday := int(today.Weekday())
	mondayOffset := 1 - weekday
	if weekday == 0 {
		mondayOffset = -6
	}
	mondayThisWeek := addDays(today, mondayOffset)

	monday := addDays(mondayThisWeek, 7)
	if filter == FilterSemanaPasada {
		monday = addDays(mondayThisWeek, -7)
	}
	return Range{Start: monday, End: addDays(monday, 6)}, true
}

// Apply translates a date filter into the backend's query parameters: single
// days become date=YYYY-MM-DD, weeks become a starts_at__date range.
func Apply(filter string, now time.Time, q url.Values) {
	if day, ok := Day(filter, now); ok {
		q.Set("date", ISO(day))
		return
	}
	if week, ok := Week(filter, now); ok {
		q.Set("starts_at__date__gte", ISO(week.Start))
		q.Set("starts_at__date__lte", ISO(week.End))
	}
}

// ReportWindow is the reporting date range ending today: hoy, the last 7
// days, or the last 30 days.
func ReportWindow(rangeKey string, now time.Time) Range {
	today := Today(now)
	switch rangeKey {
	case RangeHoy:
		return Range{Start: today, End: today}
	case RangeMes:
		return Range{Start: addDays(today, -30), End: today}
	default:
		return Range{Start: addDays(today, -7), End: today}
	}
}

// RangeLabel is the filename fragment used by the CSV exports.
func RangeLabel(rangeKey string) string {
	switch rangeKey {
	case RangeHoy:
		return "hoy"
	case RangeSemana:
		return "ultimos_7_dias"
	case RangeMes:
		return "ultimos_30_dias"
	default:
		return "reporte"
	}
}
