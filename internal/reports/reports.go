// Package reports aggregates sessions and bookings into the operator metrics:
// occupancy, attendance and no-show rates per session, per class type, and for
// the whole window.
package reports

import (
	"math"
	"sort"

	"github.com/gaibarra/33fitstudio/internal/scheduling"
)

// SessionDetailLimit caps the per-session table to the most recent sessions.
const SessionDetailLimit = 10

// SessionStats is one session's booking breakdown. Booked counts every
// reservation that held a spot: still booked, attended, or missed.
type SessionStats struct {
	Session      scheduling.Session
	ClassName    string
	Booked       int
	Attended     int
	NoShow       int
	Waitlist     int
	OccupancyPct int
}

type Summary struct {
	Sessions      int
	Capacity      int
	Booked        int
	Attended      int
	NoShow        int
	Waitlist      int
	OccupancyPct  int
	AttendancePct int
	NoShowPct     int
}

type ClassTypeStats struct {
	Name          string
	Sessions      int
	Booked        int
	Attended      int
	NoShow        int
	AttendancePct int
}

// Report is the fully aggregated reporting window.
type Report struct {
	Summary       Summary
	SessionDetail []SessionStats
	ByClassType   []ClassTypeStats
}

// Pct is the integer-rounded percentage n/d, zero when d is zero.
func Pct(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(d)))
}

// Build aggregates the window. Bookings that reference a session outside the
// window are ignored.
func Build(sessions []scheduling.Session, bookings []scheduling.Booking, classNames map[string]string) Report {
	stats := make(map[string]*SessionStats, len(sessions))
	order := make([]string, 0, len(sessions))
	for _, s := range sessions {
		name := classNames[s.ClassType]
		if name == "" {
			name = "Sin nombre"
		}
		stats[s.ID] = &SessionStats{Session: s, ClassName: name}
		order = append(order, s.ID)
	}

	for _, b := range bookings {
		st, ok := stats[b.Session]
		if !ok {
			continue
		}
		switch b.Status {
		case scheduling.BookingBooked:
			st.Booked++
		case scheduling.BookingAttended:
			st.Booked++
			st.Attended++
		case scheduling.BookingNoShow:
			st.Booked++
			st.NoShow++
		case scheduling.BookingWaitlist:
			st.Waitlist++
		}
	}

	var sum Summary
	detail := make([]SessionStats, 0, len(order))
	byClass := make(map[string]*ClassTypeStats)
	for _, id := range order {
		st := stats[id]
		st.OccupancyPct = Pct(st.Booked, st.Session.Capacity)
		detail = append(detail, *st)

		sum.Sessions++
		sum.Capacity += st.Session.Capacity
		sum.Booked += st.Booked
		sum.Attended += st.Attended
		sum.NoShow += st.NoShow
		sum.Waitlist += st.Waitlist

		ct, ok := byClass[st.ClassName]
		if !ok {
			ct = &ClassTypeStats{Name: st.ClassName}
			byClass[st.ClassName] = ct
		}
		ct.Sessions++
		ct.Booked += st.Booked
		ct.Attended += st.Attended
		ct.NoShow += st.NoShow
	}

	sum.OccupancyPct = Pct(sum.Booked, sum.Capacity)
	sum.AttendancePct = Pct(sum.Attended, sum.Booked)
	sum.NoShowPct = Pct(sum.NoShow, sum.Booked)

	sort.SliceStable(detail, func(i, j int) bool {
		return detail[i].Session.StartsAt.After(detail[j].Session.StartsAt)
	})
	if len(detail) > SessionDetailLimit {
		detail = detail[:SessionDetailLimit]
	}

	classes := make([]ClassTypeStats, 0, len(byClass))
	for _, ct := range byClass {
		ct.AttendancePct = Pct(ct.Attended, ct.Booked)
		classes = append(classes, *ct)
	}
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].Sessions != classes[j].Sessions {
			return classes[i].Sessions > classes[j].Sessions
		}
		return classes[i].Name < classes[j].Name
	})

	return Report{Summary: sum, SessionDetail: detail, ByClassType: classes}
}
