package scheduling

import "time"

// Session statuses as served by the backend.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking statuses.
const (
	BookingBooked   = "booked"
	BookingAttended = "attended"
	BookingNoShow   = "no_show"
	BookingWaitlist = "waitlist"
)

// Session is a scheduled class occurrence. ClassType, Instructor and Location
// are backend ids; the views resolve them to names through lookup maps.
type Session struct {
	ID         string    `json:"id"`
	ClassType  string    `json:"class_type"`
	StartsAt   time.Time `json:"starts_at"`
	Capacity   int       `json:"capacity"`
	Status     string    `json:"status"`
	Instructor string    `json:"instructor"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes"`
}

// Booking links a user to a session. The attendance view drives a small state
// machine over Status: booked can move to attended (check-in) or no_show;
// attended can move back to booked by deleting the check-in; waitlist entries
// are display-only.
type Booking struct {
	ID               string    `json:"id"`
	User             string    `json:"user"`
	UserEmail        string    `json:"user_email"`
	UserName         string    `json:"user_name"`
	Status           string    `json:"status"`
	HasCheckin       bool      `json:"has_checkin"`
	CheckinID        string    `json:"checkin_id"`
	BookedAt         time.Time `json:"booked_at"`
	Session          string    `json:"session"`
	SessionClassName string    `json:"session_class_name"`
	SessionStartsAt  time.Time `json:"session_starts_at"`
}

type CheckIn struct {
	ID      string `json:"id"`
	Booking string `json:"booking"`
	Method  string `json:"method"`
}

// SessionForm carries the agenda create/edit fields. StartsAt arrives from the
// datetime-local input without a zone.
type SessionForm struct {
	ClassType  string `form:"class_type" binding:"required"`
	StartsAt   string `form:"starts_at" binding:"required"`
	Capacity   int    `form:"capacity" binding:"required,min=1"`
	Status     string `form:"status"`
	Instructor string `form:"instructor"`
	Location   string `form:"location"`
	Notes      string `form:"notes"`
}
