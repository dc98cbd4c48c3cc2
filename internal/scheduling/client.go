package scheduling

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/dates"
)

// PageSize matches the backend's agenda page size.
const PageSize = 8

// Client wraps the scheduling endpoints.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// ListSessions fetches one agenda page, newest first. filter is one of the
// date filter keys or empty for no date constraint.
func (c *Client) ListSessions(ctx context.Context, token, filter string, page int) (backend.Page[Session], error) {
	q := url.Values{}
	q.Set("ordering", "-starts_at")
	q.Set("page_size", strconv.Itoa(PageSize))
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	dates.Apply(filter, time.Now(), q)
	return backend.GetPage[Session](ctx, c.api, "/api/scheduling/sessions/", token, q)
}

// UpcomingSessions fetches future scheduled sessions for the customer
// schedule, soonest first.
func (c *Client) UpcomingSessions(ctx context.Context, token string) ([]Session, error) {
	q := url.Values{}
	q.Set("ordering", "starts_at")
	q.Set("status", StatusScheduled)
	q.Set("starts_at__gte", time.Now().Format(time.RFC3339))
	page, err := backend.GetPage[Session](ctx, c.api, "/api/scheduling/sessions/", token, q)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) Session(ctx context.Context, token, id string) (*Session, error) {
	var s Session
	if err := c.api.Get(ctx, "/api/scheduling/sessions/"+id+"/", token, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateSession(ctx context.Context, token string, form SessionForm) error {
	return c.api.Post(ctx, "/api/scheduling/sessions/", token, sessionPayload(form), nil)
}

func (c *Client) UpdateSession(ctx context.Context, token, id string, form SessionForm) error {
	return c.api.Patch(ctx, "/api/scheduling/sessions/"+id+"/", token, sessionPayload(form), nil)
}

func (c *Client) DeleteSession(ctx context.Context, token, id string) error {
	return c.api.Delete(ctx, "/api/scheduling/sessions/"+id+"/", token)
}

func sessionPayload(form SessionForm) map[string]interface{} {
	p := map[string]interface{}{
		"class_type": form.ClassType,
		"starts_at":  form.StartsAt,
		"capacity":   form.Capacity,
		"notes":      form.Notes,
	}
	if form.Status != "" {
		p["status"] = form.Status
	}
	if form.Instructor != "" {
		p["instructor"] = form.Instructor
	}
	if form.Location != "" {
		p["location"] = form.Location
	}
	return p
}

// SessionBookings fetches the bookings of a single session for the attendance
// view.
func (c *Client) SessionBookings(ctx context.Context, token, sessionID string) ([]Booking, error) {
	page, err := backend.GetPage[Booking](ctx, c.api, "/api/scheduling/sessions/"+sessionID+"/bookings/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Bookings lists the bookings visible to the caller: operators see the whole
// studio, customers only their own.
func (c *Client) Bookings(ctx context.Context, token string) ([]Booking, error) {
	page, err := backend.GetPage[Booking](ctx, c.api, "/api/scheduling/bookings/", token, nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// SessionsBetween fetches the sessions starting inside a date window for the
// reports.
func (c *Client) SessionsBetween(ctx context.Context, token string, window dates.Range) ([]Session, error) {
	q := url.Values{}
	q.Set("ordering", "-starts_at")
	q.Set("page_size", "200")
	q.Set("starts_at__date__gte", dates.ISO(window.Start))
	q.Set("starts_at__date__lte", dates.ISO(window.End))
	page, err := backend.GetPage[Session](ctx, c.api, "/api/scheduling/sessions/", token, q)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

var sessionStartedRe = regexp.MustCompile(`(?i)inici[oó]|termin[oó]`)

// CreateBooking books a session for the signed-in user. A backend rejection
// mentioning that the session already started is rewritten with the session's
// start time so the customer knows which slot to avoid.
func (c *Client) CreateBooking(ctx context.Context, token string, session Session) error {
	err := c.api.Post(ctx, "/api/scheduling/bookings/", token, map[string]string{
		"session": session.ID,
	}, nil)
	if err == nil {
		return nil
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && sessionStartedRe.MatchString(backend.FlattenMessage(apiErr.Body)) {
		return fmt.Errorf("Esta sesión ya inició o terminó (inicio: %s). Elige otra clase disponible.",
			session.StartsAt.Format("02 Jan 2006 15:04"))
	}
	return err
}

func (c *Client) CancelBooking(ctx context.Context, token, bookingID string) error {
	return c.api.Post(ctx, "/api/scheduling/bookings/"+bookingID+"/cancel/", token, nil, nil)
}

func (c *Client) MarkNoShow(ctx context.Context, token, bookingID string) error {
	return c.api.Post(ctx, "/api/scheduling/bookings/"+bookingID+"/mark_no_show/", token, nil, nil)
}

// CreateCheckin records a manual check-in for a booking.
func (c *Client) CreateCheckin(ctx context.Context, token, bookingID string) error {
	return c.api.Post(ctx, "/api/scheduling/checkins/", token, map[string]string{
		"booking": bookingID,
		"method":  "manual",
	}, nil)
}

func (c *Client) DeleteCheckin(ctx context.Context, token, checkinID string) error {
	return c.api.Delete(ctx, "/api/scheduling/checkins/"+checkinID+"/", token)
}
