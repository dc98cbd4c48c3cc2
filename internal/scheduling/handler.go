package scheduling

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/catalog"
	"github.com/gaibarra/33fitstudio/internal/dates"
	"github.com/gaibarra/33fitstudio/internal/fanout"
	"github.com/gaibarra/33fitstudio/internal/metrics"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/studio"
	"github.com/gaibarra/33fitstudio/internal/web"
)

// Placeholder labels when a lookup id has no match.
const (
	noClassName      = "Sin nombre"
	noInstructorName = "Sin coach"
	noLocationName   = "Sin sede"
)

var dateFilters = []string{
	dates.FilterAyer,
	dates.FilterHoy,
	dates.FilterManana,
	dates.FilterSemanaPasada,
	dates.FilterSemanaProxima,
}

type Handler struct {
	scheduling *Client
	catalog    *catalog.Client
	studio     *studio.Client
	sessions   *session.Manager
}

func NewHandler(scheduling *Client, cat *catalog.Client, st *studio.Client, sessions *session.Manager) *Handler {
	return &Handler{scheduling: scheduling, catalog: cat, studio: st, sessions: sessions}
}

// AgendaRow is a session with its lookup ids resolved to display names.
type AgendaRow struct {
	Session
	ClassName      string
	InstructorName string
	LocationName   string
}

func resolveRows(sessions []Session, classes, instructors, locations map[string]string) []AgendaRow {
	rows := make([]AgendaRow, 0, len(sessions))
	for _, s := range sessions {
		row := AgendaRow{
			Session:        s,
			ClassName:      lookup(classes, s.ClassType, noClassName),
			InstructorName: lookup(instructors, s.Instructor, noInstructorName),
			LocationName:   lookup(locations, s.Location, noLocationName),
		}
		rows = append(rows, row)
	}
	return rows
}

func lookup(names map[string]string, id, placeholder string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return placeholder
}

// ShowAgenda loads one page of sessions plus the three lookup maps in
// parallel. The lookups are part of the page, so any failure fails the load.
func (h *Handler) ShowAgenda(c *gin.Context) {
	token := account.Token(c)
	filter := c.Query("filtro")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var (
		sessionsPage backend.Page[Session]
		classNames   map[string]string
		coachNames   map[string]string
		siteNames    map[string]string
	)
	err := fanout.All(c.Request.Context(),
		func(ctx context.Context) error {
			var err error
			sessionsPage, err = h.scheduling.ListSessions(ctx, token, filter, page)
			return err
		},
		func(ctx context.Context) error {
			var err error
			classNames, err = h.catalog.ClassTypeNames(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			coachNames, err = h.catalog.InstructorNames(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			siteNames, err = h.studio.LocationNames(ctx, token)
			return err
		},
	)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "agenda.tmpl", gin.H{
			"Base":        web.NewBase(c, "Agenda"),
			"DateFilters": dateFilters,
			"Filter":      filter,
			"LoadErr":     backend.Friendly(err, "No se pudo cargar la agenda."),
		})
		return
	}

	c.HTML(http.StatusOK, "agenda.tmpl", gin.H{
		"Base":        web.NewBase(c, "Agenda"),
		"DateFilters": dateFilters,
		"Rows":        resolveRows(sessionsPage.Items, classNames, coachNames, siteNames),
		"ClassTypes":  classNames,
		"Instructors": coachNames,
		"Locations":   siteNames,
		"Filter":      filter,
		"Page":        page,
		"PageCount":   sessionsPage.PageCount(),
		"HasNext":     sessionsPage.HasNext,
		"HasPrevious": sessionsPage.HasPrevious,
		"Paginated":   sessionsPage.Paginated,
	})
}

func agendaPath(c *gin.Context) string {
	path := "/admin/agenda"
	if filter := c.PostForm("filtro"); filter != "" {
		path += "?filtro=" + filter
	}
	return path
}

func (h *Handler) CreateSession(c *gin.Context) {
	var form SessionForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, agendaPath(c), "", web.FormError(err, "Clase, horario y cupo son requeridos."))
		return
	}
	if err := h.scheduling.CreateSession(c.Request.Context(), account.Token(c), form); err != nil {
		web.Redirect(c, agendaPath(c), "", backend.Friendly(err, "No se pudo crear la sesión."))
		return
	}
	web.Redirect(c, agendaPath(c), "Sesión creada.", "")
}

func (h *Handler) UpdateSession(c *gin.Context) {
	var form SessionForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, agendaPath(c), "", web.FormError(err, "Clase, horario y cupo son requeridos."))
		return
	}
	if err := h.scheduling.UpdateSession(c.Request.Context(), account.Token(c), c.Param("id"), form); err != nil {
		web.Redirect(c, agendaPath(c), "", backend.Friendly(err, "No se pudo guardar la sesión."))
		return
	}
	web.Redirect(c, agendaPath(c), "Sesión actualizada.", "")
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.scheduling.DeleteSession(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, agendaPath(c), "", backend.Friendly(err, "No se pudo eliminar la sesión."))
		return
	}
	web.Redirect(c, agendaPath(c), "Sesión eliminada.", "")
}

// ShowAttendance lists the day's sessions; selecting one loads only that
// session's bookings.
func (h *Handler) ShowAttendance(c *gin.Context) {
	token := account.Token(c)
	filter := c.DefaultQuery("filtro", dates.FilterHoy)
	if filter == "todas" {
		filter = ""
	}
	selected := c.Query("sesion")

	sessionsPage, err := h.scheduling.ListSessions(c.Request.Context(), token, filter, 1)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "asistencia.tmpl", gin.H{
			"Base":    web.NewBase(c, "Asistencia"),
			"Filter":  c.DefaultQuery("filtro", dates.FilterHoy),
			"LoadErr": backend.Friendly(err, "No se pudieron cargar las sesiones."),
		})
		return
	}

	var bookings []Booking
	if selected != "" {
		bookings, err = h.scheduling.SessionBookings(c.Request.Context(), token, selected)
		if err != nil {
			if backend.IsUnauthorized(err) {
				account.RedirectToLogin(c, h.sessions)
				return
			}
			bookings = nil
		}
	}

	data := gin.H{
		"Base":     web.NewBase(c, "Asistencia"),
		"Sessions": sessionsPage.Items,
		"Filter":   c.DefaultQuery("filtro", dates.FilterHoy),
		"Selected": selected,
		"Bookings": bookings,
	}
	if selected != "" && err != nil {
		data["LoadErr"] = backend.Friendly(err, "No se pudieron cargar las reservas.")
	}
	c.HTML(http.StatusOK, "asistencia.tmpl", data)
}

func attendancePath(c *gin.Context) string {
	path := "/admin/asistencia?sesion=" + c.PostForm("sesion")
	if filter := c.PostForm("filtro"); filter != "" {
		path += "&filtro=" + filter
	}
	return path
}

// CheckIn moves a booking from booked to attended.
func (h *Handler) CheckIn(c *gin.Context) {
	err := h.scheduling.CreateCheckin(c.Request.Context(), account.Token(c), c.PostForm("booking"))
	if err != nil {
		web.Redirect(c, attendancePath(c), "", backend.Friendly(err, "No se pudo registrar la asistencia."))
		return
	}
	metrics.RecordCheckin("create")
	web.Redirect(c, attendancePath(c), "Asistencia registrada.", "")
}

// UndoCheckIn moves an attended booking back to booked by deleting its
// check-in.
func (h *Handler) UndoCheckIn(c *gin.Context) {
	err := h.scheduling.DeleteCheckin(c.Request.Context(), account.Token(c), c.PostForm("checkin"))
	if err != nil {
		web.Redirect(c, attendancePath(c), "", backend.Friendly(err, "No se pudo deshacer la asistencia."))
		return
	}
	metrics.RecordCheckin("delete")
	web.Redirect(c, attendancePath(c), "Asistencia deshecha.", "")
}

// MarkNoShow is irreversible from the attendance screen.
func (h *Handler) MarkNoShow(c *gin.Context) {
	err := h.scheduling.MarkNoShow(c.Request.Context(), account.Token(c), c.PostForm("booking"))
	if err != nil {
		web.Redirect(c, attendancePath(c), "", backend.Friendly(err, "No se pudo marcar la falta."))
		return
	}
	web.Redirect(c, attendancePath(c), "Falta registrada.", "")
}

// ScheduleRow is an upcoming session annotated with the viewer's booking.
type ScheduleRow struct {
	AgendaRow
	BookingID string
	Booked    bool
}

// ShowSchedule renders the customer schedule: upcoming sessions with
// client-side class, coach and date filters applied over the fetched list.
func (h *Handler) ShowSchedule(c *gin.Context) {
	token := account.Token(c)

	var (
		upcoming   []Session
		classNames map[string]string
		coachNames map[string]string
		siteNames  map[string]string
		mine       []Booking
	)
	err := fanout.All(c.Request.Context(),
		func(ctx context.Context) error {
			var err error
			upcoming, err = h.scheduling.UpcomingSessions(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			classNames, err = h.catalog.ClassTypeNames(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			coachNames, err = h.catalog.InstructorNames(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			siteNames, err = h.studio.LocationNames(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			mine, err = h.scheduling.Bookings(ctx, token)
			return err
		},
	)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "horarios.tmpl", gin.H{
			"Base":    web.NewBase(c, "Horarios"),
			"LoadErr": backend.Friendly(err, "No se pudieron cargar los horarios."),
		})
		return
	}

	bySession := make(map[string]Booking, len(mine))
	for _, b := range mine {
		if b.Status == BookingBooked || b.Status == BookingWaitlist {
			bySession[b.Session] = b
		}
	}

	classFilter := c.Query("clase")
	coachFilter := c.Query("coach")
	dateFilter := c.Query("fecha")

	rows := make([]ScheduleRow, 0, len(upcoming))
	for _, row := range resolveRows(upcoming, classNames, coachNames, siteNames) {
		if classFilter != "" && row.ClassType != classFilter {
			continue
		}
		if coachFilter != "" && row.Instructor != coachFilter {
			continue
		}
		if dateFilter != "" && dates.ISO(row.StartsAt) != dateFilter {
			continue
		}
		sr := ScheduleRow{AgendaRow: row}
		if b, ok := bySession[row.ID]; ok {
			sr.BookingID = b.ID
			sr.Booked = true
		}
		rows = append(rows, sr)
	}

	user, _ := account.CurrentUser(c)
	c.HTML(http.StatusOK, "horarios.tmpl", gin.H{
		"Base":        web.NewBase(c, "Horarios"),
		"Rows":        rows,
		"ClassTypes":  classNames,
		"Instructors": coachNames,
		"ClassFilter": classFilter,
		"CoachFilter": coachFilter,
		"DateFilter":  dateFilter,
		"CanBook":     user != nil && !user.IsOperator(),
	})
}

// Book reserves a spot. Operators cannot book; the rejection for an already
// started session is rewritten with the start time.
func (h *Handler) Book(c *gin.Context) {
	if user, ok := account.CurrentUser(c); !ok || user.IsOperator() {
		web.Redirect(c, "/horarios", "", "Las cuentas de operación no pueden reservar clases.")
		return
	}

	token := account.Token(c)
	sess, err := h.scheduling.Session(c.Request.Context(), token, c.PostForm("sesion"))
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		web.Redirect(c, "/horarios", "", backend.Friendly(err, "No se encontró la sesión."))
		return
	}

	if err := h.scheduling.CreateBooking(c.Request.Context(), token, *sess); err != nil {
		metrics.RecordBooking("rejected")
		web.Redirect(c, "/horarios", "", backend.Friendly(err, err.Error()))
		return
	}
	metrics.RecordBooking("created")
	web.Redirect(c, "/horarios", "Reserva confirmada.", "")
}

func (h *Handler) Cancel(c *gin.Context) {
	redirect := c.DefaultPostForm("volver", "/horarios")
	if err := h.scheduling.CancelBooking(c.Request.Context(), account.Token(c), c.PostForm("reserva")); err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		web.Redirect(c, redirect, "", backend.Friendly(err, "No se pudo cancelar la reserva."))
		return
	}
	metrics.RecordBooking("cancelled")
	web.Redirect(c, redirect, "Reserva cancelada.", "")
}
