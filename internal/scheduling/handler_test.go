package scheduling

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/catalog"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/studio"
)

type fixture struct {
	mux          *http.ServeMux
	router       *gin.Engine
	bookingCalls int32
}

func newFixture(t *testing.T, user *account.User) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{mux: http.NewServeMux()}
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)

	api := backend.New(srv.URL, "studio-1", 0)
	sessions := session.NewManager(session.NewMemoryStore(), "studiofront_session")
	h := NewHandler(NewClient(api), catalog.NewClient(api), studio.NewClient(api), sessions)

	tmpl := template.Must(template.New("agenda.tmpl").Parse(
		`{{range .Rows}}{{.ClassName}}/{{.InstructorName}}/{{.LocationName}};{{end}}err:{{.LoadErr}}`))
	template.Must(tmpl.New("asistencia.tmpl").Parse(
		`sessions:{{len .Sessions}} bookings:{{len .Bookings}}`))
	template.Must(tmpl.New("horarios.tmpl").Parse(
		`{{range .Rows}}{{.ClassName}}|{{.Booked}};{{end}}canbook:{{.CanBook}}`))

	f.router = gin.New()
	f.router.SetHTMLTemplate(tmpl)
	f.router.Use(func(c *gin.Context) {
		if user != nil {
			account.WithUser(c, user, "tok")
		}
	})
	f.router.GET("/admin/agenda", h.ShowAgenda)
	f.router.GET("/admin/asistencia", h.ShowAttendance)
	f.router.POST("/admin/asistencia/checkin", h.CheckIn)
	f.router.GET("/horarios", h.ShowSchedule)
	f.router.POST("/horarios/reservar", h.Book)
	return f
}

func customer() *account.User {
	return &account.User{ID: "u1", Email: "c@x.mx", Roles: []string{"customer"}}
}

func (f *fixture) serveDefaults() {
	f.mux.HandleFunc("/api/scheduling/sessions/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/scheduling/sessions/s1/" {
			w.Write([]byte(`{"id":"s1","class_type":"ct1","starts_at":"2025-06-18T09:30:00Z","capacity":10}`))
			return
		}
		if r.URL.Path == "/api/scheduling/sessions/s1/bookings/" {
			w.Write([]byte(`[{"id":"b1","status":"booked"},{"id":"b2","status":"attended"}]`))
			return
		}
		w.Write([]byte(`[
			{"id":"s1","class_type":"ct1","instructor":"i1","location":"l1","starts_at":"2025-06-18T09:30:00Z"},
			{"id":"s2","class_type":"missing","starts_at":"2025-06-19T18:00:00Z"}
		]`))
	})
	f.mux.HandleFunc("/api/catalog/class-types/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"ct1","name":"Yoga"}]`))
	})
	f.mux.HandleFunc("/api/catalog/instructors/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"i1","full_name":"Laura"}]`))
	})
	f.mux.HandleFunc("/api/studios/location/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"l1","name":"Centro"}]`))
	})
	f.mux.HandleFunc("/api/scheduling/bookings/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&f.bookingCalls, 1)
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.Write([]byte(`[{"id":"b9","session":"s2","status":"booked"}]`))
	})
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	f.router.ServeHTTP(w, req)
	return w
}

func TestShowAgenda_ResolvesNamesWithPlaceholders(t *testing.T) {
	f := newFixture(t, customer())
	f.serveDefaults()

	w := f.get("/admin/agenda")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Yoga/Laura/Centro;")
	assert.Contains(t, w.Body.String(), "Sin nombre/Sin coach/Sin sede;")
}

func TestShowAgenda_LookupFailureFailsPage(t *testing.T) {
	f2 := newFixture(t, customer())
	f2.mux.HandleFunc("/api/scheduling/sessions/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	f2.mux.HandleFunc("/api/catalog/class-types/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	})
	f2.mux.HandleFunc("/api/catalog/instructors/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	f2.mux.HandleFunc("/api/studios/location/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	w := f2.get("/admin/agenda")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "err:boom")
}

func TestShowAttendance_LoadsSelectedSessionBookings(t *testing.T) {
	f := newFixture(t, customer())
	f.serveDefaults()

	w := f.get("/admin/asistencia?filtro=hoy&sesion=s1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookings:2")
}

func TestShowSchedule_ClientSideFilterAndBookedFlag(t *testing.T) {
	f := newFixture(t, customer())
	f.serveDefaults()

	w := f.get("/horarios")
	assert.Contains(t, w.Body.String(), "Yoga|false;")
	assert.Contains(t, w.Body.String(), "Sin nombre|true;")
	assert.Contains(t, w.Body.String(), "canbook:true")

	w = f.get("/horarios?clase=ct1")
	assert.Contains(t, w.Body.String(), "Yoga|false;")
	assert.NotContains(t, w.Body.String(), "Sin nombre")
}

func TestBook_OperatorBlockedWithoutBackendCall(t *testing.T) {
	staff := &account.User{ID: "u2", Email: "s@x.mx", Roles: []string{"staff"}}
	f := newFixture(t, staff)
	f.serveDefaults()

	w := f.postForm("/horarios/reservar", url.Values{"sesion": {"s1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "err=")
	assert.EqualValues(t, 0, f.bookingCalls)
}

func TestBook_StartedSessionRejectionMapped(t *testing.T) {
	f := newFixture(t, customer())
	f.mux.HandleFunc("/api/scheduling/sessions/s1/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"s1","starts_at":"2025-06-18T09:30:00Z"}`))
	})
	f.mux.HandleFunc("/api/scheduling/bookings/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"non_field_errors":["La sesión ya inició o terminó."]}`))
	})

	w := f.postForm("/horarios/reservar", url.Values{"sesion": {"s1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	loc, err := url.QueryUnescape(w.Header().Get("Location"))
	assert.NoError(t, err)
	assert.Contains(t, loc, "ya inició o terminó")
	assert.Contains(t, loc, "18 Jun 2025 09:30")
}

func TestCheckIn_RedirectKeepsSelection(t *testing.T) {
	f := newFixture(t, customer())
	f.serveDefaults()
	f.mux.HandleFunc("/api/scheduling/checkins/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	w := f.postForm("/admin/asistencia/checkin", url.Values{
		"booking": {"b1"}, "sesion": {"s1"}, "filtro": {"hoy"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "sesion=s1")
	assert.Contains(t, w.Header().Get("Location"), "filtro=hoy")
}
