package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/catalog"
	"github.com/gaibarra/33fitstudio/internal/logger"
	"github.com/gaibarra/33fitstudio/internal/scheduling"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/studio"
	"github.com/gaibarra/33fitstudio/internal/web"
)

func signedToken(t *testing.T, exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":        exp.Unix(),
		"token_type": "access",
	})
	s, err := tok.SignedString([]byte("integration-secret"))
	require.NoError(t, err)
	return s
}

// studioStub stands in for the remote studio API.
type studioStub struct {
	srv           *httptest.Server
	customerToken string
	operatorToken string

	mu           sync.Mutex
	bookings     []map[string]string
	studioHeader string
}

func newStudioStub(t *testing.T) *studioStub {
	stub := &studioStub{
		customerToken: signedToken(t, time.Now().Add(time.Hour)),
		operatorToken: signedToken(t, time.Now().Add(2*time.Hour)),
	}

	writeJSON := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/token/", func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.studioHeader = r.Header.Get("X-Studio-Id")
		stub.mu.Unlock()

		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		switch creds["email"] {
		case "ana@example.com":
			writeJSON(w, http.StatusOK, map[string]string{"access": stub.customerToken, "refresh": "r-ana"})
		case "staff@example.com":
			writeJSON(w, http.StatusOK, map[string]string{"access": stub.operatorToken, "refresh": "r-staff"})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "credenciales inválidas"})
		}
	})

	mux.HandleFunc("GET /api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer " + stub.customerToken:
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id": "u1", "email": "ana@example.com", "full_name": "Ana Ruiz",
				"is_active": true, "roles": []string{"customer"},
			})
		case "Bearer " + stub.operatorToken:
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id": "u2", "email": "staff@example.com", "full_name": "Coach Staff",
				"is_active": true, "roles": []string{"staff"},
			})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "no autenticado"})
		}
	})

	starts := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	mux.HandleFunc("GET /api/scheduling/sessions/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"id":"s1","class_type":"ct1","instructor":"i1","location":"l1","starts_at":%q,"capacity":10,"status":"scheduled"}]`, starts)
	})
	mux.HandleFunc("GET /api/scheduling/sessions/s1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":"s1","class_type":"ct1","starts_at":%q,"capacity":10,"status":"scheduled"}`, starts)
	})
	mux.HandleFunc("GET /api/scheduling/bookings/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("POST /api/scheduling/bookings/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		stub.mu.Lock()
		stub.bookings = append(stub.bookings, payload)
		stub.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]string{"id": "b1", "status": "booked"})
	})

	mux.HandleFunc("GET /api/catalog/class-types/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"ct1","name":"Yoga","duration_minutes":60}]`)
	})
	mux.HandleFunc("GET /api/catalog/instructors/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"i1","full_name":"Laura","is_active":true}]`)
	})
	mux.HandleFunc("GET /api/studios/location/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"l1","name":"Centro"}]`)
	})

	stub.srv = httptest.NewServer(mux)
	t.Cleanup(stub.srv.Close)
	return stub
}

func (s *studioStub) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *studioStub) studioID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studioHeader
}

func (s *studioStub) lastBookingSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.bookings) == 0 {
		return ""
	}
	return s.bookings[len(s.bookings)-1]["session"]
}

func newPortalRouter(stub *studioStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(web.Templates())

	api := backend.New(stub.srv.URL, "studio-1", 5*time.Second)
	sessions := session.NewManager(session.NewMemoryStore(), "studiofront_session")

	accountClient := account.NewClient(api)
	accountHandler := account.NewHandler(accountClient, sessions)
	schedulingHandler := scheduling.NewHandler(
		scheduling.NewClient(api), catalog.NewClient(api), studio.NewClient(api), sessions)

	router.Use(account.NewMiddleware(sessions, accountClient).Resolve())
	router.GET("/portal", accountHandler.ShowLogin)
	router.POST("/portal", accountHandler.Login)

	protected := router.Group("/", account.Require())
	protected.GET("/horarios", schedulingHandler.ShowSchedule)
	protected.POST("/horarios/reservar", schedulingHandler.Book)
	protected.POST("/horarios/cancelar", schedulingHandler.Cancel)

	return router
}

func postForm(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine, email string) []*http.Cookie {
	w := postForm(router, "/portal", url.Values{"email": {email}, "password": {"secreta123"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestPortalBookingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	stub := newStudioStub(t)
	router := newPortalRouter(stub)

	t.Run("Signed-out visitor is sent to the login screen", func(t *testing.T) {
		w := get(router, "/horarios", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/portal", w.Header().Get("Location"))
	})

	t.Run("Customer logs in and lands on the class list", func(t *testing.T) {
		w := postForm(router, "/portal", url.Values{"email": {"ana@example.com"}, "password": {"secreta123"}}, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/clases", w.Header().Get("Location"))
		assert.Equal(t, "studio-1", stub.studioID())
	})

	t.Run("Bad credentials bounce back with the error flash", func(t *testing.T) {
		w := postForm(router, "/portal", url.Values{"email": {"nadie@example.com"}, "password": {"x"}}, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/portal?err=")
	})

	t.Run("Schedule shows resolved class and coach names", func(t *testing.T) {
		cookies := login(t, router, "ana@example.com")

		w := get(router, "/horarios", cookies)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Yoga")
		assert.Contains(t, w.Body.String(), "Laura")
		assert.Contains(t, w.Body.String(), "Centro")
	})

	t.Run("Customer books a session", func(t *testing.T) {
		cookies := login(t, router, "ana@example.com")

		w := postForm(router, "/horarios/reservar", url.Values{"sesion": {"s1"}}, cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/horarios?msg=")

		require.Equal(t, 1, stub.bookingCount())
		assert.Equal(t, "s1", stub.lastBookingSession())
	})

	t.Run("Operator lands on the panel and cannot book", func(t *testing.T) {
		w := postForm(router, "/portal", url.Values{"email": {"staff@example.com"}, "password": {"secreta123"}}, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))

		before := stub.bookingCount()
		cookies := w.Result().Cookies()
		wBook := postForm(router, "/horarios/reservar", url.Values{"sesion": {"s1"}}, cookies)
		assert.Equal(t, http.StatusFound, wBook.Code)
		assert.Contains(t, wBook.Header().Get("Location"), "err=")
		assert.Equal(t, before, stub.bookingCount())
	})
}

func init() {
	logger.Init()
}
