package users

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/session"
)

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(backend.New(srv.URL, "studio-1", 0))
}

func TestList_SearchAndRoleQuery(t *testing.T) {
	var got map[string][]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	_, err := c.List(context.Background(), "tok", "ana", "staff", 2)
	require.NoError(t, err)
	assert.Equal(t, "ana", got["search"][0])
	assert.Equal(t, "staff", got["role"][0])
	assert.Equal(t, "2", got["page"][0])
}

func TestAddRole_Payload(t *testing.T) {
	var body map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/u7/add_role/", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.AddRole(context.Background(), "tok", "u7", "staff"))
	assert.Equal(t, "staff", body["role"])
}

func newRouter(t *testing.T, handler http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := backend.New(srv.URL, "studio-1", 0)
	sessions := session.NewManager(session.NewMemoryStore(), "studiofront_session")
	h := NewHandler(NewClient(api), sessions)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("clientes.tmpl").Parse(
		`users:{{len .Users}} pages:{{.PageCount}}`)))
	r.Use(func(c *gin.Context) {
		account.WithUser(c, &account.User{ID: "op", Roles: []string{"admin"}}, "tok")
	})
	r.GET("/admin/clientes", h.ShowUsers)
	r.POST("/admin/clientes/:id/rol", h.AddRole)
	return r
}

func TestShowUsers_PaginatedEnvelope(t *testing.T) {
	r := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 5,
			"next":  "http://x/?page=2",
			"results": []map[string]interface{}{
				{"id": "u1", "email": "a@x.mx"},
				{"id": "u2", "email": "b@x.mx"},
			},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/clientes", nil))
	assert.Contains(t, w.Body.String(), "users:2")
	assert.Contains(t, w.Body.String(), "pages:3")
}

func TestAddRole_RejectsUnknownRole(t *testing.T) {
	called := false
	r := newRouter(t, func(w http.ResponseWriter, req *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/clientes/u1/rol", strings.NewReader(url.Values{"role": {"root"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "err=")
	assert.False(t, called)
}
