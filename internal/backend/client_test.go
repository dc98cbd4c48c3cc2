package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_AttachesTenantAndBearerHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "studio-123", 0)
	var out map[string]bool
	err := c.Get(context.Background(), "/ping", "token-abc", &out)
	require.NoError(t, err)

	assert.Equal(t, "studio-123", got.Get("X-Studio-Id"))
	assert.Equal(t, "Bearer token-abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.True(t, out["ok"])
}

func TestDo_OmitsAuthorizationWithoutToken(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "studio-123", 0)
	require.NoError(t, c.Get(context.Background(), "/ping", "", nil))
	assert.Empty(t, got.Get("Authorization"))
}

func TestDo_OmitsTenantHeaderWithoutStudioID(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 0)
	require.NoError(t, c.Get(context.Background(), "/ping", "", nil))
	_, present := got["X-Studio-Id"]
	assert.False(t, present)
}

func TestDo_Non2xxYieldsAPIErrorWithStatus(t *testing.T) {
	cases := []int{400, 401, 404, 409, 429, 500}
	for _, status := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte("boom"))
		}))

		c := New(srv.URL, "s", 0)
		err := c.Get(context.Background(), "/x", "", nil)
		require.Error(t, err)

		apiErr, ok := err.(*APIError)
		require.True(t, ok, "expected *APIError for status %d", status)
		assert.Equal(t, status, apiErr.Status)
		assert.Equal(t, "boom", apiErr.Body)
		srv.Close()
	}
}

func TestDo_TimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, "s", 20*time.Millisecond)
	err := c.Get(context.Background(), "/slow", "", nil)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "timeouts are not APIErrors")
}

func TestDo_SendsJSONBody(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "s", 0)
	var out struct {
		ID string `json:"id"`
	}
	err := c.Post(context.Background(), "/things", "tok", map[string]string{"name": "yoga"}, &out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"yoga"}`, string(gotBody))
	assert.Equal(t, "1", out.ID)
}

func TestDelete_ToleratesEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "s", 0)
	assert.NoError(t, c.Delete(context.Background(), "/things/1/", "tok"))
}
