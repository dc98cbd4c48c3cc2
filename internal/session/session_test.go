package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return signed
}

func TestTokenPairState(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StateAbsent, TokenPair{}.State(now))

	valid := TokenPair{Access: tokenExpiringAt(t, now.Add(10*time.Minute))}
	assert.Equal(t, StateValid, valid.State(now))

	expired := TokenPair{Access: tokenExpiringAt(t, now.Add(-time.Minute))}
	assert.Equal(t, StateExpired, expired.State(now))

	garbage := TokenPair{Access: "not-a-jwt"}
	assert.Equal(t, StateExpired, garbage.State(now))
}

func TestTokenPairCanRefresh(t *testing.T) {
	assert.False(t, TokenPair{Access: "a"}.CanRefresh())
	assert.True(t, TokenPair{Access: "a", Refresh: "r"}.CanRefresh())
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "sid", TokenPair{Access: "a", Refresh: "r"}))
	tp, ok, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", tp.Access)

	require.NoError(t, store.Delete(ctx, "sid"))
	_, ok, _ = store.Get(ctx, "sid")
	assert.False(t, ok)
}

func TestManager_SaveLoadClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(NewMemoryStore(), "studiofront_session")

	// Save mints a session id and sets a cookie with no Max-Age.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/portal", nil)
	id, err := m.Save(c, "", TokenPair{Access: "a", Refresh: "r"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, 0, cookies[0].MaxAge, "session cookie must not persist past the tab")
	assert.True(t, cookies[0].HttpOnly)

	// Load resolves the pair from the cookie.
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(&http.Cookie{Name: "studiofront_session", Value: id})
	gotID, tp := m.Load(c2)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "a", tp.Access)

	// Clear drops the stored pair.
	m.Clear(c2, id)
	w3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(w3)
	c3.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c3.Request.AddCookie(&http.Cookie{Name: "studiofront_session", Value: id})
	gotID, _ = m.Load(c3)
	assert.Empty(t, gotID)
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(NewMemoryStore(), "studiofront_session")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	id, tp := m.Load(c)
	assert.Empty(t, id)
	assert.Equal(t, StateAbsent, tp.State(time.Now()))
}
