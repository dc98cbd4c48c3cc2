package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Manager binds the session cookie to the store.
type Manager struct {
	store      Store
	cookieName string
}

func NewManager(store Store, cookieName string) *Manager {
	return &Manager{store: store, cookieName: cookieName}
}

// Load returns the current session id and token pair. A missing cookie or an
// unknown id yields an empty id and an absent pair.
func (m *Manager) Load(c *gin.Context) (string, TokenPair) {
	id, err := c.Cookie(m.cookieName)
	if err != nil || id == "" {
		return "", TokenPair{}
	}
	tp, ok, err := m.store.Get(c.Request.Context(), id)
	if err != nil || !ok {
		return "", TokenPair{}
	}
	return id, tp
}

// Save stores the pair, minting a new session id when none exists yet. The
// cookie carries no Max-Age so the browser discards it when the tab closes.
func (m *Manager) Save(c *gin.Context, id string, tp TokenPair) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := m.store.Set(c.Request.Context(), id, tp); err != nil {
		return "", err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Clear drops the stored pair and expires the cookie.
func (m *Manager) Clear(c *gin.Context, id string) {
	if id != "" {
		_ = m.store.Delete(c.Request.Context(), id)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
