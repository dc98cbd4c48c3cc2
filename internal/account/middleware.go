package account

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/web"
)

const (
	ctxUser  = "current_user"
	ctxToken = "access_token"
)

// Middleware resolves the signed-in identity on every request: load the
// stored token pair, walk the token state machine (valid / expired / absent),
// and re-fetch the profile with the surviving access token. Any failure
// clears the pair and treats the visitor as signed out.
type Middleware struct {
	sessions *session.Manager
	accounts *Client
}

func NewMiddleware(sessions *session.Manager, accounts *Client) *Middleware {
	return &Middleware{sessions: sessions, accounts: accounts}
}

func (m *Middleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, tp := m.sessions.Load(c)
		if id == "" {
			c.Next()
			return
		}

		switch tp.State(time.Now()) {
		case session.StateExpired:
			if !tp.CanRefresh() {
				m.sessions.Clear(c, id)
				c.Next()
				return
			}
			access, err := m.accounts.Refresh(c.Request.Context(), tp.Refresh)
			if err != nil {
				m.sessions.Clear(c, id)
				c.Next()
				return
			}
			tp.Access = access
			if id, err = m.sessions.Save(c, id, tp); err != nil {
				c.Next()
				return
			}
		case session.StateAbsent:
			m.sessions.Clear(c, id)
			c.Next()
			return
		}

		user, err := m.accounts.Me(c.Request.Context(), tp.Access)
		if err != nil {
			m.sessions.Clear(c, id)
			c.Next()
			return
		}

		WithUser(c, user, tp.Access)
		c.Next()
	}
}

// WithUser attaches the resolved identity to the request context.
func WithUser(c *gin.Context, user *User, token string) {
	c.Set(ctxUser, user)
	c.Set(ctxToken, token)
	c.Set(web.CtxSignedIn, true)
	c.Set(web.CtxUserName, user.DisplayName())
	c.Set(web.CtxRoles, user.Roles)
}

// Require redirects signed-out visitors to the login screen before any
// protected endpoint is called.
func Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/portal")
			c.Abort()
		}
	}
}

// RequireOperator gates the admin routes on the admin/staff role set.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/portal")
			c.Abort()
			return
		}
		if !user.IsOperator() {
			c.Redirect(http.StatusFound, "/portal/dashboard")
			c.Abort()
		}
	}
}

func CurrentUser(c *gin.Context) (*User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*User)
	return user, ok
}

// Token returns the access token for downstream backend calls. Empty when
// signed out.
func Token(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// RedirectToLogin is the shared 401 path: drop the stored tokens and send the
// browser to the login screen.
func RedirectToLogin(c *gin.Context, sessions *session.Manager) {
	id, _ := sessions.Load(c)
	sessions.Clear(c, id)
	c.Redirect(http.StatusFound, "/portal")
	c.Abort()
}
