// Package users implements the operator screen for managing customer and
// staff accounts: search, role assignment and activation.
package users

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/web"
)

// Roles the backend accepts.
var Roles = []string{"admin", "staff", "customer"}

type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// List fetches one page of users, optionally narrowed by a search term and a
// role filter; both are applied server-side.
func (c *Client) List(ctx context.Context, token, search, role string, page int) (backend.Page[account.User], error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if role != "" {
		q.Set("role", role)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return backend.GetPage[account.User](ctx, c.api, "/api/users/", token, q)
}

func (c *Client) ToggleActive(ctx context.Context, token, userID string) error {
	return c.api.Post(ctx, "/api/users/"+userID+"/toggle_active/", token, nil, nil)
}

func (c *Client) AddRole(ctx context.Context, token, userID, role string) error {
	return c.api.Post(ctx, "/api/users/"+userID+"/add_role/", token, map[string]string{"role": role}, nil)
}

func (c *Client) RemoveRole(ctx context.Context, token, userID, role string) error {
	return c.api.Post(ctx, "/api/users/"+userID+"/remove_role/", token, map[string]string{"role": role}, nil)
}

type Handler struct {
	users    *Client
	sessions *session.Manager
}

func NewHandler(users *Client, sessions *session.Manager) *Handler {
	return &Handler{users: users, sessions: sessions}
}

func (h *Handler) ShowUsers(c *gin.Context) {
	search := c.Query("buscar")
	role := c.Query("rol")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	usersPage, err := h.users.List(c.Request.Context(), account.Token(c), search, role, page)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "clientes.tmpl", gin.H{
			"Base":    web.NewBase(c, "Clientes"),
			"Search":  search,
			"Role":    role,
			"Roles":   Roles,
			"LoadErr": backend.Friendly(err, "No se pudieron cargar los usuarios."),
		})
		return
	}

	c.HTML(http.StatusOK, "clientes.tmpl", gin.H{
		"Base":        web.NewBase(c, "Clientes"),
		"Users":       usersPage.Items,
		"Search":      search,
		"Role":        role,
		"Roles":       Roles,
		"Page":        page,
		"PageCount":   usersPage.PageCount(),
		"HasNext":     usersPage.HasNext,
		"HasPrevious": usersPage.HasPrevious,
	})
}

func usersPath(c *gin.Context) string {
	q := url.Values{}
	if search := c.PostForm("buscar"); search != "" {
		q.Set("buscar", search)
	}
	if role := c.PostForm("rol"); role != "" {
		q.Set("rol", role)
	}
	if page := c.PostForm("page"); page != "" && page != "1" {
		q.Set("page", page)
	}
	path := "/admin/clientes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return path
}

func (h *Handler) ToggleActive(c *gin.Context) {
	if err := h.users.ToggleActive(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, usersPath(c), "", backend.Friendly(err, "No se pudo cambiar el estado."))
		return
	}
	web.Redirect(c, usersPath(c), "Estado actualizado.", "")
}

func validRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (h *Handler) AddRole(c *gin.Context) {
	role := c.PostForm("role")
	if !validRole(role) {
		web.Redirect(c, usersPath(c), "", "Rol desconocido.")
		return
	}
	if err := h.users.AddRole(c.Request.Context(), account.Token(c), c.Param("id"), role); err != nil {
		web.Redirect(c, usersPath(c), "", backend.Friendly(err, "No se pudo asignar el rol."))
		return
	}
	web.Redirect(c, usersPath(c), "Rol asignado.", "")
}

func (h *Handler) RemoveRole(c *gin.Context) {
	role := c.PostForm("role")
	if !validRole(role) {
		web.Redirect(c, usersPath(c), "", "Rol desconocido.")
		return
	}
	if err := h.users.RemoveRole(c.Request.Context(), account.Token(c), c.Param("id"), role); err != nil {
		web.Redirect(c, usersPath(c), "", backend.Friendly(err, "No se pudo quitar el rol."))
		return
	}
	web.Redirect(c, usersPath(c), "Rol removido.", "")
}
