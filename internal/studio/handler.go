package studio

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/web"
)

type Handler struct {
	studio   *Client
	studioID string
}

func NewHandler(studio *Client, studioID string) *Handler {
	return &Handler{studio: studio, studioID: studioID}
}

// ShowBio renders the public bio-link page: active buttons sorted by position.
func (h *Handler) ShowBio(c *gin.Context) {
	buttons, err := h.studio.PublicLinkButtons(c.Request.Context(), h.studioID)
	if err != nil {
		c.HTML(http.StatusOK, "bio.tmpl", gin.H{
			"Base": web.NewBase(c, "Bio"),
			"Err":  backend.Friendly(err, "No se pudieron cargar los enlaces."),
		})
		return
	}
	active := buttons[:0]
	for _, b := range buttons {
		if b.IsActive {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Position < active[j].Position })
	c.HTML(http.StatusOK, "bio.tmpl", gin.H{
		"Base":    web.NewBase(c, "Bio"),
		"Buttons": active,
	})
}

func (h *Handler) AdminLocations(c *gin.Context) {
	locations, err := h.studio.Locations(c.Request.Context(), account.Token(c))
	data := gin.H{
		"Base":      web.NewBase(c, "Sedes"),
		"Locations": locations,
	}
	if err != nil {
		data["LoadErr"] = backend.Friendly(err, "No se pudieron cargar las sedes.")
	}
	c.HTML(http.StatusOK, "sedes.tmpl", data)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var form LocationForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/sedes", "", web.FormError(err, "El nombre es requerido."))
		return
	}
	if err := h.studio.CreateLocation(c.Request.Context(), account.Token(c), form); err != nil {
		web.Redirect(c, "/admin/sedes", "", backend.Friendly(err, "No se pudo crear la sede."))
		return
	}
	web.Redirect(c, "/admin/sedes", "Sede creada.", "")
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	var form LocationForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/sedes", "", web.FormError(err, "El nombre es requerido."))
		return
	}
	if err := h.studio.UpdateLocation(c.Request.Context(), account.Token(c), c.Param("id"), form); err != nil {
		web.Redirect(c, "/admin/sedes", "", backend.Friendly(err, "No se pudo guardar la sede."))
		return
	}
	web.Redirect(c, "/admin/sedes", "Sede actualizada.", "")
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.studio.DeleteLocation(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, "/admin/sedes", "", backend.Friendly(err, "No se pudo eliminar la sede."))
		return
	}
	web.Redirect(c, "/admin/sedes", "Sede eliminada.", "")
}

func (h *Handler) AdminLinkButtons(c *gin.Context) {
	buttons, err := h.studio.LinkButtons(c.Request.Context(), account.Token(c))
	sort.SliceStable(buttons, func(i, j int) bool { return buttons[i].Position < buttons[j].Position })
	data := gin.H{
		"Base":    web.NewBase(c, "Bio links"),
		"Buttons": buttons,
	}
	if err != nil {
		data["LoadErr"] = backend.Friendly(err, "No se pudieron cargar los enlaces.")
	}
	c.HTML(http.StatusOK, "admin_bio.tmpl", data)
}

func (h *Handler) CreateLinkButton(c *gin.Context) {
	var form LinkButtonForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/bio", "", web.FormError(err, "Etiqueta y URL válida son requeridas."))
		return
	}
	if err := h.studio.CreateLinkButton(c.Request.Context(), account.Token(c), form); err != nil {
		web.Redirect(c, "/admin/bio", "", backend.Friendly(err, "No se pudo crear el enlace."))
		return
	}
	web.Redirect(c, "/admin/bio", "Enlace creado.", "")
}

func (h *Handler) UpdateLinkButton(c *gin.Context) {
	var form LinkButtonForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/bio", "", web.FormError(err, "Etiqueta y URL válida son requeridas."))
		return
	}
	if err := h.studio.UpdateLinkButton(c.Request.Context(), account.Token(c), c.Param("id"), form); err != nil {
		web.Redirect(c, "/admin/bio", "", backend.Friendly(err, "No se pudo guardar el enlace."))
		return
	}
	web.Redirect(c, "/admin/bio", "Enlace actualizado.", "")
}

func (h *Handler) DeleteLinkButton(c *gin.Context) {
	if err := h.studio.DeleteLinkButton(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, "/admin/bio", "", backend.Friendly(err, "No se pudo eliminar el enlace."))
		return
	}
	web.Redirect(c, "/admin/bio", "Enlace eliminado.", "")
}
