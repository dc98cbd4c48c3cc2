package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/web"
)

type Handler struct {
	catalog *Client
}

func NewHandler(catalog *Client) *Handler {
	return &Handler{catalog: catalog}
}

// --- public storefront ---

func (h *Handler) ShowClasses(c *gin.Context) {
	classTypes, err := h.catalog.ClassTypes(c.Request.Context(), "")
	if err != nil {
		c.HTML(http.StatusOK, "clases.tmpl", gin.H{
			"Base": web.NewBase(c, "Clases"),
			"Err":  backend.Friendly(err, "No se pudieron cargar las clases."),
		})
		return
	}
	c.HTML(http.StatusOK, "clases.tmpl", gin.H{
		"Base":       web.NewBase(c, "Clases"),
		"ClassTypes": classTypes,
	})
}

func (h *Handler) ShowCoaches(c *gin.Context) {
	instructors, err := h.catalog.Instructors(c.Request.Context(), "")
	if err != nil {
		c.HTML(http.StatusOK, "coaches.tmpl", gin.H{
			"Base": web.NewBase(c, "Coaches"),
			"Err":  backend.Friendly(err, "No se pudieron cargar los coaches."),
		})
		return
	}
	active := instructors[:0]
	for _, in := range instructors {
		if in.IsActive {
			active = append(active, in)
		}
	}
	c.HTML(http.StatusOK, "coaches.tmpl", gin.H{
		"Base":        web.NewBase(c, "Coaches"),
		"Instructors": active,
	})
}

func (h *Handler) ShowPrices(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context(), "")
	if err != nil {
		c.HTML(http.StatusOK, "precios.tmpl", gin.H{
			"Base": web.NewBase(c, "Precios"),
			"Err":  backend.Friendly(err, "No se pudieron cargar los precios."),
		})
		return
	}
	active := products[:0]
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	c.HTML(http.StatusOK, "precios.tmpl", gin.H{
		"Base":     web.NewBase(c, "Precios"),
		"Products": active,
	})
}

// --- admin: class types ---

func (h *Handler) AdminClassTypes(c *gin.Context) {
	classTypes, err := h.catalog.ClassTypes(c.Request.Context(), account.Token(c))
	c.HTML(http.StatusOK, "admin_catalogo_clases.tmpl", gin.H{
		"Base":       web.NewBase(c, "Catálogo: clases"),
		"ClassTypes": classTypes,
		"LoadErr":    loadErr(err),
	})
}

func (h *Handler) CreateClassType(c *gin.Context) {
	var form ClassTypeForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/catalogo/clases", "", web.FormError(err, "Nombre y duración son requeridos."))
		return
	}
	if err := h.catalog.CreateClassType(c.Request.Context(), account.Token(c), form); err != nil {
		web.Redirect(c, "/admin/catalogo/clases", "", backend.Friendly(err, "No se pudo crear la clase."))
		return
	}
	web.Redirect(c, "/admin/catalogo/clases", "Clase creada.", "")
}

func (h *Handler) UpdateClassType(c *gin.Context) {
	var form ClassTypeForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/catalogo/clases", "", web.FormError(err, "Nombre y duración son requeridos."))
		return
	}
	if err := h.catalog.UpdateClassType(c.Request.Context(), account.Token(c), c.Param("id"), form); err != nil {
		web.Redirect(c, "/admin/catalogo/clases", "", backend.Friendly(err, "No se pudo guardar la clase."))
		return
	}
	web.Redirect(c, "/admin/catalogo/clases", "Clase actualizada.", "")
}

func (h *Handler) DeleteClassType(c *gin.Context) {
	if err := h.catalog.DeleteClassType(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, "/admin/catalogo/clases", "", backend.Friendly(err, "No se pudo eliminar la clase."))
		return
	}
	web.Redirect(c, "/admin/catalogo/clases", "Clase eliminada.", "")
}

// --- admin: instructors ---

func (h *Handler) AdminInstructors(c *gin.Context) {
	instructors, err := h.catalog.Instructors(c.Request.Context(), account.Token(c))
	c.HTML(http.StatusOK, "admin_catalogo_coaches.tmpl", gin.H{
		"Base":        web.NewBase(c, "Catálogo: coaches"),
		"Instructors": instructors,
		"LoadErr":     loadErr(err),
	})
}

func (h *Handler) CreateInstructor(c *gin.Context) {
	var form InstructorForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/catalogo/coaches", "", web.FormError(err, "El nombre es requerido."))
		return
	}
	if err := h.catalog.CreateInstructor(c.Request.Context(), account.Token(c), form); err != nil {
		web.Redirect(c, "/admin/catalogo/coaches", "", backend.Friendly(err, "No se pudo crear el coach."))
		return
	}
	web.Redirect(c, "/admin/catalogo/coaches", "Coach creado.", "")
}

func (h *Handler) UpdateInstructor(c *gin.Context) {
	var form InstructorForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/catalogo/coaches", "", web.FormError(err, "El nombre es requerido."))
		return
	}
	if err := h.catalog.UpdateInstructor(c.Request.Context(), account.Token(c), c.Param("id"), form); err != nil {
		web.Redirect(c, "/admin/catalogo/coaches", "", backend.Friendly(err, "No se pudo guardar el coach."))
		return
	}
	web.Redirect(c, "/admin/catalogo/coaches", "Coach actualizado.", "")
}

func (h *Handler) DeleteInstructor(c *gin.Context) {
	if err := h.catalog.DeleteInstructor(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, "/admin/catalogo/coaches", "", backend.Friendly(err, "No se pudo eliminar el coach."))
		return
	}
	web.Redirect(c, "/admin/catalogo/coaches", "Coach eliminado.", "")
}

// --- admin: products ---

func (h *Handler) AdminProducts(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context(), account.Token(c))
	c.HTML(http.StatusOK, "admin_catalogo_productos.tmpl", gin.H{
		"Base":     web.NewBase(c, "Catálogo: productos"),
		"Products": products,
		"LoadErr":  loadErr(err),
	})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/catalogo/productos", "", web.FormError(err, "Tipo, nombre y precio son requeridos."))
		return
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), account.Token(c), form); err != nil {
		web.Redirect(c, "/admin/catalogo/productos", "", backend.Friendly(err, "No se pudo crear el producto."))
		return
	}
	web.Redirect(c, "/admin/catalogo/productos", "Producto creado.", "")
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/admin/catalogo/productos", "", web.FormError(err, "Tipo, nombre y precio son requeridos."))
		return
	}
	if err := h.catalog.UpdateProduct(c.Request.Context(), account.Token(c), c.Param("id"), form); err != nil {
		web.Redirect(c, "/admin/catalogo/productos", "", backend.Friendly(err, "No se pudo guardar el producto."))
		return
	}
	web.Redirect(c, "/admin/catalogo/productos", "Producto actualizado.", "")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, "/admin/catalogo/productos", "", backend.Friendly(err, "No se pudo eliminar el producto."))
		return
	}
	web.Redirect(c, "/admin/catalogo/productos", "Producto eliminado.", "")
}

func loadErr(err error) string {
	if err == nil {
		return ""
	}
	return backend.Friendly(err, "No se pudo cargar el catálogo.")
}
