package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/metrics"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/web"
)

type Handler struct {
	accounts *Client
	sessions *session.Manager
}

func NewHandler(accounts *Client, sessions *session.Manager) *Handler {
	return &Handler{accounts: accounts, sessions: sessions}
}

// ShowLogin renders the portal entry. Signed-in users are routed straight to
// their home.
func (h *Handler) ShowLogin(c *gin.Context) {
	if user, ok := CurrentUser(c); ok {
		c.Redirect(http.StatusFound, homeFor(user))
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Base": web.NewBase(c, "Portal")})
}

// Login exchanges credentials for tokens, stores the pair in the browser
// session, and picks the destination from the resolved role set.
func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/portal", "", web.FormError(err, "Correo y contraseña son requeridos."))
		return
	}

	tp, err := h.accounts.Token(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		metrics.RecordLogin("failure")
		web.Redirect(c, "/portal", "", backend.Friendly(err, "Error de acceso. Verifica tus datos."))
		return
	}

	if _, err := h.sessions.Save(c, "", tp); err != nil {
		metrics.RecordLogin("failure")
		web.Redirect(c, "/portal", "", "No se pudo iniciar la sesión. Intenta de nuevo.")
		return
	}

	user, err := h.accounts.Me(c.Request.Context(), tp.Access)
	if err != nil {
		metrics.RecordLogin("failure")
		web.Redirect(c, "/portal", "", backend.Friendly(err, "No se pudo cargar tu perfil."))
		return
	}

	metrics.RecordLogin("success")
	c.Redirect(http.StatusFound, homeFor(user))
}

func homeFor(user *User) string {
	if user.IsOperator() {
		return "/admin"
	}
	return "/clases"
}

func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "registro.tmpl", gin.H{"Base": web.NewBase(c, "Crear cuenta")})
}

func (h *Handler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/registro", "", web.FormError(err, "Completa todos los campos requeridos."))
		return
	}
	if form.Password != form.PasswordConfirmation {
		web.Redirect(c, "/registro", "", "Las contraseñas no coinciden.")
		return
	}

	if err := h.accounts.Register(c.Request.Context(), form); err != nil {
		web.Redirect(c, "/registro", "", backend.Friendly(err, "No se pudo crear la cuenta."))
		return
	}
	web.Redirect(c, "/portal", "Cuenta creada. Ingresa con tus datos.", "")
}

func (h *Handler) Logout(c *gin.Context) {
	id, _ := h.sessions.Load(c)
	h.sessions.Clear(c, id)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) ShowProfile(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.HTML(http.StatusOK, "perfil.tmpl", gin.H{
		"Base": web.NewBase(c, "Editar perfil"),
		"User": user,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/portal/perfil", "", web.FormError(err, "Revisa el correo capturado."))
		return
	}

	if _, err := h.accounts.UpdateMe(c.Request.Context(), Token(c), form); err != nil {
		if backend.IsUnauthorized(err) {
			RedirectToLogin(c, h.sessions)
			return
		}
		web.Redirect(c, "/portal/perfil", "", backend.Friendly(err, "No se pudo guardar el perfil."))
		return
	}
	web.Redirect(c, "/portal/perfil", "Perfil actualizado.", "")
}
