package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/web"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics exposes Prometheus metrics in text format.
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Home is the public landing page. Operators land on their panel instead.
func Home(c *gin.Context) {
	if user, ok := account.CurrentUser(c); ok && user.IsOperator() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "home.tmpl", gin.H{"Base": web.NewBase(c, "Inicio")})
}

// AdminHome is the operator panel index.
func AdminHome(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.tmpl", gin.H{"Base": web.NewBase(c, "Panel")})
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Base": web.NewBase(c, "No encontrada")})
}
