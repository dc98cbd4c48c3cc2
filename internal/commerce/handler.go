package commerce

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/catalog"
	"github.com/gaibarra/33fitstudio/internal/fanout"
	"github.com/gaibarra/33fitstudio/internal/logger"
	"github.com/gaibarra/33fitstudio/internal/scheduling"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/web"
)

type Handler struct {
	commerce   *Client
	catalog    *catalog.Client
	scheduling *scheduling.Client
	sessions   *session.Manager
}

func NewHandler(commerce *Client, cat *catalog.Client, sched *scheduling.Client, sessions *session.Manager) *Handler {
	return &Handler{commerce: commerce, catalog: cat, scheduling: sched, sessions: sessions}
}

// AdminOrders renders the paginated order list with an optional status filter.
func (h *Handler) AdminOrders(c *gin.Context) {
	status := c.Query("estado")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	ordersPage, err := h.commerce.Orders(c.Request.Context(), account.Token(c), status, page)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "ordenes.tmpl", gin.H{
			"Base":     web.NewBase(c, "Órdenes"),
			"Status":   status,
			"Statuses": OrderStatuses,
			"LoadErr":  backend.Friendly(err, "No se pudieron cargar las órdenes."),
		})
		return
	}

	c.HTML(http.StatusOK, "ordenes.tmpl", gin.H{
		"Base":        web.NewBase(c, "Órdenes"),
		"Orders":      ordersPage.Items,
		"Status":      status,
		"Statuses":    OrderStatuses,
		"Page":        page,
		"PageCount":   ordersPage.PageCount(),
		"HasNext":     ordersPage.HasNext,
		"HasPrevious": ordersPage.HasPrevious,
	})
}

func ordersPath(c *gin.Context) string {
	path := "/admin/ordenes"
	if status := c.PostForm("estado"); status != "" {
		path += "?estado=" + status
	}
	return path
}

func (h *Handler) SetOrderStatus(c *gin.Context) {
	status := c.PostForm("status")
	if err := h.commerce.SetStatus(c.Request.Context(), account.Token(c), c.Param("id"), status); err != nil {
		web.Redirect(c, ordersPath(c), "", backend.Friendly(err, "No se pudo actualizar la orden."))
		return
	}
	web.Redirect(c, ordersPath(c), "Orden actualizada.", "")
}

// ShowPurchases renders the customer store: the product list is required, the
// customer's own orders, balance and memberships degrade to empty on failure.
func (h *Handler) ShowPurchases(c *gin.Context) {
	token := account.Token(c)

	products, err := h.catalog.Products(c.Request.Context(), "")
	if err != nil {
		c.HTML(http.StatusOK, "compras.tmpl", gin.H{
			"Base":    web.NewBase(c, "Comprar"),
			"LoadErr": backend.Friendly(err, "No se pudieron cargar los productos."),
		})
		return
	}
	active := products[:0]
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}

	var (
		orders      []Order
		balance     *Balance
		memberships []Membership
	)
	errs := fanout.Settle(c.Request.Context(),
		func(ctx context.Context) error {
			var err error
			orders, err = h.commerce.MyOrders(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			balance, err = h.commerce.Balance(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			memberships, err = h.commerce.Memberships(ctx, token)
			return err
		},
	)
	for _, err := range errs {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		logger.Error("purchases partial load", "error", err)
	}

	c.HTML(http.StatusOK, "compras.tmpl", gin.H{
		"Base":        web.NewBase(c, "Comprar"),
		"Products":    active,
		"Orders":      orders,
		"Balance":     balance,
		"Memberships": memberships,
	})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var form OrderForm
	if err := c.ShouldBind(&form); err != nil {
		web.Redirect(c, "/portal/compras", "", web.FormError(err, "Elige un producto y una cantidad válida."))
		return
	}
	if err := h.commerce.CreateOrder(c.Request.Context(), account.Token(c), form.Product, form.Quantity); err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		web.Redirect(c, "/portal/compras", "", backend.Friendly(err, "No se pudo crear la orden."))
		return
	}
	web.Redirect(c, "/portal/compras", "Orden creada. Continúa con el pago.", "")
}

// PayOrder fetches the checkout link and sends the browser there.
func (h *Handler) PayOrder(c *gin.Context) {
	link, err := h.commerce.PaymentLink(c.Request.Context(), account.Token(c), c.Param("id"))
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		web.Redirect(c, "/portal/compras", "", backend.Friendly(err, "No se pudo generar el enlace de pago."))
		return
	}
	c.Redirect(http.StatusFound, link)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.commerce.DeleteOrder(c.Request.Context(), account.Token(c), c.Param("id")); err != nil {
		web.Redirect(c, "/portal/compras", "", backend.Friendly(err, "No se pudo eliminar la orden."))
		return
	}
	web.Redirect(c, "/portal/compras", "Orden eliminada.", "")
}

// ShowDashboard renders the customer home: the booking list is required,
// balance and memberships are best-effort.
func (h *Handler) ShowDashboard(c *gin.Context) {
	token := account.Token(c)
	user, _ := account.CurrentUser(c)

	bookings, err := h.scheduling.Bookings(c.Request.Context(), token)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
			"Base":    web.NewBase(c, "Mi portal"),
			"User":    user,
			"LoadErr": backend.Friendly(err, "No se pudieron cargar tus reservas."),
		})
		return
	}

	var (
		balance     *Balance
		memberships []Membership
	)
	errs := fanout.Settle(c.Request.Context(),
		func(ctx context.Context) error {
			var err error
			balance, err = h.commerce.Balance(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			memberships, err = h.commerce.Memberships(ctx, token)
			return err
		},
	)
	for _, err := range errs {
		logger.Error("dashboard partial load", "error", err)
	}

	now := time.Now()
	var upcoming, past []scheduling.Booking
	for _, b := range bookings {
		if b.SessionStartsAt.After(now) {
			upcoming = append(upcoming, b)
		} else {
			past = append(past, b)
		}
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"Base":        web.NewBase(c, "Mi portal"),
		"User":        user,
		"Upcoming":    upcoming,
		"Past":        past,
		"Balance":     balance,
		"Memberships": memberships,
	})
}
