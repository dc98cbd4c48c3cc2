package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/catalog"
	"github.com/gaibarra/33fitstudio/internal/csvexport"
	"github.com/gaibarra/33fitstudio/internal/dates"
	"github.com/gaibarra/33fitstudio/internal/fanout"
	"github.com/gaibarra/33fitstudio/internal/metrics"
	"github.com/gaibarra/33fitstudio/internal/scheduling"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/web"
)

type Handler struct {
	scheduling *scheduling.Client
	catalog    *catalog.Client
	sessions   *session.Manager
}

func NewHandler(sched *scheduling.Client, cat *catalog.Client, sessions *session.Manager) *Handler {
	return &Handler{scheduling: sched, catalog: cat, sessions: sessions}
}

// load fetches and aggregates one reporting window. All three sources are
// required.
func (h *Handler) load(c *gin.Context, rangeKey string) (Report, dates.Range, error) {
	token := account.Token(c)
	window := dates.ReportWindow(rangeKey, time.Now())

	var (
		sessions   []scheduling.Session
		bookings   []scheduling.Booking
		classNames map[string]string
	)
	err := fanout.All(c.Request.Context(),
		func(ctx context.Context) error {
			var err error
			sessions, err = h.scheduling.SessionsBetween(ctx, token, window)
			return err
		},
		func(ctx context.Context) error {
			var err error
			bookings, err = h.scheduling.Bookings(ctx, token)
			return err
		},
		func(ctx context.Context) error {
			var err error
			classNames, err = h.catalog.ClassTypeNames(ctx, token)
			return err
		},
	)
	if err != nil {
		return Report{}, window, err
	}
	return Build(sessions, bookings, classNames), window, nil
}

func (h *Handler) ShowReports(c *gin.Context) {
	rangeKey := c.DefaultQuery("rango", dates.RangeSemana)

	report, window, err := h.load(c, rangeKey)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		c.HTML(http.StatusOK, "reportes.tmpl", gin.H{
			"Base":    web.NewBase(c, "Reportes"),
			"Range":   rangeKey,
			"LoadErr": backend.Friendly(err, "No se pudo generar el reporte."),
		})
		return
	}

	c.HTML(http.StatusOK, "reportes.tmpl", gin.H{
		"Base":        web.NewBase(c, "Reportes"),
		"Range":       rangeKey,
		"RangeLabel":  dates.RangeLabel(rangeKey),
		"WindowStart": window.Start,
		"WindowEnd":   window.End,
		"Summary":     report.Summary,
		"Sessions":    report.SessionDetail,
		"ByClassType": report.ByClassType,
	})
}

// DownloadCSV streams one of the four report exports.
func (h *Handler) DownloadCSV(c *gin.Context) {
	rangeKey := c.DefaultQuery("rango", dates.RangeSemana)
	kind := c.Param("tipo")

	var build func(Report) string
	switch kind {
	case "resumen":
		build = SummaryCSV
	case "sesiones":
		build = SessionsCSV
	case "clases":
		build = ClassTypesCSV
	case "completo":
		build = FullCSV
	default:
		web.Redirect(c, "/admin/reportes?rango="+rangeKey, "", "Reporte desconocido.")
		return
	}

	report, window, err := h.load(c, rangeKey)
	if err != nil {
		if backend.IsUnauthorized(err) {
			account.RedirectToLogin(c, h.sessions)
			return
		}
		web.Redirect(c, "/admin/reportes?rango="+rangeKey, "", backend.Friendly(err, "No se pudo generar el reporte."))
		return
	}

	metrics.RecordCSVExport(kind)
	c.Header("Content-Disposition", `attachment; filename="`+Filename(kind, rangeKey, window)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvexport.Document(build(report)))
}
