// Package web owns the HTML layer: embedded templates, the data every page
// shares (signed-in user, nav role set, flash messages, CSRF field), and the
// formatting helpers templates use.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Context keys populated by the identity middleware and read back here so the
// layout can render the right navigation without importing the account
// package.
const (
	CtxUserName = "nav_user_name"
	CtxRoles    = "nav_roles"
	CtxSignedIn = "nav_signed_in"
)

// Base is embedded by every page's template data.
type Base struct {
	Title     string
	SignedIn  bool
	UserName  string
	Roles     []string
	IsAdmin   bool
	Msg       string
	Err       string
	Path      string
	CSRFField template.HTML
}

// NewBase assembles the shared page data from the request context. Flash
// messages travel as query parameters on the post-mutation redirect.
func NewBase(c *gin.Context, title string) Base {
	roles, _ := c.Get(CtxRoles)
	roleList, _ := roles.([]string)
	return Base{
		Title:     title,
		SignedIn:  c.GetBool(CtxSignedIn),
		UserName:  c.GetString(CtxUserName),
		Roles:     roleList,
		IsAdmin:   HasOperatorRole(roleList),
		Msg:       c.Query("msg"),
		Err:       c.Query("err"),
		Path:      c.Request.URL.Path,
		CSRFField: csrf.TemplateField(c.Request),
	}
}

// HasOperatorRole reports whether the role set grants the operator nav.
func HasOperatorRole(roles []string) bool {
	for _, r := range roles {
		if r == "admin" || r == "staff" {
			return true
		}
	}
	return false
}

// Templates parses the embedded template set with the shared helpers.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(FuncMap()).ParseFS(templatesFS, "templates/*.tmpl"))
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money":     Money,
		"datetime":  func(v interface{}) string { return FormatDateTime(coerceTime(v)) },
		"shortdate": func(v interface{}) string { return FormatShortDate(coerceTime(v)) },
		"isodate":   func(v interface{}) string { return FormatISODate(coerceTime(v)) },
		"markdown":  Markdown,
		"pct":       func(v int) string { return fmt.Sprintf("%d%%", v) },
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
	}
}

// coerceTime lets templates pass either a time.Time or a nullable *time.Time
// to the date helpers.
func coerceTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

// Money renders integer cents as a currency amount, e.g. "$150.00 MXN".
func Money(cents int64, currency string) string {
	if currency == "" {
		currency = "MXN"
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d %s", sign, cents/100, cents%100, currency)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "Sin horario"
	}
	return t.Format("02 Jan 2006 15:04")
}

func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 15:04")
}

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Markdown renders trusted, studio-authored text (class descriptions, bios).
func Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Redirect sends the browser back to a view with a flash message attached.
func Redirect(c *gin.Context, path, msg, errMsg string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if msg != "" {
		path += sep + "msg=" + template.URLQueryEscaper(msg)
		sep = "&"
	}
	if errMsg != "" {
		path += sep + "err=" + template.URLQueryEscaper(errMsg)
	}
	c.Redirect(302, path)
}
