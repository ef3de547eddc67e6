// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var files embed.FS

// Page is what every template receives.
type Page struct {
	Title    string
	LoggedIn bool
	Data     any
}

var pages = map[string]*template.Template{}

func init() {
	names := []string{"login", "register", "index", "buy", "sell", "quote", "quoted", "history", "apology"}
	for _, n := range names {
		pages[n] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(files, "templates/layout.html", "templates/"+n+".html"))
	}
}

var funcs = template.FuncMap{
	"usd":  USD,
	"when": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04:05") },
}

// USD formats an amount as US dollars, e.g. $1,234.56.
func USD(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response behind.
func Render(w http.ResponseWriter, status int, name string, p Page) {
	t, ok := pages[name]
	if !ok {
		slog.Error("render", "template", name, "err", "unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		slog.Error("render", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type apology struct {
	Code    int
	Message string
}

// Apology renders the error page with the given status and message.
func Apology(w http.ResponseWriter, status int, msg string, loggedIn bool) {
	Render(w, status, "apology", Page{
		Title:    "Apology",
		LoggedIn: loggedIn,
		Data:     apology{Code: status, Message: msg},
	})
}

// ApologyStatus renders the apology page with the status text as message.
func ApologyStatus(w http.ResponseWriter, status int, loggedIn bool) {
	Apology(w, status, fmt.Sprintf("%d %s", status, http.StatusText(status)), loggedIn)
}
