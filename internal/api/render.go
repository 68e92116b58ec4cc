package api

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"storefront-service/internal/catalog"
)

// Page template names. Each one is parsed together with layout.html.
const (
	pageIndex             = "index"
	pageCategory          = "category"
	pageProduct           = "product"
	pageCart              = "cart"
	pageCheckout          = "checkout"
	pageOrderConfirmation = "order-confirmation"
	pageAbout             = "about"
	pageTerms             = "terms"
	pagePrivacy           = "privacy"
	pageError             = "error"
)

var pageNames = []string{
	pageIndex, pageCategory, pageProduct, pageCart, pageCheckout,
	pageOrderConfirmation, pageAbout, pageTerms, pagePrivacy, pageError,
}

var templateFuncs = template.FuncMap{
	"price": catalog.FormatCents,
}

// view is what every page template receives.
type view struct {
	Title    string
	SiteName string
	Data     any
}

// errorView feeds error.html.
type errorView struct {
	Heading   string
	Message   string
	BackPath  string
	Reference string
}

// Renderer executes page templates into a buffer before touching the
// response, so a failing template never leaves a half-written page.
type Renderer struct {
	pages map[string]*template.Template
	log   *slog.Logger
}

// NewRenderer parses layout.html plus every page from fsys. A nil log
// falls back to slog.Default().
func NewRenderer(fsys fs.FS, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.Default()
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, "layout.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("api: failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages, log: log}, nil
}

// Render writes the named page with the given status.
func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, v view) error {
	t, ok := rn.pages[name]
	if !ok {
		return fmt.Errorf("api: unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("api: failed to execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rn.log.Warn("failed to write page", "template", name, "error", err)
	}
	return nil
}
