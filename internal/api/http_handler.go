package api

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/site"
)

const serviceName = "storefront-service"

// Storefront is the read side the handlers need. *catalog.Service satisfies it.
type Storefront interface {
	Ping(ctx context.Context) error
	Categories(ctx context.Context) ([]domain.Category, error)
	BrowseCategory(ctx context.Context, slug, rawMin, rawMax string) (*catalog.CategoryPage, error)
	Product(ctx context.Context, rawID string) (*catalog.ProductPage, error)
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalog        Storefront
	renderer       *Renderer
	meta           *site.Meta
	static         fs.FS
	allowedOrigins []string
	log            *slog.Logger
}

// Options carries the non-catalog dependencies of HTTPHandler.
type Options struct {
	Renderer       *Renderer
	Meta           *site.Meta
	Static         fs.FS
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(sf Storefront, opts Options) *HTTPHandler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &HTTPHandler{
		catalog:        sf,
		renderer:       opts.Renderer,
		meta:           opts.Meta,
		static:         opts.Static,
		allowedOrigins: origins,
		log:            log,
	}
}

// render executes a page. An empty title falls back to the path title.
func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	if title == "" {
		title = PageTitleFrom(r.Context(), h.meta.DefaultTitle)
	}
	v := view{Title: title, SiteName: h.meta.Name, Data: data}
	if err := h.renderer.Render(w, status, name, v); err != nil {
		h.log.Error("failed to render page", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// --- HTML pages ---

type homeData struct {
	Categories []domain.Category
}

func (h *HTTPHandler) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.renderError(w, r, err, "")
		return
	}
	h.render(w, r, http.StatusOK, pageIndex, "", homeData{Categories: categories})
}

func (h *HTTPHandler) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	q := r.URL.Query()

	page, err := h.catalog.BrowseCategory(r.Context(), slug, q.Get("minPrice"), q.Get("maxPrice"))
	if err != nil {
		back := ""
		if statusFor(err) == http.StatusBadRequest {
			// drop the bad filter but stay in the category
			back = "/category/" + url.PathEscape(slug)
		}
		h.renderError(w, r, err, back)
		return
	}
	h.render(w, r, http.StatusOK, pageCategory, page.Category.Name, page)
}

func (h *HTTPHandler) Product(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, err, "")
		return
	}
	h.render(w, r, http.StatusOK, pageProduct, page.Product.Name, page)
}

// staticPage serves a template that needs no catalog data.
func (h *HTTPHandler) staticPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, name, "", nil)
	}
}

// NotFound answers unknown routes: JSON under /api/, the 404 page elsewhere.
func (h *HTTPHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		h.respondWithError(w, http.StatusNotFound, ErrorResponse{
			Kind:    "NotFound",
			Message: h.meta.Errors.NotFoundMessage,
		})
		return
	}
	ev := errorView{
		Heading:  h.meta.NotFoundTitle(),
		Message:  h.meta.Errors.NotFoundMessage,
		BackPath: h.meta.Errors.DefaultPath,
	}
	h.render(w, r, http.StatusNotFound, pageError, ev.Heading, ev)
}

// --- JSON API ---

// ListResponse wraps collection payloads.
type ListResponse struct {
	Data interface{} `json:"data"`
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, ListResponse{Data: categories})
}

func (h *HTTPHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.catalog.BrowseCategory(r.Context(), chi.URLParam(r, "slug"), q.Get("minPrice"), q.Get("maxPrice"))
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, page)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, page)
}

// HealthResponse is the body of GET /api/v1/healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`
	Timestamp   string `json:"timestamp"`
	Catalog     string `json:"catalog"`
}

// Healthz always answers 200; the payload says whether the catalog loads.
func (h *HTTPHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	catalogStatus := "healthy"
	if err := h.catalog.Ping(ctx); err != nil {
		catalogStatus = "unhealthy"
		h.log.Warn("health check catalog load failed", "error", err)
	}

	h.respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		ServiceName: serviceName,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Catalog:     catalogStatus,
	})
}

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(PageTitle(h.meta))

		r.Get("/", h.Home)
		r.Get("/category/{slug}", h.Category)
		r.Get("/products/{id}", h.Product)

		r.Get("/cart", h.staticPage(pageCart))
		r.Get("/checkout", h.staticPage(pageCheckout))
		r.Get("/order-confirmation", h.staticPage(pageOrderConfirmation))
		r.Get("/about", h.staticPage(pageAbout))
		r.Get("/terms", h.staticPage(pageTerms))
		r.Get("/privacy", h.staticPage(pagePrivacy))
	})

	if h.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))

		r.Get("/healthz", h.Healthz)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{slug}/products", h.ListCategoryProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.NotFound(h.NotFound)
	})

	r.NotFound(h.NotFound)
}

// errHandlerMisconfigured is returned by Validate when a required dependency is missing.
var errHandlerMisconfigured = errors.New("api: handler is missing a dependency")

// Validate reports whether the handler has everything it needs to serve pages.
func (h *HTTPHandler) Validate() error {
	if h.catalog == nil || h.renderer == nil || h.meta == nil {
		return errHandlerMisconfigured
	}
	return nil
}
