package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"storefront-service/internal/site"
)

type ctxKey int

const pageTitleKey ctxKey = iota

// PageTitle stores the title for the request path in the context, so every
// page can read it without knowing the title table.
func PageTitle(meta *site.Meta) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), pageTitleKey, meta.PageTitle(r.URL.Path))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PageTitleFrom returns the title set by PageTitle, or fallback.
func PageTitleFrom(ctx context.Context, fallback string) string {
	if t, ok := ctx.Value(pageTitleKey).(string); ok && t != "" {
		return t
	}
	return fallback
}

// RequestLogger logs one line per request with slog.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
					"remote_addr", r.RemoteAddr,
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
