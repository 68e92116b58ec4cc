package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"storefront-service/internal/domain"
)

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

// statusFor maps an error kind to its HTTP status. Anything outside the
// taxonomy is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound), errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// logFailure records the error with an incident reference and returns it.
func (h *HTTPHandler) logFailure(r *http.Request, status int, err error) string {
	ref := uuid.NewString()
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.log.Log(r.Context(), level, "request failed",
		"kind", domain.KindName(err),
		"status", status,
		"reference", ref,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	return ref
}

// renderError writes the HTML error page for err. backPath is where the
// "go back" link points; empty means the site default.
func (h *HTTPHandler) renderError(w http.ResponseWriter, r *http.Request, err error, backPath string) {
	status := statusFor(err)
	ref := h.logFailure(r, status, err)

	if backPath == "" {
		backPath = h.meta.Errors.DefaultPath
	}
	ev := errorView{
		Heading:  h.meta.ErrorTitle(status),
		Message:  domain.Message(err, h.meta.Errors.DefaultMessage),
		BackPath: backPath,
	}
	if status >= http.StatusInternalServerError {
		ev.Reference = ref
	}
	h.render(w, r, status, pageError, ev.Heading, ev)
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, resp ErrorResponse) {
	h.respondWithJSON(w, code, resp)
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.log.Error("failed to encode JSON response", "status", code, "error", err)
		}
	}
}

// respondWithDomainError maps err to its status and JSON body.
func (h *HTTPHandler) respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	ref := h.logFailure(r, status, err)

	resp := ErrorResponse{
		Kind:    domain.KindName(err),
		Message: domain.Message(err, h.meta.Errors.DefaultMessage),
	}
	if status >= http.StatusInternalServerError {
		resp.Reference = ref
	}
	h.respondWithError(w, status, resp)
}
