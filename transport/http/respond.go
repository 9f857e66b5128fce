package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-bakery/core"
	goerrors "github.com/goliatone/go-errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// writeError renders err as a go-errors response. Server side failures are
// logged; client errors are not.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	rich := core.MapError(err)
	if rich == nil {
		rich = httpError("An unexpected error occurred", goerrors.CategoryInternal, core.ServiceErrorInternal)
	}
	status := rich.Code
	if status < http.StatusBadRequest {
		status = core.ServiceHTTPStatus(rich.Category)
	}
	if status >= http.StatusInternalServerError {
		h.logger.WithContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err.Error(),
		)
	}
	writeJSON(w, status, rich.ToErrorResponse(false, nil))
}

func httpError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return goerrors.New(message, category).
		WithCode(core.ServiceHTTPStatus(category)).
		WithTextCode(textCode)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, httpError("route not found", goerrors.CategoryNotFound, core.ServiceErrorNotFound))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, goerrors.New("method not allowed", goerrors.CategoryBadInput).
		WithCode(http.StatusMethodNotAllowed).
		WithTextCode(core.ServiceErrorBadInput).
		ToErrorResponse(false, nil))
}
