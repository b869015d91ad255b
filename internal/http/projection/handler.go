package projection

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/MrJamesThe3rd/castor/internal/engine"
	"github.com/MrJamesThe3rd/castor/internal/http/httperr"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
)

// Handler computes projections of scenarios sent inline, without storing them.
type Handler struct {
	maxBytes int64
}

func NewHandler(maxBytes int64) *Handler {
	return &Handler{maxBytes: maxBytes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.project)
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request) {
	doc, err := scenario.ReadDocument(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	if err := scenario.Validate(doc.Project); err != nil {
		httperr.Write(w, err)
		return
	}

	proj, err := engine.Run(doc.Project)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(NewResponse(proj)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
