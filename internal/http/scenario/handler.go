package scenario

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/castor/internal/http/httperr"
	"github.com/MrJamesThe3rd/castor/internal/http/projection"
	"github.com/MrJamesThe3rd/castor/internal/project"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
)

type Handler struct {
	svc      *scenario.Service
	maxBytes int64
}

func NewHandler(svc *scenario.Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importFile)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Post("/{id}/lots/portage", h.addPortageLot)
		r.Post("/{id}/lots/copro", h.addCoproLot)
	})

	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/portage/reprice", h.repricePortage)
	r.Get("/{id}/export", h.export)
	r.Get("/{id}/projection", h.projection)
	r.Get("/{id}/lots/available", h.availableLots)
	r.Delete("/{id}/lots/portage/{founder}/{lotID}", h.removePortageLot)
	r.Get("/{id}/paybacks/{name}", h.paybacks)
}

type scenarioRequest struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document"`
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (string, *scenario.Document, bool) {
	var req scenarioRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBytes)).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return "", nil, false
	}

	doc, err := scenario.Decode(req.Document)
	if err != nil {
		httperr.Write(w, err)
		return "", nil, false
	}

	return req.Name, doc, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	name, doc, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	sc, err := h.svc.Create(r.Context(), scenario.CreateParams{Name: name, Project: doc.Project})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusCreated, sc)
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Import " + time.Now().Format(time.DateOnly)
	}

	sc, err := h.svc.Import(r.Context(), name, http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusCreated, sc)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.svc.List(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryList(scenarios)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusOK, sc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	name, doc, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	sc, err := h.svc.UpdateProject(r.Context(), id, name, doc.Project)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusOK, sc)
}

func (h *Handler) repricePortage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.RepricePortage(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusOK, sc)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, err := h.svc.Export(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	filename := "scenario_" + time.Now().Format("2006-01-02_15-04") + ".json"

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	proj, err := h.svc.Projection(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(projection.NewResponse(proj)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) availableLots(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	available, err := h.svc.AvailableLots(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toAvailableList(available)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addPortageLotRequest struct {
	Founder                  string  `json:"founder"`
	Surface                  float64 `json:"surface"`
	AllocatedSurface         float64 `json:"allocated_surface"`
	OriginalPrice            float64 `json:"original_price"`
	OriginalNotaryFees       float64 `json:"original_notary_fees"`
	OriginalConstructionCost float64 `json:"original_construction_cost"`
	FounderPaysCasco         bool    `json:"founder_pays_casco"`
	FounderPaysParachevement bool    `json:"founder_pays_parachevement"`
}

func (h *Handler) addPortageLot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addPortageLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := h.svc.AddPortageLot(r.Context(), id, req.Founder, project.Lot{
		Surface:                  req.Surface,
		AllocatedSurface:         req.AllocatedSurface,
		OriginalPrice:            req.OriginalPrice,
		OriginalNotaryFees:       req.OriginalNotaryFees,
		OriginalConstructionCost: req.OriginalConstructionCost,
		FounderPaysCasco:         req.FounderPaysCasco,
		FounderPaysParachevement: req.FounderPaysParachevement,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusCreated, sc)
}

func (h *Handler) removePortageLot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	lotID, err := strconv.Atoi(chi.URLParam(r, "lotID"))
	if err != nil {
		http.Error(w, "invalid lot id", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.RemovePortageLot(r.Context(), id, chi.URLParam(r, "founder"), lotID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusOK, sc)
}

type addCoproLotRequest struct {
	Surface float64 `json:"surface"`
}

func (h *Handler) addCoproLot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addCoproLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := h.svc.AddCoproLot(r.Context(), id, project.CoproLot{Surface: req.Surface})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	h.writeScenario(w, http.StatusCreated, sc)
}

func (h *Handler) paybacks(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	paybacks, err := h.svc.Paybacks(r.Context(), id, chi.URLParam(r, "name"))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPaybacksResponse(paybacks)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeScenario(w http.ResponseWriter, status int, sc *scenario.Scenario) {
	resp, err := toResponse(sc)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
