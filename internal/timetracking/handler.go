package timetracking

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billforge/billforge/internal/platform/httpx"
)

// Handler exposes time-tracking operations over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches time-tracking routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.createManual)
	r.Delete("/{id}", h.remove)
	r.Post("/timer/start", h.startTimer)
	r.Post("/timer/stop", h.stopTimer)
	r.Post("/mark-billed", h.markBilled)
}

type manualEntryRequest struct {
	ClientID        string  `json:"clientId"`
	ClientName      string  `json:"clientName" validate:"max=200"`
	Project         string  `json:"project" validate:"max=200"`
	Task            string  `json:"task" validate:"required,max=500"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	HourlyRate      float64 `json:"hourlyRate" validate:"gte=0"`
}

type timerRequest struct {
	ClientID   string  `json:"clientId"`
	ClientName string  `json:"clientName" validate:"max=200"`
	Project    string  `json:"project" validate:"max=200"`
	Task       string  `json:"task" validate:"required,max=500"`
	HourlyRate float64 `json:"hourlyRate" validate:"gte=0"`
}

type markBilledRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("unbilled") == "true" {
		entries, err := h.service.Unbilled(r.Context(), r.URL.Query().Get("clientId"))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, entries)
		return
	}
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list time entries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) createManual(w http.ResponseWriter, r *http.Request) {
	var req manualEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	entry, err := h.service.CreateManual(r.Context(), ManualInput{
		ClientID:        req.ClientID,
		ClientName:      req.ClientName,
		Project:         req.Project,
		Task:            req.Task,
		DurationMinutes: req.DurationMinutes,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) startTimer(w http.ResponseWriter, r *http.Request) {
	var req timerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	entry, err := h.service.StartTimer(r.Context(), TimerInput{
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Project:    req.Project,
		Task:       req.Task,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) stopTimer(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.StopTimer(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) markBilled(w http.ResponseWriter, r *http.Request) {
	var req markBilledRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	changed, err := h.service.MarkBilled(r.Context(), req.IDs)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"marked": changed})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
