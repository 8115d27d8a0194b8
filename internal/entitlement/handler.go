package entitlement

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billforge/billforge/internal/platform/httpx"
)

// Handler exposes the Pro flag and waitlist over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// MountRoutes attaches entitlement routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/activate", h.activate)
	r.Post("/deactivate", h.deactivate)
	r.Get("/waitlist", h.waitlist)
	r.Post("/waitlist", h.joinWaitlist)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		h.logger.Error("entitlement status", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, status)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Activate(r.Context())
	if err != nil {
		h.logger.Error("entitlement activate", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, status)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context()); err != nil {
		h.logger.Error("entitlement deactivate", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Status{Pro: false})
}

type waitlistRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) joinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req waitlistRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	entry, err := h.service.JoinWaitlist(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("waitlist signup", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) waitlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Waitlist(r.Context())
	if err != nil {
		h.logger.Error("waitlist read", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}
