package business

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billforge/billforge/internal/platform/httpx"
)

// Handler exposes the business profile over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches business profile routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.save)
}

type saveRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Email        string  `json:"email" validate:"required,email"`
	Address      string  `json:"address" validate:"max=500"`
	Phone        string  `json:"phone" validate:"max=50"`
	PaymentTerms string  `json:"paymentTerms" validate:"omitempty,oneof=due_on_receipt net_15 net_30 net_60"`
	LateFee      float64 `json:"lateFeePercent" validate:"gte=0,lte=100"`
	DefaultNotes string  `json:"defaultNotes"`
	LogoDataURI  string  `json:"logo"`
	BrandColor   string  `json:"brandColor" validate:"omitempty,hexcolor"`
	Website      string  `json:"website" validate:"omitempty,url"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("load business info", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if info == nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "business profile not set")
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	info, err := h.service.Save(r.Context(), Info{
		Name:         req.Name,
		Email:        req.Email,
		Address:      req.Address,
		Phone:        req.Phone,
		PaymentTerms: req.PaymentTerms,
		LateFee:      req.LateFee,
		DefaultNotes: req.DefaultNotes,
		LogoDataURI:  req.LogoDataURI,
		BrandColor:   req.BrandColor,
		Website:      req.Website,
	})
	if err != nil {
		h.logger.Error("save business info", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}
