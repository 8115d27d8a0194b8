package recurring

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/platform/httpx"
)

// Handler exposes recurring-template operations over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches recurring-template routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.remove)
	r.Post("/{id}/generate", h.generate)
	r.Post("/{id}/pause", h.pause)
	r.Post("/{id}/resume", h.resume)
	r.Post("/generate-due", h.generateDue)
}

type templateItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type createTemplateRequest struct {
	Name           string                `json:"name" validate:"required,max=200"`
	ClientID       string                `json:"clientId"`
	ClientName     string                `json:"clientName" validate:"required,max=200"`
	ClientEmail    string                `json:"clientEmail" validate:"omitempty,email"`
	Items          []templateItemRequest `json:"items" validate:"required,min=1,dive"`
	Currency       string                `json:"currency" validate:"omitempty,len=3"`
	TaxRate        float64               `json:"taxRate" validate:"gte=0,lte=100"`
	Frequency      string                `json:"frequency" validate:"required,oneof=weekly biweekly monthly quarterly yearly"`
	StartDate      *time.Time            `json:"startDate"`
	EndDate        *time.Time            `json:"endDate"`
	PaymentTerms   string                `json:"paymentTerms" validate:"omitempty,oneof=due_on_receipt net_15 net_30 net_60"`
	LateFeeEnabled bool                  `json:"lateFeeEnabled"`
	LateFeePercent float64               `json:"lateFeePercent" validate:"gte=0,lte=100"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list recurring templates", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	items := make([]invoices.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, invoices.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	input := CreateInput{
		Name:           req.Name,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		Items:          items,
		Currency:       req.Currency,
		TaxRate:        req.TaxRate,
		Frequency:      Frequency(req.Frequency),
		EndDate:        req.EndDate,
		PaymentTerms:   invoices.PaymentTerms(req.PaymentTerms),
		LateFeeEnabled: req.LateFeeEnabled,
		LateFeePercent: req.LateFeePercent,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}
	tpl, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("create recurring template", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tpl)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Generate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) generateDue(w http.ResponseWriter, r *http.Request) {
	generated, err := h.service.GenerateDue(r.Context())
	if err != nil {
		h.logger.Error("generate due templates", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"generated": generated})
}

func (h *Handler) pause(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), false)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), true)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
