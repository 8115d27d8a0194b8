package invoices

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billforge/billforge/internal/platform/httpx"
)

// Handler exposes invoice operations over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes attaches invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.remove)
	r.Post("/{id}/status", h.updateStatus)
	r.Get("/{id}/late-fee", h.lateFee)
	r.Post("/overdue-sweep", h.sweep)
}

type lineItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type createInvoiceRequest struct {
	ClientID        string            `json:"clientId"`
	ClientName      string            `json:"clientName" validate:"required,max=200"`
	ClientEmail     string            `json:"clientEmail" validate:"omitempty,email"`
	Items           []lineItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate         float64           `json:"taxRate" validate:"gte=0,lte=100"`
	Currency        string            `json:"currency" validate:"omitempty,len=3"`
	Terms           string            `json:"paymentTerms"`
	RenderedHTML    string            `json:"renderedHtml"`
	SaveClient      bool              `json:"saveClient"`
	WithPaymentLink bool              `json:"withPaymentLink"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent viewed overdue paid"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	items := make([]LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	inv, err := h.service.Create(r.Context(), CreateInput{
		ClientID:        req.ClientID,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		Items:           items,
		TaxRate:         req.TaxRate,
		Currency:        req.Currency,
		Terms:           PaymentTerms(req.Terms),
		RenderedHTML:    req.RenderedHTML,
		SaveClient:      req.SaveClient,
		WithPaymentLink: req.WithPaymentLink,
	})
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	inv, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), Status(req.Status))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) lateFee(w http.ResponseWriter, r *http.Request) {
	feePercent := 0.0
	if raw := r.URL.Query().Get("percent"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%f", &feePercent); err != nil || feePercent < 0 {
			httpx.RespondError(w, fmt.Errorf("%w: bad fee percent", httpx.ErrValidation))
			return
		}
	}
	fee, days, err := h.service.LateFee(r.Context(), chi.URLParam(r, "id"), feePercent)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"fee":         fee,
		"daysOverdue": days,
	})
}

func (h *Handler) sweep(w http.ResponseWriter, r *http.Request) {
	changed, err := h.service.SweepOverdue(r.Context())
	if err != nil {
		h.logger.Error("overdue sweep", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"markedOverdue": changed})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
