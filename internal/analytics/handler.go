package analytics

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billforge/billforge/internal/analytics/export"
	"github.com/billforge/billforge/internal/platform/httpx"
)

// Handler serves the analytics dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	csvPool sync.Pool
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	h := &Handler{logger: logger, service: service}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// MountRoutes attaches analytics routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/export.csv", h.exportCSV)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("analytics summary", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("analytics export", slog.String("error", err.Error()))
		httpx.RespondError(w, err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()
	buf.Reset()

	if err := export.WriteSummaryCSV(buf, summary); err != nil {
		h.logger.Error("write summary csv", slog.String("error", err.Error()))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "could not render CSV export")
		return
	}

	filename := fmt.Sprintf("billforge-analytics-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("stream csv", slog.String("error", err.Error()))
	}
}
