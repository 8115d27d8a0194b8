package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/platform/httpx"
)

type staticSource struct {
	list []invoices.Invoice
	err  error
}

func (s staticSource) List(context.Context) ([]invoices.Invoice, error) {
	return s.list, s.err
}

func newHandlerRouter(source InvoiceSource) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/api/analytics", NewHandler(logger, NewService(source, nil)).MountRoutes)
	return r
}

func TestHandlerSummary(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	paidAt := jan.AddDate(0, 0, 5)
	paid := mkInvoice("Acme", 100, "USD", invoices.StatusPaid, jan)
	paid.PaidAt = &paidAt

	router := newHandlerRouter(staticSource{list: []invoices.Invoice{
		paid,
		mkInvoice("Globex", 200, "EUR", invoices.StatusSent, jan),
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var summary Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.InDelta(t, 300, summary.TotalInvoiced, 0.001)
	assert.Equal(t, 2, summary.InvoiceCount)
	assert.InDelta(t, 5, summary.AverageTimeToPayDays, 0.001)
}

func TestHandlerSummarySourceFailure(t *testing.T) {
	router := newHandlerRouter(staticSource{err: errors.New("store unreachable")})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
}

func TestHandlerExportCSV(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	router := newHandlerRouter(staticSource{list: []invoices.Invoice{
		mkInvoice("Acme", 150, "USD", invoices.StatusSent, jan),
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/export.csv", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))

	disposition := rr.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, `attachment; filename="billforge-analytics-`) {
		t.Fatalf("unexpected content disposition %q", disposition)
	}

	body := rr.Body.String()
	for _, want := range []string{"Metric,Value", "Total Invoiced,150.00", "Acme"} {
		assert.Contains(t, body, want)
	}
}
