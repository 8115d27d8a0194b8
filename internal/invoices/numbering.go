package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/shared"
)

// Sequencer issues invoice numbers in the form INV-<year>-<seq>, where the
// sequence is zero-padded to at least three digits and resets to 1 at each
// calendar-year boundary. Issuing a number persists it immediately, so a
// number is reserved even if the invoice it was drawn for is never saved.
type Sequencer struct {
	store  kv.Store
	clock  shared.Clock
	logger *slog.Logger
}

// NewSequencer builds a Sequencer.
func NewSequencer(store kv.Store, clock shared.Clock, logger *slog.Logger) *Sequencer {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &Sequencer{store: store, clock: clock, logger: logger}
}

// Next issues and persists the next invoice number.
func (s *Sequencer) Next(ctx context.Context) (string, error) {
	year := s.clock.Now().Year()
	seq := 1

	last, err := s.store.Get(ctx, kv.KeyLastInvoiceNumber)
	switch {
	case err == nil:
		lastYear, lastSeq, parseErr := parseNumber(last)
		if parseErr != nil {
			// Corrupt counter: log and restart the sequence rather than fail.
			if s.logger != nil {
				s.logger.Warn("unparseable last invoice number, resetting sequence",
					slog.String("value", last), slog.Any("error", parseErr))
			}
		} else if lastYear == year {
			seq = lastSeq + 1
		}
	case errors.Is(err, kv.ErrNotFound):
		// First invoice ever.
	default:
		return "", err
	}

	number := fmt.Sprintf("INV-%d-%03d", year, seq)
	if err := s.store.Set(ctx, kv.KeyLastInvoiceNumber, number); err != nil {
		return "", err
	}
	return number, nil
}

func parseNumber(number string) (year, seq int, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != "INV" {
		return 0, 0, fmt.Errorf("invoice number %q: bad format", number)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invoice number %q: bad year", number)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("invoice number %q: bad sequence", number)
	}
	return year, seq, nil
}
