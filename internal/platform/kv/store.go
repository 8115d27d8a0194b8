// Package kv provides the JSON key-value persistence layer backing every
// collection in the application.
package kv

import (
	"context"
	"errors"
)

// Fixed storage keys for the persisted collections.
const (
	KeyBusinessInfo      = "billforge:business_info"
	KeyClients           = "billforge:clients"
	KeyInvoices          = "billforge:invoices"
	KeyTimeEntries       = "billforge:time_entries"
	KeyRecurring         = "billforge:recurring_templates"
	KeyLastInvoiceNumber = "billforge:last_invoice_number"
	KeyProFlag           = "billforge:pro"
	KeyProActivatedAt    = "billforge:pro_activated_at"
	KeyWaitlist          = "billforge:waitlist"
)

var (
	// ErrNotFound indicates the key has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrCorruptState indicates a stored value failed to decode.
	ErrCorruptState = errors.New("kv: corrupt state")
	// ErrPersistenceFailed indicates a write could not be completed.
	ErrPersistenceFailed = errors.New("kv: persistence failed")
)

// Store is the persistence port: a string key-value store holding JSON
// documents. Implementations must treat absent keys as ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
