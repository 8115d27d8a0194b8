// Package clients manages the billing-client roster.
package clients

import "time"

// Client is a billing counterparty. The stored list preserves insertion
// order; identifiers are assigned at creation and never reused.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input carries the caller-supplied fields for create and update.
type Input struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// Update describes a partial mutation; nil fields are left unchanged.
type Update struct {
	Name    *string
	Email   *string
	Address *string
	Phone   *string
}
