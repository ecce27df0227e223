package model

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the review state of a quote.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// ParseStatus validates a raw status string against the known statuses.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return Status(raw), true
	}
	return "", false
}

// Customer holds the contact details attached to a quote request.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
}

// QuoteItem represents a single priced line in a quote.
type QuoteItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Quote represents a customer's priced request tracked through review.
// Items, customer and totals are an immutable snapshot taken at creation;
// only status and the modification timestamp change afterwards.
type Quote struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	ReferenceNumber string      `json:"referenceNumber" db:"reference_number"`
	Customer        Customer    `json:"customer" db:"customer"`
	Items           []QuoteItem `json:"items" db:"items"`
	Subtotal        float64     `json:"subtotal" db:"subtotal"`
	Total           float64     `json:"total" db:"total"`
	Currency        string      `json:"currency" db:"currency"`
	Status          Status      `json:"status" db:"status"`
	Comments        string      `json:"comments,omitempty" db:"comments"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	ExpiresAt       time.Time   `json:"expiresAt" db:"expires_at"`
	LastModifiedAt  *time.Time  `json:"lastModifiedAt,omitempty" db:"last_modified_at"`
}

// QuoteRequest represents the request payload for submitting a quote.
type QuoteRequest struct {
	Items    []QuoteItem `json:"items"`
	Customer *Customer   `json:"customer"`
	Comments string      `json:"comments,omitempty"`
}

// UpdateStatusRequest represents the request payload for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// QuoteResponse is the success envelope returned by quote endpoints.
type QuoteResponse struct {
	Success bool   `json:"success"`
	Quote   *Quote `json:"quote"`
}

// QuoteListResponse is the success envelope returned by the listing endpoint.
type QuoteListResponse struct {
	Success bool    `json:"success"`
	Quotes  []Quote `json:"quotes"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}
