package service

import (
	"context"

	"quote-desk/internal/model"

	"github.com/google/uuid"
)

// QuoteService defines operations for the quote workflow.
type QuoteService interface {
	// Submit validates a quote request, computes totals, allocates a
	// reference number and persists the quote. Notifications are sent
	// best-effort after the quote is stored.
	Submit(ctx context.Context, req *model.QuoteRequest) (*model.Quote, error)

	// GetByID retrieves a quote by its internal id; nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, error)

	// GetByReference retrieves a quote by reference number; nil when absent.
	GetByReference(ctx context.Context, reference string) (*model.Quote, error)

	// List returns quotes for admin review, most recent first.
	List(ctx context.Context, limit, offset int) ([]model.Quote, error)

	// UpdateStatus sets a quote's status; nil when absent.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Quote, error)

	// Delete removes a quote, reporting whether one was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CatalogService defines operations for catalogue browsing.
type CatalogService interface {
	// GetAll retrieves products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by id.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}
