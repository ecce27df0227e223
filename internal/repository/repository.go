package repository

import (
	"context"

	"quote-desk/internal/model"

	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote persistence. Two variants
// exist: a PostgreSQL-backed store and an in-memory store used when no
// database is configured. Callers never branch on which one is active.
//
// Lookups signal "not found" with a nil quote and nil error; an error always
// means the store itself failed.
type QuoteRepository interface {
	// Create persists a fully-populated quote. It fails with a conflict
	// error if the id or reference number is already taken, and returns
	// the record as stored.
	Create(ctx context.Context, quote *model.Quote) (*model.Quote, error)

	// FindByID retrieves a quote by its internal id.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error)

	// FindByReference retrieves a quote by its customer-facing reference.
	FindByReference(ctx context.Context, reference string) (*model.Quote, error)

	// UpdateStatus sets the status and stamps the modification time.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.Quote, error)

	// ListReferences returns every stored reference number. It must reflect
	// all committed creations at call time.
	ListReferences(ctx context.Context) (map[string]struct{}, error)

	// List returns quotes ordered by creation time, most recent first.
	List(ctx context.Context, limit, offset int) ([]model.Quote, error)

	// Delete removes a quote, reporting whether a record was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
