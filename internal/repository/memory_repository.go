package repository

import (
	"context"
	"sync"
	"time"

	"quote-desk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memoryRepository implements QuoteRepository with an in-process map. It is
// used when no database is configured (local development, tests). Each
// instance owns its own store; the check-then-insert in Create runs under
// the write lock, which is what keeps reference numbers unique in a single
// process.
type memoryRepository struct {
	mu       sync.RWMutex
	quotes   map[uuid.UUID]model.Quote
	byRef    map[string]uuid.UUID
	inserted []uuid.UUID // creation order, newest appended last
	logger   zerolog.Logger
}

// NewMemoryRepository creates an empty in-memory quote repository.
func NewMemoryRepository(logger zerolog.Logger) QuoteRepository {
	return &memoryRepository{
		quotes: make(map[uuid.UUID]model.Quote),
		byRef:  make(map[string]uuid.UUID),
		logger: logger.With().Str("repository", "memory").Logger(),
	}
}

func (r *memoryRepository) Create(ctx context.Context, quote *model.Quote) (*model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quotes[quote.ID]; exists {
		return nil, model.ErrReferenceTaken
	}
	if _, exists := r.byRef[quote.ReferenceNumber]; exists {
		r.logger.Warn().
			Str("reference", quote.ReferenceNumber).
			Msg("uniqueness violation on quote insert")
		return nil, model.ErrReferenceTaken
	}

	stored := copyQuote(quote)
	r.quotes[quote.ID] = *stored
	r.byRef[quote.ReferenceNumber] = quote.ID
	r.inserted = append(r.inserted, quote.ID)

	r.logger.Debug().
		Str("quote_id", quote.ID.String()).
		Str("reference", quote.ReferenceNumber).
		Msg("quote created successfully")

	return copyQuote(stored), nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	return copyQuote(&quote), nil
}

func (r *memoryRepository) FindByReference(ctx context.Context, reference string) (*model.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byRef[reference]
	if !ok {
		return nil, nil
	}
	quote := r.quotes[id]
	return copyQuote(&quote), nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}

	now := time.Now().UTC()
	quote.Status = status
	quote.LastModifiedAt = &now
	r.quotes[id] = quote

	r.logger.Debug().
		Str("quote_id", id.String()).
		Str("status", string(status)).
		Msg("quote status updated")

	return copyQuote(&quote), nil
}

func (r *memoryRepository) ListReferences(ctx context.Context) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	references := make(map[string]struct{}, len(r.byRef))
	for reference := range r.byRef {
		references[reference] = struct{}{}
	}
	return references, nil
}

func (r *memoryRepository) List(ctx context.Context, limit, offset int) ([]model.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var quotes []model.Quote
	// Walk insertion order backwards: most recent first.
	for i := len(r.inserted) - 1; i >= 0; i-- {
		quote, ok := r.quotes[r.inserted[i]]
		if !ok {
			continue // deleted
		}
		quotes = append(quotes, quote)
	}

	if offset >= len(quotes) {
		return nil, nil
	}
	quotes = quotes[offset:]
	if limit < len(quotes) {
		quotes = quotes[:limit]
	}

	out := make([]model.Quote, len(quotes))
	for i := range quotes {
		out[i] = *copyQuote(&quotes[i])
	}
	return out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote, ok := r.quotes[id]
	if !ok {
		return false, nil
	}

	delete(r.quotes, id)
	delete(r.byRef, quote.ReferenceNumber)
	return true, nil
}

// copyQuote deep-copies a quote so callers never share the stored slices.
func copyQuote(q *model.Quote) *model.Quote {
	out := *q
	out.Items = make([]model.QuoteItem, len(q.Items))
	copy(out.Items, q.Items)
	if q.LastModifiedAt != nil {
		modified := *q.LastModifiedAt
		out.LastModifiedAt = &modified
	}
	return &out
}
