package catalog

import (
	"context"
	"sort"
	"strings"

	"quote-desk/internal/model"
)

// Loader defines the interface for loading the product catalogue file.
type Loader interface {
	// Load reads a JSON catalogue file and returns its products.
	Load(ctx context.Context, source string) ([]model.Product, error)
}

// Store holds the product catalogue in memory. It is populated once at
// startup and read-only afterwards, so lookups need no locking.
type Store struct {
	products []model.Product
	byID     map[string]model.Product
}

// NewStore creates a catalogue store from the loaded products, ordered by
// name for stable listing.
func NewStore(products []model.Product) *Store {
	sorted := make([]model.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	byID := make(map[string]model.Product, len(sorted))
	for _, p := range sorted {
		byID[p.ID] = p
	}

	return &Store{products: sorted, byID: byID}
}

// GetAll returns a page of the catalogue.
func (s *Store) GetAll(limit, offset int) []model.Product {
	if offset < 0 || offset >= len(s.products) {
		return []model.Product{}
	}
	end := offset + limit
	if limit <= 0 || end > len(s.products) {
		end = len(s.products)
	}
	out := make([]model.Product, end-offset)
	copy(out, s.products[offset:end])
	return out
}

// GetByID returns the product with the given id, or nil if absent.
func (s *Store) GetByID(id string) *model.Product {
	p, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &p
}

// Size returns the number of products in the catalogue.
func (s *Store) Size() int {
	return len(s.products)
}
