package service

import (
	"context"

	"quote-desk/internal/catalog"
	"quote-desk/internal/model"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService over the in-memory catalogue store.
type catalogService struct {
	store  *catalog.Store
	logger zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(store *catalog.Store, logger zerolog.Logger) CatalogService {
	return &catalogService{
		store:  store,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// GetAll retrieves products with pagination.
func (s *catalogService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products := s.store.GetAll(limit, offset)

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by id.
func (s *catalogService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	product := s.store.GetByID(id)
	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}
