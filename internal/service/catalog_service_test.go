package service

import (
	"context"
	"testing"

	"quote-desk/internal/catalog"
	"quote-desk/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Store {
	return catalog.NewStore([]model.Product{
		{ID: "P001", Name: "Course", Price: 350, Category: "Training"},
		{ID: "P002", Name: "Audit", Price: 900, Category: "Consulting"},
		{ID: "P003", Name: "Workshop", Price: 1200, Category: "Training"},
	})
}

func TestCatalogService_GetAll(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewCatalogService(testCatalog(), logger)
	ctx := context.Background()

	products, err := svc.GetAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	// Out-of-range parameters are clamped, not rejected.
	products, err = svc.GetAll(ctx, -5, -3)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	products, err = svc.GetAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCatalogService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewCatalogService(testCatalog(), logger)
	ctx := context.Background()

	product, err := svc.GetByID(ctx, "P002")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Audit", product.Name)

	product, err = svc.GetByID(ctx, "P999")
	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)
	assert.Nil(t, product)

	product, err = svc.GetByID(ctx, "")
	require.Error(t, err)
	assert.Nil(t, product)
}
