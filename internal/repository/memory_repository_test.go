package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"quote-desk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuote(reference string, createdAt time.Time) *model.Quote {
	return &model.Quote{
		ID:              uuid.New(),
		ReferenceNumber: reference,
		Customer: model.Customer{
			FirstName: "Jo",
			LastName:  "Doe",
			Email:     "jo@example.com",
			Company:   "Acme Ltd",
		},
		Items: []model.QuoteItem{
			{Name: "Course", Price: 350, Quantity: 2},
		},
		Subtotal:  700,
		Total:     700,
		Currency:  "USD",
		Status:    model.StatusPending,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.AddDate(0, 0, 30),
	}
}

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	quote := testQuote("GT-2025-0001", time.Now().UTC())

	stored, err := repo.Create(ctx, quote)
	require.NoError(t, err)
	require.NotNil(t, stored)

	byID, err := repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, quote.ReferenceNumber, byID.ReferenceNumber)
	assert.Equal(t, quote.Customer, byID.Customer)
	assert.Equal(t, quote.Items, byID.Items)
	assert.Equal(t, quote.Total, byID.Total)
	assert.Nil(t, byID.LastModifiedAt)

	byRef, err := repo.FindByReference(ctx, quote.ReferenceNumber)
	require.NoError(t, err)
	require.NotNil(t, byRef)
	assert.Equal(t, quote.ID, byRef.ID)
}

func TestMemoryRepository_CreateConflict(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	first := testQuote("GT-2025-0001", time.Now().UTC())
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := testQuote("GT-2025-0001", time.Now().UTC())
	_, err = repo.Create(ctx, second)

	require.Error(t, err)
	assert.True(t, model.IsConflict(err))
}

func TestMemoryRepository_NotFoundIsNotAnError(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	// Repeated lookups of a reference that never existed stay nil, nil.
	for i := 0; i < 3; i++ {
		quote, err := repo.FindByReference(ctx, "GT-2025-9999")
		require.NoError(t, err)
		assert.Nil(t, quote)
	}

	quote, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestMemoryRepository_UpdateStatus(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	quote := testQuote("GT-2025-0001", time.Now().UTC().Add(-time.Minute))
	_, err := repo.Create(ctx, quote)
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, quote.ID, model.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, model.StatusApproved, updated.Status)
	require.NotNil(t, updated.LastModifiedAt)
	assert.True(t, updated.LastModifiedAt.After(updated.CreatedAt))

	// Unknown id is a not-found outcome, not an error.
	missing, err := repo.UpdateStatus(ctx, uuid.New(), model.StatusRejected)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRepository_ListReferences(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	refs, err := repo.ListReferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)

	for i := 1; i <= 3; i++ {
		_, err := repo.Create(ctx, testQuote(fmt.Sprintf("GT-2025-%04d", i), time.Now().UTC()))
		require.NoError(t, err)
	}

	refs, err = repo.ListReferences(ctx)
	require.NoError(t, err)
	assert.Len(t, refs, 3)
	assert.Contains(t, refs, "GT-2025-0002")
}

func TestMemoryRepository_ListOrdering(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 1; i <= 3; i++ {
		quote := testQuote(fmt.Sprintf("GT-2025-%04d", i), base.Add(time.Duration(i)*time.Second))
		_, err := repo.Create(ctx, quote)
		require.NoError(t, err)
	}

	// Most recent creation comes back first.
	quotes, err := repo.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "GT-2025-0003", quotes[0].ReferenceNumber)

	quotes, err = repo.List(ctx, 10, 1)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "GT-2025-0002", quotes[0].ReferenceNumber)
	assert.Equal(t, "GT-2025-0001", quotes[1].ReferenceNumber)

	quotes, err = repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	quote := testQuote("GT-2025-0001", time.Now().UTC())
	_, err := repo.Create(ctx, quote)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, quote.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Deleting again reports false, not an error.
	deleted, err = repo.Delete(ctx, quote.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// The reference is free again after deletion.
	refs, err := repo.ListReferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestMemoryRepository_StoredQuoteIsIsolated(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	quote := testQuote("GT-2025-0001", time.Now().UTC())
	stored, err := repo.Create(ctx, quote)
	require.NoError(t, err)

	// Mutating the caller's copies must not reach the store.
	quote.Items[0].Price = 999
	stored.Items[0].Quantity = 42

	found, err := repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, found.Items[0].Price)
	assert.Equal(t, 2, found.Items[0].Quantity)
}

func TestMemoryRepository_ConcurrentCreateKeepsReferencesUnique(t *testing.T) {
	repo := NewMemoryRepository(zerolog.Nop())
	ctx := context.Background()

	const workers = 20

	var wg sync.WaitGroup
	conflicts := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Everyone races for the same reference; exactly one insert
			// may win.
			quote := testQuote("GT-2025-0001", time.Now().UTC())
			if _, err := repo.Create(ctx, quote); err != nil {
				conflicts <- err
			}
		}()
	}

	wg.Wait()
	close(conflicts)

	var conflictCount int
	for err := range conflicts {
		assert.True(t, model.IsConflict(err))
		conflictCount++
	}
	assert.Equal(t, workers-1, conflictCount)

	refs, err := repo.ListReferences(ctx)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}
