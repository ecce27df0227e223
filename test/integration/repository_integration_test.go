package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"quote-desk/internal/model"
	"quote-desk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuote(reference string) *model.Quote {
	now := time.Now().UTC()
	return &model.Quote{
		ID:              uuid.New(),
		ReferenceNumber: reference,
		Customer: model.Customer{
			FirstName: "Jo",
			LastName:  "Doe",
			Email:     "jo@example.com",
			Phone:     "555-0100",
			Company:   "Acme Ltd",
		},
		Items: []model.QuoteItem{
			{Name: "Foundation Course", Price: 350, Quantity: 2},
		},
		Subtotal:  700,
		Total:     700,
		Currency:  "USD",
		Status:    model.StatusPending,
		Comments:  "call before noon",
		CreatedAt: now,
		ExpiresAt: now.AddDate(0, 0, 30),
	}
}

func TestQuoteRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewQuoteRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and FindByID round-trips the quote", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		quote := newQuote("GT-2025-0001")
		stored, err := repo.Create(ctx, quote)
		require.NoError(t, err)
		require.NotNil(t, stored)

		found, err := repo.FindByID(ctx, quote.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, quote.ID, found.ID)
		assert.Equal(t, "GT-2025-0001", found.ReferenceNumber)
		assert.Equal(t, "Jo", found.Customer.FirstName)
		assert.Equal(t, "Acme Ltd", found.Customer.Company)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Foundation Course", found.Items[0].Name)
		assert.Equal(t, 2, found.Items[0].Quantity)
		assert.Equal(t, 700.0, found.Total)
		assert.Equal(t, model.StatusPending, found.Status)
		assert.Equal(t, "call before noon", found.Comments)
		assert.Nil(t, found.LastModifiedAt)
	})

	t.Run("FindByReference returns matching quote", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		quote := newQuote("GT-2025-0042")
		_, err := repo.Create(ctx, quote)
		require.NoError(t, err)

		found, err := repo.FindByReference(ctx, "GT-2025-0042")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, quote.ID, found.ID)
	})

	t.Run("Missing quote is nil without error", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.FindByReference(ctx, "GT-2025-9999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Duplicate reference surfaces as conflict", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		first := newQuote("GT-2025-0001")
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)

		second := newQuote("GT-2025-0001")
		stored, err := repo.Create(ctx, second)
		assert.Nil(t, stored)
		assert.ErrorIs(t, err, model.ErrReferenceTaken)
	})

	t.Run("UpdateStatus stamps last_modified_at", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		quote := newQuote("GT-2025-0001")
		_, err := repo.Create(ctx, quote)
		require.NoError(t, err)

		updated, err := repo.UpdateStatus(ctx, quote.ID, model.StatusApproved)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.StatusApproved, updated.Status)
		require.NotNil(t, updated.LastModifiedAt)
		assert.False(t, updated.LastModifiedAt.Before(updated.CreatedAt))

		missing, err := repo.UpdateStatus(ctx, uuid.New(), model.StatusApproved)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ListReferences returns every stored reference", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		for i := 1; i <= 3; i++ {
			_, err := repo.Create(ctx, newQuote(fmt.Sprintf("GT-2025-%04d", i)))
			require.NoError(t, err)
		}

		refs, err := repo.ListReferences(ctx)
		require.NoError(t, err)
		assert.Len(t, refs, 3)
		assert.Contains(t, refs, "GT-2025-0002")
	})

	t.Run("List returns newest first with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		base := time.Now().UTC().Add(-time.Hour)
		for i := 1; i <= 3; i++ {
			quote := newQuote(fmt.Sprintf("GT-2025-%04d", i))
			quote.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			_, err := repo.Create(ctx, quote)
			require.NoError(t, err)
		}

		quotes, err := repo.List(ctx, 1, 0)
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, "GT-2025-0003", quotes[0].ReferenceNumber)

		quotes, err = repo.List(ctx, 10, 1)
		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, "GT-2025-0002", quotes[0].ReferenceNumber)
		assert.Equal(t, "GT-2025-0001", quotes[1].ReferenceNumber)
	})

	t.Run("Delete removes the quote and frees its reference", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		quote := newQuote("GT-2025-0001")
		_, err := repo.Create(ctx, quote)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, quote.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, quote.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.Create(ctx, newQuote("GT-2025-0001"))
		require.NoError(t, err)
	})

	t.Run("Concurrent inserts with same reference admit exactly one", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		const workers = 10

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			conflicts int
		)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Create(ctx, newQuote("GT-2025-0077"))

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case errors.Is(err, model.ErrReferenceTaken):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, workers-1, conflicts)
	})
}
