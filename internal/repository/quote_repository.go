package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quote-desk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const uniqueViolationCode = "23505"

const quoteColumns = `id, reference_number, customer, items, subtotal, total,
		currency, status, comments, created_at, expires_at, last_modified_at`

// quoteRepository implements QuoteRepository using PostgreSQL. It owns the
// mapping between the nested domain shape and the flat row shape: customer
// and items are stored as JSON columns, everything else as plain columns.
type quoteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewQuoteRepository creates a new PostgreSQL-backed quote repository.
func NewQuoteRepository(pool *pgxpool.Pool, logger zerolog.Logger) QuoteRepository {
	return &quoteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "quote").Logger(),
	}
}

// Create persists a fully-populated quote. The unique index on
// reference_number is the authority on uniqueness; a violation surfaces as
// model.ErrReferenceTaken so the caller can re-allocate and retry.
func (r *quoteRepository) Create(ctx context.Context, quote *model.Quote) (*model.Quote, error) {
	customerJSON, err := json.Marshal(quote.Customer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode customer: %w", err)
	}

	itemsJSON, err := json.Marshal(quote.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	query := `
		INSERT INTO quotes (id, reference_number, customer, items, subtotal, total,
			currency, status, comments, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		quote.ID,
		quote.ReferenceNumber,
		customerJSON,
		itemsJSON,
		quote.Subtotal,
		quote.Total,
		quote.Currency,
		quote.Status,
		quote.Comments,
		quote.CreatedAt,
		quote.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.logger.Warn().
				Str("reference", quote.ReferenceNumber).
				Str("quote_id", quote.ID.String()).
				Msg("uniqueness violation on quote insert")
			return nil, model.ErrReferenceTaken
		}
		r.logger.Error().
			Err(err).
			Str("quote_id", quote.ID.String()).
			Msg("failed to create quote")
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	// Re-read so the caller sees the canonical stored representation.
	stored, err := r.FindByID(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("quote %s missing immediately after insert", quote.ID)
	}

	r.logger.Debug().
		Str("quote_id", quote.ID.String()).
		Str("reference", quote.ReferenceNumber).
		Msg("quote created successfully")

	return stored, nil
}

// FindByID retrieves a quote by its internal id.
func (r *quoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE id = $1`, quoteColumns)

	quote, err := r.scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("quote_id", id.String()).Msg("quote not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("quote_id", id.String()).Msg("failed to query quote")
		return nil, fmt.Errorf("failed to query quote: %w", err)
	}

	return quote, nil
}

// FindByReference retrieves a quote by its customer-facing reference number.
func (r *quoteRepository) FindByReference(ctx context.Context, reference string) (*model.Quote, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE reference_number = $1`, quoteColumns)

	quote, err := r.scanQuote(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("reference", reference).Msg("quote not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("reference", reference).Msg("failed to query quote")
		return nil, fmt.Errorf("failed to query quote: %w", err)
	}

	return quote, nil
}

// UpdateStatus sets the status and stamps last_modified_at.
func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (*model.Quote, error) {
	query := fmt.Sprintf(`
		UPDATE quotes
		SET status = $2, last_modified_at = $3
		WHERE id = $1
		RETURNING %s
	`, quoteColumns)

	quote, err := r.scanQuote(r.pool.QueryRow(ctx, query, id, status, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("quote_id", id.String()).Msg("quote not found for status update")
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("quote_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update quote status")
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	r.logger.Debug().
		Str("quote_id", id.String()).
		Str("status", string(status)).
		Msg("quote status updated")

	return quote, nil
}

// ListReferences returns every stored reference number.
func (r *quoteRepository) ListReferences(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT reference_number FROM quotes`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reference numbers")
		return nil, fmt.Errorf("failed to query reference numbers: %w", err)
	}
	defer rows.Close()

	references := make(map[string]struct{})
	for rows.Next() {
		var reference string
		if err := rows.Scan(&reference); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan reference number")
			return nil, fmt.Errorf("failed to scan reference number: %w", err)
		}
		references[reference] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating reference numbers")
		return nil, fmt.Errorf("error iterating reference numbers: %w", err)
	}

	return references, nil
}

// List returns quotes ordered by creation time, most recent first.
func (r *quoteRepository) List(ctx context.Context, limit, offset int) ([]model.Quote, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM quotes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, quoteColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query quotes")
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		quote, err := r.scanQuote(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan quote row")
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating quote rows")
		return nil, fmt.Errorf("error iterating quotes: %w", err)
	}

	return quotes, nil
}

// Delete removes a quote, reporting whether a record was removed.
func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("quote_id", id.String()).Msg("failed to delete quote")
		return false, fmt.Errorf("failed to delete quote: %w", err)
	}

	deleted := tag.RowsAffected() > 0
	r.logger.Debug().
		Str("quote_id", id.String()).
		Bool("deleted", deleted).
		Msg("quote delete executed")

	return deleted, nil
}

// scanQuote maps one quotes row back into the domain shape, decoding the
// JSON customer and items columns.
func (r *quoteRepository) scanQuote(row pgx.Row) (*model.Quote, error) {
	var (
		quote        model.Quote
		customerJSON []byte
		itemsJSON    []byte
	)

	err := row.Scan(
		&quote.ID,
		&quote.ReferenceNumber,
		&customerJSON,
		&itemsJSON,
		&quote.Subtotal,
		&quote.Total,
		&quote.Currency,
		&quote.Status,
		&quote.Comments,
		&quote.CreatedAt,
		&quote.ExpiresAt,
		&quote.LastModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(customerJSON, &quote.Customer); err != nil {
		return nil, fmt.Errorf("failed to decode customer: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &quote.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	return &quote, nil
}
