package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"quote-desk/internal/model"
	"quote-desk/internal/notify"
	"quote-desk/internal/reference"
	"quote-desk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// emailPattern accepts the basic local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// QuoteConfig holds the policy knobs for the quote workflow.
type QuoteConfig struct {
	Currency     string
	ExpiryDays   int
	AllocRetries int
}

// quoteService implements QuoteService.
type quoteService struct {
	repo      repository.QuoteRepository
	allocator *reference.Allocator
	notifier  notify.Notifier
	cfg       QuoteConfig
	logger    zerolog.Logger
}

// NewQuoteService creates a new quote service.
func NewQuoteService(
	repo repository.QuoteRepository,
	allocator *reference.Allocator,
	notifier notify.Notifier,
	cfg QuoteConfig,
	logger zerolog.Logger,
) QuoteService {
	return &quoteService{
		repo:      repo,
		allocator: allocator,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger.With().Str("service", "quote").Logger(),
	}
}

// Submit validates the request, computes totals, allocates a reference and
// persists the quote. The allocator's read-then-pick is not atomic with the
// insert, so a conflicting concurrent submission surfaces as a conflict from
// the repository; Submit then re-lists, re-allocates and retries a bounded
// number of times.
func (s *quoteService) Submit(ctx context.Context, req *model.QuoteRequest) (*model.Quote, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	total := 0.0
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}
	total = math.Round(total*100) / 100

	now := time.Now().UTC()
	quote := &model.Quote{
		ID:        uuid.New(),
		Customer:  *req.Customer,
		Items:     req.Items,
		Subtotal:  total,
		Total:     total,
		Currency:  s.cfg.Currency,
		Status:    model.StatusPending,
		Comments:  req.Comments,
		CreatedAt: now,
		ExpiresAt: now.AddDate(0, 0, s.cfg.ExpiryDays),
	}

	used, err := s.repo.ListReferences(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list reference numbers")
		return nil, fmt.Errorf("failed to submit quote: %w", err)
	}

	for attempt := 1; attempt <= s.cfg.AllocRetries; attempt++ {
		quote.ReferenceNumber = s.allocator.Allocate(used)

		stored, err := s.repo.Create(ctx, quote)
		if err == nil {
			s.logger.Info().
				Str("quote_id", stored.ID.String()).
				Str("reference", stored.ReferenceNumber).
				Float64("total", stored.Total).
				Int("item_count", len(stored.Items)).
				Msg("quote submitted successfully")

			s.dispatchNotifications(stored)
			return stored, nil
		}

		if !model.IsConflict(err) {
			s.logger.Error().
				Err(err).
				Str("quote_id", quote.ID.String()).
				Msg("failed to create quote")
			return nil, fmt.Errorf("failed to submit quote: %w", err)
		}

		// Another submission committed our candidate first. Refresh the
		// used set and try the next free reference.
		s.logger.Warn().
			Str("reference", quote.ReferenceNumber).
			Int("attempt", attempt).
			Msg("reference number conflict, reallocating")

		used, err = s.repo.ListReferences(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to refresh reference numbers")
			return nil, fmt.Errorf("failed to submit quote: %w", err)
		}
	}

	s.logger.Error().
		Int("attempts", s.cfg.AllocRetries).
		Msg("reference allocation retries exhausted")
	return nil, model.ErrReferenceTaken
}

// dispatchNotifications fires the customer confirmation and the admin
// notification as independent tasks. The quote is already stored and
// authoritative; a failed send is logged and goes no further.
func (s *quoteService) dispatchNotifications(quote *model.Quote) {
	ctx := context.WithoutCancel(context.Background())

	go func() {
		if err := s.notifier.SendCustomerConfirmation(ctx, quote); err != nil {
			s.logger.Error().
				Err(err).
				Str("reference", quote.ReferenceNumber).
				Str("recipient", quote.Customer.Email).
				Msg("customer confirmation failed")
		}
	}()

	go func() {
		if err := s.notifier.SendQuoteNotification(ctx, quote); err != nil {
			s.logger.Error().
				Err(err).
				Str("reference", quote.ReferenceNumber).
				Msg("admin notification failed")
		}
	}()
}

// GetByID retrieves a quote by its internal id.
func (s *quoteService) GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("quote_id", id.String()).Msg("failed to get quote")
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// GetByReference retrieves a quote by its customer-facing reference number.
func (s *quoteService) GetByReference(ctx context.Context, ref string) (*model.Quote, error) {
	quote, err := s.repo.FindByReference(ctx, ref)
	if err != nil {
		s.logger.Error().Err(err).Str("reference", ref).Msg("failed to get quote")
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// List returns quotes for admin review, most recent first.
func (s *quoteService) List(ctx context.Context, limit, offset int) ([]model.Quote, error) {
	if limit < 1 || limit > 100 {
		return nil, model.ErrInvalidLimit
	}
	if offset < 0 {
		return nil, model.ErrInvalidOffset
	}

	quotes, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list quotes")
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	s.logger.Debug().
		Int("count", len(quotes)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved quotes")

	return quotes, nil
}

// UpdateStatus sets a quote's status. Any known status may replace any other;
// only the status value itself is validated.
func (s *quoteService) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*model.Quote, error) {
	status, ok := model.ParseStatus(raw)
	if !ok {
		return nil, model.ErrInvalidStatus
	}

	quote, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("quote_id", id.String()).
			Str("status", raw).
			Msg("failed to update quote status")
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	if quote != nil {
		s.logger.Info().
			Str("quote_id", id.String()).
			Str("status", raw).
			Msg("quote status updated")
	}

	return quote, nil
}

// Delete removes a quote.
func (s *quoteService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("quote_id", id.String()).Msg("failed to delete quote")
		return false, fmt.Errorf("failed to delete quote: %w", err)
	}

	if deleted {
		s.logger.Info().Str("quote_id", id.String()).Msg("quote deleted")
	}

	return deleted, nil
}

// validateRequest checks the quote request shape before any persistence.
func (s *quoteService) validateRequest(req *model.QuoteRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrItemsRequired
	}

	for _, item := range req.Items {
		if item.Price < 0 {
			return model.ErrInvalidPrice
		}
		if item.Quantity <= 0 {
			return model.ErrInvalidQuantity
		}
	}

	if req.Customer == nil || req.Customer.FirstName == "" || req.Customer.LastName == "" {
		return model.ErrCustomerRequired
	}

	if !emailPattern.MatchString(req.Customer.Email) {
		return model.ErrInvalidEmail
	}

	return nil
}
