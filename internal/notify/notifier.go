package notify

import (
	"context"

	"quote-desk/internal/model"
)

// Notifier defines the interface for outbound quote notifications. The
// workflow treats both sends as best-effort: a failure is logged and never
// affects the stored quote.
type Notifier interface {
	// SendCustomerConfirmation notifies the requesting customer that their
	// quote was received.
	SendCustomerConfirmation(ctx context.Context, quote *model.Quote) error

	// SendQuoteNotification notifies the sales team about a new quote.
	SendQuoteNotification(ctx context.Context, quote *model.Quote) error
}
