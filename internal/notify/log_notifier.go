package notify

import (
	"context"
	"fmt"

	"quote-desk/internal/model"

	"github.com/rs/zerolog"
)

// logNotifier implements Notifier by recording each dispatch in the log.
// The actual mail transport lives outside this service; this implementation
// is what ships when none is wired up, and it keeps the dispatch observable.
type logNotifier struct {
	adminRecipient string
	logger         zerolog.Logger
}

// NewLogNotifier creates a logging notifier. adminRecipient is the address
// the sales-team notification is addressed to.
func NewLogNotifier(adminRecipient string, logger zerolog.Logger) Notifier {
	return &logNotifier{
		adminRecipient: adminRecipient,
		logger:         logger.With().Str("component", "notifier").Logger(),
	}
}

// SendCustomerConfirmation notifies the requesting customer.
func (n *logNotifier) SendCustomerConfirmation(ctx context.Context, quote *model.Quote) error {
	n.logger.Info().
		Str("kind", "customer_confirmation").
		Str("recipient", quote.Customer.Email).
		Str("reference", quote.ReferenceNumber).
		Str("total", fmt.Sprintf("%.2f %s", quote.Total, quote.Currency)).
		Msg("notification dispatched")
	return nil
}

// SendQuoteNotification notifies the sales team.
func (n *logNotifier) SendQuoteNotification(ctx context.Context, quote *model.Quote) error {
	n.logger.Info().
		Str("kind", "admin_notification").
		Str("recipient", n.adminRecipient).
		Str("reference", quote.ReferenceNumber).
		Str("customer", quote.Customer.Email).
		Str("total", fmt.Sprintf("%.2f %s", quote.Total, quote.Currency)).
		Msg("notification dispatched")
	return nil
}
