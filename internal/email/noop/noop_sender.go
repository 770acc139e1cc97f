// Package noop provides an EmailSender that only logs. Used when no email
// provider is configured.
package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"gstbill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (n *noopSender) SendInvoiceEmail(ctx context.Context, email port.InvoiceEmail) error {
	log.Info().
		Str("to", email.ToAddress).
		Str("invoice_no", email.InvoiceNo).
		Float64("total_amount", email.TotalAmount).
		Msg("noop email sender: skipping invoice notification")
	return nil
}
