package port

import "context"

// InvoiceEmail describes an invoice notification to a customer.
type InvoiceEmail struct {
	ToAddress   string
	ToName      string
	InvoiceNo   string
	TotalAmount float64
	AmountWords string
	DownloadURL string
}

// EmailSender defines the contract for sending invoice notifications.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, email InvoiceEmail) error
}
