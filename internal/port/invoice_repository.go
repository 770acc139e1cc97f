package port

import (
	"context"

	"gstbill/internal/domain"
)

// InvoiceRepository persists the register of generated invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, record *domain.InvoiceRecord) error
	List(ctx context.Context, limit, offset int) ([]domain.InvoiceRecord, int, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.InvoiceRecord, error)
}
