package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, rec *domain.InvoiceRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoices (id, invoice_no, po, invoice_date, customer_name,
		customer_state, tax_type, subtotal, packing, cgst, sgst, igst,
		total_after_tax, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.InvoiceNo, rec.PO, rec.InvoiceDate, rec.CustomerName,
		rec.CustomerState, rec.TaxType, rec.Subtotal, rec.Packing,
		rec.CGST, rec.SGST, rec.IGST, rec.TotalAfterTax, rec.StorageKey, rec.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoiceNo
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) List(ctx context.Context, limit, offset int) ([]domain.InvoiceRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices"); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var records []domain.InvoiceRecord
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *invoiceRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.InvoiceRecord, error) {
	var rec domain.InvoiceRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM invoices WHERE invoice_no = $1", invoiceNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByInvoiceNo: %w", err)
	}
	return &rec, nil
}
