package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
	"gstbill/internal/render"
)

// GenerateResult is the outcome of invoice generation: the computed document,
// its rendered PDF, and the register row that was written.
type GenerateResult struct {
	Document *domain.InvoiceDocument
	PDF      []byte
	Record   *domain.InvoiceRecord
}

// InvoiceService defines the invoice generation and register contract.
type InvoiceService interface {
	Generate(ctx context.Context, req *domain.InvoiceRequest) (*GenerateResult, error)
	ListRegister(ctx context.Context, limit, offset int) ([]domain.InvoiceRecord, int, error)
}

type invoiceService struct {
	company       *domain.CompanyInfo
	repo          port.InvoiceRepository
	storage       port.ObjectStorage
	email         port.EmailSender
	presignExpiry int64
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	company *domain.CompanyInfo,
	repo port.InvoiceRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	presignExpiry int64,
) InvoiceService {
	return &invoiceService{
		company:       company,
		repo:          repo,
		storage:       storage,
		email:         email,
		presignExpiry: presignExpiry,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *invoiceService) Generate(ctx context.Context, req *domain.InvoiceRequest) (*GenerateResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	doc, err := s.buildDocument(req)
	if err != nil {
		return nil, err
	}

	pdf, err := render.InvoicePDF(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering invoice %s: %w", doc.InvoiceNo, err)
	}

	key := storageKey(doc.InvoiceNo)
	if _, err := s.storage.Store(ctx, port.StoreInput{
		Key:         key,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
		Size:        int64(len(pdf)),
	}); err != nil {
		return nil, fmt.Errorf("archiving invoice %s: %w", doc.InvoiceNo, err)
	}

	rec := &domain.InvoiceRecord{
		InvoiceNo:     doc.InvoiceNo,
		PO:            doc.PO,
		InvoiceDate:   doc.Date,
		CustomerName:  doc.Billing.Name,
		CustomerState: doc.Billing.State,
		TaxType:       doc.TaxType,
		Subtotal:      doc.Subtotal,
		Packing:       doc.PackingCharges,
		CGST:          doc.CGST,
		SGST:          doc.SGST,
		IGST:          doc.IGST,
		TotalAfterTax: doc.TotalAfterTax,
		StorageKey:    key,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if req.EmailTo != "" {
		s.notify(ctx, req.EmailTo, doc, key)
	}

	return &GenerateResult{Document: doc, PDF: pdf, Record: rec}, nil
}

func (s *invoiceService) ListRegister(ctx context.Context, limit, offset int) ([]domain.InvoiceRecord, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// buildDocument computes line amounts, totals, tax, and the amount in words.
func (s *invoiceService) buildDocument(req *domain.InvoiceRequest) (*domain.InvoiceDocument, error) {
	products := make([]domain.ProductLine, len(req.Products))
	subtotal := 0.0
	for i, p := range req.Products {
		p.Amount = round2(p.Quantity * p.Rate)
		products[i] = p
		subtotal += p.Amount
	}
	subtotal = round2(subtotal)
	totalBeforeTax := round2(subtotal + req.PackingCharges)

	tax, err := gst.CalculateTax(s.company.State, req.Billing.State, totalBeforeTax)
	if err != nil {
		return nil, err
	}

	words, ok := gst.AmountInWords(tax.TotalAfterTax)
	if !ok {
		log.Warn().
			Str("invoice_no", req.InvoiceNo).
			Float64("amount", tax.TotalAfterTax).
			Msg("amount in words degraded to numeric form")
	}

	return &domain.InvoiceDocument{
		InvoiceNo:      req.InvoiceNo,
		PO:             req.PO,
		Date:           req.Date,
		MBNumber:       req.MBNumber,
		Billing:        req.Billing,
		Shipping:       req.Shipping,
		Products:       products,
		PackingCharges: req.PackingCharges,
		Subtotal:       subtotal,
		TotalBeforeTax: totalBeforeTax,
		TaxType:        string(tax.TaxType),
		CGST:           tax.CGST,
		SGST:           tax.SGST,
		IGST:           tax.IGST,
		TotalTax:       tax.TotalTax,
		TotalAfterTax:  tax.TotalAfterTax,
		AmountInWords:  words,
		WordsDegraded:  !ok,
		Company:        *s.company,
	}, nil
}

// notify sends the invoice email on a best-effort basis. A failed
// notification never fails the generation.
func (s *invoiceService) notify(ctx context.Context, to string, doc *domain.InvoiceDocument, key string) {
	url, err := s.storage.PresignedURL(ctx, key, s.presignExpiry)
	if err != nil {
		log.Warn().Str("invoice_no", doc.InvoiceNo).Err(err).Msg("presigning invoice for email failed")
		return
	}
	err = s.email.SendInvoiceEmail(ctx, port.InvoiceEmail{
		ToAddress:   to,
		ToName:      doc.Billing.Name,
		InvoiceNo:   doc.InvoiceNo,
		TotalAmount: doc.TotalAfterTax,
		AmountWords: doc.AmountInWords,
		DownloadURL: url,
	})
	if err != nil {
		log.Warn().Str("invoice_no", doc.InvoiceNo).Err(err).Msg("sending invoice email failed")
	}
}

func validateRequest(req *domain.InvoiceRequest) error {
	if strings.TrimSpace(req.InvoiceNo) == "" {
		return fmt.Errorf("%w: invoice_no is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Billing.Name) == "" {
		return fmt.Errorf("%w: billing name is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Billing.State) == "" {
		return fmt.Errorf("%w: billing state is required", domain.ErrInvalidArgument)
	}
	if len(req.Products) == 0 {
		return fmt.Errorf("%w: at least one product is required", domain.ErrInvalidArgument)
	}
	for i, p := range req.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: product %d has no name", domain.ErrInvalidArgument, i+1)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("%w: product %d quantity must be positive", domain.ErrInvalidArgument, i+1)
		}
		if p.Rate < 0 || math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
			return fmt.Errorf("%w: product %d rate is invalid", domain.ErrInvalidArgument, i+1)
		}
	}
	if req.PackingCharges < 0 || math.IsNaN(req.PackingCharges) || math.IsInf(req.PackingCharges, 0) {
		return fmt.Errorf("%w: packing charges must not be negative", domain.ErrInvalidArgument)
	}
	return nil
}

// storageKey builds the archive key for a generated invoice. Slashes in the
// invoice number would create unintended prefixes, so they are replaced.
func storageKey(invoiceNo string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(invoiceNo)
	return fmt.Sprintf("invoices/Invoice_%s.pdf", safe)
}
