package service_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/service"
)

type fakeRepo struct {
	records []domain.InvoiceRecord
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, rec *domain.InvoiceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]domain.InvoiceRecord, int, error) {
	return f.records, len(f.records), nil
}

func (f *fakeRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.InvoiceRecord, error) {
	for i := range f.records {
		if f.records[i].InvoiceNo == invoiceNo {
			return &f.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeStorage struct {
	stored map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{stored: map[string][]byte{}}
}

func (f *fakeStorage) Store(ctx context.Context, input port.StoreInput) (*port.StoreOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.stored[input.Key] = data
	return &port.StoreOutput{Location: "mem://" + input.Key}, nil
}

func (f *fakeStorage) PresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error) {
	return "https://example.com/" + key, nil
}

type fakeEmail struct {
	sent []port.InvoiceEmail
}

func (f *fakeEmail) SendInvoiceEmail(ctx context.Context, email port.InvoiceEmail) error {
	f.sent = append(f.sent, email)
	return nil
}

func testCompany() *domain.CompanyInfo {
	return &domain.CompanyInfo{
		Name:      "Globel Interiors India",
		Address:   "New Delhi",
		GSTIN:     "07AWXPS9168G1ZG",
		State:     "Delhi",
		StateCode: "07",
		Bank: domain.BankDetails{
			BankName:      "HDFC Bank",
			AccountNumber: "50200045678901",
			IFSCCode:      "HDFC0000123",
			Branch:        "Kirti Nagar",
		},
	}
}

func testRequest() *domain.InvoiceRequest {
	return &domain.InvoiceRequest{
		InvoiceNo: "GII/2025/042",
		Date:      "15/08/2025",
		Billing: domain.Party{
			Name:      "Acme Projects",
			Address:   "Ludhiana",
			State:     "Punjab",
			StateCode: "03",
		},
		Shipping: domain.Party{
			Name:  "Acme Projects",
			State: "Punjab",
		},
		Products: []domain.ProductLine{
			{Name: "Modular Workstation Panel", HSNCode: "9403", Quantity: 10, Rate: 10000},
		},
	}
}

func newTestService(repo *fakeRepo, storage *fakeStorage, email *fakeEmail) service.InvoiceService {
	return service.NewInvoiceService(testCompany(), repo, storage, email, 3600)
}

func TestInvoiceService_Generate_InterState(t *testing.T) {
	repo := &fakeRepo{}
	storage := newFakeStorage()
	email := &fakeEmail{}
	svc := newTestService(repo, storage, email)

	result, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "IGST", doc.TaxType)
	assert.InDelta(t, 100000.0, doc.Subtotal, 0.001)
	assert.InDelta(t, 18000.0, doc.IGST, 0.001)
	assert.InDelta(t, 118000.0, doc.TotalAfterTax, 0.001)
	assert.Equal(t, "Rupees One Lakh Eighteen Thousand Only", doc.AmountInWords)
	assert.False(t, doc.WordsDegraded)

	// Rendered PDF is archived and registered.
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF")))
	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, "GII/2025/042", rec.InvoiceNo)
	assert.Equal(t, "IGST", rec.TaxType)
	assert.Contains(t, storage.stored, rec.StorageKey)
	assert.NotContains(t, rec.StorageKey, "/2025/") // slashes replaced in key

	// No email requested.
	assert.Empty(t, email.sent)
}

func TestInvoiceService_Generate_IntraState(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, newFakeStorage(), &fakeEmail{})

	req := testRequest()
	req.Billing.State = "Delhi"
	req.Billing.StateCode = "07"

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "SGST", doc.TaxType)
	assert.InDelta(t, 9000.0, doc.CGST, 0.001)
	assert.InDelta(t, 9000.0, doc.SGST, 0.001)
	assert.InDelta(t, 0.0, doc.IGST, 0.001)
	assert.InDelta(t, 118000.0, doc.TotalAfterTax, 0.001)
}

func TestInvoiceService_Generate_PackingCharges(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newFakeStorage(), &fakeEmail{})

	req := testRequest()
	req.PackingCharges = 500

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	doc := result.Document
	assert.InDelta(t, 100000.0, doc.Subtotal, 0.001)
	assert.InDelta(t, 100500.0, doc.TotalBeforeTax, 0.001)
	assert.InDelta(t, 18090.0, doc.IGST, 0.001)
}

func TestInvoiceService_Generate_ComputesLineAmounts(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newFakeStorage(), &fakeEmail{})

	req := testRequest()
	req.Products = []domain.ProductLine{
		{Name: "Panel", HSNCode: "9403", Quantity: 3, Rate: 333.335},
	}

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 1000.01, result.Document.Products[0].Amount, 0.001)
}

func TestInvoiceService_Generate_SendsEmail(t *testing.T) {
	email := &fakeEmail{}
	svc := newTestService(&fakeRepo{}, newFakeStorage(), email)

	req := testRequest()
	req.EmailTo = "accounts@acme.example"

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, email.sent, 1)
	sent := email.sent[0]
	assert.Equal(t, "accounts@acme.example", sent.ToAddress)
	assert.Equal(t, "GII/2025/042", sent.InvoiceNo)
	assert.InDelta(t, result.Document.TotalAfterTax, sent.TotalAmount, 0.001)
	assert.Contains(t, sent.DownloadURL, "https://example.com/")
}

func TestInvoiceService_Generate_DuplicateInvoiceNo(t *testing.T) {
	repo := &fakeRepo{err: domain.ErrDuplicateInvoiceNo}
	svc := newTestService(repo, newFakeStorage(), &fakeEmail{})

	_, err := svc.Generate(context.Background(), testRequest())
	require.ErrorIs(t, err, domain.ErrDuplicateInvoiceNo)
}

func TestInvoiceService_Generate_Validation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newFakeStorage(), &fakeEmail{})

	tests := []struct {
		name   string
		mutate func(*domain.InvoiceRequest)
	}{
		{"missing invoice no", func(r *domain.InvoiceRequest) { r.InvoiceNo = "  " }},
		{"missing date", func(r *domain.InvoiceRequest) { r.Date = "" }},
		{"missing billing name", func(r *domain.InvoiceRequest) { r.Billing.Name = "" }},
		{"missing billing state", func(r *domain.InvoiceRequest) { r.Billing.State = "" }},
		{"no products", func(r *domain.InvoiceRequest) { r.Products = nil }},
		{"zero quantity", func(r *domain.InvoiceRequest) { r.Products[0].Quantity = 0 }},
		{"negative rate", func(r *domain.InvoiceRequest) { r.Products[0].Rate = -5 }},
		{"negative packing", func(r *domain.InvoiceRequest) { r.PackingCharges = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(req)
			_, err := svc.Generate(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestInvoiceService_ListRegister(t *testing.T) {
	repo := &fakeRepo{records: []domain.InvoiceRecord{
		{InvoiceNo: "A-1"},
		{InvoiceNo: "A-2"},
	}}
	svc := newTestService(repo, newFakeStorage(), &fakeEmail{})

	records, total, err := svc.ListRegister(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, records, 2)
}
