package domain

import (
	"time"

	"github.com/google/uuid"
)

// Party is a billing or shipping address block on an invoice.
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
}

// ProductLine is a single product row on an invoice.
type ProductLine struct {
	Name     string  `json:"name"`
	HSNCode  string  `json:"hsn_code"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// CatalogProduct is an entry in the reusable product catalog.
type CatalogProduct struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	HSNCode string `json:"hsn_code"`
}

// BankDetails holds the supplier's bank information printed on invoices.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	Branch        string `json:"branch"`
}

// CompanyInfo is the supplier profile loaded from configuration.
type CompanyInfo struct {
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	GSTIN     string      `json:"gstin"`
	State     string      `json:"state"`
	StateCode string      `json:"state_code"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Bank      BankDetails `json:"bank"`
}

// InvoiceRequest is the payload for generating an invoice.
type InvoiceRequest struct {
	InvoiceNo      string        `json:"invoice_no" binding:"required"`
	PO             string        `json:"po"`
	Date           string        `json:"date" binding:"required"`
	MBNumber       string        `json:"mb_number"`
	Billing        Party         `json:"billing"`
	Shipping       Party         `json:"shipping"`
	Products       []ProductLine `json:"products" binding:"required"`
	PackingCharges float64       `json:"packing_charges"`
	EmailTo        string        `json:"email_to"`
}

// InvoiceDocument is the fully computed invoice handed to the PDF renderer.
type InvoiceDocument struct {
	InvoiceNo      string        `json:"invoice_no"`
	PO             string        `json:"po"`
	Date           string        `json:"date"`
	MBNumber       string        `json:"mb_number"`
	Billing        Party         `json:"billing"`
	Shipping       Party         `json:"shipping"`
	Products       []ProductLine `json:"products"`
	PackingCharges float64       `json:"packing_charges"`
	Subtotal       float64       `json:"subtotal"`
	TotalBeforeTax float64       `json:"total_before_tax"`
	TaxType        string        `json:"tax_type"`
	CGST           float64       `json:"cgst"`
	SGST           float64       `json:"sgst"`
	IGST           float64       `json:"igst"`
	TotalTax       float64       `json:"total_tax"`
	TotalAfterTax  float64       `json:"total_after_tax"`
	AmountInWords  string        `json:"amount_in_words"`
	WordsDegraded  bool          `json:"-"`
	Company        CompanyInfo   `json:"company_info"`
}

// InvoiceRecord is a register row for a generated invoice.
type InvoiceRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	InvoiceNo     string    `db:"invoice_no" json:"invoice_no"`
	PO            string    `db:"po" json:"po"`
	InvoiceDate   string    `db:"invoice_date" json:"invoice_date"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerState string    `db:"customer_state" json:"customer_state"`
	TaxType       string    `db:"tax_type" json:"tax_type"`
	Subtotal      float64   `db:"subtotal" json:"subtotal"`
	Packing       float64   `db:"packing" json:"packing"`
	CGST          float64   `db:"cgst" json:"cgst"`
	SGST          float64   `db:"sgst" json:"sgst"`
	IGST          float64   `db:"igst" json:"igst"`
	TotalAfterTax float64   `db:"total_after_tax" json:"total_after_tax"`
	StorageKey    string    `db:"storage_key" json:"storage_key"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ExtractedProduct is a product line as read from an uploaded document.
// Rate is the base rate before tax; Amount is computed by the caller.
type ExtractedProduct struct {
	Name     string  `json:"name"`
	HSNCode  string  `json:"hsn_code"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Extraction is the structured form-prefill payload produced from an
// uploaded purchase order or invoice.
type Extraction struct {
	DocumentType   string             `json:"document_type"`
	PO             string             `json:"po"`
	InvoiceDate    string             `json:"invoice_date"`
	Billing        Party              `json:"billing"`
	Shipping       Party              `json:"shipping"`
	Products       []ExtractedProduct `json:"products"`
	PackingCharges float64            `json:"packing_charges"`
	Confidence     string             `json:"extraction_confidence"`
	Notes          string             `json:"notes"`
}
