// Package export renders the invoice register as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstbill/internal/domain"
)

// BOM is the UTF-8 byte order mark, written before CSV output for Excel
// compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the register export header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"PO Number",
	"Customer Name",
	"Customer State",
	"Tax Type",
	"Subtotal",
	"Packing Charges",
	"CGST",
	"SGST",
	"IGST",
	"Total",
	"Created At",
}

// CSVWriter wraps csv.Writer for exporting invoice records as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts invoice records to CSV rows and writes them.
func (w *CSVWriter) WriteRecords(records []domain.InvoiceRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func recordToRow(rec *domain.InvoiceRecord) []string {
	return []string{
		rec.InvoiceNo,
		rec.InvoiceDate,
		rec.PO,
		rec.CustomerName,
		rec.CustomerState,
		rec.TaxType,
		formatMoney(rec.Subtotal),
		formatMoney(rec.Packing),
		formatMoney(rec.CGST),
		formatMoney(rec.SGST),
		formatMoney(rec.IGST),
		formatMoney(rec.TotalAfterTax),
		rec.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename of the form
// invoice_register_{YYYY-MM-DD}.{ext}.
func BuildFilename(ext string) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("invoice_register_%s.%s", date, ext)
}
