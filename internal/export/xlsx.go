package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

const sheetName = "Invoice Register"

// WriteXLSX writes the invoice register as an XLSX workbook to w.
func WriteXLSX(w io.Writer, records []domain.InvoiceRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("deleting default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	for i := range records {
		row := recordToXLSXRow(&records[i])
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "F", 18); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// recordToXLSXRow mirrors the CSV column order but keeps amounts numeric so
// Excel can sum them.
func recordToXLSXRow(rec *domain.InvoiceRecord) []interface{} {
	return []interface{}{
		rec.InvoiceNo,
		rec.InvoiceDate,
		rec.PO,
		rec.CustomerName,
		rec.CustomerState,
		rec.TaxType,
		rec.Subtotal,
		rec.Packing,
		rec.CGST,
		rec.SGST,
		rec.IGST,
		rec.TotalAfterTax,
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
