// Package render produces the printable A4 tax invoice from a computed
// InvoiceDocument using Maroto.
//
// Page layout:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: supplier name + GSTIN    │  TAX INVOICE + no + date │
//	│  ──────────────────────────────────────────────────────────  │
//	│  BILL TO block                    │  SHIP TO block           │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLE: # | Description | HSN | Qty | Rate | Amount          │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALS: subtotal / packing / CGST+SGST or IGST / total      │
//	│  Amount in words  │  Bank details  │  Signature              │
//	└──────────────────────────────────────────────────────────────┘
package render

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// InvoicePDF renders the invoice document and returns the PDF bytes.
func InvoicePDF(doc *domain.InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.InvoiceNo, true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range productRows(doc.Products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(doc) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(wordsRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating invoice pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func inr(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

func headerRow(doc *domain.InvoiceDocument) core.Row {
	meta := fmt.Sprintf("Invoice No: %s    Date: %s", doc.InvoiceNo, doc.Date)
	if doc.PO != "" {
		meta += "    PO: " + doc.PO
	}
	if doc.MBNumber != "" {
		meta += "    MB No: " + doc.MBNumber
	}

	return row.New(22).Add(
		col.New(7).Add(
			text.New(doc.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+doc.Company.GSTIN, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(doc.Company.Address, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(meta, props.Text{
				Size: 8, Align: align.Right, Top: 10,
			}),
		),
	)
}

func partyLines(title string, p domain.Party) []core.Component {
	comps := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
		text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 6}),
		text.New(p.Address, props.Text{Size: 8, Top: 11, Color: colorGray}),
	}
	detail := fmt.Sprintf("GSTIN: %s    State: %s (%s)", p.GSTIN, p.State, p.StateCode)
	comps = append(comps, text.New(detail, props.Text{Size: 8, Top: 17, Color: colorGray}))
	return comps
}

func partiesRow(doc *domain.InvoiceDocument) core.Row {
	return row.New(24).Add(
		col.New(6).Add(partyLines("BILL TO", doc.Billing)...),
		col.New(6).Add(partyLines("SHIP TO", doc.Shipping)...),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(1).Add(text.New("#", header)),
		col.New(4).Add(text.New("Description", header)),
		col.New(2).Add(text.New("HSN/SAC", header)),
		col.New(1).Add(text.New("Qty", headerRight)),
		col.New(2).Add(text.New("Rate", headerRight)),
		col.New(2).Add(text.New("Amount", headerRight)),
	)
}

func productRows(products []domain.ProductLine) []core.Row {
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	rows := make([]core.Row, 0, len(products))
	for i, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), cell)),
			col.New(4).Add(text.New(p.Name, cell)),
			col.New(2).Add(text.New(p.HSNCode, cell)),
			col.New(1).Add(text.New(fmt.Sprintf("%.0f", p.Quantity), cellRight)),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f", p.Rate), cellRight)),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f", p.Amount), cellRight)),
		))
	}
	return rows
}

func totalRow(label, value string, bold bool) core.Row {
	style := props.Text{Size: 8, Align: align.Right}
	if bold {
		style = props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold, Color: colorPrimary}
	}
	return row.New(5).Add(
		col.New(8).Add(text.New(label, style)),
		col.New(4).Add(text.New(value, style)),
	)
}

func totalsRows(doc *domain.InvoiceDocument) []core.Row {
	rows := []core.Row{
		totalRow("Subtotal", inr(doc.Subtotal), false),
	}
	if doc.PackingCharges > 0 {
		rows = append(rows,
			totalRow("Packing & Cartage", inr(doc.PackingCharges), false),
			totalRow("Total Before Tax", inr(doc.TotalBeforeTax), false),
		)
	}
	if doc.TaxType == string(gst.TaxIntraState) {
		rows = append(rows,
			totalRow("CGST @ 9%", inr(doc.CGST), false),
			totalRow("SGST @ 9%", inr(doc.SGST), false),
		)
	} else {
		rows = append(rows, totalRow("IGST @ 18%", inr(doc.IGST), false))
	}
	rows = append(rows,
		totalRow("Total Tax", inr(doc.TotalTax), false),
		totalRow("TOTAL", inr(doc.TotalAfterTax), true),
	)
	return rows
}

func wordsRow(doc *domain.InvoiceDocument) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Amount in words: "+doc.AmountInWords, props.Text{
				Size: 8, Style: fontstyle.Italic,
			}),
		),
	)
}

func footerRow(doc *domain.InvoiceDocument) core.Row {
	bank := doc.Company.Bank
	return row.New(22).Add(
		col.New(7).Add(
			text.New("Bank Details", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s, %s", bank.BankName, bank.Branch), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("A/C: %s    IFSC: %s", bank.AccountNumber, bank.IFSCCode), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("For "+doc.Company.Name, props.Text{Size: 8, Align: align.Right, Top: 6}),
			text.New("Authorised Signatory", props.Text{Size: 8, Align: align.Right, Top: 17, Color: colorGray}),
		),
	)
}
