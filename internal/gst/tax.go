// Package gst implements the deterministic GST computation core: tax
// determination, state identifier normalization, and amount-in-words
// rendering. Everything here is pure and safe for concurrent use.
package gst

import (
	"fmt"
	"math"
	"strings"

	"gstbill/internal/domain"
)

// GST rates for a single registered supplier. Intra-state supplies split the
// combined rate evenly between the central and state levies.
const (
	cgstRate = 0.09
	sgstRate = 0.09
	igstRate = 0.18
)

// TaxType classifies a supply as intra-state or inter-state.
type TaxType string

const (
	// TaxIntraState marks a same-state supply (CGST + SGST).
	TaxIntraState TaxType = "SGST"
	// TaxInterState marks a cross-state supply (IGST).
	TaxInterState TaxType = "IGST"
)

// TaxResult is the tax breakdown for a single invoice. Exactly one of
// {CGST+SGST} or {IGST} is non-zero.
type TaxResult struct {
	TaxType       TaxType `json:"tax_type"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	TotalTax      float64 `json:"total_tax"`
	TotalAfterTax float64 `json:"total_after_tax"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateTax classifies the supply and computes the tax breakdown for a
// pre-tax subtotal. The supplier and customer states are compared after
// trimming and lower-casing only: no abbreviation or code resolution happens
// here, so "Delhi" vs "DL" is treated as inter-state. Callers that want
// canonical comparison must run Normalize on both inputs first.
//
// Each tax component is rounded to 2 decimal places independently before
// summation; rounding only the final total would drift on odd subtotals.
func CalculateTax(supplierState, customerState string, subtotal float64) (TaxResult, error) {
	supplier := strings.ToLower(strings.TrimSpace(supplierState))
	customer := strings.ToLower(strings.TrimSpace(customerState))

	if supplier == "" {
		return TaxResult{}, fmt.Errorf("%w: supplier state is required", domain.ErrInvalidArgument)
	}
	if customer == "" {
		return TaxResult{}, fmt.Errorf("%w: customer state is required", domain.ErrInvalidArgument)
	}
	if math.IsNaN(subtotal) || math.IsInf(subtotal, 0) {
		return TaxResult{}, fmt.Errorf("%w: subtotal must be a finite number", domain.ErrInvalidArgument)
	}
	if subtotal < 0 {
		return TaxResult{}, fmt.Errorf("%w: subtotal must not be negative", domain.ErrInvalidArgument)
	}

	if supplier == customer {
		cgst := round2(subtotal * cgstRate)
		sgst := round2(subtotal * sgstRate)
		totalTax := cgst + sgst
		return TaxResult{
			TaxType:       TaxIntraState,
			CGST:          cgst,
			SGST:          sgst,
			TotalTax:      totalTax,
			TotalAfterTax: round2(subtotal + totalTax),
		}, nil
	}

	igst := round2(subtotal * igstRate)
	return TaxResult{
		TaxType:       TaxInterState,
		IGST:          igst,
		TotalTax:      igst,
		TotalAfterTax: round2(subtotal + igst),
	}, nil
}
