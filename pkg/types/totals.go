package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Margin types. A percentage margin scales with the subtotal; a fixed margin
// is a flat absolute amount, never scaled by quantity or subtotal.
const (
	MarginPercentage = "percentage"
	MarginFixed      = "fixed"
)

// DefaultCurrency tags monetary values when no currency is supplied.
// Amounts are never converted between currencies.
const DefaultCurrency = "EUR"

// TotalsBreakdown is the pricing calculator's output: per-component
// subtotals, the applied margin, and the final total. All amounts use
// decimal arithmetic; rounding happens only at presentation boundaries.
type TotalsBreakdown struct {
	HaulageTotal    decimal.Decimal `json:"haulageTotal"`
	SeaFreightTotal decimal.Decimal `json:"seaFreightTotal"`
	MiscTotal       decimal.Decimal `json:"miscTotal"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	MarginAmount    decimal.Decimal `json:"marginAmount"`
	FinalTotal      decimal.Decimal `json:"finalTotal"`
	Currency        string          `json:"currency"`
}

// Verify checks the breakdown identities: the subtotal equals the sum of the
// component totals and the final total equals subtotal plus margin.
func (t TotalsBreakdown) Verify() error {
	sub := t.HaulageTotal.Add(t.SeaFreightTotal).Add(t.MiscTotal)
	if !sub.Equal(t.SubTotal) {
		return fmt.Errorf("subtotal %s does not equal component sum %s", t.SubTotal, sub)
	}
	final := t.SubTotal.Add(t.MarginAmount)
	if !final.Equal(t.FinalTotal) {
		return fmt.Errorf("final total %s does not equal subtotal plus margin %s", t.FinalTotal, final)
	}
	return nil
}
