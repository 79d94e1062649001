// Package pricing computes the quotation totals breakdown from the draft's
// haulage, sea-freight, and ancillary service selections. All arithmetic is
// decimal-exact; rounding is left to presentation boundaries. The calculator
// never fails: absent or malformed inputs contribute zero.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harborline/draftquote/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals prices the draft's current selections and applies the given
// margin. Haulage comes from the haulier's precomputed calculation, sea
// freight is priced per container unit, and ancillary services resolve their
// price through a fallback chain.
func ComputeTotals(d *types.DraftQuote, marginType string, marginValue decimal.Decimal) types.TotalsBreakdown {
	b := types.TotalsBreakdown{Currency: types.DefaultCurrency}
	if d == nil {
		return ApplyMargin(b, marginType, marginValue)
	}

	b.HaulageTotal = haulageTotal(d.Step4)
	b.SeaFreightTotal = seaFreightTotal(d.Step5, d.Step3)
	b.MiscTotal = miscTotal(d.Step6)
	b.Currency = draftCurrency(d)

	return ApplyMargin(b, marginType, marginValue)
}

// ApplyMargin fills the subtotal, margin amount, and final total of a
// breakdown whose component totals are already set. A percentage margin is
// subtotal × value / 100; a fixed margin is the value as a flat amount.
// Unknown margin types contribute zero. The option manager reuses this to
// re-margin an option from its frozen components.
func ApplyMargin(b types.TotalsBreakdown, marginType string, marginValue decimal.Decimal) types.TotalsBreakdown {
	b.SubTotal = b.HaulageTotal.Add(b.SeaFreightTotal).Add(b.MiscTotal)

	switch marginType {
	case types.MarginPercentage:
		b.MarginAmount = b.SubTotal.Mul(marginValue).Div(hundred)
	case types.MarginFixed:
		b.MarginAmount = marginValue
	default:
		b.MarginAmount = decimal.Zero
	}

	b.FinalTotal = b.SubTotal.Add(b.MarginAmount)
	return b
}

// haulageTotal takes the haulier's precomputed amount as-is. TotalAmount is
// preferred; Subtotal is the fallback. No per-unit multiplication: haulage
// offers are already priced for the full shipment.
func haulageTotal(s *types.Step4) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	if !s.Calculation.TotalAmount.IsZero() {
		return s.Calculation.TotalAmount
	}
	return s.Calculation.Subtotal
}

// seaFreightTotal prices each selection at base price plus surcharges. When
// the draft lists containers, the per-selection price applies to every
// container unit; without containers the base is added once.
func seaFreightTotal(s *types.Step5, containers *types.Step3) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}

	multiplier := decimal.NewFromInt(1)
	if qty := containers.TotalQuantity(); qty > 0 {
		multiplier = decimal.NewFromInt(int64(qty))
	}

	total := decimal.Zero
	for _, sel := range s.Selections {
		base := sel.BasePrice
		for _, sur := range sel.Surcharges {
			base = base.Add(sur.Value)
		}
		total = total.Add(base.Mul(multiplier))
	}
	return total
}

// miscTotal sums the resolved price of every ancillary service selection.
func miscTotal(s *types.Step6) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, sel := range s.Selections {
		total = total.Add(resolveServicePrice(sel.Pricing))
	}
	return total
}

// resolveServicePrice picks the first positive price from the supplier's
// pricing fields: unit price, total price, generic price, then the raw
// string field parsed as a decimal. Unparseable raw prices resolve to zero.
func resolveServicePrice(p types.ServicePricing) decimal.Decimal {
	if p.UnitPrice.IsPositive() {
		return p.UnitPrice
	}
	if p.TotalPrice.IsPositive() {
		return p.TotalPrice
	}
	if p.Price.IsPositive() {
		return p.Price
	}
	raw := strings.TrimSpace(p.RawPrice)
	if raw == "" {
		return decimal.Zero
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil || !parsed.IsPositive() {
		return decimal.Zero
	}
	return parsed
}

// draftCurrency returns the currency tag carried by the draft's selections,
// defaulting to EUR. Amounts are never converted; mixed currencies are the
// caller's problem to reject upstream.
func draftCurrency(d *types.DraftQuote) string {
	if d.Step4 != nil && d.Step4.Calculation.Currency != "" {
		return d.Step4.Calculation.Currency
	}
	if d.Step5 != nil {
		for _, sel := range d.Step5.Selections {
			if sel.Currency != "" {
				return sel.Currency
			}
		}
	}
	return types.DefaultCurrency
}
