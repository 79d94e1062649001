package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalsBreakdownVerify(t *testing.T) {
	t.Run("consistent breakdown", func(t *testing.T) {
		b := TotalsBreakdown{
			HaulageTotal:    decimal.NewFromInt(100),
			SeaFreightTotal: decimal.NewFromInt(750),
			MiscTotal:       decimal.Zero,
			SubTotal:        decimal.NewFromInt(850),
			MarginAmount:    decimal.NewFromInt(85),
			FinalTotal:      decimal.NewFromInt(935),
			Currency:        DefaultCurrency,
		}
		if err := b.Verify(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("subtotal drift detected", func(t *testing.T) {
		b := TotalsBreakdown{
			HaulageTotal: decimal.NewFromInt(100),
			SubTotal:     decimal.NewFromInt(101),
			FinalTotal:   decimal.NewFromInt(101),
		}
		if err := b.Verify(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("final total drift detected", func(t *testing.T) {
		b := TotalsBreakdown{
			HaulageTotal: decimal.NewFromInt(100),
			SubTotal:     decimal.NewFromInt(100),
			MarginAmount: decimal.NewFromInt(10),
			FinalTotal:   decimal.NewFromInt(100),
		}
		if err := b.Verify(); err == nil {
			t.Fatal("expected error")
		}
	})
}
