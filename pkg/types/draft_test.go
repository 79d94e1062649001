package types

import "testing"

func TestDraftIdentity(t *testing.T) {
	t.Run("local id before first save", func(t *testing.T) {
		d := &DraftQuote{LocalID: "local-1"}
		if d.Identity() != "local-1" {
			t.Fatalf("expected local-1, got %s", d.Identity())
		}
		if d.HasServerIdentity() {
			t.Fatal("expected no server identity")
		}
	})

	t.Run("server id wins once assigned", func(t *testing.T) {
		d := &DraftQuote{LocalID: "local-1", DraftID: "srv-9"}
		if d.Identity() != "srv-9" {
			t.Fatalf("expected srv-9, got %s", d.Identity())
		}
		if !d.HasServerIdentity() {
			t.Fatal("expected server identity")
		}
	})
}

func TestStep3Totals(t *testing.T) {
	t.Run("nil step is zero", func(t *testing.T) {
		var s *Step3
		if s.TotalQuantity() != 0 {
			t.Fatalf("expected 0, got %d", s.TotalQuantity())
		}
		if s.TotalTEU() != 0 {
			t.Fatalf("expected 0, got %f", s.TotalTEU())
		}
	})

	t.Run("quantities and TEU sum across lines", func(t *testing.T) {
		s := &Step3{Containers: []Container{
			{Type: "20GP", Quantity: 1, TEU: 1},
			{Type: "40HC", Quantity: 2, TEU: 2},
		}}
		if s.TotalQuantity() != 3 {
			t.Fatalf("expected 3, got %d", s.TotalQuantity())
		}
		if s.TotalTEU() != 5 {
			t.Fatalf("expected 5, got %f", s.TotalTEU())
		}
	})
}
