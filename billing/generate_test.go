package billing

import (
	"testing"
	"time"

	"garment-billing-backend/models"
)

func TestBuildChallans_PrefersStoredSplit(t *testing.T) {
	created := time.Date(2025, 7, 12, 10, 0, 0, 0, time.UTC)
	orders := []models.WholesaleOrder{
		{
			ID: 7, ChallanNumber: "CH-0007", CreatedAt: created,
			TotalAmount: dec("10000"), TaxableAmount: dec("9523.81"), GSTAmount: dec("476.19"),
		},
	}

	// A later rate hike must not change the frozen split.
	challans := BuildChallans(orders, dec("18"))
	if len(challans) != 1 {
		t.Fatalf("expected 1 challan, got %d", len(challans))
	}
	ch := challans[0]
	if ch.OrderID != 7 || ch.ChallanNumber != "CH-0007" || !ch.ChallanDate.Equal(created) {
		t.Fatalf("identity not frozen: %+v", ch)
	}
	if !ch.TaxableAmount.Equal(dec("9523.81")) || !ch.GSTAmount.Equal(dec("476.19")) {
		t.Fatalf("stored split was recomputed: taxable=%s gst=%s", ch.TaxableAmount, ch.GSTAmount)
	}
}

func TestBuildChallans_BackComputesLegacyRows(t *testing.T) {
	orders := []models.WholesaleOrder{
		{ID: 1, ChallanNumber: "CH-0001", TotalAmount: dec("1050")},
	}
	challans := BuildChallans(orders, dec("5"))
	if !challans[0].TaxableAmount.Equal(dec("1000.00")) || !challans[0].GSTAmount.Equal(dec("50.00")) {
		t.Fatalf("legacy row not back-computed: taxable=%s gst=%s", challans[0].TaxableAmount, challans[0].GSTAmount)
	}
}

func TestBuildImportedPayments(t *testing.T) {
	paidAt := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	orders := []models.WholesaleOrder{
		{
			ChallanNumber: "CH-0001",
			Payments: []models.OrderPayment{
				{Amount: dec("3000"), Method: "upi", PaidAt: paidAt},
				{Amount: dec("1000"), Method: "cash", PaidAt: paidAt},
			},
		},
		{ChallanNumber: "CH-0002"},
	}

	imported, total := BuildImportedPayments(orders)
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported payments, got %d", len(imported))
	}
	if !total.Equal(dec("4000")) {
		t.Fatalf("expected imported total 4000, got %s", total)
	}
	for _, p := range imported {
		if p.Source != models.PaymentSourceChallanImport {
			t.Fatalf("imported payment missing provenance tag: %+v", p)
		}
		if p.ChallanNumber != "CH-0001" {
			t.Fatalf("imported payment lost its challan number: %+v", p)
		}
		if !p.PaidAt.Equal(paidAt) {
			t.Fatalf("imported payment lost its paid date: %+v", p)
		}
	}
	if imported[0].Note != "Payment for challan CH-0001" {
		t.Fatalf("unexpected note %q", imported[0].Note)
	}
}
