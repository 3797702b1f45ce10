package billing

import (
	"testing"

	"garment-billing-backend/models"
)

func TestTotalsFromSummaries(t *testing.T) {
	summaries := []models.BuyerBillSummary{
		{InvoiceTotal: dec("12100"), AmountPaid: dec("4000"), BalanceDue: dec("8100"), Status: models.BillStatusPartial},
		{InvoiceTotal: dec("2100"), AmountPaid: dec("2100"), BalanceDue: dec("0"), Status: models.BillStatusPaid},
		{InvoiceTotal: dec("5000"), AmountPaid: dec("0"), BalanceDue: dec("5000"), Status: models.BillStatusOverdue},
	}

	due, paid, spent := TotalsFromSummaries(summaries)
	if !due.Equal(dec("13100")) {
		t.Fatalf("expected total due 13100, got %s", due)
	}
	if !paid.Equal(dec("6100")) {
		t.Fatalf("expected total paid 6100, got %s", paid)
	}
	if !spent.Equal(dec("19200")) {
		t.Fatalf("expected total spent 19200, got %s", spent)
	}
}

func TestTotalsFromSummaries_Empty(t *testing.T) {
	due, paid, spent := TotalsFromSummaries(nil)
	if !due.IsZero() || !paid.IsZero() || !spent.IsZero() {
		t.Fatalf("empty ledger must be all zeros, got %s/%s/%s", due, paid, spent)
	}
}
