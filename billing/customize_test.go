package billing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"garment-billing-backend/models"
)

func draftWithTwoChallans() *models.MonthlyBill {
	bill := &models.MonthlyBill{
		Status: models.BillStatusDraft,
		Challans: []models.BillChallan{
			{ID: 1, ChallanNumber: "CH-0001", TotalAmount: dec("10000"), TaxableAmount: dec("9523.81"), GSTAmount: dec("476.19")},
			{ID: 2, ChallanNumber: "CH-0002", TotalAmount: dec("2100"), TaxableAmount: dec("2000.00"), GSTAmount: dec("100.00")},
		},
		Payments: []models.BillPayment{
			{ID: 10, Amount: dec("3000"), Source: models.PaymentSourceChallanImport, ChallanNumber: "CH-0001"},
			{ID: 11, Amount: dec("500"), Source: models.PaymentSourceManual},
		},
		PreviousOutstanding: dec("200"),
	}
	fin := ComputeFinancials(bill.Challans, true, bill.PreviousOutstanding, dec("3500"))
	ApplyFinancials(bill, fin)
	return bill
}

func TestRemoveChallans_RecomputesAndDropsImportedPayments(t *testing.T) {
	bill := draftWithTwoChallans()

	if err := RemoveChallans(bill, []uint{1}); err != nil {
		t.Fatalf("RemoveChallans failed: %v", err)
	}

	if len(bill.Challans) != 1 || bill.Challans[0].ChallanNumber != "CH-0002" {
		t.Fatalf("expected only CH-0002 to remain, got %+v", bill.Challans)
	}
	// The imported payment for the removed challan goes with it; the manual
	// payment survives.
	if len(bill.Payments) != 1 || bill.Payments[0].ID != 11 {
		t.Fatalf("expected only the manual payment to remain, got %+v", bill.Payments)
	}
	if !bill.AmountPaid.Equal(dec("500")) {
		t.Fatalf("expected amount paid 500, got %s", bill.AmountPaid)
	}
	if !bill.InvoiceTotal.Equal(dec("2100")) {
		t.Fatalf("expected invoice total 2100, got %s", bill.InvoiceTotal)
	}
	if !bill.GrandTotal.Equal(dec("2300")) {
		t.Fatalf("expected grand total 2300 (2100 + 200 carry), got %s", bill.GrandTotal)
	}
	if !bill.BalanceDue.Equal(dec("1800")) {
		t.Fatalf("expected balance 1800, got %s", bill.BalanceDue)
	}
	if !bill.CGST.Add(bill.SGST).Equal(bill.TotalGST) {
		t.Fatalf("intra-state split lost: %s + %s != %s", bill.CGST, bill.SGST, bill.TotalGST)
	}
}

func TestRemoveChallans_KeepsInterStateSplit(t *testing.T) {
	bill := &models.MonthlyBill{
		Status: models.BillStatusDraft,
		Challans: []models.BillChallan{
			{ID: 1, ChallanNumber: "CH-0001", TotalAmount: dec("1050"), TaxableAmount: dec("1000.00"), GSTAmount: dec("50.00")},
			{ID: 2, ChallanNumber: "CH-0002", TotalAmount: dec("2100"), TaxableAmount: dec("2000.00"), GSTAmount: dec("100.00")},
		},
	}
	fin := ComputeFinancials(bill.Challans, false, decimal.Zero, decimal.Zero)
	ApplyFinancials(bill, fin)

	if err := RemoveChallans(bill, []uint{2}); err != nil {
		t.Fatalf("RemoveChallans failed: %v", err)
	}
	if !bill.IGST.Equal(dec("50.00")) {
		t.Fatalf("inter-state bill must stay on IGST, got igst=%s cgst=%s sgst=%s", bill.IGST, bill.CGST, bill.SGST)
	}
}

func TestRemoveChallans_NoMatch(t *testing.T) {
	bill := draftWithTwoChallans()
	err := RemoveChallans(bill, []uint{99})
	var be *Error
	if !errors.As(err, &be) || be.Code != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestRemoveChallans_RefusesToEmptyBill(t *testing.T) {
	bill := draftWithTwoChallans()
	err := RemoveChallans(bill, []uint{1, 2})
	var be *Error
	if !errors.As(err, &be) || be.Code != CodeAmountRange {
		t.Fatalf("expected rejection when removing every challan, got %v", err)
	}
}
