package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"garment-billing-backend/models"
)

func finalizedBill(grand, paid string) *models.MonthlyBill {
	g := dec(grand)
	p := dec(paid)
	return &models.MonthlyBill{
		Status:     models.BillStatusGenerated,
		GrandTotal: g,
		AmountPaid: p,
		BalanceDue: g.Sub(p),
	}
}

func TestApplyPaymentToBill_PartialThenPaid(t *testing.T) {
	bill := finalizedBill("12600", "0")
	now := time.Now()

	if err := ApplyPaymentToBill(bill, dec("4000"), now); err != nil {
		t.Fatalf("partial payment failed: %v", err)
	}
	if bill.Status != models.BillStatusPartial {
		t.Fatalf("expected partial status, got %s", bill.Status)
	}
	if !bill.BalanceDue.Equal(dec("8600")) {
		t.Fatalf("expected balance 8600, got %s", bill.BalanceDue)
	}
	if bill.PaidAt != nil {
		t.Fatal("PaidAt must stay nil while a balance remains")
	}

	if err := ApplyPaymentToBill(bill, dec("8600"), now); err != nil {
		t.Fatalf("settling payment failed: %v", err)
	}
	if bill.Status != models.BillStatusPaid {
		t.Fatalf("expected paid status, got %s", bill.Status)
	}
	if bill.PaidAt == nil || !bill.PaidAt.Equal(now) {
		t.Fatalf("expected PaidAt %v, got %v", now, bill.PaidAt)
	}
}

func TestApplyPaymentToBill_Rejections(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name   string
		bill   *models.MonthlyBill
		amount string
		code   string
	}{
		{"draft", &models.MonthlyBill{Status: models.BillStatusDraft, BalanceDue: dec("100")}, "50", CodeNotDraft},
		{"already paid", &models.MonthlyBill{Status: models.BillStatusPaid, BalanceDue: decimal.Zero}, "50", CodeAlreadyPaid},
		{"zero amount", finalizedBill("100", "0"), "0", CodeAmountRange},
		{"negative amount", finalizedBill("100", "0"), "-5", CodeAmountRange},
		{"exceeds balance", finalizedBill("100", "40"), "61", CodeAmountRange},
	}
	for _, tc := range cases {
		err := ApplyPaymentToBill(tc.bill, dec(tc.amount), now)
		var be *Error
		if !errors.As(err, &be) {
			t.Fatalf("%s: expected billing error, got %v", tc.name, err)
		}
		if be.Code != tc.code {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.code, be.Code)
		}
	}
}

func TestReversePaymentOnBill_RestoresGenerated(t *testing.T) {
	now := time.Now()
	bill := finalizedBill("1000", "0")
	if err := ApplyPaymentToBill(bill, dec("1000"), now); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if bill.Status != models.BillStatusPaid {
		t.Fatalf("expected paid, got %s", bill.Status)
	}

	ReversePaymentOnBill(bill, dec("1000"))
	if bill.Status != models.BillStatusGenerated {
		t.Fatalf("expected generated after full reversal, got %s", bill.Status)
	}
	if !bill.AmountPaid.IsZero() || !bill.BalanceDue.Equal(dec("1000")) {
		t.Fatalf("money block not restored: paid=%s due=%s", bill.AmountPaid, bill.BalanceDue)
	}
	if bill.PaidAt != nil {
		t.Fatal("PaidAt must be cleared on reversal")
	}
}

func TestReversePaymentOnBill_BackToPartial(t *testing.T) {
	now := time.Now()
	bill := finalizedBill("1000", "0")
	if err := ApplyPaymentToBill(bill, dec("400"), now); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if err := ApplyPaymentToBill(bill, dec("600"), now); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	ReversePaymentOnBill(bill, dec("600"))
	if bill.Status != models.BillStatusPartial {
		t.Fatalf("expected partial after reversing the settling payment, got %s", bill.Status)
	}
	if !bill.AmountPaid.Equal(dec("400")) || !bill.BalanceDue.Equal(dec("600")) {
		t.Fatalf("money block wrong: paid=%s due=%s", bill.AmountPaid, bill.BalanceDue)
	}
}

func TestReversePaymentOnBill_DraftStaysDraft(t *testing.T) {
	// A fresh draft carries imported challan payments; deleting one must only
	// move money. Leaving draft is Finalize's job.
	bill := &models.MonthlyBill{
		Status:     models.BillStatusDraft,
		GrandTotal: dec("10000"),
		AmountPaid: dec("4000"),
		BalanceDue: dec("6000"),
	}

	ReversePaymentOnBill(bill, dec("4000"))
	if bill.Status != models.BillStatusDraft {
		t.Fatalf("draft must stay draft after payment reversal, got %s", bill.Status)
	}
	if !bill.AmountPaid.IsZero() || !bill.BalanceDue.Equal(dec("10000")) {
		t.Fatalf("money block wrong: paid=%s due=%s", bill.AmountPaid, bill.BalanceDue)
	}
	if bill.FinalizedAt != nil {
		t.Fatalf("reversal must not touch finalized_at")
	}
}

func TestReversePaymentOnBill_DraftPartialReversal(t *testing.T) {
	bill := &models.MonthlyBill{
		Status:     models.BillStatusDraft,
		GrandTotal: dec("10000"),
		AmountPaid: dec("4000"),
		BalanceDue: dec("6000"),
	}

	ReversePaymentOnBill(bill, dec("1000"))
	if bill.Status != models.BillStatusDraft {
		t.Fatalf("draft must stay draft, got %s", bill.Status)
	}
	if !bill.AmountPaid.Equal(dec("3000")) || !bill.BalanceDue.Equal(dec("7000")) {
		t.Fatalf("money block wrong: paid=%s due=%s", bill.AmountPaid, bill.BalanceDue)
	}
}

func TestReversePaymentOnBill_ClampsAtZero(t *testing.T) {
	bill := finalizedBill("1000", "200")
	ReversePaymentOnBill(bill, dec("500"))
	if !bill.AmountPaid.IsZero() {
		t.Fatalf("amount paid must clamp at zero, got %s", bill.AmountPaid)
	}
	if !bill.BalanceDue.Equal(dec("1000")) {
		t.Fatalf("expected balance 1000, got %s", bill.BalanceDue)
	}
	if bill.Status != models.BillStatusGenerated {
		t.Fatalf("expected generated, got %s", bill.Status)
	}
}
