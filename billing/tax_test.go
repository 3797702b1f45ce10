package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"garment-billing-backend/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecomposeTotal_TaxInclusive(t *testing.T) {
	cases := []struct {
		total   string
		rate    string
		taxable string
		gst     string
	}{
		{"10000", "5", "9523.81", "476.19"},
		{"1050", "5", "1000.00", "50.00"},
		{"1180", "18", "1000.00", "180.00"},
		{"100", "0", "100.00", "0.00"},
		{"0", "5", "0.00", "0.00"},
	}
	for _, tc := range cases {
		taxable, gst := DecomposeTotal(dec(tc.total), dec(tc.rate))
		if !taxable.Equal(dec(tc.taxable)) || !gst.Equal(dec(tc.gst)) {
			t.Fatalf("DecomposeTotal(%s, %s%%) expected (%s, %s), got (%s, %s)",
				tc.total, tc.rate, tc.taxable, tc.gst, taxable, gst)
		}
		if !taxable.Add(gst).Equal(dec(tc.total)) {
			t.Fatalf("split of %s does not sum back: %s + %s", tc.total, taxable, gst)
		}
	}
}

func TestSplitGST_IntraStateRemainderOnSGST(t *testing.T) {
	cgst, sgst, igst := SplitGST(dec("476.19"), true)
	if !cgst.Equal(dec("238.10")) {
		t.Fatalf("expected CGST 238.10, got %s", cgst)
	}
	if !sgst.Equal(dec("238.09")) {
		t.Fatalf("expected SGST 238.09, got %s", sgst)
	}
	if !igst.IsZero() {
		t.Fatalf("expected zero IGST, got %s", igst)
	}
	if !cgst.Add(sgst).Equal(dec("476.19")) {
		t.Fatalf("CGST+SGST must equal GST exactly, got %s", cgst.Add(sgst))
	}
}

func TestSplitGST_InterState(t *testing.T) {
	cgst, sgst, igst := SplitGST(dec("476.19"), false)
	if !cgst.IsZero() || !sgst.IsZero() {
		t.Fatalf("inter-state split must not populate CGST/SGST, got %s/%s", cgst, sgst)
	}
	if !igst.Equal(dec("476.19")) {
		t.Fatalf("expected IGST 476.19, got %s", igst)
	}
}

func TestComputeFinancials_SumsAndCarryForward(t *testing.T) {
	challans := []models.BillChallan{
		{TotalAmount: dec("10000"), TaxableAmount: dec("9523.81"), GSTAmount: dec("476.19")},
		{TotalAmount: dec("2100"), TaxableAmount: dec("2000.00"), GSTAmount: dec("100.00")},
	}

	fin := ComputeFinancials(challans, true, dec("500"), dec("4000"))

	if !fin.InvoiceTotal.Equal(dec("12100")) {
		t.Fatalf("expected invoice total 12100, got %s", fin.InvoiceTotal)
	}
	if !fin.TotalTaxableAmount.Equal(dec("11523.81")) {
		t.Fatalf("expected taxable 11523.81, got %s", fin.TotalTaxableAmount)
	}
	if !fin.TotalGST.Equal(dec("576.19")) {
		t.Fatalf("expected GST 576.19, got %s", fin.TotalGST)
	}
	if !fin.CGST.Add(fin.SGST).Equal(fin.TotalGST) {
		t.Fatalf("CGST+SGST != GST: %s + %s != %s", fin.CGST, fin.SGST, fin.TotalGST)
	}
	if !fin.GrandTotal.Equal(dec("12600")) {
		t.Fatalf("expected grand total 12600, got %s", fin.GrandTotal)
	}
	if !fin.BalanceDue.Equal(dec("8600")) {
		t.Fatalf("expected balance due 8600, got %s", fin.BalanceDue)
	}
}

func TestComputeFinancials_BalanceClampedAtZero(t *testing.T) {
	challans := []models.BillChallan{
		{TotalAmount: dec("1000"), TaxableAmount: dec("952.38"), GSTAmount: dec("47.62")},
	}
	fin := ComputeFinancials(challans, false, decimal.Zero, dec("1500"))
	if !fin.BalanceDue.IsZero() {
		t.Fatalf("overpayment must clamp balance at zero, got %s", fin.BalanceDue)
	}
	if !fin.IGST.Equal(dec("47.62")) {
		t.Fatalf("expected IGST 47.62, got %s", fin.IGST)
	}
}
