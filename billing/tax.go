package billing

import (
	"github.com/shopspring/decimal"

	"garment-billing-backend/models"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// DecomposeTotal splits a tax-inclusive total into taxable value and GST at
// the given percent rate: taxable = total / (1 + rate/100).
func DecomposeTotal(total, ratePercent decimal.Decimal) (taxable, gst decimal.Decimal) {
	divisor := one.Add(ratePercent.Div(hundred))
	taxable = total.DivRound(divisor, 2)
	gst = total.Sub(taxable)
	return taxable, gst
}

// SplitGST divides a GST amount into its components. Intra-state bills split
// into CGST+SGST; SGST takes the remainder so the two always sum back to the
// exact GST amount at two decimals. Inter-state bills carry the whole amount
// as IGST.
func SplitGST(gst decimal.Decimal, intraState bool) (cgst, sgst, igst decimal.Decimal) {
	if intraState {
		cgst = gst.DivRound(two, 2)
		sgst = gst.Sub(cgst)
		return cgst, sgst, decimal.Zero
	}
	return decimal.Zero, decimal.Zero, gst
}

// Financials is the derived money block of a monthly bill.
type Financials struct {
	TotalTaxableAmount  decimal.Decimal
	TotalGST            decimal.Decimal
	CGST                decimal.Decimal
	SGST                decimal.Decimal
	IGST                decimal.Decimal
	InvoiceTotal        decimal.Decimal
	PreviousOutstanding decimal.Decimal
	GrandTotal          decimal.Decimal
	AmountPaid          decimal.Decimal
	BalanceDue          decimal.Decimal
}

// ComputeFinancials derives the full money block from frozen challan lines.
// balanceDue is clamped at zero; grandTotal = invoiceTotal + previousOutstanding.
func ComputeFinancials(challans []models.BillChallan, intraState bool, previousOutstanding, amountPaid decimal.Decimal) Financials {
	var taxable, gst, invoiceTotal decimal.Decimal
	for _, ch := range challans {
		taxable = taxable.Add(ch.TaxableAmount)
		gst = gst.Add(ch.GSTAmount)
		invoiceTotal = invoiceTotal.Add(ch.TotalAmount)
	}

	cgst, sgst, igst := SplitGST(gst, intraState)

	grand := invoiceTotal.Add(previousOutstanding)
	balance := grand.Sub(amountPaid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return Financials{
		TotalTaxableAmount:  taxable,
		TotalGST:            gst,
		CGST:                cgst,
		SGST:                sgst,
		IGST:                igst,
		InvoiceTotal:        invoiceTotal,
		PreviousOutstanding: previousOutstanding,
		GrandTotal:          grand,
		AmountPaid:          amountPaid,
		BalanceDue:          balance,
	}
}

// ApplyFinancials copies a computed money block onto the bill.
func ApplyFinancials(bill *models.MonthlyBill, f Financials) {
	bill.TotalTaxableAmount = f.TotalTaxableAmount
	bill.TotalGST = f.TotalGST
	bill.CGST = f.CGST
	bill.SGST = f.SGST
	bill.IGST = f.IGST
	bill.InvoiceTotal = f.InvoiceTotal
	bill.PreviousOutstanding = f.PreviousOutstanding
	bill.GrandTotal = f.GrandTotal
	bill.AmountPaid = f.AmountPaid
	bill.BalanceDue = f.BalanceDue
}
