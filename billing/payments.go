package billing

import (
	"errors"
	"time"

	"garment-billing-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentInput struct {
	Amount decimal.Decimal
	Method string
	Note   string
	PaidAt time.Time
}

// ApplyPaymentToBill validates and applies a payment amount to the bill's
// money block and status. It does not touch persistence.
func ApplyPaymentToBill(bill *models.MonthlyBill, amount decimal.Decimal, paidAt time.Time) error {
	if bill.Status == models.BillStatusDraft {
		return conflict(CodeNotDraft, "bill is still a draft; finalize it before recording payments")
	}
	if bill.BalanceDue.IsZero() {
		return conflict(CodeAlreadyPaid, "bill is already fully paid")
	}
	if !amount.IsPositive() {
		return conflict(CodeAmountRange, "payment amount must be positive")
	}
	if amount.GreaterThan(bill.BalanceDue) {
		return conflict(CodeAmountRange, "payment amount exceeds balance due")
	}

	bill.AmountPaid = bill.AmountPaid.Add(amount)
	bill.BalanceDue = bill.GrandTotal.Sub(bill.AmountPaid)
	if bill.BalanceDue.IsZero() {
		bill.Status = models.BillStatusPaid
		t := paidAt
		bill.PaidAt = &t
	} else {
		bill.Status = models.BillStatusPartial
	}
	return nil
}

// ReversePaymentOnBill backs a payment amount out of the bill's money block
// and recomputes the status: fully paid, restored to generated, partially
// paid, or generated by default. A draft stays a draft; generated is reachable
// only through Finalize.
func ReversePaymentOnBill(bill *models.MonthlyBill, amount decimal.Decimal) {
	bill.AmountPaid = bill.AmountPaid.Sub(amount)
	if bill.AmountPaid.IsNegative() {
		bill.AmountPaid = decimal.Zero
	}
	bill.BalanceDue = bill.GrandTotal.Sub(bill.AmountPaid)
	if bill.BalanceDue.IsNegative() {
		bill.BalanceDue = decimal.Zero
	}

	if bill.Status == models.BillStatusDraft {
		return
	}

	switch {
	case bill.BalanceDue.IsZero() && bill.AmountPaid.IsPositive():
		bill.Status = models.BillStatusPaid
	case bill.AmountPaid.IsZero():
		bill.Status = models.BillStatusGenerated
		bill.PaidAt = nil
	case bill.AmountPaid.IsPositive():
		bill.Status = models.BillStatusPartial
		bill.PaidAt = nil
	default:
		bill.Status = models.BillStatusGenerated
		bill.PaidAt = nil
	}
}

// ApplyPayment records a manual payment against a finalized bill and
// propagates the change to the buyer ledger.
func ApplyPayment(tx *gorm.DB, billID uint, in PaymentInput) (*models.MonthlyBill, error) {
	var bill models.MonthlyBill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("bill not found")
		}
		return nil, err
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	if err := ApplyPaymentToBill(&bill, in.Amount, paidAt); err != nil {
		return nil, err
	}

	payment := models.BillPayment{
		BillID: bill.ID,
		Amount: in.Amount,
		Method: in.Method,
		Note:   in.Note,
		Source: models.PaymentSourceManual,
		PaidAt: paidAt,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}

	if err := saveBillMoney(tx, &bill); err != nil {
		return nil, err
	}
	if err := SyncBuyerSummary(tx, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeletePayment removes a payment row and reverses its amount from the bill.
// Challan-import payments reverse the same way as manual ones: with an
// explicit provenance tag there is no string-matching ambiguity left to guard,
// and uniform reversal keeps balance_due == grand_total - amount_paid.
func DeletePayment(tx *gorm.DB, billID, paymentID uint) (*models.MonthlyBill, error) {
	var bill models.MonthlyBill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("bill not found")
		}
		return nil, err
	}

	var payment models.BillPayment
	if err := tx.Where("id = ? AND bill_id = ?", paymentID, billID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("payment not found")
		}
		return nil, err
	}

	if err := tx.Delete(&payment).Error; err != nil {
		return nil, err
	}

	ReversePaymentOnBill(&bill, payment.Amount)

	if err := saveBillMoney(tx, &bill); err != nil {
		return nil, err
	}
	if err := SyncBuyerSummary(tx, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func saveBillMoney(tx *gorm.DB, bill *models.MonthlyBill) error {
	return tx.Model(&models.MonthlyBill{}).Where("id = ?", bill.ID).Updates(map[string]any{
		"amount_paid": bill.AmountPaid,
		"balance_due": bill.BalanceDue,
		"status":      bill.Status,
		"paid_at":     bill.PaidAt,
	}).Error
}
