package billing

import (
	"errors"

	"garment-billing-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The buyer's totals are maintained incrementally from bill mutations; the
// full recompute lives in ResyncBuyerTotals and runs as a repair path, not on
// every request.

// SyncBuyerSummary overwrites (or creates) the buyer's denormalized summary
// row for the bill and applies the resulting deltas to the buyer totals.
func SyncBuyerSummary(tx *gorm.DB, bill *models.MonthlyBill) error {
	var prev models.BuyerBillSummary
	err := tx.Where("bill_id = ?", bill.ID).First(&prev).Error
	fresh := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !fresh {
		return err
	}

	next := models.BuyerBillSummary{
		BuyerID:      bill.BuyerID,
		BillID:       bill.ID,
		BillNumber:   bill.BillNumber,
		PeriodMonth:  bill.PeriodMonth,
		PeriodYear:   bill.PeriodYear,
		InvoiceTotal: bill.InvoiceTotal,
		AmountPaid:   bill.AmountPaid,
		BalanceDue:   bill.BalanceDue,
		Status:       bill.Status,
	}

	var oldPaid, oldDue, oldSpent decimal.Decimal
	if fresh {
		if err := tx.Create(&next).Error; err != nil {
			return err
		}
	} else {
		oldPaid, oldDue, oldSpent = prev.AmountPaid, prev.BalanceDue, prev.InvoiceTotal
		next.ID = prev.ID
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
	}

	return applyBuyerDeltas(tx, bill.BuyerID,
		next.BalanceDue.Sub(oldDue),
		next.AmountPaid.Sub(oldPaid),
		next.InvoiceTotal.Sub(oldSpent))
}

// RemoveBuyerSummary drops the summary row for a deleted draft bill and backs
// its contribution out of the buyer totals.
func RemoveBuyerSummary(tx *gorm.DB, bill *models.MonthlyBill) error {
	var prev models.BuyerBillSummary
	err := tx.Where("bill_id = ?", bill.ID).First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := tx.Delete(&prev).Error; err != nil {
		return err
	}
	return applyBuyerDeltas(tx, prev.BuyerID,
		prev.BalanceDue.Neg(), prev.AmountPaid.Neg(), prev.InvoiceTotal.Neg())
}

func applyBuyerDeltas(tx *gorm.DB, buyerID uint, dueDelta, paidDelta, spentDelta decimal.Decimal) error {
	var buyer models.Buyer
	if err := tx.First(&buyer, buyerID).Error; err != nil {
		return err
	}
	buyer.TotalDue = buyer.TotalDue.Add(dueDelta)
	buyer.TotalPaid = buyer.TotalPaid.Add(paidDelta)
	buyer.TotalSpent = buyer.TotalSpent.Add(spentDelta)
	return tx.Model(&models.Buyer{}).Where("id = ?", buyerID).Updates(map[string]any{
		"total_due":   buyer.TotalDue,
		"total_paid":  buyer.TotalPaid,
		"total_spent": buyer.TotalSpent,
	}).Error
}

// TotalsFromSummaries reduces the summary rows to the three buyer aggregates.
func TotalsFromSummaries(summaries []models.BuyerBillSummary) (due, paid, spent decimal.Decimal) {
	for _, s := range summaries {
		due = due.Add(s.BalanceDue)
		paid = paid.Add(s.AmountPaid)
		spent = spent.Add(s.InvoiceTotal)
	}
	return due, paid, spent
}

// ResyncBuyerTotals rebuilds the buyer aggregates from the summary rows. This
// is the consistency-repair job; the steady state applies deltas.
func ResyncBuyerTotals(tx *gorm.DB, buyerID uint) error {
	var summaries []models.BuyerBillSummary
	if err := tx.Where("buyer_id = ?", buyerID).Find(&summaries).Error; err != nil {
		return err
	}
	due, paid, spent := TotalsFromSummaries(summaries)
	return tx.Model(&models.Buyer{}).Where("id = ?", buyerID).Updates(map[string]any{
		"total_due":   due,
		"total_paid":  paid,
		"total_spent": spent,
	}).Error
}
