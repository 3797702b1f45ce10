package billing

import (
	"errors"
	"time"

	"garment-billing-backend/models"

	"gorm.io/gorm"
)

// Finalize transitions draft → generated and stamps finalized_at. One-way:
// there is no path back to draft.
func Finalize(tx *gorm.DB, billID uint) (*models.MonthlyBill, error) {
	var bill models.MonthlyBill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("bill not found")
		}
		return nil, err
	}
	if bill.Status != models.BillStatusDraft {
		return nil, conflict(CodeNotDraft, "bill is already finalized")
	}

	now := time.Now()
	bill.Status = models.BillStatusGenerated
	bill.FinalizedAt = &now
	if err := tx.Model(&models.MonthlyBill{}).Where("id = ?", bill.ID).Updates(map[string]any{
		"status":       bill.Status,
		"finalized_at": bill.FinalizedAt,
	}).Error; err != nil {
		return nil, err
	}
	if err := SyncBuyerSummary(tx, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// MarkSent records that the invoice went out to the buyer.
func MarkSent(tx *gorm.DB, billID uint) (*models.MonthlyBill, error) {
	var bill models.MonthlyBill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("bill not found")
		}
		return nil, err
	}
	if bill.Status != models.BillStatusGenerated {
		return nil, conflict(CodeNotDraft, "only a finalized, unpaid bill can be marked sent")
	}

	bill.Status = models.BillStatusSent
	if err := tx.Model(&models.MonthlyBill{}).Where("id = ?", bill.ID).
		Update("status", bill.Status).Error; err != nil {
		return nil, err
	}
	if err := SyncBuyerSummary(tx, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeleteDraft hard-deletes a draft bill, releasing its sequence number for
// reuse by the next allocation. Non-draft bills are not deletable.
func DeleteDraft(tx *gorm.DB, billID uint) error {
	var bill models.MonthlyBill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("bill not found")
		}
		return err
	}
	if bill.Status != models.BillStatusDraft {
		return conflict(CodeNotDraft, "only draft bills can be deleted")
	}

	if err := RemoveBuyerSummary(tx, &bill); err != nil {
		return err
	}
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillChallan{}).Error; err != nil {
		return err
	}
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillPayment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&bill).Error
}
