package billing

import (
	"errors"
	"fmt"

	"garment-billing-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomizeInput carries draft-only edits; nil pointers leave fields alone.
type CustomizeInput struct {
	PaymentTermDays  *int
	HSNCode          *string
	Notes            *string
	RemoveChallanIDs []uint
}

// RemoveChallans drops the given challan lines from the bill in memory and
// recomputes the money block from the remainder. Imported payments belonging
// to a removed challan are dropped with it, so amount_paid cannot keep
// counting money whose challan is gone. The CGST/SGST-vs-IGST choice follows
// whichever was previously nonzero, not a fresh state-code check.
func RemoveChallans(bill *models.MonthlyBill, removeIDs []uint) error {
	remove := make(map[uint]bool, len(removeIDs))
	for _, id := range removeIDs {
		remove[id] = true
	}

	removedNumbers := make(map[string]bool)
	kept := bill.Challans[:0]
	for _, ch := range bill.Challans {
		if remove[ch.ID] {
			removedNumbers[ch.ChallanNumber] = true
			continue
		}
		kept = append(kept, ch)
	}
	if len(removedNumbers) == 0 {
		return conflict(CodeNotFound, "no matching challans on this bill")
	}
	if len(kept) == 0 {
		return conflict(CodeAmountRange, "cannot remove every challan; delete the draft instead")
	}
	bill.Challans = kept

	keptPayments := bill.Payments[:0]
	amountPaid := decimal.Zero
	for _, p := range bill.Payments {
		if p.Source == models.PaymentSourceChallanImport && removedNumbers[p.ChallanNumber] {
			continue
		}
		keptPayments = append(keptPayments, p)
		amountPaid = amountPaid.Add(p.Amount)
	}
	bill.Payments = keptPayments

	intraState := bill.IGST.IsZero()
	fin := ComputeFinancials(bill.Challans, intraState, bill.PreviousOutstanding, amountPaid)
	ApplyFinancials(bill, fin)
	return nil
}

// Customize mutates a draft bill and recomputes its totals. Non-draft bills
// are rejected untouched.
func Customize(tx *gorm.DB, billID uint, in CustomizeInput) (*models.MonthlyBill, error) {
	bill, err := loadDraft(tx, billID)
	if err != nil {
		return nil, err
	}

	if in.PaymentTermDays != nil {
		if *in.PaymentTermDays <= 0 {
			return nil, conflict(CodeAmountRange, "payment term days must be positive")
		}
		bill.PaymentTermDays = *in.PaymentTermDays
		bill.DueDate = bill.PeriodEnd.AddDate(0, 0, *in.PaymentTermDays)
	}
	if in.HSNCode != nil {
		bill.HSNCode = *in.HSNCode
	}
	if in.Notes != nil {
		bill.Notes = *in.Notes
	}

	if len(in.RemoveChallanIDs) > 0 {
		if err := RemoveChallans(bill, in.RemoveChallanIDs); err != nil {
			return nil, err
		}
		if err := tx.Where("bill_id = ? AND id IN ?", bill.ID, in.RemoveChallanIDs).
			Delete(&models.BillChallan{}).Error; err != nil {
			return nil, err
		}
		// Drop the imported payments that left with their challans.
		keptPayments := make([]uint, 0, len(bill.Payments))
		for _, p := range bill.Payments {
			keptPayments = append(keptPayments, p.ID)
		}
		del := tx.Where("bill_id = ?", bill.ID)
		if len(keptPayments) > 0 {
			del = del.Where("id NOT IN ?", keptPayments)
		}
		if err := del.Delete(&models.BillPayment{}).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Omit("Challans", "Payments").Save(bill).Error; err != nil {
		return nil, err
	}
	if err := SyncBuyerSummary(tx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// EditBillNumberSequence changes only the trailing sequence digits of a draft
// bill's number, for tenants continuing a legacy numbering run. The unique
// index on bill_number is the collision enforcement; the pre-check here only
// produces a friendlier error.
func EditBillNumberSequence(tx *gorm.DB, billID uint, seq int) (*models.MonthlyBill, error) {
	if seq <= 0 {
		return nil, conflict(CodeAmountRange, "sequence must be a positive integer")
	}

	bill, err := loadDraft(tx, billID)
	if err != nil {
		return nil, err
	}

	next, ok := ReplaceSequence(bill.BillNumber, seq)
	if !ok {
		return nil, conflict(CodeAmountRange, "bill number has no numeric sequence segment")
	}

	var clash int64
	if err := tx.Model(&models.MonthlyBill{}).
		Where("bill_number = ? AND id <> ?", next, bill.ID).
		Count(&clash).Error; err != nil {
		return nil, err
	}
	if clash > 0 {
		return nil, conflict(CodeDuplicatePeriod, fmt.Sprintf("bill number %s is already in use", next))
	}

	bill.BillNumber = next
	if err := tx.Model(&models.MonthlyBill{}).Where("id = ?", bill.ID).
		Update("bill_number", next).Error; err != nil {
		return nil, err
	}
	if err := SyncBuyerSummary(tx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func loadDraft(tx *gorm.DB, billID uint) (*models.MonthlyBill, error) {
	var bill models.MonthlyBill
	err := tx.Preload("Challans").Preload("Payments").First(&bill, billID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("bill not found")
	}
	if err != nil {
		return nil, err
	}
	if bill.Status != models.BillStatusDraft {
		return nil, conflict(CodeNotDraft, "only draft bills can be customized")
	}
	return &bill, nil
}
