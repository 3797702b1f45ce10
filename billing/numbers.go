package billing

import (
	"errors"
	"sort"
	"time"

	"garment-billing-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextSequence returns the lowest positive integer absent from issued.
// Numbers freed by deleting draft bills are reused before a higher number is
// handed out.
func NextSequence(issued []int) int {
	sorted := append([]int(nil), issued...)
	sort.Ints(sorted)

	next := 1
	for _, n := range sorted {
		if n < next {
			continue // duplicates or zero/negative garbage
		}
		if n > next {
			break
		}
		next++
	}
	return next
}

// AllocateBillNumber issues the next usable bill number for the financial year
// containing now. It must run inside the same transaction that creates the
// bill. The per-FY counter row is taken FOR UPDATE first, which serializes
// concurrent allocations in the same year; the live scan of issued numbers
// remains the source of truth and the counter is only a floor.
func AllocateBillNumber(tx *gorm.DB, prefix string, now time.Time) (string, error) {
	fy := FinancialYear(now)

	var counter models.BillCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("financial_year = ?", fy).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// FY rollover: a fresh counter row at 0 is the reset. Two transactions
		// can race here on the year's first bill, so the insert tolerates a
		// conflict on the unique financial_year index and the loser locks the
		// winner's row on re-select.
		counter = models.BillCounter{FinancialYear: fy, LastSequence: 0}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
			return "", err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("financial_year = ?", fy).
			First(&counter).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	var numbers []string
	if err := tx.Model(&models.MonthlyBill{}).
		Where("financial_year = ?", fy).
		Pluck("bill_number", &numbers).Error; err != nil {
		return "", err
	}

	issued := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if seq, ok := ParseSequence(n); ok {
			issued = append(issued, seq)
		}
	}

	seq := NextSequence(issued)

	if seq > counter.LastSequence {
		counter.LastSequence = seq
		if err := tx.Model(&models.BillCounter{}).
			Where("id = ?", counter.ID).
			Update("last_sequence", counter.LastSequence).Error; err != nil {
			return "", err
		}
	}

	return FormatBillNumber(prefix, fy, seq), nil
}
