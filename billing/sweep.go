package billing

import (
	"context"
	"errors"
	"time"

	"garment-billing-backend/config"
	"garment-billing-backend/database"
	"garment-billing-backend/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sweeper is the best-effort background job: it promotes past-due bills to
// overdue and, on the configured day of month, auto-generates last month's
// bills. Each organization and each buyer is handled in its own transaction;
// one failure is logged and skipped, it never aborts the sweep.
type Sweeper struct {
	Cfg    config.Config
	Logger *logrus.Logger
}

// Run loops until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(time.Now())
		}
	}
}

// SweepOnce iterates every organization sequentially and independently.
func (s *Sweeper) SweepOnce(now time.Time) {
	var orgs []models.Organization
	if err := database.DB.Find(&orgs).Error; err != nil {
		config.LogError(s.Logger, "sweep.go", "SweepOnce", "list organizations", nil, err)
		return
	}

	for _, org := range orgs {
		if err := s.sweepTenant(org.SchemaName, now); err != nil {
			config.LogError(s.Logger, "sweep.go", "SweepOnce", "sweep tenant", org.SchemaName, err)
		}
	}
}

func (s *Sweeper) sweepTenant(schema string, now time.Time) error {
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
			return err
		}
		return MarkOverdueBills(tx, now)
	}); err != nil {
		return err
	}

	if now.Day() != s.Cfg.SweepDayOfMonth {
		return nil
	}
	return s.autoGenerateLastMonth(schema, now)
}

// MarkOverdueBills promotes unpaid bills whose due date has passed. Balance
// amounts do not change, so buyer totals are untouched; only the status on the
// summary rows follows.
func MarkOverdueBills(tx *gorm.DB, now time.Time) error {
	if err := tx.Model(&models.MonthlyBill{}).
		Where("status IN ? AND due_date < ?",
			[]models.BillStatus{models.BillStatusGenerated, models.BillStatusSent, models.BillStatusPartial}, now).
		Update("status", models.BillStatusOverdue).Error; err != nil {
		return err
	}
	return tx.Exec(`UPDATE buyer_bill_summaries SET status = ?
		WHERE bill_id IN (SELECT id FROM monthly_bills WHERE status = ?)`,
		models.BillStatusOverdue, models.BillStatusOverdue).Error
}

// autoGenerateLastMonth creates last month's bill for every buyer that had
// orders in that window and has no bill yet. One transaction per buyer.
func (s *Sweeper) autoGenerateLastMonth(schema string, now time.Time) error {
	prev := now.AddDate(0, -1, 0)
	month, year := prev.Month(), prev.Year()
	start, end := MonthWindow(year, month, time.Local)

	var buyerIDs []uint
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
			return err
		}
		return tx.Model(&models.WholesaleOrder{}).
			Where("created_at BETWEEN ? AND ?", start, end).
			Distinct().
			Pluck("buyer_id", &buyerIDs).Error
	}); err != nil {
		return err
	}

	for _, buyerID := range buyerIDs {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
				return err
			}
			_, err := Generate(tx, GenerateInput{
				BuyerID: buyerID,
				Month:   month,
				Year:    year,
				Now:     now,
			})
			return err
		})
		if err != nil {
			var be *Error
			if errors.As(err, &be) && be.Code == CodeDuplicatePeriod {
				continue // someone billed this buyer manually already
			}
			config.LogError(s.Logger, "sweep.go", "autoGenerateLastMonth", schema, buyerID, err)
		}
	}
	return nil
}
