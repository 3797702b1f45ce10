package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garment-billing-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenerateInput identifies the buyer+period to consolidate. Now is injected so
// the sweep and tests control the allocation clock.
type GenerateInput struct {
	BuyerID   uint
	Month     time.Month
	Year      int
	CompanyID *uint
	Now       time.Time
}

// BuildChallans freezes orders into bill challan lines. The taxable/GST split
// stored on the order at creation time is preferred; rows from before that
// split existed are back-computed from the rate currently in force.
func BuildChallans(orders []models.WholesaleOrder, currentRate decimal.Decimal) []models.BillChallan {
	challans := make([]models.BillChallan, 0, len(orders))
	for _, o := range orders {
		taxable, gst := o.TaxableAmount, o.GSTAmount
		if taxable.IsZero() && gst.IsZero() && !o.TotalAmount.IsZero() {
			taxable, gst = DecomposeTotal(o.TotalAmount, currentRate)
		}
		challans = append(challans, models.BillChallan{
			OrderID:       o.ID,
			ChallanNumber: o.ChallanNumber,
			ChallanDate:   o.CreatedAt,
			TotalAmount:   o.TotalAmount,
			TaxableAmount: taxable,
			GSTAmount:     gst,
		})
	}
	return challans
}

// BuildImportedPayments copies pre-bill order payments into bill payment rows
// tagged challan_import, and returns their sum.
func BuildImportedPayments(orders []models.WholesaleOrder) ([]models.BillPayment, decimal.Decimal) {
	var imported []models.BillPayment
	total := decimal.Zero
	for _, o := range orders {
		for _, p := range o.Payments {
			imported = append(imported, models.BillPayment{
				Amount:        p.Amount,
				Method:        p.Method,
				Note:          fmt.Sprintf("Payment for challan %s", o.ChallanNumber),
				Source:        models.PaymentSourceChallanImport,
				ChallanNumber: o.ChallanNumber,
				PaidAt:        p.PaidAt,
			})
			total = total.Add(p.Amount)
		}
	}
	return imported, total
}

// ResolveCompany picks the billing identity: the requested profile, else the
// default profile, else a profile synthesized from the legacy flat settings
// fields (migration-on-read for tenants that predate the profile list).
func ResolveCompany(tx *gorm.DB, settings *models.Settings, companyID *uint) (models.CompanySnapshot, error) {
	var profile models.CompanyProfile
	var err error
	if companyID != nil {
		err = tx.First(&profile, *companyID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CompanySnapshot{}, notFound("company not found")
		}
	} else {
		err = tx.Order("is_default DESC, id ASC").First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CompanySnapshot{
				Name:      settings.CompanyName,
				Address:   settings.CompanyAddress,
				GSTIN:     settings.CompanyGSTIN,
				StateCode: settings.StateCode,
			}, nil
		}
	}
	if err != nil {
		return models.CompanySnapshot{}, err
	}
	return models.CompanySnapshot{
		Name:      profile.Name,
		Address:   profile.Address,
		GSTIN:     profile.GSTIN,
		StateCode: profile.StateCode,
	}, nil
}

// Generate consolidates one buyer's orders for a calendar month into a new
// draft bill and brings the buyer ledger up to date. The caller supplies the
// transaction; every read and write here either commits together or not at
// all.
func Generate(tx *gorm.DB, in GenerateInput) (*models.MonthlyBill, error) {
	var settings models.Settings
	if err := tx.First(&settings).Error; err != nil {
		return nil, err
	}

	company, err := ResolveCompany(tx, &settings, in.CompanyID)
	if err != nil {
		return nil, err
	}

	var buyer models.Buyer
	if err := tx.First(&buyer, in.BuyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("buyer not found")
		}
		return nil, err
	}

	// Friendly duplicate check; the unique index on (buyer, period) is the
	// actual enforcement under concurrency.
	var existing int64
	if err := tx.Model(&models.MonthlyBill{}).
		Where("buyer_id = ? AND period_year = ? AND period_month = ?", in.BuyerID, in.Year, int(in.Month)).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, conflict(CodeDuplicatePeriod, fmt.Sprintf("bill already exists for %s %d", in.Month, in.Year))
	}

	// Selection is by order creation timestamp, inclusive month window.
	start, end := MonthWindow(in.Year, in.Month, time.Local)
	var orders []models.WholesaleOrder
	if err := tx.Preload("Payments").
		Where("buyer_id = ? AND created_at BETWEEN ? AND ?", in.BuyerID, start, end).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, conflict(CodeNoOrders, fmt.Sprintf("no orders for %s %d", in.Month, in.Year))
	}

	challans := BuildChallans(orders, settings.GSTRate)
	imported, importedTotal := BuildImportedPayments(orders)

	previous, err := previousOutstanding(tx, in.BuyerID, start)
	if err != nil {
		return nil, err
	}

	intraState := company.StateCode != "" && company.StateCode == buyer.StateCode
	fin := ComputeFinancials(challans, intraState, previous, importedTotal)

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	billNumber, err := AllocateBillNumber(tx, settings.BillPrefix, now)
	if err != nil {
		return nil, err
	}

	companyJSON, err := json.Marshal(company)
	if err != nil {
		return nil, err
	}
	buyerJSON, err := json.Marshal(models.BuyerSnapshot{
		Name:      buyer.Name,
		Mobile:    buyer.Mobile,
		GSTIN:     buyer.GSTIN,
		StateCode: buyer.StateCode,
		Address:   buyer.Address,
	})
	if err != nil {
		return nil, err
	}

	bill := models.MonthlyBill{
		BillNumber:      billNumber,
		FinancialYear:   FinancialYear(now),
		BuyerID:         buyer.ID,
		PeriodYear:      in.Year,
		PeriodMonth:     int(in.Month),
		PeriodStart:     start,
		PeriodEnd:       end,
		Company:         companyJSON,
		Buyer:           buyerJSON,
		Challans:        challans,
		Payments:        imported,
		Status:          models.BillStatusDraft,
		PaymentTermDays: settings.DefaultPaymentTermDays,
		DueDate:         end.AddDate(0, 0, settings.DefaultPaymentTermDays),
		HSNCode:         settings.DefaultHSNCode,
	}
	ApplyFinancials(&bill, fin)

	// Status stays draft even when imported payments cover the grand total;
	// finalization is a separate explicit step.
	if err := tx.Create(&bill).Error; err != nil {
		return nil, err
	}

	if err := SyncBuyerSummary(tx, &bill); err != nil {
		return nil, err
	}

	return &bill, nil
}

// previousOutstanding sums the unpaid balances of this buyer's bills whose
// period ended before the new period starts. Paid bills drop out because their
// balance is zero and their status is excluded.
func previousOutstanding(tx *gorm.DB, buyerID uint, periodStart time.Time) (decimal.Decimal, error) {
	var bills []models.MonthlyBill
	if err := tx.Where("buyer_id = ? AND period_end < ? AND status IN ?", buyerID, periodStart, models.UnpaidStatuses).
		Find(&bills).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.BalanceDue)
	}
	return total, nil
}
