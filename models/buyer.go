package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buyer is a wholesale customer. The three totals are derived aggregates over
// the bill summaries; they are maintained incrementally and can always be
// rebuilt from the summary rows (see billing.ResyncBuyerTotals).
type Buyer struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Mobile    string `json:"mobile" gorm:"size:16;uniqueIndex;not null"`
	GSTIN     string `json:"gstin" gorm:"size:20"`
	StateCode string `json:"state_code" gorm:"size:4"`
	Address   string `json:"address"`

	TotalDue   decimal.Decimal `json:"total_due" gorm:"type:numeric(12,2);default:0"`
	TotalPaid  decimal.Decimal `json:"total_paid" gorm:"type:numeric(12,2);default:0"`
	TotalSpent decimal.Decimal `json:"total_spent" gorm:"type:numeric(12,2);default:0"`

	MonthlyBills    []BuyerBillSummary `json:"monthly_bills" gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
	AdvancePayments []AdvancePayment   `json:"advance_payments" gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

// BuyerBillSummary is the denormalized per-bill row kept on the buyer ledger.
type BuyerBillSummary struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	BuyerID      uint            `json:"-" gorm:"index;not null"`
	BillID       uint            `json:"bill_id" gorm:"uniqueIndex;not null"`
	BillNumber   string          `json:"bill_number"`
	PeriodMonth  int             `json:"period_month" gorm:"not null"`
	PeriodYear   int             `json:"period_year" gorm:"not null"`
	InvoiceTotal decimal.Decimal `json:"invoice_total" gorm:"type:numeric(12,2);default:0"`
	AmountPaid   decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2);default:0"`
	BalanceDue   decimal.Decimal `json:"balance_due" gorm:"type:numeric(12,2);default:0"`
	Status       BillStatus      `json:"status" gorm:"size:16"`
}

// AdvancePayment is money received before any bill exists to absorb it.
type AdvancePayment struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	BuyerID    uint            `json:"-" gorm:"index;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Note       string          `json:"note"`
	ReceivedAt time.Time       `json:"received_at"`
	CreatedAt  time.Time       `json:"created_at"`
}
