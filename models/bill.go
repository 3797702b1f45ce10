package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BillStatus string

const (
	BillStatusDraft     BillStatus = "draft"
	BillStatusGenerated BillStatus = "generated"
	BillStatusSent      BillStatus = "sent"
	BillStatusPartial   BillStatus = "partial"
	BillStatusPaid      BillStatus = "paid"
	BillStatusOverdue   BillStatus = "overdue"
)

// UnpaidStatuses are the statuses whose balance carries forward into the next
// period's previous outstanding.
var UnpaidStatuses = []BillStatus{BillStatusGenerated, BillStatusSent, BillStatusPartial, BillStatusOverdue}

type PaymentSource string

const (
	// PaymentSourceChallanImport marks payments copied from order payment
	// history at generation time.
	PaymentSourceChallanImport PaymentSource = "challan_import"
	PaymentSourceManual        PaymentSource = "manual"
)

// MonthlyBill consolidates one buyer's challans for one calendar month into a
// single GST invoice. Company and buyer identity are frozen as jsonb snapshots
// at generation; challan lines are frozen as BillChallan rows.
type MonthlyBill struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	BillNumber    string `json:"bill_number" gorm:"size:32;uniqueIndex;not null"`
	FinancialYear string `json:"financial_year" gorm:"size:10;index;not null"`

	BuyerID     uint `json:"buyer_id" gorm:"not null;index:idx_bills_buyer_period,unique,priority:1"`
	PeriodYear  int  `json:"period_year" gorm:"not null;index:idx_bills_buyer_period,unique,priority:2"`
	PeriodMonth int  `json:"period_month" gorm:"not null;index:idx_bills_buyer_period,unique,priority:3"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Company datatypes.JSON `json:"company" gorm:"type:jsonb"`
	Buyer   datatypes.JSON `json:"buyer" gorm:"type:jsonb"`

	Challans []BillChallan `json:"challans" gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`

	TotalTaxableAmount  decimal.Decimal `json:"total_taxable_amount" gorm:"type:numeric(12,2);default:0"`
	TotalGST            decimal.Decimal `json:"total_gst" gorm:"type:numeric(12,2);default:0"`
	CGST                decimal.Decimal `json:"cgst" gorm:"type:numeric(12,2);default:0"`
	SGST                decimal.Decimal `json:"sgst" gorm:"type:numeric(12,2);default:0"`
	IGST                decimal.Decimal `json:"igst" gorm:"type:numeric(12,2);default:0"`
	InvoiceTotal        decimal.Decimal `json:"invoice_total" gorm:"type:numeric(12,2);default:0"`
	PreviousOutstanding decimal.Decimal `json:"previous_outstanding" gorm:"type:numeric(12,2);default:0"`
	GrandTotal          decimal.Decimal `json:"grand_total" gorm:"type:numeric(12,2);default:0"`
	AmountPaid          decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2);default:0"`
	BalanceDue          decimal.Decimal `json:"balance_due" gorm:"type:numeric(12,2);default:0"`

	Status          BillStatus `json:"status" gorm:"size:16;not null;default:draft;index"`
	PaymentTermDays int        `json:"payment_term_days"`
	DueDate         time.Time  `json:"due_date"`
	HSNCode         string     `json:"hsn_code" gorm:"size:16"`
	Notes           string     `json:"notes" gorm:"type:text"`

	Payments []BillPayment `json:"payment_history" gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`

	FinalizedAt *time.Time `json:"finalized_at"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BillChallan is the frozen copy of one order taken at generation time; the
// source order is not re-read once the bill exists.
type BillChallan struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	BillID        uint            `json:"-" gorm:"index"`
	OrderID       uint            `json:"order_id" gorm:"index;not null"`
	ChallanNumber string          `json:"challan_number" gorm:"size:32;not null"`
	ChallanDate   time.Time       `json:"challan_date"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);default:0"`
	TaxableAmount decimal.Decimal `json:"taxable_amount" gorm:"type:numeric(12,2);default:0"`
	GSTAmount     decimal.Decimal `json:"gst_amount" gorm:"type:numeric(12,2);default:0"`
}

type BillPayment struct {
	ID     uint            `json:"id" gorm:"primaryKey"`
	BillID uint            `json:"bill_id" gorm:"index:idx_bill_payments_bill_paid_at,priority:1"`
	Amount decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Method string          `json:"method"`
	Note   string          `json:"note"`

	// Source is the provenance tag; ChallanNumber is set only for imports.
	Source        PaymentSource `json:"source" gorm:"size:20;not null;default:manual"`
	ChallanNumber string        `json:"challan_number,omitempty" gorm:"size:32"`

	PaidAt    time.Time `json:"paid_at" gorm:"index:idx_bill_payments_bill_paid_at,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanySnapshot and BuyerSnapshot are the shapes serialized into the bill's
// jsonb columns.
type CompanySnapshot struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
}

type BuyerSnapshot struct {
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
	Address   string `json:"address"`
}
