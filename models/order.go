package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WholesaleOrder is a single delivery (challan). The challan number is its
// immutable identity; payment fields mutate until the order is swept into a
// monthly bill, after which the bill works off its own frozen snapshot.
type WholesaleOrder struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ChallanNumber string `json:"challan_number" gorm:"size:32;uniqueIndex;not null"`
	BuyerID       uint   `json:"buyer_id" gorm:"index;not null"`
	Buyer         Buyer  `json:"buyer" gorm:"foreignKey:BuyerID;references:ID"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	// TotalAmount is tax-inclusive. The taxable/GST split is fixed at creation
	// time with the rate then in force, so a later rate change cannot skew the
	// decomposition at bill time.
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);default:0"`
	TaxableAmount decimal.Decimal `json:"taxable_amount" gorm:"type:numeric(12,2);default:0"`
	GSTAmount     decimal.Decimal `json:"gst_amount" gorm:"type:numeric(12,2);default:0"`

	AmountPaid decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2);default:0"`
	AmountDue  decimal.Decimal `json:"amount_due" gorm:"type:numeric(12,2);default:0"`

	Payments []OrderPayment `json:"payment_history" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"-" gorm:"index"`
	ProductID *uint           `json:"product_id" gorm:"index"`
	Design    string          `json:"design" gorm:"not null"`
	Color     string          `json:"color"`
	Size      string          `json:"size" gorm:"size:16"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	LineTotal decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2);not null"`
}

// OrderPayment is a pre-bill payment recorded directly against a challan.
// Bill generation imports these into the new bill's payment history.
type OrderPayment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"-" gorm:"index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Method    string          `json:"method"`
	Note      string          `json:"note"`
	PaidAt    time.Time       `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}
