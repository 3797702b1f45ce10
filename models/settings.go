package models

import (
	"github.com/shopspring/decimal"
)

// Settings is a per-tenant singleton. The flat company fields predate the
// CompanyProfile list; they are kept so old tenants keep billing until a
// profile is created (the generator synthesizes a profile from them).
type Settings struct {
	ID                     uint            `json:"id" gorm:"primaryKey"`
	BillPrefix             string          `json:"bill_prefix" gorm:"size:16;not null;default:GB"`
	GSTRate                decimal.Decimal `json:"gst_rate" gorm:"type:numeric(5,2);not null;default:5"`
	DefaultPaymentTermDays int             `json:"default_payment_term_days" gorm:"not null;default:30"`
	DefaultHSNCode         string          `json:"default_hsn_code" gorm:"size:16"`
	StateCode              string          `json:"state_code" gorm:"size:4"`

	// Legacy flat company fields.
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyGSTIN   string `json:"company_gstin"`
}

// CompanyProfile is one billing identity of the organization; a tenant may
// bill under more than one registered company.
type CompanyProfile struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin" gorm:"size:20"`
	StateCode string `json:"state_code" gorm:"size:4"`
	IsDefault bool   `json:"is_default"`
}

// BillCounter tracks the highest issued sequence per financial year. It is
// locked FOR UPDATE during allocation; the live scan of issued numbers stays
// the source of truth, the counter is a floor and a serialization point.
type BillCounter struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	FinancialYear string `json:"financial_year" gorm:"size:10;uniqueIndex;not null"`
	LastSequence  int    `json:"last_sequence" gorm:"not null;default:0"`
}
