package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StockPoolMain     = "main"
	StockPoolReserved = "reserved"
)

// Product carries two stock pools: the main pool sells through wholesale
// orders, the reserved pool is held back for the marketplace listing.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Design        string          `json:"design" gorm:"not null;index:idx_products_variant,unique,priority:1"`
	Color         string          `json:"color" gorm:"index:idx_products_variant,unique,priority:2"`
	Size          string          `json:"size" gorm:"size:16;index:idx_products_variant,unique,priority:3"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);default:0"`
	StockMain     int             `json:"stock_main" gorm:"not null;default:0"`
	StockReserved int             `json:"stock_reserved" gorm:"not null;default:0"`
	Active        bool            `json:"active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StockTransfer is the append-only audit log of pool moves. Rows are never
// mutated or deleted.
type StockTransfer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	FromPool  string    `json:"from_pool" gorm:"size:16;not null"`
	ToPool    string    `json:"to_pool" gorm:"size:16;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
