package inventory

import (
	"errors"
	"fmt"

	"garment-billing-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock in source pool")
	ErrInvalidPool       = errors.New("invalid stock pool")
)

func poolValid(pool string) bool {
	return pool == models.StockPoolMain || pool == models.StockPoolReserved
}

// Transfer moves quantity between the main and reserved pools and appends an
// audit row. Enforcement decides whether an overdraw is rejected; with it off
// the pool may go negative but the move is still recorded.
func Transfer(tx *gorm.DB, productID uint, fromPool, toPool string, qty int, note string, enforce bool) (*models.Product, error) {
	if !poolValid(fromPool) || !poolValid(toPool) || fromPool == toPool {
		return nil, ErrInvalidPool
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidPool)
	}

	var product models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if fromPool == models.StockPoolMain {
		if enforce && product.StockMain < qty {
			return nil, ErrInsufficientStock
		}
		product.StockMain -= qty
		product.StockReserved += qty
	} else {
		if enforce && product.StockReserved < qty {
			return nil, ErrInsufficientStock
		}
		product.StockReserved -= qty
		product.StockMain += qty
	}

	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"stock_main":     product.StockMain,
		"stock_reserved": product.StockReserved,
	}).Error; err != nil {
		return nil, err
	}

	audit := models.StockTransfer{
		ProductID: product.ID,
		FromPool:  fromPool,
		ToPool:    toPool,
		Quantity:  qty,
		Note:      note,
	}
	if err := tx.Create(&audit).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeductForSale takes sold quantity out of the main pool at order creation.
func DeductForSale(tx *gorm.DB, productID uint, qty int, enforce bool) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidPool)
	}

	var product models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if enforce && product.StockMain < qty {
		return ErrInsufficientStock
	}

	return tx.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("stock_main", product.StockMain-qty).Error
}
