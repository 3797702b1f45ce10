package database

import (
	"fmt"

	"garment-billing-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (bill period uniqueness, payments, challans)
// - Basic CHECK constraints
// - Seeds the Settings singleton and the idempotency keys table
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Settings{},
			&models.CompanyProfile{},
			&models.BillCounter{},
			&models.Product{},
			&models.StockTransfer{},
			&models.Buyer{},
			&models.BuyerBillSummary{},
			&models.AdvancePayment{},
			&models.WholesaleOrder{},
			&models.OrderItem{},
			&models.OrderPayment{},
			&models.MonthlyBill{},
			&models.BillChallan{},
			&models.BillPayment{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products            ALTER COLUMN unit_price           TYPE numeric(12,2)`,
			`ALTER TABLE wholesale_orders    ALTER COLUMN total_amount         TYPE numeric(12,2)`,
			`ALTER TABLE wholesale_orders    ALTER COLUMN taxable_amount       TYPE numeric(12,2)`,
			`ALTER TABLE wholesale_orders    ALTER COLUMN gst_amount           TYPE numeric(12,2)`,
			`ALTER TABLE wholesale_orders    ALTER COLUMN amount_paid          TYPE numeric(12,2)`,
			`ALTER TABLE wholesale_orders    ALTER COLUMN amount_due           TYPE numeric(12,2)`,
			`ALTER TABLE monthly_bills       ALTER COLUMN invoice_total        TYPE numeric(12,2)`,
			`ALTER TABLE monthly_bills       ALTER COLUMN grand_total          TYPE numeric(12,2)`,
			`ALTER TABLE monthly_bills       ALTER COLUMN amount_paid          TYPE numeric(12,2)`,
			`ALTER TABLE monthly_bills       ALTER COLUMN balance_due          TYPE numeric(12,2)`,
			`ALTER TABLE monthly_bills       ALTER COLUMN previous_outstanding TYPE numeric(12,2)`,
			`ALTER TABLE bill_payments       ALTER COLUMN amount               TYPE numeric(12,2)`,
			`ALTER TABLE order_payments      ALTER COLUMN amount               TYPE numeric(12,2)`,
			`ALTER TABLE advance_payments    ALTER COLUMN amount               TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_bills_buyer_period ON monthly_bills (buyer_id, period_year, period_month)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_bill_counters_fy ON bill_counters (financial_year)`,
			`CREATE INDEX IF NOT EXISTS idx_bill_payments_bill_paid_at ON bill_payments (bill_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_bill_challans_bill ON bill_challans (bill_id)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_buyer_created ON wholesale_orders (buyer_id, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_stock_transfers_product ON stock_transfers (product_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'bill_payments'::regclass
					  AND conname  = 'chk_bill_payments_amount_pos'
				) THEN
					ALTER TABLE bill_payments
					ADD CONSTRAINT chk_bill_payments_amount_pos
					CHECK (amount > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'monthly_bills'::regclass
					  AND conname  = 'chk_monthly_bills_balance_nonneg'
				) THEN
					ALTER TABLE monthly_bills
					ADD CONSTRAINT chk_monthly_bills_balance_nonneg
					CHECK (balance_due >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'stock_transfers'::regclass
					  AND conname  = 'chk_stock_transfers_qty_pos'
				) THEN
					ALTER TABLE stock_transfers
					ADD CONSTRAINT chk_stock_transfers_qty_pos
					CHECK (quantity > 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		// --- Seed the Settings singleton ---
		var count int64
		if err := tx.Model(&models.Settings{}).Count(&count).Error; err != nil {
			return fmt.Errorf("settings count failed: %w", err)
		}
		if count == 0 {
			if err := tx.Create(&models.Settings{}).Error; err != nil {
				return fmt.Errorf("settings seed failed: %w", err)
			}
		}

		return nil
	})
}
