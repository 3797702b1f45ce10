package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"garment-billing-backend/billing"
	"garment-billing-backend/database"
	"garment-billing-backend/inventory"
	"garment-billing-backend/middlewares"
	"garment-billing-backend/models"
	"garment-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemDTO struct {
	ProductID *uint           `json:"product_id"`
	Design    string          `json:"design" validate:"required,min=1"`
	Color     string          `json:"color"`
	Size      string          `json:"size" validate:"omitempty,max=16"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderCreateDTO struct {
	BuyerName      string         `json:"buyer_name" validate:"required,min=1"`
	BuyerMobile    string         `json:"buyer_mobile" validate:"required,min=6,max=16"`
	BuyerGSTIN     string         `json:"buyer_gstin" validate:"omitempty,max=20"`
	BuyerStateCode string         `json:"buyer_state_code" validate:"omitempty,max=4"`
	BuyerAddress   string         `json:"buyer_address"`
	ChallanNumber  string         `json:"challan_number" validate:"omitempty,max=32"`
	Items          []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

type OrderPaymentDTO struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

// POST /api/orders — records a wholesale sale. The buyer is looked up by
// mobile and created on first contact; stock is deducted from the main pool.
func CreateOrder(c *fiber.Ctx) error {
	var in OrderCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var settings models.Settings
	if err := db.First(&settings).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "settings missing for tenant")
	}

	buyer, err := findOrCreateBuyer(db, in)
	if err != nil {
		return err
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		if it.UnitPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("negative unit price at index %d", i))
		}
		lineTotal := utils.Round2(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Design:    strings.TrimSpace(it.Design),
			Color:     strings.TrimSpace(it.Color),
			Size:      strings.TrimSpace(it.Size),
			Quantity:  it.Quantity,
			UnitPrice: utils.Round2(it.UnitPrice),
			LineTotal: lineTotal,
		})

		if it.ProductID != nil {
			if err := inventory.DeductForSale(db, *it.ProductID, it.Quantity, cfg.StockEnforcement); err != nil {
				switch {
				case errors.Is(err, inventory.ErrProductNotFound):
					return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("product not found at index %d", i))
				case errors.Is(err, inventory.ErrInsufficientStock):
					return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("insufficient stock at index %d", i))
				default:
					return err
				}
			}
		}
	}

	challanNumber := strings.TrimSpace(in.ChallanNumber)
	if challanNumber == "" {
		challanNumber, err = nextChallanNumber(db)
		if err != nil {
			return err
		}
	}

	// Freeze the taxable/GST split at the rate in force today, so a later rate
	// change cannot skew this order's decomposition at bill time.
	taxable, gst := billing.DecomposeTotal(total, settings.GSTRate)

	order := models.WholesaleOrder{
		ChallanNumber: challanNumber,
		BuyerID:       buyer.ID,
		Items:         items,
		TotalAmount:   total,
		TaxableAmount: taxable,
		GSTAmount:     gst,
		AmountPaid:    decimal.Zero,
		AmountDue:     total,
	}
	if err := db.Create(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create order (duplicate challan number?)")
	}

	order.Buyer = *buyer
	return c.Status(fiber.StatusCreated).JSON(order)
}

func findOrCreateBuyer(db *gorm.DB, in OrderCreateDTO) (*models.Buyer, error) {
	mobile := strings.TrimSpace(in.BuyerMobile)

	var buyer models.Buyer
	err := db.Where("mobile = ?", mobile).First(&buyer).Error
	if err == nil {
		return &buyer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	buyer = models.Buyer{
		Name:      strings.TrimSpace(in.BuyerName),
		Mobile:    mobile,
		GSTIN:     strings.TrimSpace(in.BuyerGSTIN),
		StateCode: strings.TrimSpace(in.BuyerStateCode),
		Address:   strings.TrimSpace(in.BuyerAddress),
	}
	if err := db.Create(&buyer).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "could not create buyer")
	}
	return &buyer, nil
}

func nextChallanNumber(db *gorm.DB) (string, error) {
	var maxID uint
	row := db.Model(&models.WholesaleOrder{}).Select("COALESCE(MAX(id), 0)").Row()
	if err := row.Scan(&maxID); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "could not allocate challan number")
	}
	return fmt.Sprintf("CH-%04d", maxID+1), nil
}

// GET /api/orders
func GetOrders(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.WholesaleOrder{}).Preload("Items").Order("created_at DESC")
	if buyerID := utils.ParseIntDefault(c.Query("buyer_id"), 0); buyerID > 0 {
		q = q.Where("buyer_id = ?", buyerID)
	}
	if year := utils.ParseIntDefault(c.Query("year"), 0); year > 0 {
		if month, ok := billing.ParseMonth(c.Query("month")); ok {
			start, end := billing.MonthWindow(year, month, time.Local)
			q = q.Where("created_at BETWEEN ? AND ?", start, end)
		}
	}

	var orders []models.WholesaleOrder
	q.Find(&orders)
	return c.JSON(fiber.Map{
		"orders":  orders,
		"message": "success",
	})
}

// GET /api/orders/:id
func GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.WholesaleOrder
	if err := db.Preload("Items").Preload("Payments").Preload("Buyer").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(order)
}

// POST /api/orders/:id/payments — a pre-bill payment against the challan.
// Bill generation later imports these into the monthly bill.
func RecordOrderPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var in OrderPaymentDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if !in.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var order models.WholesaleOrder
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.Amount.GreaterThan(order.AmountDue) {
		return fiber.NewError(fiber.StatusBadRequest, "payment exceeds amount due on this challan")
	}

	payment := models.OrderPayment{
		OrderID: order.ID,
		Amount:  in.Amount,
		Method:  in.Method,
		Note:    in.Note,
		PaidAt:  time.Now(),
	}
	if err := db.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not record payment")
	}

	order.AmountPaid = order.AmountPaid.Add(in.Amount)
	order.AmountDue = order.TotalAmount.Sub(order.AmountPaid)
	if err := db.Model(&models.WholesaleOrder{}).Where("id = ?", order.ID).Updates(map[string]any{
		"amount_paid": order.AmountPaid,
		"amount_due":  order.AmountDue,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update order totals")
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}
