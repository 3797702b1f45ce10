package controllers

import (
	"errors"
	"strings"
	"time"

	"garment-billing-backend/billing"
	"garment-billing-backend/database"
	"garment-billing-backend/middlewares"
	"garment-billing-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdvancePaymentDTO struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Note   string          `json:"note"`
}

// GET /api/buyers
func GetBuyers(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Buyer{}).Order("name ASC")
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("name ILIKE ? OR mobile LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var buyers []models.Buyer
	q.Find(&buyers)
	return c.JSON(fiber.Map{
		"buyers":  buyers,
		"message": "success",
	})
}

// GET /api/buyers/:id
func GetBuyer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid buyer id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var buyer models.Buyer
	if err := db.Preload("MonthlyBills").Preload("AdvancePayments").First(&buyer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "buyer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(buyer)
}

// POST /api/buyers/:id/advance — record a pre-bill payment awaiting allocation.
func RecordAdvance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid buyer id")
	}

	var in AdvancePaymentDTO
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

	var buyer models.Buyer
	if err := db.First(&buyer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "buyer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	advance := models.AdvancePayment{
		BuyerID:    buyer.ID,
		Amount:     in.Amount,
		Note:       in.Note,
		ReceivedAt: time.Now(),
	}
	if err := db.Create(&advance).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not record advance payment")
	}
	return c.Status(fiber.StatusCreated).JSON(advance)
}

// POST /api/buyers/:id/resync — rebuild aggregates from summary rows (repair).
func ResyncBuyer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid buyer id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var buyer models.Buyer
	if err := db.First(&buyer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "buyer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := billing.ResyncBuyerTotals(db, buyer.ID); err != nil {
		return err
	}

	db.First(&buyer, id)
	return c.JSON(buyer)
}
