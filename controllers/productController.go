package controllers

import (
	"errors"
	"fmt"
	"strings"

	"garment-billing-backend/database"
	"garment-billing-backend/inventory"
	"garment-billing-backend/middlewares"
	"garment-billing-backend/models"
	"garment-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	Design    string          `json:"design" validate:"required,min=1"`
	Color     string          `json:"color"`
	Size      string          `json:"size" validate:"omitempty,max=16"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	StockMain int             `json:"stock_main" validate:"omitempty,gte=0"`
}

type ProductUpdateDTO struct {
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Active    *bool            `json:"active"`
}

type TransferDTO struct {
	FromPool string `json:"from_pool" validate:"required,oneof=main reserved"`
	ToPool   string `json:"to_pool" validate:"required,oneof=main reserved"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Note     string `json:"note"`
}

// POST /api/products (batch create, one transaction)
func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no products supplied")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.Product
	for i, in := range inputs {
		if err := middlewares.ValidateStruct(in); err != nil {
			return err
		}
		if in.UnitPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("negative unit price at index %d", i))
		}

		product := models.Product{
			Design:    strings.TrimSpace(in.Design),
			Color:     strings.TrimSpace(in.Color),
			Size:      strings.TrimSpace(in.Size),
			UnitPrice: utils.Round2(in.UnitPrice),
			StockMain: in.StockMain,
			Active:    true,
		}
		if err := db.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("could not create product at index %d", i))
		}
		created = append(created, product)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/products
func GetProducts(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Product{}).Order("design ASC, color ASC, size ASC")
	if design := strings.TrimSpace(c.Query("design")); design != "" {
		q = q.Where("design ILIKE ?", "%"+design+"%")
	}
	if c.QueryBool("active_only", false) {
		q = q.Where("active = ?", true)
	}

	var products []models.Product
	q.Find(&products)
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

// PUT /api/products/:id
func UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var in ProductUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "unit price must not be negative")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Product
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update product")
		}
	}

	db.First(&existing, id)
	return c.JSON(existing)
}

// POST /api/products/:id/transfer — move stock between main and reserved pools.
func TransferStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var in TransferDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	product, err := inventory.Transfer(db, uint(id), in.FromPool, in.ToPool, in.Quantity, in.Note, cfg.StockEnforcement)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrProductNotFound):
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		case errors.Is(err, inventory.ErrInsufficientStock):
			return fiber.NewError(fiber.StatusBadRequest, "insufficient stock in source pool")
		case errors.Is(err, inventory.ErrInvalidPool):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		default:
			return err
		}
	}
	return c.JSON(product)
}

// GET /api/transfers
func ListTransfers(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	q := db.Model(&models.StockTransfer{}).Order("created_at DESC").Limit(limit)
	if pid := utils.ParseIntDefault(c.Query("product_id"), 0); pid > 0 {
		q = q.Where("product_id = ?", pid)
	}

	var transfers []models.StockTransfer
	q.Find(&transfers)
	return c.JSON(fiber.Map{
		"transfers": transfers,
		"message":   "success",
	})
}
