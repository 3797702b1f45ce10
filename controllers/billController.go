package controllers

import (
	"errors"

	"garment-billing-backend/billing"
	"garment-billing-backend/database"
	"garment-billing-backend/middlewares"
	"garment-billing-backend/models"
	"garment-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GenerateBillDTO struct {
	BuyerID   uint   `json:"buyer_id" validate:"required,gt=0"`
	Month     string `json:"month" validate:"required"`
	Year      int    `json:"year" validate:"required,gte=2000,lte=2100"`
	CompanyID *uint  `json:"company_id"`
}

type CustomizeBillDTO struct {
	PaymentTermDays  *int    `json:"payment_term_days" validate:"omitempty,gt=0"`
	HSNCode          *string `json:"hsn_code" validate:"omitempty,max=16"`
	Notes            *string `json:"notes"`
	RemoveChallanIDs []uint  `json:"remove_challan_ids"`
}

type BillNumberDTO struct {
	Sequence int `json:"sequence" validate:"required,gt=0"`
}

type BillPaymentDTO struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

// GET /api/bills
func GetBills(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.MonthlyBill{}).Order("period_year DESC, period_month DESC, bill_number ASC")
	if buyerID := utils.ParseIntDefault(c.Query("buyer_id"), 0); buyerID > 0 {
		q = q.Where("buyer_id = ?", buyerID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if year := utils.ParseIntDefault(c.Query("year"), 0); year > 0 {
		q = q.Where("period_year = ?", year)
		if month, ok := billing.ParseMonth(c.Query("month")); ok {
			q = q.Where("period_month = ?", int(month))
		}
	}

	var bills []models.MonthlyBill
	q.Find(&bills)
	return c.JSON(fiber.Map{
		"bills":   bills,
		"message": "success",
	})
}

// GET /api/bills/:id
func GetBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var bill models.MonthlyBill
	if err := db.Preload("Challans").Preload("Payments").First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "bill not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(bill)
}

// POST /api/bills/generate
func GenerateBill(c *fiber.Ctx) error {
	var in GenerateBillDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	month, ok := billing.ParseMonth(in.Month)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid month name")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.Generate(db, billing.GenerateInput{
		BuyerID:   in.BuyerID,
		Month:     month,
		Year:      in.Year,
		CompanyID: in.CompanyID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// PUT /api/bills/:id/customize (draft only)
func CustomizeBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	var in CustomizeBillDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.Customize(db, uint(id), billing.CustomizeInput{
		PaymentTermDays:  in.PaymentTermDays,
		HSNCode:          in.HSNCode,
		Notes:            in.Notes,
		RemoveChallanIDs: in.RemoveChallanIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(bill)
}

// PUT /api/bills/:id/number — continue a legacy numbering run (draft only).
func EditBillNumber(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	var in BillNumberDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.EditBillNumberSequence(db, uint(id), in.Sequence)
	if err != nil {
		return err
	}
	return c.JSON(bill)
}

// POST /api/bills/:id/finalize
func FinalizeBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.Finalize(db, uint(id))
	if err != nil {
		return err
	}
	return c.JSON(bill)
}

// POST /api/bills/:id/send
func SendBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.MarkSent(db, uint(id))
	if err != nil {
		return err
	}
	return c.JSON(bill)
}

// POST /api/bills/:id/payments
func ApplyBillPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	var in BillPaymentDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.ApplyPayment(db, uint(id), billing.PaymentInput{
		Amount: in.Amount,
		Method: in.Method,
		Note:   in.Note,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// DELETE /api/bills/:id/payments/:paymentId (admin)
func DeleteBillPayment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}
	paymentID, err := c.ParamsInt("paymentId")
	if err != nil || paymentID <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payment id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	bill, err := billing.DeletePayment(db, uint(id), uint(paymentID))
	if err != nil {
		return err
	}
	return c.JSON(bill)
}

// DELETE /api/bills/:id (draft only; frees the sequence number for reuse)
func DeleteBill(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bill id")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	if err := billing.DeleteDraft(db, uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "bill deleted"})
}
