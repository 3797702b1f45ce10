package controllers

import (
	"errors"
	"strings"

	"garment-billing-backend/database"
	"garment-billing-backend/middlewares"
	"garment-billing-backend/models"
	"garment-billing-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettingsUpdateDTO struct {
	BillPrefix             *string          `json:"bill_prefix" validate:"omitempty,min=1,max=16"`
	GSTRate                *decimal.Decimal `json:"gst_rate"`
	DefaultPaymentTermDays *int             `json:"default_payment_term_days" validate:"omitempty,gt=0"`
	DefaultHSNCode         *string          `json:"default_hsn_code" validate:"omitempty,max=16"`
	StateCode              *string          `json:"state_code" validate:"omitempty,max=4"`
	CompanyName            *string          `json:"company_name"`
	CompanyAddress         *string          `json:"company_address"`
	CompanyGSTIN           *string          `json:"company_gstin"`
}

type CompanyCreateDTO struct {
	Name      string `json:"name" validate:"required,min=1"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin" validate:"omitempty,max=20"`
	StateCode string `json:"state_code" validate:"omitempty,max=4"`
	IsDefault bool   `json:"is_default"`
}

type CompanyUpdateDTO struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	Address   *string `json:"address"`
	GSTIN     *string `json:"gstin" validate:"omitempty,max=20"`
	StateCode *string `json:"state_code" validate:"omitempty,max=4"`
	IsDefault *bool   `json:"is_default"`
}

// GET /api/settings
func GetSettings(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var settings models.Settings
	if err := db.First(&settings).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "settings missing for tenant")
	}
	var companies []models.CompanyProfile
	db.Order("id ASC").Find(&companies)

	return c.JSON(fiber.Map{
		"settings":  settings,
		"companies": companies,
	})
}

// PUT /api/settings
func UpdateSettings(c *fiber.Ctx) error {
	var in SettingsUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	if in.GSTRate != nil && (in.GSTRate.IsNegative() || in.GSTRate.GreaterThan(decimal.NewFromInt(100))) {
		return fiber.NewError(fiber.StatusBadRequest, "gst_rate must be between 0 and 100")
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var settings models.Settings
	if err := db.First(&settings).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "settings missing for tenant")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(settings)
	}
	if err := db.Model(&settings).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update settings")
	}

	db.First(&settings)
	return c.JSON(settings)
}

// POST /api/companies
func CreateCompany(c *fiber.Ctx) error {
	var in CompanyCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	if in.IsDefault {
		if err := db.Model(&models.CompanyProfile{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not clear default company")
		}
	}

	company := models.CompanyProfile{
		Name:      in.Name,
		Address:   in.Address,
		GSTIN:     in.GSTIN,
		StateCode: in.StateCode,
		IsDefault: in.IsDefault,
	}
	if err := db.Create(&company).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create company")
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// GET /api/companies
func GetCompanies(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var companies []models.CompanyProfile
	db.Order("id ASC").Find(&companies)
	return c.JSON(fiber.Map{
		"companies": companies,
		"message":   "success",
	})
}

// PUT /api/companies/:id
func UpdateCompany(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing company id in path")
	}

	var in CompanyUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.CompanyProfile
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "company not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.IsDefault != nil && *in.IsDefault {
		if err := db.Model(&models.CompanyProfile{}).Where("id <> ?", existing.ID).Update("is_default", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not clear default company")
		}
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update company")
	}

	db.First(&existing, "id = ?", id)
	return c.JSON(existing)
}
