package database

import (
	"fmt"

	"garment-billing-backend/config"
	"garment-billing-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg config.Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		config.LogError(config.GetLogger(), "db.go", "Connect", "gorm.Open", nil, err)
		panic("could not connect to database")
	}
}

// AutoMigrate migrates the public-schema tables shared across tenants.
func AutoMigrate() {
	if err := DB.AutoMigrate(&models.User{}, &models.Organization{}); err != nil {
		config.LogError(config.GetLogger(), "db.go", "AutoMigrate", "public schema", nil, err)
		panic("public schema migration failed")
	}
}
