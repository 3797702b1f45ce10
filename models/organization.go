package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization lives in the public schema; every organization owns one tenant
// schema holding its buyers, orders, bills and stock.
type Organization struct {
	Id          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;unique"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	GSTIN       string `json:"gstin"`
	PhoneNumber string `json:"phone_number"`
	OwnerId     string `json:"-"`
	Owner       User   `json:"owner" gorm:"foreignKey:OwnerId;references:Id"`
	SchemaName  string `json:"-" gorm:"unique;not null"`
}

func (org *Organization) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	org.Id = uuid.NewString()
	return
}
