package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a shop's catalog item. QuantityInStock is only mutated through
// guarded updates so a posting can never drive it below zero.
type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string          `gorm:"index;not null"`
	Brand           string          `gorm:"not null"`
	Category        string          `gorm:"not null"`
	Barcode         string          `gorm:"uniqueIndex;not null"`
	PricePerUnit    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	QuantityInStock int             `gorm:"not null;default:0"`
	Tax             decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ShopID          *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
}
