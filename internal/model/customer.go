package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a shop's debtor. ContactInfo is free-form (phone or address).
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	ContactInfo string    `gorm:"not null"`
	Status      string    `gorm:"not null;default:'active'"`
	ShopID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Shop *Shop `gorm:"foreignKey:ShopID"`
}
