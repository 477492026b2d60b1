package model

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a tenant: customers, products and cashiers all hang off a shop.
type Shop struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"index;not null"`
	Address   string     `gorm:"not null"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner *User `gorm:"foreignKey:OwnerID"`
}
