package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductTransaction is a sale line item attached to a debt transaction.
// PriceAtSale snapshots the product price at posting time so later price
// changes do not rewrite history.
type ProductTransaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtTransactionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity          int             `gorm:"not null"`
	PriceAtSale       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
