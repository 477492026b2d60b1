package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Debt transaction types.
const (
	DebtTypeCredit  = "credit"
	DebtTypePayment = "payment"
)

// DebtTransaction is a ledger entry recording a customer's credit or payment
// against a shop. When posted with line items, TotalAmount is derived from
// the items' quantity × price_at_sale and must stay consistent with them.
type DebtTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ShopID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type        string          `gorm:"type:varchar(10);not null"` // "credit" | "payment"
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      string          `gorm:"not null;default:'unpaid'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Customer *Customer            `gorm:"foreignKey:CustomerID"`
	Shop     *Shop                `gorm:"foreignKey:ShopID"`
	User     *User                `gorm:"foreignKey:UserID"`
	Items    []ProductTransaction `gorm:"foreignKey:DebtTransactionID"`
}
