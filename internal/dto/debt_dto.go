package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DebtItemRequest is one sale line in an atomic credit posting. The price is
// never taken from the client; it is snapshotted from the product row.
type DebtItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

// CreateDebtTransactionRequest covers both shapes of POST /debt-transactions:
// a bare ledger entry (TotalAmount required, no Items) and an atomic credit
// posting (Items present, TotalAmount derived server-side and ignored).
type CreateDebtTransactionRequest struct {
	CustomerID  string            `json:"customer_id"  validate:"required,uuid"`
	ShopID      string            `json:"shop_id"      validate:"required,uuid"`
	UserID      *string           `json:"user_id"      validate:"omitnil,uuid"`
	Type        string            `json:"type"         validate:"required,oneof=credit payment"`
	TotalAmount *decimal.Decimal  `json:"total_amount"`
	Status      string            `json:"status"       validate:"omitempty,oneof=unpaid partial paid"`
	Items       []DebtItemRequest `json:"items"        validate:"omitempty,dive"`
}

type UpdateDebtTransactionRequest struct {
	Type        *string          `json:"type"         validate:"omitnil,oneof=credit payment"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Status      *string          `json:"status"       validate:"omitnil,oneof=unpaid partial paid"`
}

type DebtTransactionFilter struct {
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	Type       string `form:"type"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DebtItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Product     string          `json:"product,omitempty"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

type DebtTransactionResponse struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	ShopID      string             `json:"shop_id"`
	UserID      string             `json:"user_id"`
	Type        string             `json:"type"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	Items       []DebtItemResponse `json:"items,omitempty"`
	CreatedAt   string             `json:"created_at"`
}
