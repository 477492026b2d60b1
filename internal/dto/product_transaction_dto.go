package dto

import "github.com/shopspring/decimal"

type CreateProductTransactionRequest struct {
	DebtTransactionID string          `json:"debt_transaction_id" validate:"required,uuid"`
	ProductID         string          `json:"product_id"          validate:"required,uuid"`
	Quantity          int             `json:"quantity"            validate:"required,gt=0"`
	PriceAtSale       decimal.Decimal `json:"price_at_sale"       validate:"required"`
}

type UpdateProductTransactionRequest struct {
	DebtTransactionID *string          `json:"debt_transaction_id" validate:"omitnil,uuid"`
	ProductID         *string          `json:"product_id"          validate:"omitnil,uuid"`
	Quantity          *int             `json:"quantity"            validate:"omitnil,gt=0"`
	PriceAtSale       *decimal.Decimal `json:"price_at_sale"`
}

type ProductTransactionFilter struct {
	DebtTransactionID string `form:"debt_transaction_id"`
	ProductID         string `form:"product_id"`
}

type ProductTransactionResponse struct {
	ID                string          `json:"id"`
	DebtTransactionID string          `json:"debt_transaction_id"`
	ProductID         string          `json:"product_id"`
	Quantity          int             `json:"quantity"`
	PriceAtSale       decimal.Decimal `json:"price_at_sale"`
}
