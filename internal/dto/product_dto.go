package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name            string          `json:"name"              validate:"required,min=1,max=120"`
	Brand           string          `json:"brand"             validate:"required,min=1"`
	Category        string          `json:"category"          validate:"required,min=1"`
	Barcode         string          `json:"barcode"           validate:"required,min=1,max=64"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"    validate:"required"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"min=0"`
	Tax             decimal.Decimal `json:"tax"`
	ShopID          *string         `json:"shop_id"           validate:"omitnil,uuid"`
}

type UpdateProductRequest struct {
	Name            *string          `json:"name"              validate:"omitnil,min=1,max=120"`
	Brand           *string          `json:"brand"             validate:"omitnil,min=1"`
	Category        *string          `json:"category"          validate:"omitnil,min=1"`
	Barcode         *string          `json:"barcode"           validate:"omitnil,min=1,max=64"`
	PricePerUnit    *decimal.Decimal `json:"price_per_unit"`
	QuantityInStock *int             `json:"quantity_in_stock" validate:"omitnil,min=0"`
	Tax             *decimal.Decimal `json:"tax"`
	ShopID          *string          `json:"shop_id"           validate:"omitnil,uuid"`
}

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Category        string          `json:"category"`
	Barcode         string          `json:"barcode"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Tax             decimal.Decimal `json:"tax"`
	ShopID          *string         `json:"shop_id"`
	CreatedAt       string          `json:"created_at"`
}

// PriceLookupResponse is returned by the public barcode price endpoint.
type PriceLookupResponse struct {
	Name            string          `json:"name"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Category        string          `json:"category"`
}
