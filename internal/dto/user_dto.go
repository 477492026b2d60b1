package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Name     string  `json:"name"     validate:"required,min=1,max=120"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role"     validate:"required,oneof=admin cashier customer"`
	ShopID   *string `json:"shop_id"  validate:"omitnil,uuid"`
}

// UpdateUserRequest merges only the supplied fields; omitted fields are left
// untouched, and a present-but-empty value fails validation.
type UpdateUserRequest struct {
	Name         *string `json:"name"           validate:"omitnil,min=1,max=120"`
	Email        *string `json:"email"          validate:"omitnil,email"`
	Password     *string `json:"password"       validate:"omitnil,min=6"`
	Role         *string `json:"role"           validate:"omitnil,oneof=admin cashier customer"`
	TwoFAEnabled *bool   `json:"two_fa_enabled"`
	ShopID       *string `json:"shop_id"        validate:"omitnil,uuid"`
}

type UserFilter struct {
	Role string `form:"role"`
	Name string `form:"name"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserResponse never carries password fields.
type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	TwoFAEnabled bool    `json:"two_fa_enabled"`
	ShopID       *string `json:"shop_id"`
	CreatedAt    string  `json:"created_at"`
}
