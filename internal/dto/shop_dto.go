package dto

type CreateShopRequest struct {
	Name    string  `json:"name"     validate:"required,min=1,max=120"`
	Address string  `json:"address"  validate:"required,min=1"`
	OwnerID *string `json:"owner_id" validate:"omitnil,uuid"`
}

type UpdateShopRequest struct {
	Name    *string `json:"name"     validate:"omitnil,min=1,max=120"`
	Address *string `json:"address"  validate:"omitnil,min=1"`
	OwnerID *string `json:"owner_id" validate:"omitnil,uuid"`
}

type ShopFilter struct {
	Name string `form:"name"`
}

type ShopResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	OwnerID   *string `json:"owner_id"`
	CreatedAt string  `json:"created_at"`
}
