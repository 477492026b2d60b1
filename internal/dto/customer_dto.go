package dto

type CreateCustomerRequest struct {
	Name        string `json:"name"         validate:"required,min=1,max=120"`
	ContactInfo string `json:"contact_info" validate:"required,min=1"`
	Status      string `json:"status"       validate:"omitempty,oneof=active inactive"`
	ShopID      string `json:"shop_id"      validate:"required,uuid"`
}

type UpdateCustomerRequest struct {
	Name        *string `json:"name"         validate:"omitnil,min=1,max=120"`
	ContactInfo *string `json:"contact_info" validate:"omitnil,min=1"`
	Status      *string `json:"status"       validate:"omitnil,oneof=active inactive"`
	ShopID      *string `json:"shop_id"      validate:"omitnil,uuid"`
}

type CustomerFilter struct {
	Name   string `form:"name"`
	Status string `form:"status"`
}

type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Status      string `json:"status"`
	ShopID      string `json:"shop_id"`
	CreatedAt   string `json:"created_at"`
}
