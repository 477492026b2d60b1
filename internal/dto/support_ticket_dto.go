package dto

type CreateSupportTicketRequest struct {
	UserID      string `json:"user_id"     validate:"required,uuid"`
	Subject     string `json:"subject"     validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
	Status      string `json:"status"      validate:"omitempty,oneof=open in_progress closed"`
}

type UpdateSupportTicketRequest struct {
	Subject     *string `json:"subject"     validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Status      *string `json:"status"      validate:"omitnil,oneof=open in_progress closed"`
}

type SupportTicketFilter struct {
	UserID string `form:"user_id"`
	Status string `form:"status"`
}

type SupportTicketResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
