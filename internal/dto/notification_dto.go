package dto

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	Type    string `json:"type"    validate:"required,oneof=email sms in-app"`
	Message string `json:"message" validate:"required,min=1"`
	Status  string `json:"status"  validate:"omitempty,oneof=pending sent failed"`
}

type UpdateNotificationRequest struct {
	Type    *string `json:"type"    validate:"omitnil,oneof=email sms in-app"`
	Message *string `json:"message" validate:"omitnil,min=1"`
	Status  *string `json:"status"  validate:"omitnil,oneof=pending sent failed"`
}

type NotificationFilter struct {
	UserID string `form:"user_id"`
	Type   string `form:"type"`
	Status string `form:"status"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
