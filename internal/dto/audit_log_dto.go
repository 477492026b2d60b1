package dto

type CreateAuditLogRequest struct {
	UserID     string `json:"user_id"     validate:"required,uuid"`
	Action     string `json:"action"      validate:"required,min=1"`
	EntityType string `json:"entity_type" validate:"required,min=1"`
	EntityID   string `json:"entity_id"   validate:"required,min=1"`
	Details    string `json:"details"     validate:"required,min=1"`
}

type UpdateAuditLogRequest struct {
	Action     *string `json:"action"      validate:"omitnil,min=1"`
	EntityType *string `json:"entity_type" validate:"omitnil,min=1"`
	EntityID   *string `json:"entity_id"   validate:"omitnil,min=1"`
	Details    *string `json:"details"     validate:"omitnil,min=1"`
}

type AuditLogFilter struct {
	UserID     string `form:"user_id"`
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
}

type AuditLogResponse struct {
	ID         string  `json:"id"`
	UserID     *string `json:"user_id"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	Details    string  `json:"details"`
	CreatedAt  string  `json:"created_at"`
}
