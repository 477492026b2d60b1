package model

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicket is a user-filed issue. Status: "open" | "in_progress" | "closed".
type SupportTicket struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Subject     string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	Status      string    `gorm:"not null;default:'open'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User *User `gorm:"foreignKey:UserID"`
}
