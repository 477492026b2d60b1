package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records who did what to which entity. Append-only by convention:
// rows are written by the audit middleware and the debt posting transaction.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"not null"`
	EntityType string     `gorm:"index;not null"`
	EntityID   string
	Details    string `gorm:"type:text"`
	CreatedAt  time.Time

	User *User `gorm:"foreignKey:UserID"`
}
