package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification channel types and delivery states.
const (
	NotificationEmail = "email"
	NotificationSMS   = "sms"
	NotificationInApp = "in-app"

	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification is a queued message to a user. Rows start "pending"; the
// delivery worker moves them to "sent" or "failed".
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Type      string    `gorm:"type:varchar(10);not null"` // "email" | "sms" | "in-app"
	Message   string    `gorm:"type:text;not null"`
	Status    string    `gorm:"not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}
