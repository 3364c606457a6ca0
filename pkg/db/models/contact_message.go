package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage keeps a copy of every contact-form submission alongside the
// forwarded email.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	Subject   string    `gorm:"column:subject;not null" json:"subject"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
