package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterStatus string

const (
	NewsletterStatusDraft     NewsletterStatus = "draft"
	NewsletterStatusScheduled NewsletterStatus = "scheduled"
	NewsletterStatusSent      NewsletterStatus = "sent"
	NewsletterStatusFailed    NewsletterStatus = "failed"
)

type Newsletter struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Subject       string           `gorm:"not null" json:"subject"`
	Content       string           `gorm:"type:text;not null" json:"content"`
	HTMLContent   string           `gorm:"type:text;not null" json:"html_content"`
	Template      string           `gorm:"not null;default:'basic'" json:"template"`
	SendToAll     bool             `gorm:"not null;default:false" json:"send_to_all"`
	Status        NewsletterStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	SentAt        *time.Time       `json:"sent_at"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
	SentCount     int              `gorm:"not null;default:0" json:"sent_count"`
	FailedCount   int              `gorm:"not null;default:0" json:"failed_count"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (n *Newsletter) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
