package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog is one storefront article. Status hides a post without deleting it;
// likes and unlikes are simple counters.
type Blog struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	CoverImage  string    `json:"cover_image"`
	TextContent string    `gorm:"type:text;not null" json:"text_content"`
	Status      bool      `gorm:"not null;default:true" json:"status"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	Unlikes     int       `gorm:"not null;default:0" json:"unlikes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
