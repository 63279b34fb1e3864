package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	HowToUse    string    `gorm:"default:'Apply this product'" json:"howtouse"`
	Ingredients string    `json:"ingredients"`
	Benefits    string    `json:"benefits"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	UserID      string    `gorm:"type:uuid" json:"user_id"`
	TotalStock  int       `gorm:"not null;default:1" json:"total_stock"`
	Status      bool      `gorm:"not null;default:true" json:"status"`
	Images      []Image   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Image is one attachment of a product. Products carry an unordered set of
// image URLs; no sort key is kept.
type Image struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
