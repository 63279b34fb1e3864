package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryStatusInitiated DeliveryStatus = "initiated"
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSentOut   DeliveryStatus = "sentout"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// Delivery is the single shipment record for one payment reference. OrderID
// holds the reference, and its unique index is the settlement idempotency
// guard: the row is inserted before order materialization, and a conflict
// means the reference has already been settled.
type Delivery struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string         `gorm:"not null;uniqueIndex" json:"order_id"`
	Address     string         `gorm:"not null" json:"address"`
	City        string         `gorm:"not null" json:"city"`
	State       string         `gorm:"not null" json:"state"`
	Country     string         `gorm:"not null" json:"country"`
	PostalCode  string         `json:"postal_code"`
	DeliveryFee float64        `gorm:"not null;default:0" json:"delivery_fee"`
	Status      DeliveryStatus `gorm:"type:varchar(20);not null;default:'initiated'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// ParseDeliveryStatus maps a request string to a known delivery status.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch DeliveryStatus(strings.ToLower(s)) {
	case DeliveryStatusInitiated:
		return DeliveryStatusInitiated, nil
	case DeliveryStatusPending:
		return DeliveryStatusPending, nil
	case DeliveryStatusSentOut:
		return DeliveryStatusSentOut, nil
	case DeliveryStatusDelivered:
		return DeliveryStatusDelivered, nil
	default:
		return "", errors.New("invalid delivery status")
	}
}
