package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusInitiated OrderStatus = "initiated"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusSuccess   OrderStatus = "success"
	OrderStatusDeclined  OrderStatus = "declined"
)

// Order is one settled line item. All rows produced from one checkout share
// the same payment reference; there is no parent order aggregate.
type Order struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	Reference    string      `gorm:"not null;uniqueIndex:idx_order_reference_product" json:"reference"`
	ProductID    string      `gorm:"type:uuid;not null;uniqueIndex:idx_order_reference_product" json:"product_id"`
	ProductName  string      `gorm:"not null" json:"product_name"`
	CustomerName string      `gorm:"not null" json:"customer_name"`
	Amount       float64     `gorm:"not null" json:"amount"`
	UserID       string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Quantity     int         `gorm:"not null;default:1" json:"quantity"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'initiated'" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ParseOrderStatus maps a request string to a known order status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusInitiated:
		return OrderStatusInitiated, nil
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusSuccess:
		return OrderStatusSuccess, nil
	case OrderStatusDeclined:
		return OrderStatusDeclined, nil
	default:
		return "", errors.New("invalid order status")
	}
}
