package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the unified order lifecycle enumeration
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusReady      OrderStatus = "ready"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID              string               `json:"id" gorm:"primaryKey"`
	CustomerID      string               `json:"customer_id" gorm:"not null;index"`
	Customer        Customer             `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	KitchenID       string               `json:"kitchen_id" gorm:"not null;index"`
	Kitchen         Kitchen              `json:"kitchen,omitempty" gorm:"foreignKey:KitchenID"`
	DriverID        *string              `json:"driver_id" gorm:"index"`
	Driver          *Driver              `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	Items           []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount     int64                `json:"total_amount" gorm:"not null"` // minor currency units
	DeliveryAddress string               `json:"delivery_address" gorm:"not null"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is a normalized order line. Price and Name are snapshots taken
// at order time so later menu edits don't rewrite past orders. MenuItemID is
// optional: lines may be submitted opaquely as name + quantity.
type OrderItem struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	OrderID    string    `json:"order_id" gorm:"not null;index"`
	MenuItemID *string   `json:"menu_item_id"`
	Name       string    `json:"name" gorm:"not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      int64     `json:"price"` // unit price in minor units; 0 when unknown
	CreatedAt  time.Time `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderStatusHistory records every status change on an order
type OrderStatusHistory struct {
	ID         string      `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  string      `json:"changed_by"` // user ID that triggered the change
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
