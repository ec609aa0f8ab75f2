package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Kitchen struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"user_id" gorm:"not null;index"`
	User          User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name          string     `json:"name" gorm:"not null"`
	Address       string     `json:"address"`
	ContactNumber string     `json:"contact_number"`
	CuisineType   string     `json:"cuisine_type"`
	IsOpen        bool       `json:"is_open" gorm:"default:true"`
	MenuItems     []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:KitchenID"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (k *Kitchen) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}

// MenuItemStatus marks an item orderable or not
type MenuItemStatus string

const (
	ItemAvailable   MenuItemStatus = "available"
	ItemUnavailable MenuItemStatus = "unavailable"
)

type MenuItem struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	KitchenID   string         `json:"kitchen_id" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       int64          `json:"price" gorm:"not null"` // minor currency units (cents)
	Category    string         `json:"category"`
	Status      MenuItemStatus `json:"status" gorm:"default:'available'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
