package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer and Driver are role-specific extension rows: a user with the
// matching role owns at most one of each.

type Customer struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;index"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name        string    `json:"name" gorm:"not null"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DriverStatus tracks whether a driver is taking deliveries
type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

type Driver struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	UserID        string       `json:"user_id" gorm:"not null;index"`
	User          User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name          string       `json:"name" gorm:"not null"`
	PhoneNumber   string       `json:"phone_number"`
	LicenseNumber string       `json:"license_number"`
	VehicleType   string       `json:"vehicle_type"`
	Status        DriverStatus `json:"status" gorm:"default:'active'"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
