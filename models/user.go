package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleKitchen  UserRole = "kitchen"
	RoleDriver   UserRole = "driver"
	RoleAdmin    UserRole = "admin"
)

// ErrUnknownRole is returned whenever a non-empty role string is not one of
// the four enumerated roles. Unrecognized roles are an error, never a silent
// downgrade to customer.
var ErrUnknownRole = errors.New("unknown role: must be admin, driver, kitchen or customer")

// ParseRole maps a raw role string to a UserRole. The empty string defaults
// to customer; anything else unrecognized is ErrUnknownRole.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case "":
		return RoleCustomer, nil
	case RoleCustomer, RoleKitchen, RoleDriver, RoleAdmin:
		return UserRole(s), nil
	default:
		return "", ErrUnknownRole
	}
}

type User struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"not null"`
	Role           UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Name           string    `json:"name"`
	EmailConfirmed bool      `json:"email_confirmed" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
