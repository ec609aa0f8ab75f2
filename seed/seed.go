// Package seed provisions demo accounts as real database rows. It replaces
// the old client-side fallback that invented sessions for a hard-coded
// credential list: demo users go through the same signup and login paths as
// everyone else, and the seed only runs when DEMO_SEED=true.
package seed

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"journeatz-api/models"
	"journeatz-api/storage"
)

type demoAccount struct {
	Email    string
	Password string
	Role     models.UserRole
	Name     string
}

var demoAccounts = []demoAccount{
	{Email: "admin@journeatz.com", Password: "Admin2020!", Role: models.RoleAdmin, Name: "Demo Admin"},
	{Email: "driver@journeatz.com", Password: "Driver2020!", Role: models.RoleDriver, Name: "Demo Driver"},
	{Email: "kitchen@journeatz.com", Password: "Kitchen2020!", Role: models.RoleKitchen, Name: "Demo Kitchen"},
	{Email: "customer@journeatz.com", Password: "Customer2020!", Role: models.RoleCustomer, Name: "Demo Customer"},
}

// Demo creates the demo users with role profiles and a stocked menu for the
// demo kitchen. Idempotent: accounts that already exist are left alone.
func Demo(store storage.Store) error {
	for _, acc := range demoAccounts {
		if _, err := store.GetUserByEmail(acc.Email); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acc.Email, err)
		}
		user := &models.User{
			Email:          acc.Email,
			PasswordHash:   string(hash),
			Role:           acc.Role,
			Name:           acc.Name,
			EmailConfirmed: true,
		}
		if err := store.CreateUser(user); err != nil {
			return fmt.Errorf("seed %s: %w", acc.Email, err)
		}
		if err := seedProfile(store, user); err != nil {
			return fmt.Errorf("seed %s profile: %w", acc.Email, err)
		}
	}
	return nil
}

func seedProfile(store storage.Store, u *models.User) error {
	switch u.Role {
	case models.RoleCustomer:
		return store.CreateCustomer(&models.Customer{
			UserID:      u.ID,
			Name:        u.Name,
			PhoneNumber: "555-0104",
			Address:     "1 Main St",
		})
	case models.RoleDriver:
		return store.CreateDriver(&models.Driver{
			UserID:        u.ID,
			Name:          u.Name,
			PhoneNumber:   "555-0102",
			LicenseNumber: "D-104482",
			VehicleType:   "scooter",
			Status:        models.DriverActive,
		})
	case models.RoleKitchen:
		kitchen := &models.Kitchen{
			UserID:        u.ID,
			Name:          "JournEatz Test Kitchen",
			Address:       "42 Market Ave",
			ContactNumber: "555-0103",
			CuisineType:   "thai",
			IsOpen:        true,
		}
		if err := store.CreateKitchen(kitchen); err != nil {
			return err
		}
		return seedMenu(store, kitchen.ID)
	default:
		return nil
	}
}

func seedMenu(store storage.Store, kitchenID string) error {
	items := []models.MenuItem{
		{KitchenID: kitchenID, Name: "Pad Thai", Description: "Rice noodles, tamarind, peanuts", Price: 1299, Category: "mains", Status: models.ItemAvailable},
		{KitchenID: kitchenID, Name: "Green Curry", Description: "Coconut milk, basil, bamboo shoots", Price: 1399, Category: "mains", Status: models.ItemAvailable},
		{KitchenID: kitchenID, Name: "Spring Rolls", Description: "Crispy vegetable rolls", Price: 599, Category: "starters", Status: models.ItemAvailable},
		{KitchenID: kitchenID, Name: "Mango Sticky Rice", Description: "Seasonal", Price: 749, Category: "desserts", Status: models.ItemUnavailable},
	}
	for i := range items {
		if err := store.CreateMenuItem(&items[i]); err != nil {
			return err
		}
	}
	return nil
}
