package storage

import (
	"errors"

	"journeatz-api/models"
)

// ErrNotFound is the explicit absence value: lookups for a missing id return
// it rather than an empty row or a generic failure.
var ErrNotFound = errors.New("not found")

// ErrInvalid wraps required-field validation failures on create.
var ErrInvalid = errors.New("invalid input")

// OrderFilter narrows ListOrders. Zero value lists everything.
type OrderFilter struct {
	CustomerID string
	KitchenID  string
	DriverID   string
	Status     models.OrderStatus
	Unassigned bool // only orders with no driver assigned
}

// Store is the data-access contract: one get-by-id, one list and one create
// per entity, plus partial updates where the API needs them. Implementations
// must report absence as ErrNotFound, including on update of a missing id.
type Store interface {
	// Users
	GetUser(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]models.User, error)
	CreateUser(u *models.User) error

	// Drivers
	GetDriver(id string) (*models.Driver, error)
	GetDriverByUser(userID string) (*models.Driver, error)
	ListDrivers() ([]models.Driver, error)
	CreateDriver(d *models.Driver) error
	UpdateDriver(id string, patch map[string]interface{}) (*models.Driver, error)

	// Kitchens
	GetKitchen(id string) (*models.Kitchen, error)
	GetKitchenByUser(userID string) (*models.Kitchen, error)
	ListKitchens() ([]models.Kitchen, error)
	CreateKitchen(k *models.Kitchen) error
	UpdateKitchen(id string, patch map[string]interface{}) (*models.Kitchen, error)

	// Menu items
	GetMenuItem(id string) (*models.MenuItem, error)
	KitchenMenu(kitchenID string) ([]models.MenuItem, error)
	CreateMenuItem(m *models.MenuItem) error
	UpdateMenuItem(id string, patch map[string]interface{}) (*models.MenuItem, error)
	DeleteMenuItem(id string) error

	// Customers
	GetCustomer(id string) (*models.Customer, error)
	GetCustomerByUser(userID string) (*models.Customer, error)
	ListCustomers() ([]models.Customer, error)
	CreateCustomer(c *models.Customer) error

	// Orders
	GetOrder(id string) (*models.Order, error)
	ListOrders(f OrderFilter) ([]models.Order, error)
	CreateOrder(o *models.Order) error
	UpdateOrder(id string, patch map[string]interface{}) (*models.Order, error)
	AppendStatusHistory(h *models.OrderStatusHistory) error
}

var active Store

// Use installs the process-wide store. Called once from main, and from tests
// to swap in an in-memory database.
func Use(s Store) { active = s }

// Current returns the installed store.
func Current() Store { return active }
