package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"journeatz-api/models"
)

// GormStore implements Store over a gorm connection (sqlite or postgres).
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *GormStore) GetUser(id string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) CreateUser(u *models.User) error {
	if u.Email == "" || u.PasswordHash == "" {
		return fmt.Errorf("%w: user requires email and password", ErrInvalid)
	}
	if _, err := models.ParseRole(string(u.Role)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.db.Create(u).Error
}

// ── Drivers ─────────────────────────────────────────────────────────────────

func (s *GormStore) GetDriver(id string) (*models.Driver, error) {
	var d models.Driver
	if err := s.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *GormStore) GetDriverByUser(userID string) (*models.Driver, error) {
	var d models.Driver
	if err := s.db.First(&d, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *GormStore) ListDrivers() ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.db.Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (s *GormStore) CreateDriver(d *models.Driver) error {
	if d.UserID == "" || d.Name == "" {
		return fmt.Errorf("%w: driver requires user_id and name", ErrInvalid)
	}
	return s.db.Create(d).Error
}

func (s *GormStore) UpdateDriver(id string, patch map[string]interface{}) (*models.Driver, error) {
	if err := s.applyPatch(&models.Driver{}, id, patch); err != nil {
		return nil, err
	}
	return s.GetDriver(id)
}

// ── Kitchens ────────────────────────────────────────────────────────────────

func (s *GormStore) GetKitchen(id string) (*models.Kitchen, error) {
	var k models.Kitchen
	if err := s.db.Preload("MenuItems").First(&k, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &k, nil
}

func (s *GormStore) GetKitchenByUser(userID string) (*models.Kitchen, error) {
	var k models.Kitchen
	if err := s.db.Preload("MenuItems").First(&k, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &k, nil
}

func (s *GormStore) ListKitchens() ([]models.Kitchen, error) {
	var kitchens []models.Kitchen
	if err := s.db.Find(&kitchens).Error; err != nil {
		return nil, err
	}
	return kitchens, nil
}

func (s *GormStore) CreateKitchen(k *models.Kitchen) error {
	if k.UserID == "" || k.Name == "" {
		return fmt.Errorf("%w: kitchen requires user_id and name", ErrInvalid)
	}
	return s.db.Create(k).Error
}

func (s *GormStore) UpdateKitchen(id string, patch map[string]interface{}) (*models.Kitchen, error) {
	if err := s.applyPatch(&models.Kitchen{}, id, patch); err != nil {
		return nil, err
	}
	return s.GetKitchen(id)
}

// ── Menu items ──────────────────────────────────────────────────────────────

func (s *GormStore) GetMenuItem(id string) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *GormStore) KitchenMenu(kitchenID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Where("kitchen_id = ?", kitchenID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) CreateMenuItem(m *models.MenuItem) error {
	if m.KitchenID == "" || m.Name == "" {
		return fmt.Errorf("%w: menu item requires kitchen_id and name", ErrInvalid)
	}
	if m.Price <= 0 {
		return fmt.Errorf("%w: menu item price must be positive", ErrInvalid)
	}
	return s.db.Create(m).Error
}

func (s *GormStore) UpdateMenuItem(id string, patch map[string]interface{}) (*models.MenuItem, error) {
	if err := s.applyPatch(&models.MenuItem{}, id, patch); err != nil {
		return nil, err
	}
	return s.GetMenuItem(id)
}

func (s *GormStore) DeleteMenuItem(id string) error {
	res := s.db.Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Customers ───────────────────────────────────────────────────────────────

func (s *GormStore) GetCustomer(id string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStore) GetCustomerByUser(userID string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStore) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *GormStore) CreateCustomer(c *models.Customer) error {
	if c.UserID == "" || c.Name == "" {
		return fmt.Errorf("%w: customer requires user_id and name", ErrInvalid)
	}
	return s.db.Create(c).Error
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *GormStore) GetOrder(id string) (*models.Order, error) {
	var o models.Order
	err := s.db.Preload("Items").Preload("StatusHistory").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *GormStore) ListOrders(f OrderFilter) ([]models.Order, error) {
	query := s.db.Preload("Items")
	if f.CustomerID != "" {
		query = query.Where("customer_id = ?", f.CustomerID)
	}
	if f.KitchenID != "" {
		query = query.Where("kitchen_id = ?", f.KitchenID)
	}
	if f.DriverID != "" {
		query = query.Where("driver_id = ?", f.DriverID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Unassigned {
		query = query.Where("driver_id IS NULL")
	}
	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder persists an order with its line items. The customer and
// kitchen references must exist.
func (s *GormStore) CreateOrder(o *models.Order) error {
	if o.CustomerID == "" || o.KitchenID == "" {
		return fmt.Errorf("%w: order requires customer_id and kitchen_id", ErrInvalid)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order requires at least one item", ErrInvalid)
	}
	if o.DeliveryAddress == "" {
		return fmt.Errorf("%w: order requires delivery_address", ErrInvalid)
	}
	if _, err := s.GetCustomer(o.CustomerID); err != nil {
		return fmt.Errorf("%w: customer %s does not exist", ErrInvalid, o.CustomerID)
	}
	if _, err := s.GetKitchen(o.KitchenID); err != nil {
		return fmt.Errorf("%w: kitchen %s does not exist", ErrInvalid, o.KitchenID)
	}
	if o.Status == "" {
		o.Status = models.StatusPending
	}
	return s.db.Create(o).Error
}

// UpdateOrder applies a partial patch. A missing id is ErrNotFound, not
// silent success.
func (s *GormStore) UpdateOrder(id string, patch map[string]interface{}) (*models.Order, error) {
	if err := s.applyPatch(&models.Order{}, id, patch); err != nil {
		return nil, err
	}
	return s.GetOrder(id)
}

func (s *GormStore) AppendStatusHistory(h *models.OrderStatusHistory) error {
	return s.db.Create(h).Error
}

// applyPatch updates the named columns on the row with the given id,
// reporting ErrNotFound when the row does not exist. Existence is checked
// first: RowsAffected is 0 for no-op patches too, so it can't distinguish
// a missing row from an unchanged one.
func (s *GormStore) applyPatch(model interface{}, id string, patch map[string]interface{}) error {
	if len(patch) == 0 {
		return fmt.Errorf("%w: empty patch", ErrInvalid)
	}
	var count int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return s.db.Model(model).Where("id = ?", id).Updates(patch).Error
}
