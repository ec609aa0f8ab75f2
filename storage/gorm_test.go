package storage

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"journeatz-api/models"
)

var dbSeq int

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Driver{}, &models.Kitchen{}, &models.MenuItem{},
		&models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.OrderStatusHistory{},
	))
	return NewGorm(db)
}

func seedUser(t *testing.T, s *GormStore, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", Role: role, Name: "test"}
	require.NoError(t, s.CreateUser(u))
	return u
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUser("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserAssignsFreshID(t *testing.T) {
	s := newTestStore(t)
	a := seedUser(t, s, "a@example.com", models.RoleCustomer)
	b := seedUser(t, s, "b@example.com", models.RoleCustomer)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := s.GetUserByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestStore(t)
	err := s.CreateUser(&models.User{Email: "", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrInvalid)

	err = s.CreateUser(&models.User{Email: "u@example.com", PasswordHash: "x", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestKitchenMenuReturnsExactlyItsItems(t *testing.T) {
	s := newTestStore(t)
	u1 := seedUser(t, s, "k1@example.com", models.RoleKitchen)
	u2 := seedUser(t, s, "k2@example.com", models.RoleKitchen)

	k1 := &models.Kitchen{UserID: u1.ID, Name: "K1"}
	k2 := &models.Kitchen{UserID: u2.ID, Name: "K2"}
	require.NoError(t, s.CreateKitchen(k1))
	require.NoError(t, s.CreateKitchen(k2))

	require.NoError(t, s.CreateMenuItem(&models.MenuItem{KitchenID: k1.ID, Name: "Pad Thai", Price: 1299}))
	require.NoError(t, s.CreateMenuItem(&models.MenuItem{KitchenID: k1.ID, Name: "Green Curry", Price: 1399}))
	require.NoError(t, s.CreateMenuItem(&models.MenuItem{KitchenID: k2.ID, Name: "Burger", Price: 999}))

	menu, err := s.KitchenMenu(k1.ID)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	for _, it := range menu {
		assert.Equal(t, k1.ID, it.KitchenID)
	}

	empty, err := s.KitchenMenu("no-such-kitchen")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func seedOrder(t *testing.T, s *GormStore) *models.Order {
	t.Helper()
	cu := seedUser(t, s, "cust@example.com", models.RoleCustomer)
	ku := seedUser(t, s, "kitch@example.com", models.RoleKitchen)
	customer := &models.Customer{UserID: cu.ID, Name: "C"}
	kitchen := &models.Kitchen{UserID: ku.ID, Name: "K"}
	require.NoError(t, s.CreateCustomer(customer))
	require.NoError(t, s.CreateKitchen(kitchen))

	order := &models.Order{
		CustomerID:      customer.ID,
		KitchenID:       kitchen.ID,
		Items:           []models.OrderItem{{Name: "Pad Thai", Quantity: 2, Price: 1299}},
		TotalAmount:     2598,
		DeliveryAddress: "1 Main St",
	}
	require.NoError(t, s.CreateOrder(order))
	return order
}

func TestCreateOrderDefaultsAndValidates(t *testing.T) {
	s := newTestStore(t)
	order := seedOrder(t, s)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)

	// dangling references are rejected
	err := s.CreateOrder(&models.Order{
		CustomerID:      "ghost",
		KitchenID:       order.KitchenID,
		Items:           []models.OrderItem{{Name: "x", Quantity: 1}},
		TotalAmount:     1,
		DeliveryAddress: "y",
	})
	assert.ErrorIs(t, err, ErrInvalid)

	err = s.CreateOrder(&models.Order{
		CustomerID:      order.CustomerID,
		KitchenID:       order.KitchenID,
		TotalAmount:     1,
		DeliveryAddress: "y",
	})
	assert.ErrorIs(t, err, ErrInvalid, "no items")
}

func TestUpdateOrderPartialPatch(t *testing.T) {
	s := newTestStore(t)
	order := seedOrder(t, s)

	updated, err := s.UpdateOrder(order.ID, map[string]interface{}{"status": models.StatusInProgress})
	require.NoError(t, err)

	// only the named field changed
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, order.TotalAmount, updated.TotalAmount)
	assert.Equal(t, order.DeliveryAddress, updated.DeliveryAddress)
	assert.Equal(t, order.CustomerID, updated.CustomerID)
	assert.Equal(t, order.KitchenID, updated.KitchenID)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Pad Thai", updated.Items[0].Name)
}

func TestUpdateOrderMissingIDIsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateOrder("missing", map[string]interface{}{"status": models.StatusCancelled})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersFilters(t *testing.T) {
	s := newTestStore(t)
	order := seedOrder(t, s)

	byCustomer, err := s.ListOrders(OrderFilter{CustomerID: order.CustomerID})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)

	unassigned, err := s.ListOrders(OrderFilter{Unassigned: true})
	require.NoError(t, err)
	assert.Len(t, unassigned, 1)

	none, err := s.ListOrders(OrderFilter{Status: models.StatusDelivered})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteMenuItem(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s, "k@example.com", models.RoleKitchen)
	kitchen := &models.Kitchen{UserID: u.ID, Name: "K"}
	require.NoError(t, s.CreateKitchen(kitchen))
	item := &models.MenuItem{KitchenID: kitchen.ID, Name: "Soup", Price: 499}
	require.NoError(t, s.CreateMenuItem(item))

	require.NoError(t, s.DeleteMenuItem(item.ID))
	assert.ErrorIs(t, s.DeleteMenuItem(item.ID), ErrNotFound)
}
