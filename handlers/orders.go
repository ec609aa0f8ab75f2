package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journeatz-api/models"
	"journeatz-api/statemachine"
	"journeatz-api/storage"
)

type PlaceOrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Price      int64  `json:"price" binding:"omitempty,gt=0"` // unit price, minor units
}

type PlaceOrderRequest struct {
	CustomerID      string           `json:"customer_id"` // optional; must be the caller's own profile unless admin
	KitchenID       string           `json:"kitchen_id" binding:"required"`
	DeliveryAddress string           `json:"delivery_address" binding:"required"`
	TotalAmount     int64            `json:"total_amount" binding:"required,gt=0"`
	Items           []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new order. Lines referencing a menu item snapshot its
// name and price; when every line's price is known the submitted total must
// equal the sum of price times quantity.
func PlaceOrder(c *gin.Context) {
	store := storage.Current()

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, ok := resolveCustomerID(c, req.CustomerID)
	if !ok {
		return
	}

	kitchen, err := store.GetKitchen(req.KitchenID)
	if err != nil {
		respondStoreError(c, err, "Kitchen not found")
		return
	}
	if !kitchen.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kitchen is currently closed"})
		return
	}

	var items []models.OrderItem
	pricesKnown := true
	var total int64
	for _, line := range req.Items {
		item := models.OrderItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		}
		if line.MenuItemID != "" {
			menuItem, err := store.GetMenuItem(line.MenuItemID)
			if err != nil {
				respondStoreError(c, err, "Menu item not found: "+line.MenuItemID)
				return
			}
			if menuItem.KitchenID != req.KitchenID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' does not belong to this kitchen"})
				return
			}
			if menuItem.Status != models.ItemAvailable {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
				return
			}
			id := menuItem.ID
			item.MenuItemID = &id
			item.Name = menuItem.Name
			item.Price = menuItem.Price
		}
		if item.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each item needs a name or a menu_item_id"})
			return
		}
		if item.Price > 0 {
			total += item.Price * int64(line.Quantity)
		} else {
			pricesKnown = false
		}
		items = append(items, item)
	}

	// The total invariant is only checkable when every line has a price.
	if pricesKnown && total != req.TotalAmount {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "total_amount does not match the sum of line items",
			"expected": total,
			"got":      req.TotalAmount,
		})
		return
	}

	order := models.Order{
		CustomerID:      customerID,
		KitchenID:       req.KitchenID,
		Status:          models.StatusPending,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
	}
	if err := store.CreateOrder(&order); err != nil {
		respondStoreError(c, err, "Order could not be created")
		return
	}

	store.AppendStatusHistory(&models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: mwUserID(c),
		Note:      "Order placed",
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// resolveCustomerID maps the caller to a customer row. Admin may act for any
// existing customer; a customer may only act as themselves.
func resolveCustomerID(c *gin.Context, requested string) (string, bool) {
	store := storage.Current()
	if mwRole(c) == models.RoleAdmin {
		if requested == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required for admin-created orders"})
			return "", false
		}
		if _, err := store.GetCustomer(requested); err != nil {
			respondStoreError(c, err, "Customer not found")
			return "", false
		}
		return requested, true
	}
	profile, err := store.GetCustomerByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No customer profile for your account")
		return "", false
	}
	if requested != "" && requested != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "customer_id does not match your profile"})
		return "", false
	}
	return profile.ID, true
}

// ListOrders is role-scoped: admin sees everything, a customer their own
// orders, a kitchen its kitchen's, a driver their assigned deliveries.
func ListOrders(c *gin.Context) {
	store := storage.Current()
	filter := storage.OrderFilter{Status: models.OrderStatus(c.Query("status"))}

	switch mwRole(c) {
	case models.RoleAdmin:
		// unscoped
	case models.RoleCustomer:
		profile, err := store.GetCustomerByUser(mwUserID(c))
		if err != nil {
			respondStoreError(c, err, "No customer profile for your account")
			return
		}
		filter.CustomerID = profile.ID
	case models.RoleKitchen:
		kitchen, err := store.GetKitchenByUser(mwUserID(c))
		if err != nil {
			respondStoreError(c, err, "No kitchen found for your account")
			return
		}
		filter.KitchenID = kitchen.ID
	case models.RoleDriver:
		driver, err := store.GetDriverByUser(mwUserID(c))
		if err != nil {
			respondStoreError(c, err, "No driver profile for your account")
			return
		}
		if c.Query("available") == "true" {
			filter.Status = models.StatusReady
			filter.Unassigned = true
		} else {
			filter.DriverID = driver.ID
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": models.ErrUnknownRole.Error()})
		return
	}

	orders, err := store.ListOrders(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one order to a participant (its customer, kitchen
// or driver) or an admin.
func GetOrderDetail(c *gin.Context) {
	store := storage.Current()
	order, err := store.GetOrder(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}
	if !callerParticipates(c, order) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not involve you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func callerParticipates(c *gin.Context, order *models.Order) bool {
	store := storage.Current()
	userID := mwUserID(c)
	switch mwRole(c) {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		profile, err := store.GetCustomerByUser(userID)
		return err == nil && order.CustomerID == profile.ID
	case models.RoleKitchen:
		kitchen, err := store.GetKitchenByUser(userID)
		return err == nil && order.KitchenID == kitchen.ID
	case models.RoleDriver:
		driver, err := store.GetDriverByUser(userID)
		return err == nil && order.DriverID != nil && *order.DriverID == driver.ID
	}
	return false
}

type PatchOrderRequest struct {
	Status          *models.OrderStatus `json:"status"`
	DriverID        *string             `json:"driver_id"`
	DeliveryAddress *string             `json:"delivery_address"`
	Note            string              `json:"note"`
}

// PatchOrder applies a partial update. Status changes go through the state
// machine under the caller's role; a driver claims a ready order by patching
// driver_id to their own profile. Unnamed fields are left untouched.
func PatchOrder(c *gin.Context) {
	store := storage.Current()
	role := mwRole(c)
	userID := mwUserID(c)

	order, err := store.GetOrder(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	var req PatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == nil && req.DriverID == nil && req.DeliveryAddress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	patch := map[string]interface{}{}
	assignedDriver := order.DriverID

	if req.DriverID != nil {
		if !authorizeDriverAssignment(c, order, *req.DriverID) {
			return
		}
		patch["driver_id"] = *req.DriverID
		assignedDriver = req.DriverID
	}

	if req.DeliveryAddress != nil {
		if !authorizeAddressChange(c, order) {
			return
		}
		patch["delivery_address"] = *req.DeliveryAddress
	}

	if req.Status != nil {
		if !callerParticipatesForStatus(c, order, assignedDriver) {
			return
		}
		if err := statemachine.CanTransition(order.Status, *req.Status, role); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    order.Status,
				"requested":         *req.Status,
				"reason":            err.Error(),
				"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
			})
			return
		}
		patch["status"] = *req.Status
	}

	updated, err := store.UpdateOrder(order.ID, patch)
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	if req.Status != nil {
		store.AppendStatusHistory(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   *req.Status,
			ChangedBy:  userID,
			Note:       req.Note,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": updated})
}

// authorizeDriverAssignment gates driver_id patches: an admin may assign any
// existing driver; a driver may claim an unassigned ready order for
// themselves.
func authorizeDriverAssignment(c *gin.Context, order *models.Order, driverID string) bool {
	store := storage.Current()
	switch mwRole(c) {
	case models.RoleAdmin:
		if _, err := store.GetDriver(driverID); err != nil {
			respondStoreError(c, err, "Driver not found")
			return false
		}
		return true
	case models.RoleDriver:
		driver, err := store.GetDriverByUser(mwUserID(c))
		if err != nil {
			respondStoreError(c, err, "No driver profile for your account")
			return false
		}
		if driverID != driver.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Drivers can only assign themselves"})
			return false
		}
		if driver.Status != models.DriverActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Driver is inactive"})
			return false
		}
		if order.DriverID != nil && *order.DriverID != driver.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Order is already assigned to another driver"})
			return false
		}
		if order.Status != models.StatusReady {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only ready orders can be claimed"})
			return false
		}
		return true
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Only drivers or admins can assign a driver"})
		return false
	}
}

// authorizeAddressChange allows admin always, and the order's customer while
// the order is still pending.
func authorizeAddressChange(c *gin.Context, order *models.Order) bool {
	switch mwRole(c) {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		profile, err := storage.Current().GetCustomerByUser(mwUserID(c))
		if err != nil || order.CustomerID != profile.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
			return false
		}
		if order.Status != models.StatusPending {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Address can only change while the order is pending"})
			return false
		}
		return true
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to change the delivery address"})
		return false
	}
}

// callerParticipatesForStatus checks ownership for a status change, counting
// a driver who is assigning themselves in the same patch.
func callerParticipatesForStatus(c *gin.Context, order *models.Order, assignedDriver *string) bool {
	if mwRole(c) == models.RoleDriver {
		driver, err := storage.Current().GetDriverByUser(mwUserID(c))
		if err == nil && assignedDriver != nil && *assignedDriver == driver.ID {
			return true
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this order"})
		return false
	}
	if !callerParticipates(c, order) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not involve you"})
		return false
	}
	return true
}
