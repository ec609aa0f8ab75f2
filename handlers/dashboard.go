package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journeatz-api/models"
	"journeatz-api/storage"
)

// Dashboard renders exactly one of four role variants. An unrecognized role
// is an explicit 403, never a fallback to the customer view.
func Dashboard(c *gin.Context) {
	switch mwRole(c) {
	case models.RoleAdmin:
		adminDashboard(c)
	case models.RoleKitchen:
		kitchenDashboard(c)
	case models.RoleDriver:
		driverDashboard(c)
	case models.RoleCustomer:
		customerDashboard(c)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": models.ErrUnknownRole.Error()})
	}
}

func adminDashboard(c *gin.Context) {
	store := storage.Current()
	users, err := store.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	orders, err := store.ListOrders(storage.OrderFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	usersByRole := map[string]int{}
	for _, u := range users {
		usersByRole[string(u.Role)]++
	}
	summary, revenue := summarizeOrders(orders)

	c.JSON(http.StatusOK, gin.H{
		"role":          models.RoleAdmin,
		"users_by_role": usersByRole,
		"order_summary": summary,
		"total_revenue": revenue,
		"order_count":   len(orders),
	})
}

func kitchenDashboard(c *gin.Context) {
	store := storage.Current()
	kitchen, err := store.GetKitchenByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No kitchen found for your account")
		return
	}
	orders, err := store.ListOrders(storage.OrderFilter{KitchenID: kitchen.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	summary, _ := summarizeOrders(orders)

	c.JSON(http.StatusOK, gin.H{
		"role":          models.RoleKitchen,
		"kitchen":       kitchen,
		"order_summary": summary,
		"orders":        orders,
	})
}

func driverDashboard(c *gin.Context) {
	store := storage.Current()
	driver, err := store.GetDriverByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No driver profile for your account")
		return
	}
	available, err := store.ListOrders(storage.OrderFilter{
		Status:     models.StatusReady,
		Unassigned: true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	mine, err := store.ListOrders(storage.OrderFilter{DriverID: driver.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":             models.RoleDriver,
		"driver":           driver,
		"available_orders": available,
		"my_deliveries":    mine,
	})
}

func customerDashboard(c *gin.Context) {
	store := storage.Current()
	profile, err := store.GetCustomerByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No customer profile for your account")
		return
	}
	kitchens, err := store.ListKitchens()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	open := kitchens[:0]
	for _, k := range kitchens {
		if k.IsOpen {
			open = append(open, k)
		}
	}
	orders, err := store.ListOrders(storage.OrderFilter{CustomerID: profile.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":          models.RoleCustomer,
		"customer":      profile,
		"open_kitchens": open,
		"my_orders":     orders,
	})
}

// summarizeOrders groups counts by status and totals revenue from delivered
// orders, in minor units.
func summarizeOrders(orders []models.Order) (map[string]int, int64) {
	summary := map[string]int{}
	var revenue int64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			revenue += o.TotalAmount
		}
	}
	return summary, revenue
}
