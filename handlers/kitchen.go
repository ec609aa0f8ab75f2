package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journeatz-api/models"
	"journeatz-api/storage"
)

// ── Kitchen profile ─────────────────────────────────────────────────────────

// GetMyKitchen fetches the kitchen owned by the logged-in user.
func GetMyKitchen(c *gin.Context) {
	kitchen, err := storage.Current().GetKitchenByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No kitchen found for your account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"kitchen": kitchen})
}

type UpdateKitchenRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
	CuisineType   *string `json:"cuisine_type"`
	IsOpen        *bool   `json:"is_open"`
}

// UpdateMyKitchen patches kitchen details, including the open/closed flag.
func UpdateMyKitchen(c *gin.Context) {
	store := storage.Current()
	kitchen, err := store.GetKitchenByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No kitchen found for your account")
		return
	}

	var req UpdateKitchenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}
	if req.ContactNumber != nil {
		patch["contact_number"] = *req.ContactNumber
	}
	if req.CuisineType != nil {
		patch["cuisine_type"] = *req.CuisineType
	}
	if req.IsOpen != nil {
		patch["is_open"] = *req.IsOpen
	}
	updated, err := store.UpdateKitchen(kitchen.ID, patch)
	if err != nil {
		respondStoreError(c, err, "Kitchen not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kitchen updated", "kitchen": updated})
}

// ── Menu management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gt=0"` // minor units
	Category    string `json:"category"`
}

// AddMenuItem adds a new item to the caller's kitchen menu.
func AddMenuItem(c *gin.Context) {
	store := storage.Current()
	kitchen, err := store.GetKitchenByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No kitchen found for your account")
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		KitchenID:   kitchen.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Status:      models.ItemAvailable,
	}
	if err := store.CreateMenuItem(&item); err != nil {
		respondStoreError(c, err, "Menu item could not be created")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

type UpdateMenuItemRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Price       *int64                 `json:"price"`
	Category    *string                `json:"category"`
	Status      *models.MenuItemStatus `json:"status"`
}

// UpdateMenuItem patches a menu item after verifying ownership.
func UpdateMenuItem(c *gin.Context) {
	store := storage.Current()
	item, ok := ownedMenuItem(c)
	if !ok {
		return
	}
	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := map[string]interface{}{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}
		patch["price"] = *req.Price
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Status != nil {
		if *req.Status != models.ItemAvailable && *req.Status != models.ItemUnavailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be available or unavailable"})
			return
		}
		patch["status"] = *req.Status
	}
	updated, err := store.UpdateMenuItem(item.ID, patch)
	if err != nil {
		respondStoreError(c, err, "Menu item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": updated})
}

// DeleteMenuItem removes a menu item after verifying ownership.
func DeleteMenuItem(c *gin.Context) {
	item, ok := ownedMenuItem(c)
	if !ok {
		return
	}
	if err := storage.Current().DeleteMenuItem(item.ID); err != nil {
		respondStoreError(c, err, "Menu item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ownedMenuItem loads the :itemId menu item and verifies it belongs to the
// caller's kitchen.
func ownedMenuItem(c *gin.Context) (*models.MenuItem, bool) {
	store := storage.Current()
	item, err := store.GetMenuItem(c.Param("itemId"))
	if err != nil {
		respondStoreError(c, err, "Menu item not found")
		return nil, false
	}
	kitchen, err := store.GetKitchenByUser(mwUserID(c))
	if err != nil || kitchen.ID != item.KitchenID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this menu item"})
		return nil, false
	}
	return item, true
}
