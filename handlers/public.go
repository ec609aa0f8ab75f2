package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"journeatz-api/models"
	"journeatz-api/statemachine"
	"journeatz-api/storage"
)

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListKitchens returns all kitchens (public). Supports ?open=true and
// ?cuisine= filters.
func ListKitchens(c *gin.Context) {
	kitchens, err := storage.Current().ListKitchens()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	openOnly := c.Query("open") == "true"
	cuisine := c.Query("cuisine")
	filtered := kitchens[:0]
	for _, k := range kitchens {
		if openOnly && !k.IsOpen {
			continue
		}
		if cuisine != "" && k.CuisineType != cuisine {
			continue
		}
		filtered = append(filtered, k)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(filtered), "kitchens": filtered})
}

// GetKitchen returns a single kitchen with its menu.
func GetKitchen(c *gin.Context) {
	kitchen, err := storage.Current().GetKitchen(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Kitchen not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"kitchen": kitchen})
}

// GetMenu returns exactly the menu items belonging to a kitchen (public).
func GetMenu(c *gin.Context) {
	kitchenID := c.Param("id")
	kitchen, err := storage.Current().GetKitchen(kitchenID)
	if err != nil {
		respondStoreError(c, err, "Kitchen not found")
		return
	}
	items, err := storage.Current().KitchenMenu(kitchenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if category := c.Query("category"); category != "" {
		kept := items[:0]
		for _, it := range items {
			if it.Category == category {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	c.JSON(http.StatusOK, gin.H{
		"kitchen": kitchen.Name,
		"count":   len(items),
		"menu":    items,
	})
}

// GetStateMachineInfo returns the full order lifecycle for documentation.
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Order lifecycle state machine (admin may force any change)",
	})
}
