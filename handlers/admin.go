package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journeatz-api/models"
	"journeatz-api/storage"
)

// AdminGetAllUsers returns all users, optionally filtered by role.
func AdminGetAllUsers(c *gin.Context) {
	users, err := storage.Current().ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if role := c.Query("role"); role != "" {
		kept := users[:0]
		for _, u := range users {
			if u.Role == models.UserRole(role) {
				kept = append(kept, u)
			}
		}
		users = kept
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetUser returns one user, 404 when absent.
func AdminGetUser(c *gin.Context) {
	user, err := storage.Current().GetUser(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminGetAllDrivers returns all driver profiles.
func AdminGetAllDrivers(c *gin.Context) {
	drivers, err := storage.Current().ListDrivers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(drivers), "drivers": drivers})
}

// AdminGetAllCustomers returns all customer profiles.
func AdminGetAllCustomers(c *gin.Context) {
	customers, err := storage.Current().ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}
