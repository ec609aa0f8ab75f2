package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journeatz-api/models"
	"journeatz-api/storage"
)

// GetMyDriver returns the caller's driver profile.
func GetMyDriver(c *gin.Context) {
	driver, err := storage.Current().GetDriverByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No driver profile for your account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

type UpdateDriverRequest struct {
	PhoneNumber   *string              `json:"phone_number"`
	LicenseNumber *string              `json:"license_number"`
	VehicleType   *string              `json:"vehicle_type"`
	Status        *models.DriverStatus `json:"status"`
}

// UpdateMyDriver patches the caller's driver profile, e.g. going inactive at
// the end of a shift.
func UpdateMyDriver(c *gin.Context) {
	store := storage.Current()
	driver, err := store.GetDriverByUser(mwUserID(c))
	if err != nil {
		respondStoreError(c, err, "No driver profile for your account")
		return
	}

	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := map[string]interface{}{}
	if req.PhoneNumber != nil {
		patch["phone_number"] = *req.PhoneNumber
	}
	if req.LicenseNumber != nil {
		patch["license_number"] = *req.LicenseNumber
	}
	if req.VehicleType != nil {
		patch["vehicle_type"] = *req.VehicleType
	}
	if req.Status != nil {
		if *req.Status != models.DriverActive && *req.Status != models.DriverInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or inactive"})
			return
		}
		patch["status"] = *req.Status
	}
	updated, err := store.UpdateDriver(driver.ID, patch)
	if err != nil {
		respondStoreError(c, err, "Driver not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver updated", "driver": updated})
}
