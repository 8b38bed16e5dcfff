package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shuttle_tracker/internal/middleware"
	"shuttle_tracker/internal/store"
)

// AuthController handles driver login and logout against the driver
// directory. Logout also clears the driver's route from the location
// ledger so stale positions never linger on the map.
type AuthController struct {
	store store.Store
	hub   *LocationHub
}

func NewAuthController(s store.Store, hub *LocationHub) *AuthController {
	return &AuthController{store: s, hub: hub}
}

type loginInput struct {
	DriverID string `json:"driverId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type logoutInput struct {
	DriverID string `json:"driverId" binding:"required"`
}

// Login authenticates a driver and marks them active. Unknown driver
// ids and wrong passwords produce the same 401 body.
func (a *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := a.store.Authenticate(input.DriverID, input.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			logrus.WithError(err).Error("Login: directory lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	if _, err := a.store.SetDriverActive(driver.DriverID, true); err != nil {
		logrus.WithError(err).WithField("driver_id", driver.DriverID).Error("Login: could not activate driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := middleware.GenerateToken(driver.DriverID, driver.RouteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"driver_id": driver.DriverID,
		"route_id":  driver.RouteID,
	}).Info("Driver logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"driver": gin.H{
			"id":       driver.ID,
			"driverId": driver.DriverID,
			"name":     driver.Name,
			"routeId":  driver.RouteID,
		},
	})
}

// Logout deactivates the driver and removes their route's location
// record. A logout with no prior location report still succeeds: the
// ledger delete is a no-op in that case.
func (a *AuthController) Logout(c *gin.Context) {
	var input logoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := a.store.SetDriverActive(input.DriverID, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			logrus.WithError(err).Error("Logout: could not deactivate driver")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		}
		return
	}

	if err := a.store.RemoveLocation(driver.RouteID); err != nil {
		logrus.WithError(err).WithField("route_id", driver.RouteID).Error("Logout: could not clear location")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	a.hub.PublishRemoval(driver.RouteID)

	logrus.WithFields(logrus.Fields{
		"driver_id": driver.DriverID,
		"route_id":  driver.RouteID,
	}).Info("Driver logged out")

	c.JSON(http.StatusOK, gin.H{"success": true})
}
