package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shuttle_tracker/internal/models"
	"shuttle_tracker/internal/store"
)

// LocationController is the write and read path of the location ledger.
// Drivers report on a fixed interval (30s in the phone client); each
// report fully replaces the route's record.
type LocationController struct {
	store store.Store
	hub   *LocationHub
}

func NewLocationController(s store.Store, hub *LocationHub) *LocationController {
	return &LocationController{store: s, hub: hub}
}

// locationInput is the driver report payload. Latitude and longitude
// are pointers so a missing field is distinguishable from 0.0 and
// rejected by binding.
type locationInput struct {
	RouteID     string   `json:"routeId" binding:"required"`
	DriverID    string   `json:"driverId" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	CurrentStop string   `json:"currentStop"`
	Status      string   `json:"status" binding:"omitempty,oneof=on_route delayed stopped"`
}

// UpsertLocation records a driver's position report. The payload must
// match the authenticated driver and their assigned route.
func (l *LocationController) UpsertLocation(c *gin.Context) {
	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location data: " + err.Error()})
		return
	}

	authDriverID := c.GetString("driver_id")
	authRouteID := c.GetString("route_id")
	if input.DriverID != authDriverID || input.RouteID != authRouteID {
		logrus.WithFields(logrus.Fields{
			"auth_driver_id":    authDriverID,
			"payload_driver_id": input.DriverID,
			"payload_route_id":  input.RouteID,
		}).Warn("Location report for a different driver or route denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot report for another driver or route"})
		return
	}

	loc, err := l.store.UpsertLocation(models.BusLocation{
		RouteID:     input.RouteID,
		DriverID:    input.DriverID,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		CurrentStop: input.CurrentStop,
		Status:      input.Status,
	})
	if err != nil {
		var vErr *store.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		} else {
			logrus.WithError(err).Error("UpsertLocation: ledger write failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save location"})
		}
		return
	}
	l.hub.PublishUpdate(loc)

	logrus.WithFields(logrus.Fields{
		"route_id":     loc.RouteID,
		"driver_id":    loc.DriverID,
		"current_stop": loc.CurrentStop,
		"status":       loc.Status,
	}).Debug("Location updated")

	c.JSON(http.StatusOK, loc)
}

// AllLocations returns the current record of every reporting route,
// at most one per route.
func (l *LocationController) AllLocations(c *gin.Context) {
	locs, err := l.store.AllLocations()
	if err != nil {
		logrus.WithError(err).Error("AllLocations: ledger query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bus locations"})
		return
	}
	c.JSON(http.StatusOK, locs)
}

// GetLocation returns one route's current record, 404 when the route
// has no reporting bus.
func (l *LocationController) GetLocation(c *gin.Context) {
	routeID := c.Param("routeId")
	loc, err := l.store.GetLocation(routeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus location not found"})
		} else {
			logrus.WithError(err).Error("GetLocation: ledger query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bus location"})
		}
		return
	}
	c.JSON(http.StatusOK, loc)
}

// StopSharing removes a route's location record. Removing an absent
// record succeeds too, so stale clients retrying the delete are harmless.
func (l *LocationController) StopSharing(c *gin.Context) {
	routeID := c.Param("routeId")
	if routeID != c.GetString("route_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot stop sharing for another route"})
		return
	}

	if err := l.store.RemoveLocation(routeID); err != nil {
		logrus.WithError(err).Error("StopSharing: ledger delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop location sharing"})
		return
	}
	l.hub.PublishRemoval(routeID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
