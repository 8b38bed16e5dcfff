package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shuttle_tracker/internal/store"
)

// AdminController backs the fleet-office view: which drivers exist,
// who is actively sharing, and a fleet summary.
type AdminController struct {
	store store.Store
}

func NewAdminController(s store.Store) *AdminController {
	return &AdminController{store: s}
}

// ListDrivers returns every seeded driver with their active flag.
// Driver records marshal without the password field.
func (a *AdminController) ListDrivers(c *gin.Context) {
	drivers, err := a.store.ListDrivers()
	if err != nil {
		logrus.WithError(err).Error("Admin ListDrivers: directory query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// Status reports fleet-wide counts for the admin dashboard.
func (a *AdminController) Status(c *gin.Context) {
	routes, err := a.store.ListRoutes()
	if err != nil {
		logrus.WithError(err).Error("Admin Status: catalog query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status"})
		return
	}
	drivers, err := a.store.ListDrivers()
	if err != nil {
		logrus.WithError(err).Error("Admin Status: directory query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status"})
		return
	}
	locs, err := a.store.AllLocations()
	if err != nil {
		logrus.WithError(err).Error("Admin Status: ledger query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status"})
		return
	}

	active := 0
	for _, d := range drivers {
		if d.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"routes":         len(routes),
		"drivers":        len(drivers),
		"activeDrivers":  active,
		"reportingBuses": len(locs),
	})
}
