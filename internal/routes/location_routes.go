package routes

import (
	"github.com/gin-gonic/gin"

	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/middleware"
	"shuttle_tracker/internal/store"
)

func LocationRoutes(r *gin.Engine, s store.Store, hub *controllers.LocationHub) {
	ctrl := controllers.NewLocationController(s, hub)

	// Viewer reads are public; only the report and stop-sharing
	// endpoints need a driver session.
	locations := r.Group("/api/bus-locations")
	{
		locations.GET("", ctrl.AllLocations)
		locations.GET("/:routeId", ctrl.GetLocation)
		locations.POST("", middleware.RequireDriver(), ctrl.UpsertLocation)
		locations.DELETE("/:routeId", middleware.RequireDriver(), ctrl.StopSharing)
	}
}
