package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shuttle_tracker/internal/geo"
	"shuttle_tracker/internal/models"
	"shuttle_tracker/internal/progress"
	"shuttle_tracker/internal/store"
)

// RouteController serves the route catalog to viewer dashboards.
type RouteController struct {
	store store.Store
}

func NewRouteController(s store.Store) *RouteController {
	return &RouteController{store: s}
}

// RouteResponse mirrors models.Route but carries the path polyline as a
// GeoJSON string for API output.
type RouteResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TotalStops  int    `json:"totalStops"`
	IsActive    bool   `json:"isActive"`
	Path        string `json:"path,omitempty"`
}

func toRouteResponse(route models.Route) RouteResponse {
	path, err := geo.WKBToGeoJSON(route.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Warn("Could not decode route geometry")
	}
	return RouteResponse{
		ID:          route.ID,
		Name:        route.Name,
		Description: route.Description,
		TotalStops:  route.TotalStops,
		IsActive:    route.IsActive,
		Path:        path,
	}
}

// ListRoutes returns every route in the catalog.
func (r *RouteController) ListRoutes(c *gin.Context) {
	routes, err := r.store.ListRoutes()
	if err != nil {
		logrus.WithError(err).Error("ListRoutes: catalog query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch routes"})
		return
	}

	responses := make([]RouteResponse, 0, len(routes))
	for _, route := range routes {
		responses = append(responses, toRouteResponse(route))
	}
	c.JSON(http.StatusOK, responses)
}

// GetRoute returns one route with its ordered stops, each annotated as
// current, passed or upcoming against the latest location record. With
// no record every stop comes back upcoming.
func (r *RouteController) GetRoute(c *gin.Context) {
	routeID := c.Param("id")

	route, err := r.store.GetRoute(routeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("GetRoute: catalog query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route details"})
		}
		return
	}

	stops, err := r.store.GetStops(routeID)
	if err != nil {
		logrus.WithError(err).Error("GetRoute: stops query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route details"})
		return
	}

	var location *models.BusLocation
	if loc, err := r.store.GetLocation(routeID); err == nil {
		location = &loc
	} else if !errors.Is(err, store.ErrNotFound) {
		logrus.WithError(err).Error("GetRoute: ledger query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route details"})
		return
	}

	response := gin.H{
		"route": toRouteResponse(route),
		"stops": progress.Annotate(stops, location),
	}
	if location != nil {
		response["location"] = location
	}
	c.JSON(http.StatusOK, response)
}
