package routes

import (
	"github.com/gin-gonic/gin"

	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/store"
)

func RouteRoutes(r *gin.Engine, s store.Store) {
	ctrl := controllers.NewRouteController(s)
	routes := r.Group("/api/routes")
	{
		routes.GET("", ctrl.ListRoutes)
		routes.GET("/:id", ctrl.GetRoute)
	}
}
