package routes

import (
	"github.com/gin-gonic/gin"

	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/middleware"
	"shuttle_tracker/internal/store"
)

func AdminRoutes(r *gin.Engine, s store.Store) {
	ctrl := controllers.NewAdminController(s)
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/drivers", ctrl.ListDrivers)
		admin.GET("/status", ctrl.Status)
	}
}
