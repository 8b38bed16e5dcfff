package routes

import (
	"github.com/gin-gonic/gin"

	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/store"
)

func AuthRoutes(r *gin.Engine, s store.Store, hub *controllers.LocationHub) {
	ctrl := controllers.NewAuthController(s, hub)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", ctrl.Login)
		auth.POST("/logout", ctrl.Logout)
	}
}
