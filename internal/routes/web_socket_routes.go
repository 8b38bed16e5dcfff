package routes

import (
	"github.com/gin-gonic/gin"

	"shuttle_tracker/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine, hub *controllers.LocationHub) {
	ctrl := controllers.NewWebSocketController(hub)
	ws := r.Group("/ws")
	{
		ws.GET("/locations", ctrl.ViewerWebSocket)
	}
}
