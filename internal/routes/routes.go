package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/store"
)

// SetupRouter builds the gin engine with every route group wired to
// the given store. The hub carries committed ledger writes to viewer
// WebSocket clients.
func SetupRouter(s store.Store, hub *controllers.LocationHub) *gin.Engine {
	r := gin.New()
	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())

	AuthRoutes(r, s, hub)
	RouteRoutes(r, s)
	LocationRoutes(r, s, hub)
	AdminRoutes(r, s)
	WebSocketRoutes(r, hub)

	return r
}
