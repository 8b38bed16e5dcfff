package controllers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"shuttle_tracker/internal/models"
)

// upgrader configures the WebSocket connection for viewer dashboards.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards are served from other origins in dev
	},
}

// allRoutes is the subscription key for viewers watching every route.
const allRoutes = "*"

// LocationEvent is pushed to subscribed viewers whenever the ledger
// commits a write. Location is nil for a removal.
type LocationEvent struct {
	Type     string              `json:"type"` // "update" or "remove"
	RouteID  string              `json:"routeId"`
	Location *models.BusLocation `json:"location,omitempty"`
}

// LocationHub fans committed ledger writes out to viewer WebSocket
// clients, keyed by the route they subscribed to. Drivers report over
// the REST endpoint; only viewers connect here.
type LocationHub struct {
	clients   map[string]map[*websocket.Conn]bool
	broadcast chan LocationEvent
	mu        sync.Mutex
}

// NewLocationHub creates a hub and starts its broadcast loop.
func NewLocationHub() *LocationHub {
	hub := &LocationHub{
		clients:   make(map[string]map[*websocket.Conn]bool),
		broadcast: make(chan LocationEvent, 100),
	}
	go hub.run()
	return hub
}

func (h *LocationHub) run() {
	for ev := range h.broadcast {
		h.mu.Lock()
		for _, key := range []string{ev.RouteID, allRoutes} {
			for conn := range h.clients[key] {
				if err := conn.WriteJSON(ev); err != nil {
					if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
						h.unregisterLocked(key, conn)
					} else {
						logrus.WithError(err).WithFields(logrus.Fields{
							"route_id": ev.RouteID,
							"conn_ptr": fmt.Sprintf("%p", conn),
						}).Warn("Failed to send location event to viewer")
					}
				}
			}
		}
		h.mu.Unlock()
	}
}

// RegisterClient subscribes a viewer connection to one route, or to
// every route when routeID is empty.
func (h *LocationHub) RegisterClient(routeID string, conn *websocket.Conn) string {
	key := routeID
	if key == "" {
		key = allRoutes
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[key]; !ok {
		h.clients[key] = make(map[*websocket.Conn]bool)
	}
	h.clients[key][conn] = true
	logrus.WithFields(logrus.Fields{
		"route_id": key,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Viewer registered with LocationHub")
	return key
}

// UnregisterClient removes a viewer connection from the hub.
func (h *LocationHub) UnregisterClient(key string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(key, conn)
}

func (h *LocationHub) unregisterLocked(key string, conn *websocket.Conn) {
	if clients, ok := h.clients[key]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.clients, key)
		}
	}
}

// PublishUpdate queues a committed upsert for broadcast.
func (h *LocationHub) PublishUpdate(loc models.BusLocation) {
	h.publish(LocationEvent{Type: "update", RouteID: loc.RouteID, Location: &loc})
}

// PublishRemoval queues a ledger delete for broadcast.
func (h *LocationHub) PublishRemoval(routeID string) {
	h.publish(LocationEvent{Type: "remove", RouteID: routeID})
}

func (h *LocationHub) publish(ev LocationEvent) {
	select {
	case h.broadcast <- ev:
	default:
		logrus.Warn("Location broadcast channel full, dropping event")
	}
}

// WebSocketController upgrades viewer connections and parks them on
// the hub until they disconnect.
type WebSocketController struct {
	hub *LocationHub
}

func NewWebSocketController(hub *LocationHub) *WebSocketController {
	return &WebSocketController{hub: hub}
}

// ViewerWebSocket is the viewer feed endpoint. An optional routeId
// query parameter narrows the subscription to one route.
func (w *WebSocketController) ViewerWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	key := w.hub.RegisterClient(c.Query("routeId"), conn)
	defer w.hub.UnregisterClient(key, conn)

	// Viewers only listen; the read loop just detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("Viewer WebSocket read error")
			}
			break
		}
	}
}
