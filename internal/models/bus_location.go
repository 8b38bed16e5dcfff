package models

import "time"

// Bus status values reported by drivers.
const (
	StatusOnRoute = "on_route"
	StatusDelayed = "delayed"
	StatusStopped = "stopped"
)

// ValidStatus reports whether s is a recognized bus status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOnRoute, StatusDelayed, StatusStopped:
		return true
	}
	return false
}

// BusLocation is the single latest reported position for a route.
// The ledger keeps at most one record per route: every report fully
// replaces the previous one (last-write-wins, no history).
type BusLocation struct {
	RouteID     string    `gorm:"primaryKey" json:"routeId"`
	DriverID    string    `json:"driverId"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CurrentStop string    `json:"currentStop"`
	Status      string    `gorm:"default:on_route" json:"status"`
	LastUpdated time.Time `json:"lastUpdated"`
}
