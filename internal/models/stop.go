package models

// Stop is a named waypoint on a route. Sequence is 1-based and unique
// within a route; stops for a route always form a contiguous ascending
// range starting at 1. ScheduledTime may be empty for a terminal stop.
type Stop struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	RouteID       string `gorm:"index" json:"routeId"`
	Name          string `json:"name"`
	ScheduledTime string `json:"scheduledTime"`
	Sequence      int    `json:"sequence"`
}
