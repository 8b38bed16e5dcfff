package models

// Route is a fixed shuttle path with an ordered list of stops.
// Routes are seeded at startup and immutable for the lifetime of a run;
// there is no runtime route CRUD.
type Route struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TotalStops  int    `json:"totalStops"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	// Optional path polyline stored as WKB (SRID 4326 LINESTRING).
	// Controllers convert to/from GeoJSON at the API boundary.
	Geometry []byte `gorm:"type:bytea" json:"-"`
}
