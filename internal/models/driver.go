package models

// Driver is a shuttle driver with a single assigned route. Drivers are
// seeded at startup; the only runtime mutation is the IsActive flag,
// toggled on login/logout.
//
// Password is stored and compared as-is (exact string equality). This
// mirrors the credential scheme of the fleet office's existing system;
// see the admin gate in internal/middleware for the hashed variant.
type Driver struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DriverID string `gorm:"uniqueIndex" json:"driverId"`
	Password string `json:"-"`
	Name     string `json:"name"`
	RouteID  string `gorm:"index" json:"routeId"`
	IsActive bool   `gorm:"default:false" json:"isActive"`
}
