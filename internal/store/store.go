package store

import (
	"errors"
	"fmt"

	"shuttle_tracker/internal/models"
)

// Sentinel errors returned by Store implementations. Callers branch on
// these with errors.Is to pick the HTTP status at the boundary.
var (
	// ErrNotFound is returned for lookups of unknown routes, drivers or
	// location records.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned by Authenticate for both an
	// unknown driver id and a wrong password, so callers cannot be used
	// to enumerate driver ids.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a malformed field in an otherwise well-formed
// request. It is a recoverable rejection, never a crash.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Store is the storage contract behind the API: the route catalog, the
// driver directory and the location ledger. There are two
// implementations, the in-memory default and a Postgres-backed one, and
// controllers receive whichever one was built at startup.
type Store interface {
	// Route catalog. Read-only after seeding.
	GetRoute(id string) (models.Route, error)
	ListRoutes() ([]models.Route, error)
	// GetStops returns the route's stops ordered by sequence. An unknown
	// route yields an empty slice, not an error.
	GetStops(routeID string) ([]models.Stop, error)
	CreateRoute(route models.Route) (models.Route, error)
	CreateStop(stop models.Stop) (models.Stop, error)

	// Driver directory.
	Authenticate(driverID, secret string) (models.Driver, error)
	GetDriver(driverID string) (models.Driver, error)
	ListDrivers() ([]models.Driver, error)
	// SetDriverActive toggles the active flag. Setting the same value
	// twice is a no-op.
	SetDriverActive(driverID string, active bool) (models.Driver, error)
	CreateDriver(driver models.Driver) (models.Driver, error)

	// Location ledger. At most one record per route; UpsertLocation
	// replaces the whole record and stamps LastUpdated, RemoveLocation
	// is idempotent. Readers always observe complete records.
	UpsertLocation(loc models.BusLocation) (models.BusLocation, error)
	GetLocation(routeID string) (models.BusLocation, error)
	AllLocations() ([]models.BusLocation, error)
	RemoveLocation(routeID string) error
}
