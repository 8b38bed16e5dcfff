package store

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shuttle_tracker/internal/models"
)

// GormStore is the Postgres-backed Store. The bus_locations table keys
// on route_id, so the single-row-per-route invariant is the primary key
// and UpsertLocation is an ON CONFLICT row replacement: readers only
// ever see a committed row.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// IsDuplicate reports whether err is a unique-constraint violation,
// which Seed treats as "already seeded" rather than a failure.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

func (g *GormStore) GetRoute(id string) (models.Route, error) {
	var route models.Route
	if err := g.db.First(&route, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Route{}, ErrNotFound
		}
		return models.Route{}, err
	}
	return route, nil
}

func (g *GormStore) ListRoutes() ([]models.Route, error) {
	var routes []models.Route
	if err := g.db.Order("length(id), id").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (g *GormStore) GetStops(routeID string) ([]models.Stop, error) {
	stops := []models.Stop{}
	if err := g.db.Where("route_id = ?", routeID).Order("sequence asc").Find(&stops).Error; err != nil {
		return nil, err
	}
	return stops, nil
}

func (g *GormStore) CreateRoute(route models.Route) (models.Route, error) {
	if err := g.db.Create(&route).Error; err != nil {
		return models.Route{}, err
	}
	return route, nil
}

func (g *GormStore) CreateStop(stop models.Stop) (models.Stop, error) {
	if err := g.db.Create(&stop).Error; err != nil {
		return models.Stop{}, err
	}
	return stop, nil
}

func (g *GormStore) Authenticate(driverID, secret string) (models.Driver, error) {
	var driver models.Driver
	err := g.db.First(&driver, "driver_id = ?", driverID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same failure as a wrong password, to avoid id enumeration.
			return models.Driver{}, ErrInvalidCredentials
		}
		return models.Driver{}, err
	}
	if driver.Password != secret {
		return models.Driver{}, ErrInvalidCredentials
	}
	return driver, nil
}

func (g *GormStore) GetDriver(driverID string) (models.Driver, error) {
	var driver models.Driver
	if err := g.db.First(&driver, "driver_id = ?", driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Driver{}, ErrNotFound
		}
		return models.Driver{}, err
	}
	return driver, nil
}

func (g *GormStore) ListDrivers() ([]models.Driver, error) {
	drivers := []models.Driver{}
	if err := g.db.Order("driver_id").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (g *GormStore) SetDriverActive(driverID string, active bool) (models.Driver, error) {
	driver, err := g.GetDriver(driverID)
	if err != nil {
		return models.Driver{}, err
	}
	if driver.IsActive == active {
		return driver, nil
	}
	driver.IsActive = active
	if err := g.db.Model(&driver).Update("is_active", active).Error; err != nil {
		return models.Driver{}, err
	}
	return driver, nil
}

func (g *GormStore) CreateDriver(driver models.Driver) (models.Driver, error) {
	if err := g.db.Create(&driver).Error; err != nil {
		return models.Driver{}, err
	}
	return driver, nil
}

func (g *GormStore) UpsertLocation(loc models.BusLocation) (models.BusLocation, error) {
	if loc.Status == "" {
		loc.Status = models.StatusOnRoute
	}
	if !models.ValidStatus(loc.Status) {
		return models.BusLocation{}, &ValidationError{Field: "status", Reason: "unknown status " + loc.Status}
	}
	loc.LastUpdated = time.Now()

	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "route_id"}},
		UpdateAll: true,
	}).Create(&loc).Error
	if err != nil {
		return models.BusLocation{}, err
	}
	return loc, nil
}

func (g *GormStore) GetLocation(routeID string) (models.BusLocation, error) {
	var loc models.BusLocation
	if err := g.db.First(&loc, "route_id = ?", routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BusLocation{}, ErrNotFound
		}
		return models.BusLocation{}, err
	}
	return loc, nil
}

func (g *GormStore) AllLocations() ([]models.BusLocation, error) {
	locs := []models.BusLocation{}
	if err := g.db.Order("route_id").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (g *GormStore) RemoveLocation(routeID string) error {
	// Deleting a route with no record is a no-op, matching the memory store.
	return g.db.Delete(&models.BusLocation{}, "route_id = ?", routeID).Error
}
