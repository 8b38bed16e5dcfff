package store

import (
	"sort"
	"sync"
	"time"

	"shuttle_tracker/internal/models"
)

// MemoryStore is the default Store: plain maps guarded by a single
// RWMutex. Upserts and removes take the write lock, so concurrent
// readers never see a half-written record; two drivers racing on the
// same route are serialized in arrival order and the last write wins.
type MemoryStore struct {
	mu         sync.RWMutex
	routes     map[string]models.Route
	stops      map[string][]models.Stop
	drivers    map[string]models.Driver
	locations  map[string]models.BusLocation
	nextStopID uint
	nextDrvID  uint
}

// NewMemoryStore returns an empty store. Call Seed to load a fleet.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		routes:    make(map[string]models.Route),
		stops:     make(map[string][]models.Stop),
		drivers:   make(map[string]models.Driver),
		locations: make(map[string]models.BusLocation),
	}
}

func (m *MemoryStore) GetRoute(id string) (models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	route, ok := m.routes[id]
	if !ok {
		return models.Route{}, ErrNotFound
	}
	return route, nil
}

func (m *MemoryStore) ListRoutes() ([]models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	routes := make([]models.Route, 0, len(m.routes))
	for _, r := range m.routes {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool {
		// Numeric-ish route ids should list as 1, 2, 4, ... 19, not
		// lexicographically, so shorter ids sort first.
		if len(routes[i].ID) != len(routes[j].ID) {
			return len(routes[i].ID) < len(routes[j].ID)
		}
		return routes[i].ID < routes[j].ID
	})
	return routes, nil
}

func (m *MemoryStore) GetStops(routeID string) ([]models.Stop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stops := m.stops[routeID]
	out := make([]models.Stop, len(stops))
	copy(out, stops)
	return out, nil
}

func (m *MemoryStore) CreateRoute(route models.Route) (models.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.ID] = route
	return route, nil
}

func (m *MemoryStore) CreateStop(stop models.Stop) (models.Stop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextStopID++
	stop.ID = m.nextStopID
	stops := append(m.stops[stop.RouteID], stop)
	sort.Slice(stops, func(i, j int) bool { return stops[i].Sequence < stops[j].Sequence })
	m.stops[stop.RouteID] = stops
	return stop, nil
}

func (m *MemoryStore) Authenticate(driverID, secret string) (models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[driverID]
	if !ok || driver.Password != secret {
		return models.Driver{}, ErrInvalidCredentials
	}
	return driver, nil
}

func (m *MemoryStore) GetDriver(driverID string) (models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[driverID]
	if !ok {
		return models.Driver{}, ErrNotFound
	}
	return driver, nil
}

func (m *MemoryStore) ListDrivers() ([]models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	drivers := make([]models.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		drivers = append(drivers, d)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].DriverID < drivers[j].DriverID })
	return drivers, nil
}

func (m *MemoryStore) SetDriverActive(driverID string, active bool) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[driverID]
	if !ok {
		return models.Driver{}, ErrNotFound
	}
	driver.IsActive = active
	m.drivers[driverID] = driver
	return driver, nil
}

func (m *MemoryStore) CreateDriver(driver models.Driver) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextDrvID++
	driver.ID = m.nextDrvID
	m.drivers[driver.DriverID] = driver
	return driver, nil
}

func (m *MemoryStore) UpsertLocation(loc models.BusLocation) (models.BusLocation, error) {
	if loc.Status == "" {
		loc.Status = models.StatusOnRoute
	}
	if !models.ValidStatus(loc.Status) {
		return models.BusLocation{}, &ValidationError{Field: "status", Reason: "unknown status " + loc.Status}
	}
	loc.LastUpdated = time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[loc.RouteID] = loc
	return loc, nil
}

func (m *MemoryStore) GetLocation(routeID string) (models.BusLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[routeID]
	if !ok {
		return models.BusLocation{}, ErrNotFound
	}
	return loc, nil
}

func (m *MemoryStore) AllLocations() ([]models.BusLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	locs := make([]models.BusLocation, 0, len(m.locations))
	for _, loc := range m.locations {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].RouteID < locs[j].RouteID })
	return locs, nil
}

func (m *MemoryStore) RemoveLocation(routeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, routeID)
	return nil
}
