package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"shuttle_tracker/internal/geo"
	"shuttle_tracker/internal/models"
)

// Fleet is the seed description for a deployment: the fixed routes with
// their ordered stops, and the drivers assigned to them. A Fleet can be
// loaded from a YAML file, or DefaultFleet provides the built-in campus
// configuration.
type Fleet struct {
	Routes  []FleetRoute  `yaml:"routes"`
	Drivers []FleetDriver `yaml:"drivers"`
}

type FleetRoute struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	TotalStops  int    `yaml:"total_stops"`
	// Path is an optional GeoJSON LINESTRING for map polylines.
	Path  string      `yaml:"path"`
	Stops []FleetStop `yaml:"stops"`
}

type FleetStop struct {
	Name string `yaml:"name"`
	Time string `yaml:"time"`
}

type FleetDriver struct {
	DriverID string `yaml:"driver_id"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	RouteID  string `yaml:"route_id"`
}

// LoadFleetFile reads a Fleet from a YAML file.
func LoadFleetFile(path string) (Fleet, error) {
	var fleet Fleet
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fleet{}, fmt.Errorf("read fleet file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fleet); err != nil {
		return Fleet{}, fmt.Errorf("parse fleet file: %w", err)
	}
	return fleet, nil
}

// Seed loads a Fleet into a Store. Stops are numbered 1..n in listed
// order. Seeding an already-populated durable store is fine: duplicate
// rows are skipped, nothing is overwritten.
func Seed(s Store, fleet Fleet) error {
	for _, fr := range fleet.Routes {
		total := fr.TotalStops
		if len(fr.Stops) > 0 {
			total = len(fr.Stops)
		}
		wkbPath, err := geo.GeoJSONToWKB(fr.Path)
		if err != nil {
			return fmt.Errorf("route %s: invalid path geometry: %w", fr.ID, err)
		}
		route := models.Route{
			ID:          fr.ID,
			Name:        fr.Name,
			Description: fr.Description,
			TotalStops:  total,
			IsActive:    true,
			Geometry:    wkbPath,
		}
		if _, err := s.CreateRoute(route); err != nil && !IsDuplicate(err) {
			return fmt.Errorf("seed route %s: %w", fr.ID, err)
		}
		for i, fs := range fr.Stops {
			stop := models.Stop{
				RouteID:       fr.ID,
				Name:          fs.Name,
				ScheduledTime: fs.Time,
				Sequence:      i + 1,
			}
			if _, err := s.CreateStop(stop); err != nil && !IsDuplicate(err) {
				return fmt.Errorf("seed stop %q on route %s: %w", fs.Name, fr.ID, err)
			}
		}
	}

	for _, fd := range fleet.Drivers {
		driver := models.Driver{
			DriverID: fd.DriverID,
			Password: fd.Password,
			Name:     fd.Name,
			RouteID:  fd.RouteID,
		}
		if _, err := s.CreateDriver(driver); err != nil && !IsDuplicate(err) {
			return fmt.Errorf("seed driver %s: %w", fd.DriverID, err)
		}
	}
	return nil
}

// DefaultFleet is the built-in campus configuration: ten routes, one
// driver per route sharing the fleet password. Only routes 1 and 2
// carry stop timetables so far; the rest list their stop counts.
func DefaultFleet() Fleet {
	return Fleet{
		Routes: []FleetRoute{
			{
				ID: "1", Name: "Route 1", Description: "Prince School",
				Stops: []FleetStop{
					{Name: "PRINCE SCHOOL", Time: "7:20"},
					{Name: "MADIPAKKAM KOOT ROAD", Time: "7:22"},
					{Name: "MOOVARASAMPET KULAM", Time: "7:24"},
					{Name: "EZHURAMMAN KOIL", Time: "7:26"},
					{Name: "JK MAHAL", Time: "7:28"},
					{Name: "BHUVANESESWARI AMMAN TEMPLE (NANGANALLUR)", Time: "7:30"},
					{Name: "RENGA THEATRE", Time: "7:32"},
					{Name: "INDEPENDENCE DAY PARK", Time: "7:34"},
					{Name: "ROJA MEDICAL SHOP, NANGANALLUR", Time: "7:36"},
					{Name: "PILLAIYAR TEMPLE, NANGANALLUR", Time: "7:38"},
					{Name: "KARUMARI AMMAN KOVIL", Time: "7:40"},
					{Name: "JEYALAKSHMI THEATRE", Time: "7:42"},
					{Name: "MOUNT RAILWAY STATION", Time: "7:44"},
					{Name: "NGO COLONY", Time: "7:46"},
					{Name: "KAKKAN BRIDGE", Time: "7:48"},
					{Name: "BRINDAVANAM NAGAR", Time: "7:50"},
					{Name: "PRIME CARE HOSPITAL", Time: "7:52"},
					{Name: "PUZHUTHIVAKKAM POLICE BOOTH", Time: "7:54"},
					{Name: "PALLIKARANAI POLICE BOOTH", Time: "8:15"},
					{Name: "PALLIKARANAI OIL MILL", Time: "8:20"},
					{Name: "MEDAVAKKAM VIJAYANAGARAM", Time: "8:25"},
					{Name: "COLLEGE", Time: ""},
				},
			},
			{
				ID: "2", Name: "Route 2", Description: "Perungudi",
				Stops: []FleetStop{
					{Name: "SRP TOOLS", Time: "7:30"},
					{Name: "PERUNGUDI", Time: "7:33"},
					{Name: "KANTHANCHAVADI POORVIKA MOBILES", Time: "7:35"},
					{Name: "TARAMANI", Time: "7:40"},
					{Name: "TCS", Time: "7:43"},
					{Name: "BABY NAGAR", Time: "7:45"},
					{Name: "TANSI NAGAR", Time: "7:48"},
					{Name: "VELACHERY VIJAYANAGAR BUS STOP", Time: "7:53"},
					{Name: "A2B - 200 FEET RADIAL ROAD", Time: "8:05"},
					{Name: "ZONE HOTEL - VINAYAGAPURAM (S KOLATHUR)", Time: "8:10"},
					{Name: "RANI MAHAL", Time: "8:13"},
					{Name: "VEERAMANI NAGAR", Time: "8:15"},
					{Name: "VADAKUPATTU", Time: "8:18"},
					{Name: "VELLAKAL", Time: "8:20"},
					{Name: "BHEL NAGAR (Sri Baktha Anjaneya Temple)", Time: "8:25"},
					{Name: "COLLEGE", Time: ""},
				},
			},
			{ID: "4", Name: "Route 4", Description: "Thiruvottriyur", TotalStops: 28},
			{ID: "8", Name: "Route 8", Description: "Pallavaram", TotalStops: 18},
			{ID: "10", Name: "Route 10", Description: "Mannivakkam", TotalStops: 23},
			{ID: "11", Name: "Route 11", Description: "Chengalpattu", TotalStops: 16},
			{ID: "12", Name: "Route 12", Description: "Liberty-Kodambakkam", TotalStops: 26},
			{ID: "14", Name: "Route 14", Description: "Kundrathur", TotalStops: 19},
			{ID: "15", Name: "Route 15", Description: "Pattabiram", TotalStops: 24},
			{ID: "19", Name: "Route 19", Description: "Red Hills", TotalStops: 18},
		},
		Drivers: []FleetDriver{
			{DriverID: "1001", Password: "princedriver123", Name: "Route 1 Driver", RouteID: "1"},
			{DriverID: "1002", Password: "princedriver123", Name: "Route 2 Driver", RouteID: "2"},
			{DriverID: "1004", Password: "princedriver123", Name: "Route 4 Driver", RouteID: "4"},
			{DriverID: "1008", Password: "princedriver123", Name: "Route 8 Driver", RouteID: "8"},
			{DriverID: "1010", Password: "princedriver123", Name: "Route 10 Driver", RouteID: "10"},
			{DriverID: "1011", Password: "princedriver123", Name: "Route 11 Driver", RouteID: "11"},
			{DriverID: "1012", Password: "princedriver123", Name: "Route 12 Driver", RouteID: "12"},
			{DriverID: "1014", Password: "princedriver123", Name: "Route 14 Driver", RouteID: "14"},
			{DriverID: "1015", Password: "princedriver123", Name: "Route 15 Driver", RouteID: "15"},
			{DriverID: "1019", Password: "princedriver123", Name: "Route 19 Driver", RouteID: "19"},
		},
	}
}
