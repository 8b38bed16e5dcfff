package main

import (
	"log"
	"net/http"

	"shuttle_tracker/internal/config"
	"shuttle_tracker/internal/controllers"
	"shuttle_tracker/internal/logger"
	"shuttle_tracker/internal/middleware"
	"shuttle_tracker/internal/routes"
	"shuttle_tracker/internal/store"
)

func main() {
	config.Load()
	logger.Setup()

	st, err := buildStore()
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	fleet := store.DefaultFleet()
	if path := config.GetEnv("FLEET_FILE", ""); path != "" {
		fleet, err = store.LoadFleetFile(path)
		if err != nil {
			log.Fatalf("fleet config failed: %v", err)
		}
	}
	if err := store.Seed(st, fleet); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	hub := controllers.NewLocationHub()
	r := routes.SetupRouter(st, hub)

	// Wrap with CORS for browser dashboards
	handler := middleware.EnableCORS(r)

	addr := config.GetEnv("HTTP_ADDR", "0.0.0.0:8080")
	log.Printf("🚌 Shuttle tracker running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

// buildStore picks the Store implementation: in-memory by default,
// Postgres when STORAGE_DRIVER=postgres.
func buildStore() (store.Store, error) {
	if config.GetEnv("STORAGE_DRIVER", "memory") != "postgres" {
		return store.NewMemoryStore(), nil
	}
	db, err := config.InitDB()
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(db), nil
}
