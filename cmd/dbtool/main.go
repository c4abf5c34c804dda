package main

import (
	"log"
	"nyc-route-optimizer/internal/adapters/repositories"
	"nyc-route-optimizer/internal/config"
	"nyc-route-optimizer/internal/platform/db"
)

// dbtool prepares a Postgres database for the server: geocode cache and
// search history tables.
func main() {
	config.LoadDotEnv()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
