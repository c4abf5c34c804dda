package cache

import (
	"context"
	"nyc-route-optimizer/internal/adapters/repositories"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/db"
	"os"
	"testing"

	"github.com/google/uuid"
)

func TestSQLGeocodeCache(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer conn.Close()

	if err := repositories.InitPostgresSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	run := uuid.NewString()
	ts, wall := "times square "+run, "wall street "+run
	defer func() {
		_, _ = conn.Exec(`DELETE FROM geocode_cache WHERE address = ANY($1::text[])`, []string{ts, wall})
	}()

	c := NewSQLGeocodeCache(conn)
	ctx := context.Background()

	place := domain.Place{
		PlaceID:          "ts",
		FormattedAddress: "Times Square, New York, NY",
		Location:         domain.Coordinates{Lat: 40.758, Lng: -73.9855},
	}
	if err := c.PutMany(ctx, map[string]domain.Place{ts: place}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	moved := place
	moved.Location.Lat = 40.759
	if err := c.PutMany(ctx, map[string]domain.Place{ts: moved}); err != nil {
		t.Fatalf("PutMany overwrite: %v", err)
	}

	got, err := c.GetMany(ctx, []string{ts, " " + ts + " ", wall})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}
	if got[ts] != moved {
		t.Fatalf("expected overwritten place %+v, got %+v", moved, got[ts])
	}

	if err := c.PutMany(ctx, map[string]domain.Place{" ": place}); err == nil {
		t.Fatal("expected error for empty address key")
	}
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)
	if _, err := c.GetMany(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error for nil DB")
	}
	if err := c.PutMany(context.Background(), map[string]domain.Place{"a": {}}); err == nil {
		t.Fatal("expected error for nil DB")
	}
}
