package config

import (
	"errors"
	"fmt"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/services"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the validated application configuration, read once at startup.
type Config struct {
	Env              string
	Port             string
	GoogleMapsAPIKey string
	NY511APIKey      string

	ServiceArea   domain.ServiceArea
	DefaultCenter domain.Coordinates

	CacheTTL     time.Duration
	MaxRoutes    int
	TrafficModel domain.TrafficModel
	Weights      services.ScoringWeights

	DBPath      string
	DatabaseURL string
	RedisURL    string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// Load reads configuration from the environment and validates it.
// Every failure wraps domain.ErrConfiguration.
func Load() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		Env:              Get("APP_ENV", "production"),
		Port:             Get("PORT", "8080"),
		GoogleMapsAPIKey: Get("GOOGLE_MAPS_API_KEY", ""),
		NY511APIKey:      Get("NY511_API_KEY", ""),
		ServiceArea: domain.ServiceArea{
			North: p.float("NYC_BOUNDS_NORTH", domain.DefaultNYCArea.North),
			South: p.float("NYC_BOUNDS_SOUTH", domain.DefaultNYCArea.South),
			East:  p.float("NYC_BOUNDS_EAST", domain.DefaultNYCArea.East),
			West:  p.float("NYC_BOUNDS_WEST", domain.DefaultNYCArea.West),
		},
		DefaultCenter: domain.Coordinates{
			Lat: p.float("DEFAULT_CENTER_LAT", domain.DefaultCenter.Lat),
			Lng: p.float("DEFAULT_CENTER_LNG", domain.DefaultCenter.Lng),
		},
		CacheTTL:  time.Duration(p.int("CACHE_DURATION", 300)) * time.Second,
		MaxRoutes: p.int("MAX_ROUTES", services.DefaultMaxRoutes),
		Weights: services.ScoringWeights{
			Time:     p.float("SCORE_WEIGHT_TIME", services.DefaultScoringWeights.Time),
			Distance: p.float("SCORE_WEIGHT_DISTANCE", services.DefaultScoringWeights.Distance),
			Delay:    p.float("SCORE_WEIGHT_DELAY", services.DefaultScoringWeights.Delay),
		},
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisURL:    Get("REDIS_URL", ""),
	}

	model, err := domain.ParseTrafficModel(Get("TRAFFIC_MODEL", string(domain.TrafficModelBestGuess)))
	if err != nil {
		p.errs = append(p.errs, err)
	}
	cfg.TrafficModel = model

	if err := errors.Join(p.errs...); err != nil {
		return nil, fmt.Errorf("load config: %w: %w", domain.ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GoogleMapsAPIKey == "" {
		return fmt.Errorf("GOOGLE_MAPS_API_KEY is required: %w", domain.ErrConfiguration)
	}
	if err := c.ServiceArea.Validate(); err != nil {
		return err
	}
	if !c.ServiceArea.Contains(c.DefaultCenter) {
		return fmt.Errorf("default center is outside the service area: %w", domain.ErrConfiguration)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_DURATION must be positive: %w", domain.ErrConfiguration)
	}
	if c.MaxRoutes < 1 {
		return fmt.Errorf("MAX_ROUTES must be at least 1: %w", domain.ErrConfiguration)
	}
	return c.Weights.Validate()
}

func (c *Config) Development() bool { return c.Env == "development" }

// ScoringConfig derives the scoring surface. Development runs check invariants strictly.
func (c *Config) ScoringConfig() services.ScoringConfig {
	return services.ScoringConfig{Weights: c.Weights, Strict: c.Development()}
}

// parser collects conversion errors so every bad variable is reported at once.
type parser struct {
	errs []error
}

func (p *parser) float(key string, fallback float64) float64 {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s=%q is not a number", key, raw))
		return fallback
	}
	return v
}

func (p *parser) int(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s=%q is not an integer", key, raw))
		return fallback
	}
	return v
}
