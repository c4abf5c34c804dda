package config

import (
	"nyc-route-optimizer/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "AIza-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, domain.DefaultNYCArea, cfg.ServiceArea)
	assert.Equal(t, domain.DefaultCenter, cfg.DefaultCenter)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.MaxRoutes)
	assert.Equal(t, domain.TrafficModelBestGuess, cfg.TrafficModel)
	assert.InDelta(t, 0.40, cfg.Weights.Time, 1e-12)
	assert.InDelta(t, 0.30, cfg.Weights.Distance, 1e-12)
	assert.InDelta(t, 0.30, cfg.Weights.Delay, 1e-12)
	assert.False(t, cfg.ScoringConfig().Strict)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "AIza-test")
	t.Setenv("APP_ENV", "development")
	t.Setenv("MAX_ROUTES", "3")
	t.Setenv("CACHE_DURATION", "60")
	t.Setenv("TRAFFIC_MODEL", "pessimistic")
	t.Setenv("SCORE_WEIGHT_TIME", "0.5")
	t.Setenv("SCORE_WEIGHT_DISTANCE", "0.25")
	t.Setenv("SCORE_WEIGHT_DELAY", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxRoutes)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, domain.TrafficModelPessimistic, cfg.TrafficModel)
	assert.InDelta(t, 0.5, cfg.Weights.Time, 1e-12)
	assert.True(t, cfg.ScoringConfig().Strict)
}

func TestLoadRejectsBadConfiguration(t *testing.T) {
	cases := map[string]map[string]string{
		"missing api key": {"GOOGLE_MAPS_API_KEY": ""},
		"weights sum":     {"SCORE_WEIGHT_TIME": "0.6"},
		"negative weight": {"SCORE_WEIGHT_TIME": "0.8", "SCORE_WEIGHT_DISTANCE": "-0.1"},
		"not a number":    {"NYC_BOUNDS_NORTH": "north"},
		"zero max routes": {"MAX_ROUTES": "0"},
		"traffic model":   {"TRAFFIC_MODEL": "fastest"},
		"center outside":  {"DEFAULT_CENTER_LAT": "42.0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("GOOGLE_MAPS_API_KEY", "AIza-test")
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestGetFallback(t *testing.T) {
	t.Setenv("ROUTE_TEST_KEY", "  ")
	assert.Equal(t, "fallback", Get("ROUTE_TEST_KEY", "fallback"))

	t.Setenv("ROUTE_TEST_KEY", "value")
	assert.Equal(t, "value", Get("ROUTE_TEST_KEY", "fallback"))
}
