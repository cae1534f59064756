//go:build unit

package config_test

import (
	"os"
	"testing"

	"reservation-engine/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Storage.Driver)
		assert.Equal(t, "postgres", cfg.Audit.Sink)
		assert.InDelta(t, 10.0, cfg.Booking.TaxRatePercent, 0.0001)
		assert.InDelta(t, 0.5, cfg.Booking.OverrideFloorRatio, 0.0001)
		assert.Equal(t, 3, cfg.Booking.MaxCreateAttempts)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("booking overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("BOOKING_TAX_RATE_PERCENT", "7.5")
		t.Setenv("BOOKING_UNIT_SELECTION", "lowest-floor")
		t.Setenv("BOOKING_TIMEZONE", "Asia/Tokyo")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.InDelta(t, 7.5, cfg.Booking.TaxRatePercent, 0.0001)
		assert.Equal(t, "lowest-floor", cfg.Booking.UnitSelection)
		loc, err := cfg.Booking.Location()
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", loc.String())
	})

	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown storage driver", env: map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{name: "unknown audit sink", env: map[string]string{"AUDIT_SINK": "email"}},
		{name: "postgres audit without postgres storage", env: map[string]string{"STORAGE_DRIVER": "memory"}},
		{name: "zero create attempts", env: map[string]string{"BOOKING_MAX_CREATE_ATTEMPTS": "0"}},
		{name: "bad timezone", env: map[string]string{"BOOKING_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadConfig()
			require.Error(t, err)
		})
	}

	t.Run("missing secret", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_SECRET", "restored-after-test")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))
		_, err := config.LoadConfig()
		require.Error(t, err)
	})
}
