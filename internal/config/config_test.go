package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_TIMEZONE", "STORE_DRIVER", "REDIS_URL", "DATABASE_URL", "REMINDER_ENABLED",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_SSLMODE",
		"REQUEST_TIMEOUT_SECONDS", "SERVER_HOST", "SERVER_PORT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "America/Sao_Paulo", cfg.Location.String())
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, "postgres://choreboard:@localhost:5432/choreboard?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 5*time.Second, cfg.Context.RequestTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Europe/Lisbon")
	t.Setenv("STORE_DRIVER", "BOLT")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("HEALTH_INTERVAL", "1m")
	t.Setenv("REMINDER_ENABLED", "true")
	t.Setenv("REMINDER_CRON", "30 7 * * 1-5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Europe/Lisbon", cfg.Location.String())
	assert.Equal(t, DriverBolt, cfg.Store.Driver)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 3*time.Second, cfg.Context.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Monitor.Interval)
	assert.True(t, cfg.Reminder.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "timezone", env: map[string]string{"APP_TIMEZONE": "Mars/Olympus"}},
		{name: "driver", env: map[string]string{"STORE_DRIVER": "sqlite"}},
		{name: "cron", env: map[string]string{"REMINDER_ENABLED": "true", "REMINDER_CRON": "every morning"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
