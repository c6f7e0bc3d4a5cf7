package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
trusted_proxies = ["10.0.0.0/8", "::1/128"]

[database]
host = "db"
dbname = "engine"

[redis]
enabled = true
addr = "redis:6379"

[rate_limit.strict]
max = 3
window_minutes = 5

[booking]
min_lead_minutes = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"10.0.0.0/8", "::1/128"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "host=db port=5432 user=postgres password= dbname=engine sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)

	limits := cfg.RateLimit.Limits()
	assert.Equal(t, ratelimit.Limit{Max: 3, Window: 5 * time.Minute}, limits[ratelimit.TierStrict])
	assert.Equal(t, ratelimit.Limit{Max: 100, Window: 15 * time.Minute}, limits[ratelimit.TierStandard])

	policy := cfg.Booking.Policy()
	assert.Equal(t, 30*time.Minute, policy.MinLead)
	assert.Equal(t, 5*time.Minute, policy.SkewBuffer)
	assert.Equal(t, 90*24*time.Hour, policy.MaxHorizon)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "[logs]\nlevel = \"loud\""},
		{"redis without addr", "[redis]\nenabled = true"},
		{"zero tier max", "[rate_limit.lenient]\nmax = 0\nwindow_minutes = 15"},
		{"trusted proxy is not a cidr", "[server]\ntrusted_proxies = [\"10.0.0.1\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
