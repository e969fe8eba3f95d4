package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refripanel/quote-go/internal/domain/catalog"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "quote-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "51998691832", cfg.Contact.CabinPhone)
	assert.Equal(t, "51991038374", cfg.Contact.PanelPhone)
	assert.Equal(t, catalog.DefaultPrices(), cfg.Catalog)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Session.Redis.ConnectTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RQ_SESSION_TTL", "5m")
	t.Setenv("RQ_CATALOG_DOORS_VAIVEN", "650")
	t.Setenv("RQ_CATALOG_TAX_RATE", "0.2")
	t.Setenv("RQ_APP_ENVIRONMENT", "production")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 650.0, cfg.Catalog.Doors.Vaiven)
	assert.Equal(t, 0.2, cfg.Catalog.TaxRate)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
session:
  store: redis
  redis:
    addr: cache:6379
contact:
  panel_phone: "51900000000"
catalog:
  motors:
    hp3: 1200
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.Session.Store)
	assert.Equal(t, "cache:6379", cfg.Session.Redis.Addr)
	assert.Equal(t, "51900000000", cfg.Contact.PanelPhone)
	assert.Equal(t, 1200.0, cfg.Catalog.Motors.HP3)
	assert.Equal(t, catalog.DefaultPrices().Motors.HP2_5, cfg.Catalog.Motors.HP2_5)
}

func TestLoad_RedisZeroConnectTimeout(t *testing.T) {
	t.Setenv("RQ_SESSION_STORE", "redis")
	t.Setenv("RQ_SESSION_REDIS_ADDR", "cache:6379")
	t.Setenv("RQ_SESSION_REDIS_CONNECT_TIMEOUT", "0s")

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_InvalidStore(t *testing.T) {
	t.Setenv("RQ_SESSION_STORE", "postgres")

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8080},
			Session:   SessionConfig{Store: StoreMemory},
			RateLimit: RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"redis without addr", func(c *Config) {
			c.Session.Store = StoreRedis
			c.Session.Redis.ConnectTimeout = time.Second
		}},
		{"redis without connect timeout", func(c *Config) {
			c.Session.Store = StoreRedis
			c.Session.Redis.Addr = "cache:6379"
		}},
		{"rate limit without burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
