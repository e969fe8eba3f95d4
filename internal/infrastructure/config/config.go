// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compilance:
// 	 - III. Config: Store config in the environment
// 	 - Configuration is loaded from environment variables
// 	 - Sensitive data (passwords, keys) only via environment
// 	 - No config files checked into version control

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/refripanel/quote-go/internal/domain/catalog"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// RateLimit contains per-client rate limiting configuration
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Session contains form session storage configuration
	Session SessionConfig `mapstructure:"session"`

	// Contact contains the advisor lines quotes are sent to
	Contact ContactConfig `mapstructure:"contact"`

	// Site contains values advertised to the marketing site
	Site SiteConfig `mapstructure:"site"`

	// Catalog is the price sheet
	Catalog catalog.Prices `mapstructure:"catalog"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (e.g., development, staging, production)
	Environment string `mapstructure:"environment"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RequestTimeout bounds each request handler
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// MaxRequestSize is the maximun allowed request body size
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger configuration.
type LogConfig struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is json or console
	Format string `mapstructure:"format"`
}

// RateLimitConfig contains per-client rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// RequestsPerSecond is the sustained rate per client IP
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst is the bucket size per client IP
	Burst int `mapstructure:"burst"`
}

// SessionConfig contains form session storage configuration.
type SessionConfig struct {
	// Store is memory or redis
	Store string `mapstructure:"store"`

	// TTL is how long an untouched form session lives
	TTL time.Duration `mapstructure:"ttl"`

	// SweepInterval is how often the memory store drops expired sessions
	SweepInterval time.Duration `mapstructure:"sweep_interval"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains the redis session store connection settings.
type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// ContactConfig contains the WhatsApp advisor lines.
type ContactConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	CabinPhone string `mapstructure:"cabin_phone"`
	DoorPhone  string `mapstructure:"door_phone"`
	PanelPhone string `mapstructure:"panel_phone"`
}

// SiteConfig contains values advertised to the marketing site.
type SiteConfig struct {
	// ImagePlaceholder replaces product images that fail to load
	ImagePlaceholder string `mapstructure:"image_placeholder"`
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (higest to lowest):
//  1. Environment variables (a .env file in the working directory is loaded first)
//  2. Config file (if provided)
//  3. Default values
//
// Parameters:
//   - paths: extra directories searched for config.yaml before the defaults
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading
func Load(paths ...string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/quote-api")

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		// If the error is not "file not found", return the error
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	// Read environment variables
	v.SetEnvPrefix("RQ") // Refripanel Quotes
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values no default can repair.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: session.store %q", ErrInvalidConfig, c.Session.Store)
	}
	if c.Session.Store == StoreRedis {
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("%w: session.redis.addr is required", ErrInvalidConfig)
		}
		// zero would let the connect backoff retry forever
		if c.Session.Redis.ConnectTimeout <= 0 {
			return fmt.Errorf("%w: session.redis.connect_timeout must be positive", ErrInvalidConfig)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit needs a positive rate and burst", ErrInvalidConfig)
	}
	return nil
}

// IsDevelopment reports whether the app runs on a developer machine.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "quote-api")
	v.SetDefault("app.environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.max_request_size", 1<<20)             // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"}) // Allow all origins by default

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	// Session defaults
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("session.redis.connect_timeout", 30*time.Second)

	// Contact defaults
	v.SetDefault("contact.base_url", "https://wa.me/")
	v.SetDefault("contact.cabin_phone", "51998691832")
	v.SetDefault("contact.door_phone", "51991038374")
	v.SetDefault("contact.panel_phone", "51991038374")

	// Site defaults
	v.SetDefault("site.image_placeholder", "https://dummyimage.com/1200x675/1f2937/ffffff&text=Imagen+no+disponible")

	setCatalogDefaults(v, catalog.DefaultPrices())
}

// setCatalogDefaults registers every price so each one can be
// overridden from the environment (e.g., RQ_CATALOG_DOORS_VAIVEN).
func setCatalogDefaults(v *viper.Viper, p catalog.Prices) {
	v.SetDefault("catalog.currency", p.Currency)
	v.SetDefault("catalog.tax_rate", p.TaxRate)

	v.SetDefault("catalog.materials.eps_per_m2", p.Materials.EPSPerM2)
	v.SetDefault("catalog.materials.pur_per_m2", p.Materials.PURPerM2)

	v.SetDefault("catalog.cabin.eps_flat_base", p.Cabin.EPSFlatBase)
	v.SetDefault("catalog.cabin.pur_flat_base", p.Cabin.PURFlatBase)
	v.SetDefault("catalog.cabin.eps_per_m3", p.Cabin.EPSPerM3)
	v.SetDefault("catalog.cabin.pur_per_m3", p.Cabin.PURPerM3)
	v.SetDefault("catalog.cabin.flat_max_surface_m2", p.Cabin.FlatMaxSurfaceM2)
	v.SetDefault("catalog.cabin.flat_max_height_m", p.Cabin.FlatMaxHeightM)

	v.SetDefault("catalog.doors.batiente", p.Doors.Batiente)
	v.SetDefault("catalog.doors.vaiven", p.Doors.Vaiven)
	v.SetDefault("catalog.doors.corredera", p.Doors.Corredera)
	v.SetDefault("catalog.doors.batiente_per_m2", p.Doors.BatientePerM2)
	v.SetDefault("catalog.doors.vaiven_per_m2", p.Doors.VaivenPerM2)
	v.SetDefault("catalog.doors.corredera_per_m2", p.Doors.CorrederaPerM2)

	v.SetDefault("catalog.locations.lima", p.Locations.Lima)
	v.SetDefault("catalog.locations.other", p.Locations.Other)

	v.SetDefault("catalog.motors.hp2_5", p.Motors.HP2_5)
	v.SetDefault("catalog.motors.hp3", p.Motors.HP3)

	v.SetDefault("catalog.panels.roof_length_m", p.Panels.RoofLengthM)
	v.SetDefault("catalog.panels.roof_width_m", p.Panels.RoofWidthM)
	v.SetDefault("catalog.panels.roof_per_m2", p.Panels.RoofPerM2)
	v.SetDefault("catalog.panels.wall_width_m", p.Panels.WallWidthM)
	v.SetDefault("catalog.panels.wall_100_per_m2", p.Panels.Wall100PerM2)
	v.SetDefault("catalog.panels.wall_200_per_m2", p.Panels.Wall200PerM2)
	v.SetDefault("catalog.panels.pur_100_unit_with_tax", p.Panels.PUR100UnitWithTax)
	v.SetDefault("catalog.panels.pur_150_unit_with_tax", p.Panels.PUR150UnitWithTax)
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) error {
	// These are explicity bound for clarity
	if err := v.BindEnv("server.port", "RQ_SERVER_PORT", "PORT"); err != nil { // Common convention
		return err
	}
	return v.BindEnv("session.redis.password", "RQ_SESSION_REDIS_PASSWORD", "REDIS_PASSWORD")
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
//
// Returns:
//   - *Config: The loaded configuration
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
