package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string `validate:"required"`
	Port           string `validate:"required,numeric"`
	IsProduction   bool
	MigrationsPath string `validate:"required"`

	// Collaborators
	CustomerServiceURL string        `validate:"required,url"`
	ContractServiceURL string        `validate:"required,url"`
	HTTPClientTimeout  time.Duration `validate:"gt=0"`

	// Auth. Both empty disables authentication (gateway-fronted deployments).
	JWTSecret    string
	APIKeyHash   string
	APIKeyCaller string `validate:"required"`

	// Rate limiting on create endpoints, ulule/limiter format ("30-M").
	CreateRateLimit string `validate:"required"`
	RedisURL        string

	// Reservations older than this are released by the reconcile command.
	ReservationTTL time.Duration `validate:"gt=0"`

	CORSAllowedOrigins []string `validate:"min=1"`

	PosthogAPIKey   string
	PosthogEndpoint string `validate:"omitempty,url"`

	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// AuthEnabled reports whether any credential check is configured.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" || c.APIKeyHash != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8086")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("CUSTOMER_SERVICE_URL", "http://localhost:8085/api/customer")
	viper.SetDefault("CONTRACT_SERVICE_URL", "http://localhost:8083/api/customer-contract")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "5s")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("API_KEY_HASH", "")
	viper.SetDefault("API_KEY_CALLER", "api-gateway")
	viper.SetDefault("CREATE_RATE_LIMIT", "60-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RESERVATION_TTL", "15m")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		CustomerServiceURL: viper.GetString("CUSTOMER_SERVICE_URL"),
		ContractServiceURL: viper.GetString("CONTRACT_SERVICE_URL"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		APIKeyHash:         viper.GetString("API_KEY_HASH"),
		APIKeyCaller:       viper.GetString("API_KEY_CALLER"),
		CreateRateLimit:    viper.GetString("CREATE_RATE_LIMIT"),
		RedisURL:           viper.GetString("REDIS_URL"),
		CORSAllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    viper.GetString("POSTHOG_ENDPOINT"),
	}

	var err error
	if cfg.HTTPClientTimeout, err = parseDuration("HTTP_CLIENT_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.ReservationTTL, err = parseDuration("RESERVATION_TTL"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}

	if !cfg.AuthEnabled() {
		log.Println("Warning: neither JWT_SECRET nor API_KEY_HASH is set. Authentication is disabled.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags above.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func parseDuration(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
