package config

import (
	"fmt"
	"log"
	"time"

	"vetcare/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT" validate:"required,numeric"`
	DatabaseURL       string `mapstructure:"DATABASE_URL" validate:"required"`
	DatabaseName      string `mapstructure:"DATABASE_NAME" validate:"required"`
	Env               string `mapstructure:"ENV" validate:"oneof=development staging production test"`
	LogLevel          string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN" validate:"gte=1"`
	RateLimitBurst    int    `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`

	// Day boundaries for scheduling are computed in this zone.
	ClinicTimezone string `mapstructure:"CLINIC_TIMEZONE" validate:"required"`

	// Redis configuration.
	CacheEnabled         bool   `mapstructure:"CACHE_ENABLED"`
	RedisAddr            string `mapstructure:"REDIS_ADDR" validate:"required_if=CacheEnabled true"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB" validate:"gte=0"`
	SessionCacheTTLSecs  int    `mapstructure:"SESSION_CACHE_TTL_SECONDS" validate:"gte=1"`
	HealthCheckIntervalS int    `mapstructure:"HEALTH_CHECK_INTERVAL_SECONDS" validate:"gte=1"`

	// Doctor roster. Empty means the built-in roster.
	Doctors []models.DoctorSlot `mapstructure:"DOCTORS" validate:"dive"`
}

var AppConfig Config

// LoadConfig reads .env (optional), config.yaml (optional) and the
// environment, in that order of increasing precedence.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, skipping")
	}

	cfg, err := Load(viper.New(), ".", "./config")
	if err != nil {
		return err
	}
	AppConfig = *cfg
	return nil
}

// Load builds a Config from v, searching paths for config.yaml.
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "vetcare")
	v.SetDefault("CLINIC_TIMEZONE", "Local")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("SESSION_CACHE_TTL_SECONDS", 60)
	v.SetDefault("HEALTH_CHECK_INTERVAL_SECONDS", 60)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(cfg.ClinicTimezone); err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", cfg.ClinicTimezone, err)
	}
	return &cfg, nil
}

// Location returns the clinic time zone. Load has already checked it parses.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionCacheTTL is the lifetime of a cached session listing.
func (c *Config) SessionCacheTTL() time.Duration {
	return time.Duration(c.SessionCacheTTLSecs) * time.Second
}

// HealthCheckInterval is the period of the background health monitor.
func (c *Config) HealthCheckInterval() time.Duration {
	return time.Duration(c.HealthCheckIntervalS) * time.Second
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
