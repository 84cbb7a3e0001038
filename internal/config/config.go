package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config service configuration
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Pricing             PricingConfig             `toml:"pricing"`
	Scoring             ScoringConfig             `toml:"scoring"`
	Events              EventsConfig              `toml:"events"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
}

// ServerConfig HTTP server settings, timeouts in seconds
type ServerConfig struct {
	HTTPPort        int  `toml:"http_port"`
	ReadTimeout     int  `toml:"read_timeout"`
	WriteTimeout    int  `toml:"write_timeout"`
	IdleTimeout     int  `toml:"idle_timeout"`
	ShutdownTimeout int  `toml:"shutdown_timeout"`
	Debug           bool `toml:"debug"` // adds error details to responses
}

// DatabaseConfig PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
	MaxTxRetries    int    `toml:"max_tx_retries"`
}

// LogsConfig logger settings
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig prometheus settings
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PricingConfig default rates; percentages except ExtraBedRate (minor units per bed per night)
type PricingConfig struct {
	TaxRatePercent          float64 `toml:"tax_rate_percent"`
	ServiceRatePercent      float64 `toml:"service_rate_percent"`
	EarlyCheckInRatePercent float64 `toml:"early_check_in_rate_percent"`
	LateCheckOutRatePercent float64 `toml:"late_check_out_rate_percent"`
	ExtraBedRate            int64   `toml:"extra_bed_rate"`
}

// ScoringConfig weights of the automatic room assignment scorer
type ScoringConfig struct {
	FloorMatch           float64 `toml:"floor_match"`
	ElevatorProximity    float64 `toml:"elevator_proximity"`
	CleanFreshness       float64 `toml:"clean_freshness"`
	FreshnessWindowHours int     `toml:"freshness_window_hours"`
}

// EventsConfig redis event publisher
type EventsConfig struct {
	Enabled        bool   `toml:"enabled"`
	RedisAddr      string `toml:"redis_addr"`
	RedisPassword  string `toml:"redis_password"`
	RedisDB        int    `toml:"redis_db"`
	ChannelPrefix  string `toml:"channel_prefix"`
	PublishTimeout int    `toml:"publish_timeout"` // seconds
}

// NotificationServiceConfig external guest notification service
type NotificationServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// Load reads .env (if present), the toml file at path, applies env overrides and defaults
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// FreshnessWindow window in which a recently cleaned room earns the freshness bonus
func (s ScoringConfig) FreshnessWindow() time.Duration {
	return time.Duration(s.FreshnessWindowHours) * time.Hour
}

// Validate rejects values the service cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	case c.Database.MaxTxRetries < 0:
		return fmt.Errorf("%w: database.max_tx_retries must not be negative", ErrInvalidConfig)
	case c.Pricing.TaxRatePercent < 0 || c.Pricing.ServiceRatePercent < 0:
		return fmt.Errorf("%w: pricing rates must not be negative", ErrInvalidConfig)
	case c.Pricing.EarlyCheckInRatePercent < 0 || c.Pricing.LateCheckOutRatePercent < 0:
		return fmt.Errorf("%w: pricing fee rates must not be negative", ErrInvalidConfig)
	case c.Pricing.ExtraBedRate < 0:
		return fmt.Errorf("%w: pricing.extra_bed_rate must not be negative", ErrInvalidConfig)
	case c.Scoring.FloorMatch < 0 || c.Scoring.ElevatorProximity < 0 || c.Scoring.CleanFreshness < 0:
		return fmt.Errorf("%w: scoring weights must not be negative", ErrInvalidConfig)
	case c.Events.Enabled && c.Events.RedisAddr == "":
		return fmt.Errorf("%w: events.redis_addr is required when events are enabled", ErrInvalidConfig)
	case c.NotificationService.Enabled && c.NotificationService.URL == "":
		return fmt.Errorf("%w: notification_service.url is required when enabled", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setInt(&c.Server.HTTPPort, "HTTP_PORT")
	setString(&c.Events.RedisAddr, "REDIS_ADDR")
	setString(&c.Events.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.NotificationService.URL, "NOTIFICATION_SERVICE_URL")
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.MaxTxRetries == 0 {
		c.Database.MaxTxRetries = 3
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "room_booking_service"
	}

	// zero is a legitimate rate, so pricing defaults apply only when the whole section is absent
	if c.Pricing == (PricingConfig{}) {
		c.Pricing = PricingConfig{
			TaxRatePercent:          18,
			ServiceRatePercent:      5,
			EarlyCheckInRatePercent: 50,
			LateCheckOutRatePercent: 50,
			ExtraBedRate:            2500,
		}
	}

	if c.Scoring == (ScoringConfig{}) {
		c.Scoring = ScoringConfig{
			FloorMatch:           3,
			ElevatorProximity:    2,
			CleanFreshness:       1,
			FreshnessWindowHours: 24,
		}
	}

	if c.Events.ChannelPrefix == "" {
		c.Events.ChannelPrefix = "room_booking"
	}
	if c.Events.PublishTimeout == 0 {
		c.Events.PublishTimeout = 2
	}

	if c.NotificationService.Timeout == 0 {
		c.NotificationService.Timeout = 5
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
