package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Search        SearchConfig       `mapstructure:"search"`
	Delivery      DeliveryConfig     `mapstructure:"delivery"`
	Prescription  PrescriptionConfig `mapstructure:"prescription"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	ReadTimeout    int `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int `mapstructure:"write_timeout"`   // milliseconds
	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// SearchConfig holds the knobs of the search pipeline that are not part of
// the scoring contract. The scoring weights themselves are fixed.
type SearchConfig struct {
	Provider      string `mapstructure:"provider"`       // seed | postgres | elasticsearch
	CacheEnabled  bool   `mapstructure:"cache_enabled"`  // redis snapshot cache
	CacheTTL      int    `mapstructure:"cache_ttl"`      // seconds
	FetchTimeout  int    `mapstructure:"fetch_timeout"`  // milliseconds
	MaxStoreCount int    `mapstructure:"max_store_count"`
}

// DeliveryConfig holds the tiered delivery pricing table. Tiers may appear
// in any order; a tier with MaxKm == 0 is open-ended and applies beyond the
// last bounded tier.
type DeliveryConfig struct {
	Tiers []DeliveryTier `mapstructure:"tiers"`
}

type DeliveryTier struct {
	MaxKm  float64 `mapstructure:"max_km"`
	Charge float64 `mapstructure:"charge"`
}

// PrescriptionConfig lists medicine names that require a prescription, in
// addition to the built-in defaults.
type PrescriptionConfig struct {
	ExtraMedicines []string `mapstructure:"extra_medicines"`
}

// NotificationConfig holds settings for order-confirmation notifications.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
