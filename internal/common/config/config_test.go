package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "medisearch",
		User:     "app",
		Password: "secret",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=app password=secret dbname=medisearch sslmode=disable",
		cfg.GetDSN())
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "medisearch", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "seed", cfg.Search.Provider)
	assert.Equal(t, 300, cfg.Search.CacheTTL)
	assert.Equal(t, 50, cfg.Search.MaxStoreCount)
	assert.Len(t, cfg.Delivery.Tiers, 4)
	assert.Equal(t, 0.0, cfg.Delivery.Tiers[3].MaxKm, "last tier is open-ended")
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
	}{
		{
			name:      "defaults are valid",
			mutate:    func(*Config) {},
			expectErr: false,
		},
		{
			name:      "unknown provider",
			mutate:    func(c *Config) { c.Search.Provider = "mongodb" },
			expectErr: true,
		},
		{
			name: "postgres provider without host",
			mutate: func(c *Config) {
				c.Search.Provider = "postgres"
				c.Database.Postgres.Host = ""
			},
			expectErr: true,
		},
		{
			name: "elasticsearch provider without addresses",
			mutate: func(c *Config) {
				c.Search.Provider = "elasticsearch"
				c.Database.Elasticsearch.Addresses = nil
			},
			expectErr: true,
		},
		{
			name: "cache enabled without redis address",
			mutate: func(c *Config) {
				c.Search.CacheEnabled = true
				c.Database.Redis.Address = ""
			},
			expectErr: true,
		},
		{
			name: "negative delivery charge",
			mutate: func(c *Config) {
				c.Delivery.Tiers[0].Charge = -5
			},
			expectErr: true,
		},
		{
			name: "postgres provider with host is valid",
			mutate: func(c *Config) {
				c.Search.Provider = "postgres"
				c.Database.Postgres.Host = "localhost"
			},
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			applyDefaults(&cfg)
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
