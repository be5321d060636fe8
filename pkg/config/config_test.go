package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, "FEFO", cfg.Engine.Strategy)
	assert.Equal(t, 3, cfg.Engine.RetryAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Engine.RetryBackoff)
	assert.Equal(t, 10*time.Minute, cfg.Engine.ReplenishmentInterval)
	assert.True(t, cfg.Engine.ReplenishmentEnabled)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Memory")
	v.Set("ENGINE_STRATEGY", "lifo")
	v.Set("ENGINE_RETRY_ATTEMPTS", "5")
	v.Set("REPLENISHMENT_ENABLED", "false")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, "LIFO", cfg.Engine.Strategy)
	assert.Equal(t, 5, cfg.Engine.RetryAttempts)
	assert.False(t, cfg.Engine.ReplenishmentEnabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestFromViper_EstrategiaInvalida(t *testing.T) {
	v := viper.New()
	v.Set("ENGINE_STRATEGY", "RANDOM")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "sqlite")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "wms", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/wms?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
