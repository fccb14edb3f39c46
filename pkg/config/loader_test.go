package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Port     int           `env:"SAMPLE_PORT" envDefault:"8080"`
	Brokers  []string      `env:"SAMPLE_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Interval time.Duration `env:"SAMPLE_INTERVAL" envDefault:"1h"`
	Enabled  bool          `env:"SAMPLE_ENABLED" envDefault:"true"`
}

func TestLoad_AppliesDefaults(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, time.Hour, cfg.Interval)
	assert.True(t, cfg.Enabled)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "9000")
	t.Setenv("SAMPLE_BROKERS", "a:9092,b:9092")
	t.Setenv("SAMPLE_INTERVAL", "30s")

	var cfg sampleConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Interval)
}

func TestLoad_UnparsableValue(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "not-a-number")

	var cfg sampleConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
