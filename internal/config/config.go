package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Niharika209/kalakendra-discovery/pkg/config"
	"github.com/Niharika209/kalakendra-discovery/pkg/validator"
)

// Config holds all configuration for the discovery service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development staging production"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// HTTP server
	HTTPPort int `env:"DISCOVERY_HTTP_PORT" envDefault:"8010" validate:"min=1,max=65535"`

	// Catalog backend selection (mongo or memory)
	CatalogBackend string `env:"CATALOG_BACKEND" envDefault:"mongo" validate:"oneof=mongo memory"`

	// MongoDB
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"kalakendra" validate:"required"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"discovery-service"`
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"true"`

	// Background jobs
	SchedulerEnabled     bool          `env:"SCHEDULER_ENABLED" envDefault:"true"`
	AvailabilityInterval time.Duration `env:"AVAILABILITY_REFRESH_INTERVAL" envDefault:"1h"`
	LifecycleInterval    time.Duration `env:"LIFECYCLE_TRANSITION_INTERVAL" envDefault:"24h"`
	PopularityInterval   time.Duration `env:"POPULARITY_RECOMPUTE_INTERVAL" envDefault:"24h"`
	StalenessInterval    time.Duration `env:"STALENESS_CHECK_INTERVAL" envDefault:"5m"`
	StalenessWindow      time.Duration `env:"STALENESS_WINDOW" envDefault:"10m"`
	StalenessThreshold   int           `env:"STALENESS_THRESHOLD" envDefault:"100" validate:"min=1"`

	// Reindexing
	ReindexBatchSize  int           `env:"REINDEX_BATCH_SIZE" envDefault:"100" validate:"min=1"`
	ReindexBatchPause time.Duration `env:"REINDEX_BATCH_PAUSE" envDefault:"50ms"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load discovery config: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate discovery config: %w", err)
	}
	return cfg, nil
}
