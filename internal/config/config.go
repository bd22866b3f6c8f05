package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	KafkaBrokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	CatalogTopic   string   `envconfig:"CATALOG_TOPIC" default:"catalog-snapshots"`
	CatalogGroupID string   `envconfig:"CATALOG_GROUP_ID" default:"storefront"`

	// OrderWebhookURL may be empty; checkout is then rejected until it
	// is configured, mirroring the original admin-panel setting.
	OrderWebhookURL string        `envconfig:"ORDER_WEBHOOK_URL"`
	SubmitTimeout   time.Duration `envconfig:"SUBMIT_TIMEOUT" default:"10s"`

	CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"R$"`
}

// Load reads an optional .env file and binds the environment to a typed
// config. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
