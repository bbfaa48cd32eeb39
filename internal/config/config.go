package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	DBString string `env:"DB_STRING,required"`

	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	KafkaBrokers  string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaGroupID  string `env:"KAFKA_GROUP_ID" envDefault:"orders-service"`
	EventsTopic   string `env:"EVENTS_TOPIC" envDefault:"ecommerce.events"`
	OutboundTopic string `env:"OUTBOUND_TOPIC" envDefault:"ecommerce.orders.changes"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
