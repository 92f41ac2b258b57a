package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server is the API server configuration, read from the environment.
type Server struct {
	Addr           string        `env:"BRANDMARK_ADDR" envDefault:":8080"`
	RedisAddr      string        `env:"BRANDMARK_REDIS_ADDR"`
	RedisPassword  string        `env:"BRANDMARK_REDIS_PASSWORD"`
	MongoURI       string        `env:"BRANDMARK_MONGO_URI"`
	MongoDB        string        `env:"BRANDMARK_MONGO_DB" envDefault:"brandmark"`
	Workers        int           `env:"BRANDMARK_WORKERS"`
	RequestTimeout time.Duration `env:"BRANDMARK_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes   int64         `env:"BRANDMARK_MAX_BODY_BYTES" envDefault:"65536"`
}

// LoadServer reads the server configuration from environment variables.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
