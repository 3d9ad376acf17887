package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	// Publicly known defaults. Deployments are expected to override both.
	DefaultJWTSecret     = "your_secret_key"
	DefaultAdminPassword = "admin"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":3000"`
	GrpcPort        string        `envconfig:"GRPC_PORT"        default:":50051"` // gRPC health endpoint
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT"       default:"json"`
	JWTSecret       string        `envconfig:"JWT_SECRET"       default:"your_secret_key"`
	BcryptCost      int           `envconfig:"BCRYPT_COST"      default:"10"`
	AdminPassword   string        `envconfig:"ADMIN_PASSWORD"   default:"admin"`
	StoreDriver     string        `envconfig:"STORE_DRIVER"     default:"memory"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, Store=%s, LogLevel=%s",
		cfg.HTTPPort, cfg.GrpcPort, cfg.StoreDriver, cfg.LogLevel)
	if cfg.JWTSecret == DefaultJWTSecret {
		logger.Warn("Configuration: JWT_SECRET is the built-in default; tokens can be forged by anyone who knows it")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("configuration error: DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("configuration error: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("configuration error: JWT_SECRET cannot be empty")
	}
	return nil
}
