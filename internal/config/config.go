package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Cart store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Book sources.
const (
	BookSourceCatalog  = "catalog"
	BookSourcePostgres = "postgres"
)

// Purchase sinks.
const (
	SinkLog      = "log"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
)

// Config holds all application configuration.
type Config struct {
	Cart     CartConfig
	Ordering OrderingConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Kafka    KafkaConfig
	Logger   LoggerConfig
}

// CartConfig selects the backing store of the shopping cart.
type CartConfig struct {
	Store string
}

// OrderingConfig selects the book database and the purchase process.
type OrderingConfig struct {
	BookSource   string
	PurchaseSink string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds Redis connection configuration for the cart store.
type RedisConfig struct {
	URL       string
	KeyPrefix string
}

// CatalogConfig lists the book catalog shards and where to fetch them from.
type CatalogConfig struct {
	Files []string
	S3    S3Config
}

// S3Config holds AWS S3 configuration for catalog files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// KafkaConfig holds configuration for purchase event publishing.
type KafkaConfig struct {
	Brokers       []string
	PurchaseTopic string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Cart: CartConfig{
			Store: getEnv("CART_STORE", StoreMemory),
		},
		Ordering: OrderingConfig{
			BookSource:   getEnv("BOOK_SOURCE", BookSourceCatalog),
			PurchaseSink: getEnv("PURCHASE_SINK", SinkLog),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "checkout"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "checkout:cart"),
		},
		Catalog: CatalogConfig{
			Files: getEnvAsList("CATALOG_FILES", []string{"data/catalog/books1.gz"}),
			S3: S3Config{
				Enabled: getEnvAsBool("S3_ENABLED", false),
				Bucket:  getEnv("S3_BUCKET", ""),
				Region:  getEnv("S3_REGION", "us-east-1"),
				Prefix:  getEnv("S3_PREFIX", "catalog/"),
			},
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			PurchaseTopic: getEnv("KAFKA_PURCHASE_TOPIC", "book-purchases"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Cart.Store {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("invalid cart store: %s (must be memory, postgres, or redis)", c.Cart.Store)
	}

	switch c.Ordering.BookSource {
	case BookSourceCatalog, BookSourcePostgres:
	default:
		return fmt.Errorf("invalid book source: %s (must be catalog or postgres)", c.Ordering.BookSource)
	}

	switch c.Ordering.PurchaseSink {
	case SinkLog, SinkPostgres, SinkKafka:
	default:
		return fmt.Errorf("invalid purchase sink: %s (must be log, postgres, or kafka)", c.Ordering.PurchaseSink)
	}

	if c.UsesPostgres() {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}

	if c.Cart.Store == StoreRedis && c.Redis.URL == "" {
		return fmt.Errorf("redis URL is required when the redis cart store is selected")
	}

	if c.Ordering.BookSource == BookSourceCatalog {
		if len(c.Catalog.Files) == 0 {
			return fmt.Errorf("at least one catalog file is required")
		}
		if c.Catalog.S3.Enabled {
			if c.Catalog.S3.Bucket == "" {
				return fmt.Errorf("S3 bucket is required when S3 is enabled")
			}
			if c.Catalog.S3.Region == "" {
				return fmt.Errorf("S3 region is required when S3 is enabled")
			}
		}
	}

	if c.Ordering.PurchaseSink == SinkKafka {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers are required when the kafka purchase sink is selected")
		}
		if c.Kafka.PurchaseTopic == "" {
			return fmt.Errorf("kafka purchase topic is required when the kafka purchase sink is selected")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// UsesPostgres reports whether any selected component needs a database pool.
func (c *Config) UsesPostgres() bool {
	return c.Cart.Store == StorePostgres ||
		c.Ordering.BookSource == BookSourcePostgres ||
		c.Ordering.PurchaseSink == SinkPostgres
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList retrieves a comma-separated environment variable or returns a default value.
// Empty elements are dropped.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
