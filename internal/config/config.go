package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// RemoteDriver selects which backend implements the contacts collection.
type RemoteDriver string

const (
	DriverRedis  RemoteDriver = "redis"
	DriverMemory RemoteDriver = "memory"
)

const (
	DefaultRedisAddr     = "localhost:6379"
	DefaultKeyPrefix     = "rolodex:contacts"
	DefaultTimeout       = 10 * time.Second
	DefaultPhoneLength   = 10
	DefaultSearchedDelay = 300 * time.Millisecond
)

type Config struct {
	RemoteDriver  RemoteDriver  `json:"remote_driver"`
	RedisAddr     string        `json:"redis_addr"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	KeyPrefix     string        `json:"key_prefix"`
	Timeout       time.Duration `json:"timeout"`
	PhoneLength   int           `json:"phone_length"`
	SearchDelay   time.Duration `json:"search_delay"`
	LogFile       string        `json:"log_file"`
}

// Load reads configuration from the environment, after loading a local .env
// file if one exists. Missing keys fall back to defaults; invalid values are
// a fatal startup error.
func Load() (*Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	config := &Config{
		RemoteDriver:  RemoteDriver(getEnvOrDefault("ROLODEX_REMOTE", string(DriverRedis))),
		RedisAddr:     getEnvOrDefault("ROLODEX_REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: getEnvOrDefault("ROLODEX_REDIS_PASSWORD", ""),
		RedisDB:       parseIntOrDefault("ROLODEX_REDIS_DB", 0),
		KeyPrefix:     getEnvOrDefault("ROLODEX_KEY_PREFIX", DefaultKeyPrefix),
		Timeout:       parseDurationOrDefault("ROLODEX_TIMEOUT", DefaultTimeout),
		PhoneLength:   parseIntOrDefault("ROLODEX_PHONE_LENGTH", DefaultPhoneLength),
		SearchDelay:   parseDurationOrDefault("ROLODEX_SEARCH_DELAY", DefaultSearchedDelay),
		LogFile:       getEnvOrDefault("ROLODEX_LOG_FILE", defaultLogFile()),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.RemoteDriver {
	case DriverRedis, DriverMemory:
		// Valid drivers
	default:
		return fmt.Errorf("invalid remote driver: %s (must be 'redis' or 'memory')", c.RemoteDriver)
	}

	if c.RemoteDriver == DriverRedis && c.RedisAddr == "" {
		return fmt.Errorf("redis address must not be empty")
	}

	if c.KeyPrefix == "" {
		return fmt.Errorf("key prefix must not be empty")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	// Phone numbers are 9 or 10 digits depending on locale.
	if c.PhoneLength != 9 && c.PhoneLength != 10 {
		return fmt.Errorf("phone length must be 9 or 10, got: %d", c.PhoneLength)
	}

	if c.SearchDelay < 0 {
		return fmt.Errorf("search delay must be non-negative, got: %v", c.SearchDelay)
	}

	return nil
}

func defaultLogFile() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "rolodex.log"
	}
	return filepath.Join(cacheDir, "rolodex", "rolodex.log")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
