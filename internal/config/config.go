package config

import (
	"fmt"
	"strconv"
	"time"

	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret string
	JWTTTL    time.Duration

	CoinGeckoURL    string
	CoinGeckoAPIKey string
	PriceCacheTTL   time.Duration
	PriceTimeout    time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:       getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment:     getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:         getEnv("VERSION", DefaultVersion),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", DefaultDBName),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CoinGeckoURL:    getEnv("COINGECKO_API_URL", DefaultCoinGeckoURL),
		CoinGeckoAPIKey: getEnv("COINGECKO_API_KEY", ""),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	ttlMinutes, err := getEnvInt("JWT_TTL_MINUTES", DefaultJWTTTLMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES value: %w", err)
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	cacheSeconds, err := getEnvInt("PRICE_CACHE_TTL_SECONDS", DefaultPriceCacheTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_CACHE_TTL_SECONDS value: %w", err)
	}
	cfg.PriceCacheTTL = time.Duration(cacheSeconds) * time.Second

	timeoutSeconds, err := getEnvInt("PRICE_TIMEOUT_SECONDS", DefaultPriceTimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_TIMEOUT_SECONDS value: %w", err)
	}
	cfg.PriceTimeout = time.Duration(timeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration values that have no safe default
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
