package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the fund ranking tool.
// Environment variables are read only in this package.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Fund data provider
	FundAPI FundAPIConfig

	// Redis cache for provider payloads
	Redis RedisConfig

	// Scoring engine
	Analysis AnalysisConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Cron expression used by the watch command
	RefreshSchedule string
}

// FundAPIConfig holds the fund data provider configuration
type FundAPIConfig struct {
	URL       string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables throttling
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	TTL      time.Duration
}

// AnalysisConfig drives the formula comparison harness
type AnalysisConfig struct {
	TargetFunds     []string // exactly two name fragments
	TopK            int
	SelectedYears   []int
	BreakdownWindow string // key into year_breakdown, e.g. "5year"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		FundAPI: FundAPIConfig{
			URL:       getEnv("FUND_API_URL", "http://localhost:5000/api/funds"),
			Timeout:   getEnvAsDuration("FUND_API_TIMEOUT", "15s"),
			RateLimit: getEnvAsFloat("FUND_API_RATE_LIMIT", 3),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			TTL:      getEnvAsDuration("REDIS_TTL", "10m"),
		},

		Analysis: AnalysisConfig{
			TargetFunds:     getEnvAsList("TARGET_FUNDS", []string{"Bandhan", "Motilal"}),
			TopK:            getEnvAsInt("TOP_K", 3),
			SelectedYears:   getEnvAsIntList("SELECTED_YEARS", []int{1, 2, 3, 4, 5}),
			BreakdownWindow: getEnv("BREAKDOWN_WINDOW", "5year"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 10m"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile loads an explicit env file before reading the environment.
// Variables already set in the process take precedence over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return Load()
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.FundAPI.URL == "" {
		return fmt.Errorf("FUND_API_URL is required")
	}

	if len(c.Analysis.TargetFunds) != 2 {
		return fmt.Errorf("TARGET_FUNDS must name exactly two funds, got %d", len(c.Analysis.TargetFunds))
	}

	if c.Analysis.TopK < 1 {
		return fmt.Errorf("TOP_K must be at least 1")
	}

	if len(c.Analysis.SelectedYears) == 0 {
		return fmt.Errorf("SELECTED_YEARS must not be empty")
	}
	for _, y := range c.Analysis.SelectedYears {
		if y < 1 || y > 5 {
			return fmt.Errorf("SELECTED_YEARS entry %d out of range 1..5", y)
		}
	}

	return nil
}

// RedisAddr returns host:port for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func getEnvAsIntList(key string, defaultValue []int) []int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	values, err := ParseIntList(valueStr)
	if err != nil {
		return defaultValue
	}
	return values
}

// ParseIntList parses "1,2, 3" into []int{1, 2, 3}
func ParseIntList(s string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}
