package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// GitHubConfig holds GitHub API configuration
type GitHubConfig struct {
	// BaseURL is the GitHub REST API root, without a trailing slash.
	BaseURL string
	// APIVersion is sent as the X-GitHub-Api-Version header.
	APIVersion string
	// RequestTimeout bounds a single upstream HTTP request.
	RequestTimeout time.Duration
	// AggregateTimeout is the shared deadline for one full user-info collection.
	AggregateTimeout time.Duration
	// PerPage is the page size requested from paginated endpoints (max 100).
	PerPage int
	// MaxPages caps how many pages are fetched per resource.
	MaxPages int
	// MaxRetries is the number of retries after a transient upstream failure.
	MaxRetries int
	// InitialBackoff is the first retry delay; doubles per attempt up to MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, so we don't return error if it doesn't exist
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
		},
		GitHub: GitHubConfig{
			BaseURL:          getEnv("GITHUB_API_BASE_URL", "https://api.github.com"),
			APIVersion:       getEnv("GITHUB_API_VERSION", "2022-11-28"),
			RequestTimeout:   getEnvAsDuration("GITHUB_REQUEST_TIMEOUT", 10*time.Second),
			AggregateTimeout: getEnvAsDuration("GITHUB_AGGREGATE_TIMEOUT", 30*time.Second),
			PerPage:          getEnvAsInt("GITHUB_PER_PAGE", 100),
			MaxPages:         getEnvAsInt("GITHUB_MAX_PAGES", 100),
			MaxRetries:       getEnvAsInt("GITHUB_MAX_RETRIES", 3),
			InitialBackoff:   getEnvAsDuration("GITHUB_INITIAL_BACKOFF", 1*time.Second),
			MaxBackoff:       getEnvAsDuration("GITHUB_MAX_BACKOFF", 30*time.Second),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHub.BaseURL == "" {
		return fmt.Errorf("GITHUB_API_BASE_URL must not be empty")
	}
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		return fmt.Errorf("GITHUB_PER_PAGE must be between 1 and 100, got %d", c.GitHub.PerPage)
	}
	if c.GitHub.MaxPages < 1 {
		return fmt.Errorf("GITHUB_MAX_PAGES must be at least 1, got %d", c.GitHub.MaxPages)
	}
	if c.GitHub.MaxRetries < 0 {
		return fmt.Errorf("GITHUB_MAX_RETRIES must not be negative, got %d", c.GitHub.MaxRetries)
	}
	if c.GitHub.AggregateTimeout <= 0 {
		return fmt.Errorf("GITHUB_AGGREGATE_TIMEOUT must be positive, got %v", c.GitHub.AggregateTimeout)
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
