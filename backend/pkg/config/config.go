package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"socialgraph/backend/internal/constants"
	apperrors "socialgraph/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Separation
	MaxSearchDepth int // 0 means unbounded

	// Neo4j projection
	Neo4jURI          string
	Neo4jUser         string
	Neo4jPassword     string
	ProjectionEnabled bool
	ProjectionWorkers int

	// Discord
	DiscordBotToken      string
	DiscordCommandPrefix string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		MaxSearchDepth:       getEnvInt("MAX_SEARCH_DEPTH", 0),
		Neo4jURI:             getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:            getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:        getEnv("NEO4J_PASSWORD", "password"),
		ProjectionEnabled:    getEnvBool("PROJECTION_ENABLED", false),
		ProjectionWorkers:    getEnvInt("PROJECTION_WORKERS", constants.DefaultProjectionWorkers),
		DiscordBotToken:      getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordCommandPrefix: getEnv("DISCORD_COMMAND_PREFIX", constants.DefaultCommandPrefix),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if c.MaxSearchDepth < 0 {
		return apperrors.NewConfigValidationFailed("MAX_SEARCH_DEPTH", "must be >= 0")
	}
	if strings.TrimSpace(c.DiscordCommandPrefix) == "" {
		return apperrors.NewConfigMissingRequired("DISCORD_COMMAND_PREFIX")
	}
	// Neo4j settings only matter once the projection is switched on
	if c.ProjectionEnabled {
		if c.Neo4jURI == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_URI")
		}
		if c.Neo4jUser == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_USER")
		}
		if c.Neo4jPassword == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
		}
		if c.ProjectionWorkers < 1 {
			return apperrors.NewConfigValidationFailed("PROJECTION_WORKERS", "must be >= 1")
		}
	}
	// Discord token is optional; only the bot binary requires it
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
