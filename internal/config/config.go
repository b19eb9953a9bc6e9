package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	Port               string
	SupabaseURL        string `validate:"required,url"`
	SupabaseAnonKey    string `validate:"required"`
	MongoDBURI         string `validate:"required"`
	MongoDBPassword    string
	TicketmasterAPIKey string `validate:"required"`
	CountryCode        string `validate:"len=2"`
	SyncMaxAgeHours    int    `validate:"min=1"`
	Environment        string
	LogLevel           string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnvWithDefault("PORT", "8080"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_URL_ANON_KEY"),
		MongoDBURI:         os.Getenv("MONGODB_URI"),
		MongoDBPassword:    os.Getenv("MONGODB_PASSWORD"),
		TicketmasterAPIKey: os.Getenv("TICKETMASTER_API_KEY"),
		CountryCode:        getEnvWithDefault("COUNTRY_CODE", "DK"),
		SyncMaxAgeHours:    getEnvIntWithDefault("SYNC_MAX_AGE_HOURS", 24),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
