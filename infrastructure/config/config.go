package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	GSI1IndexName string
	PhotoBucket   string

	// Reminder scheduling
	ScheduleGroup     string
	ScheduleTargetArn string
	ScheduleRoleArn   string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "fermentlog"),
		GSI1IndexName: getEnv("GSI1_INDEX_NAME", "GSI1"),
		PhotoBucket:   getEnv("PHOTO_BUCKET", "fermentlog-photos"),

		ScheduleGroup:     getEnv("SCHEDULE_GROUP", "fermentlog-reminders"),
		ScheduleTargetArn: getEnv("SCHEDULE_TARGET_ARN", ""),
		ScheduleRoleArn:   getEnv("SCHEDULE_ROLE_ARN", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "fermentlog"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.IsProduction() {
		if c.JWTSecret == "" && os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
			return fmt.Errorf("JWT_SECRET is required in production outside Lambda")
		}
		if c.PhotoBucket == "" {
			return fmt.Errorf("PHOTO_BUCKET is required in production")
		}
		if c.ScheduleTargetArn == "" || c.ScheduleRoleArn == "" {
			return fmt.Errorf("SCHEDULE_TARGET_ARN and SCHEDULE_ROLE_ARN are required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
