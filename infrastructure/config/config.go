package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion     string `yaml:"aws_region"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	IndexName     string `yaml:"index_name"` // GSI1 - date-ordered event listing

	// LLM configuration
	LLMBaseURL        string        `yaml:"llm_base_url"`
	LLMAPIKey         string        `yaml:"llm_api_key"`
	LLMModel          string        `yaml:"llm_model"`
	LLMTimeout        time.Duration `yaml:"-"`
	StoreQueryTimeout time.Duration `yaml:"-"`

	// Geocoding
	GeocodeBaseURL       string `yaml:"geocode_base_url"`
	GeocodeUserAgent     string `yaml:"geocode_user_agent"`
	GeocodeCacheCapacity int    `yaml:"geocode_cache_capacity"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Authentication
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`

	// Feature flags
	EnableCORS bool `yaml:"enable_cors"`
}

// LoadConfig loads configuration from the optional YAML file named by
// CONFIG_FILE, then overlays environment variables on top. Environment
// always wins so deployments can override a checked-in file.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.overlayEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func defaults() *Config {
	return &Config{
		ServerAddress:        ":8080",
		Environment:          "development",
		AWSRegion:            "us-west-2",
		DynamoDBTable:        "eventlens-events",
		IndexName:            "DateIndex",
		LLMBaseURL:           "https://api.groq.com/openai/v1",
		LLMModel:             "llama3-70b-8192",
		LLMTimeout:           15 * time.Second,
		StoreQueryTimeout:    15 * time.Second,
		GeocodeUserAgent:     "eventlens-backend/1.0",
		GeocodeCacheCapacity: 1000,
		LogLevel:             "info",
		JWTIssuer:            "eventlens-backend",
		EnableCORS:           true,
	}
}

// fileDurations carries the duration settings as strings ("15s", "1m")
// since YAML has no native duration type.
type fileDurations struct {
	LLMTimeout        string `yaml:"llm_timeout"`
	StoreQueryTimeout string `yaml:"store_query_timeout"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	var durations fileDurations
	if err := yaml.Unmarshal(data, &durations); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if durations.LLMTimeout != "" {
		if c.LLMTimeout, err = time.ParseDuration(durations.LLMTimeout); err != nil {
			return fmt.Errorf("parse llm_timeout: %w", err)
		}
	}
	if durations.StoreQueryTimeout != "" {
		if c.StoreQueryTimeout, err = time.ParseDuration(durations.StoreQueryTimeout); err != nil {
			return fmt.Errorf("parse store_query_timeout: %w", err)
		}
	}
	return nil
}

func (c *Config) overlayEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.IndexName = getEnv("INDEX_NAME", c.IndexName)

	c.LLMBaseURL = getEnv("LLM_BASE_URL", c.LLMBaseURL)
	c.LLMAPIKey = getEnv("LLM_API_KEY", getEnv("GROQ_API_KEY", c.LLMAPIKey))
	c.LLMModel = getEnv("LLM_MODEL", c.LLMModel)
	c.LLMTimeout = getEnvDuration("LLM_TIMEOUT", c.LLMTimeout)
	c.StoreQueryTimeout = getEnvDuration("STORE_QUERY_TIMEOUT", c.StoreQueryTimeout)

	c.GeocodeBaseURL = getEnv("GEOCODE_BASE_URL", c.GeocodeBaseURL)
	c.GeocodeUserAgent = getEnv("GEOCODE_USER_AGENT", c.GeocodeUserAgent)
	c.GeocodeCacheCapacity = getEnvInt("GEOCODE_CACHE_CAPACITY", c.GeocodeCacheCapacity)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DynamoDBTable == "" {
		return fmt.Errorf("DYNAMODB_TABLE is required")
	}
	if c.IndexName == "" {
		return fmt.Errorf("INDEX_NAME is required")
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.LLMAPIKey == "" {
			return fmt.Errorf("LLM_API_KEY is required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
