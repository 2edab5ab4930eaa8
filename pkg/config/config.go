package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Workflow  WorkflowConfig
	Auth      AuthConfig
	Assembly  AssemblyConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds transcript archive storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	Enabled         bool
}

// LLMConfig holds chat-completion provider configuration (OpenAI-compatible)
type LLMConfig struct {
	APIKey      string  `envconfig:"LLM_API_KEY"`
	BaseURL     string  `envconfig:"LLM_BASE_URL" default:"https://api.openai.com"`
	Model       string  `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	Temperature float64 `envconfig:"LLM_TEMPERATURE" default:"0.2"`
	MaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"4096"`
}

// EmbeddingConfig holds embedding provider configuration
type EmbeddingConfig struct {
	APIKey   string        `envconfig:"EMBEDDING_API_KEY"`
	BaseURL  string        `envconfig:"EMBEDDING_BASE_URL" default:"https://api.openai.com"`
	Model    string        `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	CacheTTL time.Duration `envconfig:"EMBEDDING_CACHE_TTL" default:"168h"`
}

// WorkflowConfig holds transcript-processing workflow tuning
type WorkflowConfig struct {
	ConfidenceThreshold float64
	FallbackOffsetDays  int
	RunTimeout          time.Duration
	RetrievalTopK       int
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	Disabled    bool
}

// AssemblyConfig holds AssemblyAI ingest configuration
type AssemblyConfig struct {
	APIKey       string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "team_assistant"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-archive"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			Enabled:         getEnvAsBool("STORAGE_ENABLED", true),
		},
		Workflow: WorkflowConfig{
			ConfidenceThreshold: getEnvAsFloat("WORKFLOW_CONFIDENCE_THRESHOLD", 0.35),
			FallbackOffsetDays:  getEnvAsInt("WORKFLOW_FALLBACK_OFFSET_DAYS", 7),
			RunTimeout:          getEnvAsDuration("WORKFLOW_TIMEOUT", "3m"),
			RetrievalTopK:       getEnvAsInt("WORKFLOW_RETRIEVAL_TOP_K", 3),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry: getEnvAsDuration("JWT_TOKEN_EXPIRY", "168h"),
			Disabled:    getEnvAsBool("AUTH_DISABLED", false),
		},
		Assembly: AssemblyConfig{
			APIKey:       getEnv("ASSEMBLYAI_API_KEY", ""),
			PollInterval: getEnvAsDuration("ASSEMBLYAI_POLL_INTERVAL", "5s"),
			PollTimeout:  getEnvAsDuration("ASSEMBLYAI_POLL_TIMEOUT", "10m"),
		},
	}

	// Provider sections carry many knobs; envconfig keeps the tags next to
	// the fields instead of another block of getEnv calls.
	if err := envconfig.Process("", &config.LLM); err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}
	if err := envconfig.Process("", &config.Embedding); err != nil {
		return nil, fmt.Errorf("failed to load embedding config: %w", err)
	}
	if config.Embedding.APIKey == "" {
		config.Embedding.APIKey = config.LLM.APIKey
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.Workflow.ConfidenceThreshold < 0 || c.Workflow.ConfidenceThreshold > 1 {
		return fmt.Errorf("WORKFLOW_CONFIDENCE_THRESHOLD must be between 0 and 1")
	}
	if c.Workflow.FallbackOffsetDays < 1 {
		return fmt.Errorf("WORKFLOW_FALLBACK_OFFSET_DAYS must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
