package config

import (
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported values for the driver and provider switches
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"

	AnalysisModeAsync = "async"
	AnalysisModeSync  = "sync"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Assembly AssemblyAIConfig
	Agent    AgentConfig
	Analysis AnalysisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	Timezone        string   `envconfig:"TIMEZONE" default:"Asia/Tokyo"`
}

// DatabaseConfig selects the persistence backend and holds PostgreSQL settings
type DatabaseConfig struct {
	Driver      string `envconfig:"DB_DRIVER" default:"mongo"`
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_facilitator"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI            string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"MONGO_DATABASE" default:"meeting_facilitator"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"30s"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"meeting-facilitator"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"24h"`
}

// LLMConfig holds hosted model configuration
type LLMConfig struct {
	Provider        string        `envconfig:"LLM_PROVIDER" default:"gemini"`
	Model           string        `envconfig:"LLM_MODEL"`
	GeminiAPIKey    string        `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `envconfig:"OPENAI_BASE_URL"`
	GroqAPIKey      string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL     string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	MaxOutputTokens int           `envconfig:"LLM_MAX_OUTPUT_TOKENS" default:"2048"`
	MaxRetries      int           `envconfig:"LLM_MAX_RETRIES" default:"3"`
	Timeout         time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
}

// AssemblyAIConfig holds speech-to-text configuration
type AssemblyAIConfig struct {
	APIKey         string `envconfig:"ASSEMBLYAI_API_KEY"`
	Language       string `envconfig:"TRANSCRIPTION_LANGUAGE" default:"ja"`
	MaxUploadBytes int64  `envconfig:"TRANSCRIPTION_MAX_UPLOAD_BYTES" default:"104857600"`
}

// AgentConfig tunes the facilitator behaviour
type AgentConfig struct {
	FacilitatorName      string `envconfig:"AI_FACILITATOR_NAME" default:"AI Facilitator"`
	Language             string `envconfig:"AGENT_LANGUAGE" default:"Japanese"`
	InterventionSpanSecs int    `envconfig:"AGENT_INTERVENTION_SPAN_SECONDS" default:"10"`
	MinutesHistoryWindow int    `envconfig:"MINUTES_HISTORY_WINDOW" default:"30"`
}

// AnalysisConfig controls the post-message analysis worker
type AnalysisConfig struct {
	Mode       string        `envconfig:"ANALYSIS_MODE" default:"async"`
	Workers    int           `envconfig:"ANALYSIS_WORKERS" default:"2"`
	QueueSize  int           `envconfig:"ANALYSIS_QUEUE_SIZE" default:"100"`
	JobTimeout time.Duration `envconfig:"ANALYSIS_JOB_TIMEOUT" default:"2m"`
	MaxRetries int           `envconfig:"ANALYSIS_MAX_RETRIES" default:"2"`
	RetryDelay time.Duration `envconfig:"ANALYSIS_RETRY_DELAY" default:"2s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be one of mongo, postgres, memory (got %q)", c.Database.Driver)
	}

	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	case ProviderGroq:
		if c.LLM.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=groq")
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of gemini, openai, groq (got %q)", c.LLM.Provider)
	}

	if c.Analysis.Mode != AnalysisModeAsync && c.Analysis.Mode != AnalysisModeSync {
		return fmt.Errorf("ANALYSIS_MODE must be async or sync (got %q)", c.Analysis.Mode)
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("ANALYSIS_WORKERS must be at least 1")
	}
	if c.Agent.InterventionSpanSecs < 0 {
		return fmt.Errorf("AGENT_INTERVENTION_SPAN_SECONDS must not be negative")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Server.Timezone, err)
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

// InterventionSpan is the quiet period after a completed intervention
func (c *Config) InterventionSpan() time.Duration {
	return time.Duration(c.Agent.InterventionSpanSecs) * time.Second
}

// Location returns the time zone meeting times are expressed in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ModelName returns the configured model or the provider default
func (c *Config) ModelName() string {
	if c.LLM.Model != "" {
		return c.LLM.Model
	}
	switch c.LLM.Provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGroq:
		return "llama-3.3-70b-versatile"
	default:
		return "gemini-2.0-flash"
	}
}

// APIKey returns the key of the configured provider
func (c *Config) APIKey() string {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		return c.LLM.OpenAIAPIKey
	case ProviderGroq:
		return c.LLM.GroqAPIKey
	default:
		return c.LLM.GeminiAPIKey
	}
}

// BaseURL returns the API base URL of the configured provider, if overridden
func (c *Config) BaseURL() string {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		return c.LLM.OpenAIBaseURL
	case ProviderGroq:
		return c.LLM.GroqBaseURL
	default:
		return ""
	}
}
