package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	LiveKit   LiveKitConfig
	Calendar  CalendarConfig
	Tasks     TasksConfig
	Groq      GroqConfig
	Telemetry TelemetryConfig
	Capture   CaptureConfig
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
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	UseMock  bool
}

// JWTConfig holds JWT configuration. Tokens are issued elsewhere; this service only verifies.
type JWTConfig struct {
	AccessSecret string
}

// StorageConfig holds storage configuration for notes pages
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PresignExpiry   time.Duration
	UseMock         bool
}

// LiveKitConfig holds LiveKit configuration for online meeting rooms
type LiveKitConfig struct {
	URL       string
	APIKey    string
	APISecret string
	JoinURL   string
	UseMock   bool
}

// CalendarConfig holds Google Calendar configuration
type CalendarConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string
	TimeZone     string
	UseMock      bool
}

// TasksConfig holds the external task API configuration
type TasksConfig struct {
	BaseURL     string
	APIToken    string
	ListID      string
	TaskURLBase string
	UseMock     bool
}

// GroqConfig holds the suggestion model configuration
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	UseMock bool
}

// TelemetryConfig holds tracing configuration. An empty endpoint disables export.
type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
}

// CaptureConfig holds the capture engine tunables, read with envconfig under the CAPTURE_ prefix
type CaptureConfig struct {
	CallTimeout             time.Duration `envconfig:"CALL_TIMEOUT" default:"5s"`
	ScheduleRetryMaxElapsed time.Duration `envconfig:"SCHEDULE_RETRY_MAX_ELAPSED" default:"10s"`
	QuickCloseSummary       string        `envconfig:"QUICK_CLOSE_SUMMARY" default:"No notable outcomes."`
	SuggestionCacheTTL      time.Duration `envconfig:"SUGGESTION_CACHE_TTL" default:"10m"`
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
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "meeting_capture"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			UseMock:  getEnvAsBool("REDIS_USE_MOCK", false),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-notes"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PresignExpiry:   getEnvAsDuration("STORAGE_PRESIGN_EXPIRY", "168h"),
			UseMock:         getEnvAsBool("STORAGE_USE_MOCK", false),
		},
		LiveKit: LiveKitConfig{
			URL:       getEnv("LIVEKIT_URL", "http://localhost:7880"),
			APIKey:    getEnv("LIVEKIT_API_KEY", ""),
			APISecret: getEnv("LIVEKIT_API_SECRET", ""),
			JoinURL:   getEnv("LIVEKIT_JOIN_URL", "http://localhost:3000/rooms"),
			UseMock:   getEnvAsBool("LIVEKIT_USE_MOCK", true),
		},
		Calendar: CalendarConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RefreshToken: getEnv("GOOGLE_CALENDAR_REFRESH_TOKEN", ""),
			CalendarID:   getEnv("GOOGLE_CALENDAR_ID", "primary"),
			TimeZone:     getEnv("GOOGLE_CALENDAR_TIMEZONE", "UTC"),
			UseMock:      getEnvAsBool("CALENDAR_USE_MOCK", true),
		},
		Tasks: TasksConfig{
			BaseURL:     getEnv("TASKS_BASE_URL", "https://api.clickup.com/api/v2"),
			APIToken:    getEnv("TASKS_API_TOKEN", ""),
			ListID:      getEnv("TASKS_LIST_ID", ""),
			TaskURLBase: getEnv("TASKS_URL_BASE", "https://app.clickup.com/t"),
			UseMock:     getEnvAsBool("TASKS_USE_MOCK", true),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			UseMock: getEnvAsBool("GROQ_USE_MOCK", true),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "meeting-capture"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}

	if err := envconfig.Process("CAPTURE", &config.Capture); err != nil {
		return nil, fmt.Errorf("failed to read capture config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. Secrets are only required for adapters that are not mocked.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if !c.LiveKit.UseMock && (c.LiveKit.APIKey == "" || c.LiveKit.APISecret == "") {
		return fmt.Errorf("LIVEKIT_API_KEY and LIVEKIT_API_SECRET are required")
	}
	if !c.Calendar.UseMock {
		if c.Calendar.ClientID == "" || c.Calendar.ClientSecret == "" {
			return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
		}
		if c.Calendar.RefreshToken == "" {
			return fmt.Errorf("GOOGLE_CALENDAR_REFRESH_TOKEN is required")
		}
	}
	if !c.Tasks.UseMock && (c.Tasks.APIToken == "" || c.Tasks.ListID == "") {
		return fmt.Errorf("TASKS_API_TOKEN and TASKS_LIST_ID are required")
	}
	if !c.Groq.UseMock && c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.Capture.CallTimeout <= 0 {
		return fmt.Errorf("CAPTURE_CALL_TIMEOUT must be positive")
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
