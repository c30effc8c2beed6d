package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Scoring    ScoringConfig
	Benchmark  BenchmarkConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// ScoringConfig holds the tunable scoring constants. The defaults are the
// empirically chosen production values; they are surfaced here so product
// review can adjust them without a rebuild.
type ScoringConfig struct {
	FloorPenalty      float64
	DistanceShortMax  float64
	DistanceMediumMax float64

	WeightEfficiency float64
	WeightRoomSize   float64
	WeightStaffing   float64
	WeightCapacity   float64

	WorkflowPenaltyPerPoint float64
	WorkflowOptimalTotal    float64
	WorkflowOptimalStep     float64

	PatientsPerRoomPerDay  int
	DefaultPatientsPerHour float64
}

// BenchmarkConfig holds knowledge-store resolution settings.
type BenchmarkConfig struct {
	CacheTTLSeconds     int
	EmbeddingDimensions int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "practice_analysis"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Scoring: ScoringConfig{
			FloorPenalty:      getEnvAsFloat("SCORE_FLOOR_PENALTY", 12),
			DistanceShortMax:  getEnvAsFloat("SCORE_DISTANCE_SHORT_MAX", 10),
			DistanceMediumMax: getEnvAsFloat("SCORE_DISTANCE_MEDIUM_MAX", 25),

			WeightEfficiency: getEnvAsFloat("SCORE_WEIGHT_EFFICIENCY", 0.35),
			WeightRoomSize:   getEnvAsFloat("SCORE_WEIGHT_ROOM_SIZE", 0.25),
			WeightStaffing:   getEnvAsFloat("SCORE_WEIGHT_STAFFING", 0.25),
			WeightCapacity:   getEnvAsFloat("SCORE_WEIGHT_CAPACITY", 0.15),

			WorkflowPenaltyPerPoint: getEnvAsFloat("SCORE_WORKFLOW_PENALTY_PER_POINT", 2),
			WorkflowOptimalTotal:    getEnvAsFloat("SCORE_WORKFLOW_OPTIMAL_TOTAL", 60),
			WorkflowOptimalStep:     getEnvAsFloat("SCORE_WORKFLOW_OPTIMAL_STEP", 15),

			PatientsPerRoomPerDay:  getEnvAsInt("SCORE_PATIENTS_PER_ROOM_PER_DAY", 10),
			DefaultPatientsPerHour: getEnvAsFloat("SCORE_DEFAULT_PATIENTS_PER_HOUR", 1.5),
		},
		Benchmark: BenchmarkConfig{
			CacheTTLSeconds:     getEnvAsInt("BENCHMARK_CACHE_TTL_SECONDS", 300),
			EmbeddingDimensions: getEnvAsInt("BENCHMARK_EMBEDDING_DIMENSIONS", 1024),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
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
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
