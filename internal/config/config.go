package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFile     = "file"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Storage
	DBDriver      string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	StateFile     string
	StateKey      string
	MigrationsDir string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Calendar used for day-granular filtering and daily series.
	Location *time.Location

	// SeedDemoData adds the sample transactions when nothing was stored.
	SeedDemoData bool

	// Change feed; disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string

	// Admin endpoints answer 503 while AdminAPIKey is empty.
	AdminAPIKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBDriver:      getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", "expensetracker.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "expensetracker"),
		DBPassword:    getEnv("DB_PASSWORD", "expensetracker"),
		DBName:        getEnv("DB_NAME", "expensetracker"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		StateFile:     getEnv("STATE_FILE", "expense-tracker-data.json"),
		StateKey:      getEnv("STATE_KEY", "expense-tracker-data"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expensetracker.changes"),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	tz := getEnv("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE value '%s', falling back to UTC\n", tz)
		loc = time.UTC
	}
	config.Location = loc

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "true"))
	if err != nil {
		log.Printf("Warning: invalid SEED_DEMO_DATA value, falling back to true\n")
		seed = true
	}
	config.SeedDemoData = seed

	switch config.DBDriver {
	case DriverSQLite, DriverPostgres, DriverFile:
	default:
		log.Printf("Warning: unknown DB_DRIVER '%s', falling back to %s\n", config.DBDriver, DriverSQLite)
		config.DBDriver = DriverSQLite
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
