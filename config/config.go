package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=shipments port=5432 sslmode=disable"
	defaultSQLiteDSN   = "shipments.db"
)

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type Config struct {
	Database        DatabaseConfig
	HTTPAddr        string
	LogsDirectory   string
	LogLevel        string
	SeedOnStartup   bool
	ReportSchedule  string
	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to defaults for unset
// or unparsable values.
func FromEnv(lookup func(string) (string, bool)) *Config {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return def
	}

	driver := get("DATABASE_DRIVER", DriverPostgres)
	defaultDSN := defaultPostgresDSN
	if driver == DriverSQLite {
		defaultDSN = defaultSQLiteDSN
	}

	seed, err := strconv.ParseBool(get("SEED_ON_STARTUP", "true"))
	if err != nil {
		seed = true
	}

	shutdown, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdown <= 0 {
		shutdown = 10 * time.Second
	}

	return &Config{
		Database: DatabaseConfig{
			Driver: driver,
			DSN:    get("DATABASE_DSN", defaultDSN),
		},
		HTTPAddr:        get("HTTP_ADDR", ":8080"),
		LogsDirectory:   get("LOGS_DIRECTORY", ""),
		LogLevel:        get("LOG_LEVEL", "info"),
		SeedOnStartup:   seed,
		ReportSchedule:  get("REPORT_SCHEDULE", "*/30 * * * *"),
		ShutdownTimeout: shutdown,
	}
}
