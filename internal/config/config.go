package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	GinMode    string
	Port       string
	TZ         string
	LogLevel   string
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	DBSSLMode  string
}

// findEnvFile walks up from the working directory looking for name and
// returns "" when it is not found.
func findEnvFile(name string) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func Load() *Config {
	if getenv("GIN_MODE", "debug") == "debug" {
		if envPath := findEnvFile(".env"); envPath != "" {
			if err := godotenv.Load(envPath); err != nil {
				log.Warn().Err(err).Str("path", envPath).Msg("could not load env file")
			}
		}
	}

	cfg := &Config{
		GinMode:    getenv("GIN_MODE", "debug"),
		Port:       getenv("PORT", "8080"),
		TZ:         getenv("TZ", "UTC"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		DBDriver:   getenv("DB_DRIVER", DriverSQLite),
		SQLitePath: getenv("SQLITE_PATH", "library.db"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPass:     getenv("DB_PASS", ""),
		DBName:     getenv("DB_NAME", "library"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	return cfg
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set for driver %q", c.DBDriver)
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME must be set for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// DSN renders the connection string for the configured driver. SQLite
// connections always enable foreign keys so cascades are enforced.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return SQLiteDSN(c.SQLitePath)
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
