package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"curtainledger/internal/catalog"

	"github.com/joho/godotenv"
)

// Store drivers selectable with STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverExcel    = "excel"
	DriverPebble   = "pebble"
	DriverPostgres = "postgres"
)

type Config struct {
	Port            string
	GinMode         string
	StoreDriver     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	ExcelPath       string
	PebbleDir       string
	AdminPassword   string
	JWTSecret       string
	CORSOrigins     []string
	PhoneDigitsOnly bool
	LaborCategory   string
	PayoutBasis     string
	OrderSort       string
}

// Load reads configs/.env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load("configs/.env")
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverExcel)),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "postgres"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		ExcelPath:       getEnv("EXCEL_PATH", "data/ledger.xlsx"),
		PebbleDir:       getEnv("PEBBLE_DIR", "data/pebble"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "8888"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		PhoneDigitsOnly: getEnvAsBool("PHONE_DIGITS_ONLY", false),
		LaborCategory:   getEnv("LABOR_CATEGORY", catalog.DefaultLaborCategory),
		PayoutBasis:     getEnv("PAYOUT_PERIOD_BASIS", "item"),
		OrderSort:       getEnv("ORDER_SORT", "insertion"),
	}
}

// DSN is the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverExcel, DriverPebble, DriverPostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		if c.GinMode == "release" {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		c.JWTSecret = "dev_only_secret"
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
