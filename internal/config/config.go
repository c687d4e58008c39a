package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Vault    VaultConfig
	Import   ImportConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	RateLimitPerSec  int
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type VaultConfig struct {
	Passphrase string
	Salt       []byte
}

type ImportConfig struct {
	DecryptBatchSize int
	MaxRowsPerImport int
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8087"),
			Host:            getEnv("SERVER_HOST", "127.0.0.1"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			RateLimitPerSec: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Path:            getEnv("DB_PATH", "budgetvault.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "budget_user"),
			Password:        getEnv("DB_PASSWORD", "budget_password"),
			Name:            getEnv("DB_NAME", "budget_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Import: ImportConfig{
			DecryptBatchSize: getIntEnv("IMPORT_DECRYPT_BATCH_SIZE", 50),
			MaxRowsPerImport: getIntEnv("IMPORT_MAX_ROWS", 5000),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	var loadVaultErr error
	config.Vault, loadVaultErr = config.loadVaultConfig()
	if loadVaultErr != nil {
		log.Fatal("Failed to load vault configuration:", loadVaultErr)
	}

	return config
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadVaultConfig loads the vault passphrase and salt
// Priority order:
// 1. If VAULT_PASSPHRASE and VAULT_SALT env vars are set, use them
// 2. If production and either is missing, fail (encrypted data would be unreadable)
// 3. If development/testing, fall back to a fixed dev passphrase and salt
func (c *Config) loadVaultConfig() (VaultConfig, error) {
	passphrase := os.Getenv("VAULT_PASSPHRASE")
	saltB64 := os.Getenv("VAULT_SALT")

	if passphrase != "" && saltB64 != "" {
		salt, err := base64.StdEncoding.DecodeString(saltB64)
		if err != nil {
			return VaultConfig{}, fmt.Errorf("failed to decode VAULT_SALT: %w", err)
		}
		return VaultConfig{Passphrase: passphrase, Salt: salt}, nil
	}

	if c.IsProduction() {
		return VaultConfig{}, fmt.Errorf("VAULT_PASSPHRASE and VAULT_SALT environment variables must be set in production environments")
	}

	log.Println("Development environment: using built-in vault passphrase (set VAULT_PASSPHRASE and VAULT_SALT to protect real data)")
	return VaultConfig{
		Passphrase: "budgetvault-dev-passphrase",
		Salt:       []byte("budgetvault-dev!"),
	}, nil
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			log.Println("WARNING: CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*' (all origins). Consider setting specific origins for security.")
		} else {
			log.Println("INFO: CORS_ALLOW_ORIGINS not set, defaulting to '*' (all origins)")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	log.Printf("CORS allowed origins configured: %v", origins)
	return origins
}
