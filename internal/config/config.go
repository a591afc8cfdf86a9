// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token scheme values for AuthConfig.TokenScheme
const (
	TokenSchemePlain = "plain"
	TokenSchemeJWT   = "jwt"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	Auth     AuthConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds token scheme and access policy settings
type AuthConfig struct {
	// TokenScheme selects the bearer token codec: "plain" keeps the
	// original id-as-token behavior, "jwt" issues signed tokens instead.
	TokenScheme string
	JWTSecret   string
	JWTExpiry   time.Duration
	// EnforceWriteOwnership makes article update/delete require the caller
	// to be the author or an admin. Off by default: the original exposes
	// those operations without any actor resolution.
	EnforceWriteOwnership bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional; real environment variables win and
	// the per-variable checks below are the actual validation)
	_ = godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// Auth configuration
	tokenScheme := os.Getenv("AUTH_TOKEN_SCHEME")
	if tokenScheme == "" {
		tokenScheme = TokenSchemePlain
	}
	if tokenScheme != TokenSchemePlain && tokenScheme != TokenSchemeJWT {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_SCHEME: %q", tokenScheme)
	}
	cfg.Auth.TokenScheme = tokenScheme

	cfg.Auth.JWTSecret = os.Getenv("AUTH_JWT_SECRET")
	if tokenScheme == TokenSchemeJWT && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_TOKEN_SCHEME is jwt")
	}

	jwtExpiryStr := os.Getenv("AUTH_JWT_EXPIRY")
	if jwtExpiryStr == "" {
		jwtExpiryStr = "24h"
	}
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_JWT_EXPIRY: %w", err)
	}
	cfg.Auth.JWTExpiry = jwtExpiry

	enforceStr := os.Getenv("AUTH_ENFORCE_WRITE_OWNERSHIP")
	if enforceStr != "" {
		enforce, err := strconv.ParseBool(enforceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_ENFORCE_WRITE_OWNERSHIP: %w", err)
		}
		cfg.Auth.EnforceWriteOwnership = enforce
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
