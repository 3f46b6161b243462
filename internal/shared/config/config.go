package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	TLS       TLSConfig
	Telemetry TelemetryConfig
	Log       LogConfig
	AMQP      AMQPConfig
	Messages  MessagesConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	AllowedHosts []string
}

// DatabaseConfig selects the storage backend. DriverMemory keeps everything
// in process and ignores the connection settings.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

type TLSConfig struct {
	Enabled      bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	MetricsPort  string
}

type LogConfig struct {
	Level  string
	Format string
}

// AMQPConfig is only used when URL is set; otherwise emails are logged.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type MessagesConfig struct {
	File string
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	minSecretLength = 32
)

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	expMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	// Parse allowed hosts (comma-separated list)
	var allowedHosts []string
	if raw := getEnv("ALLOWED_HOSTS", ""); raw != "" {
		for _, host := range strings.Split(raw, ",") {
			host = strings.TrimSpace(host)
			if host != "" {
				allowedHosts = append(allowedHosts, host)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			Environment:  getEnv("ENV", "development"),
			AllowedHosts: allowedHosts,
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "nestfin"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "nestfin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Issuer:     getEnv("JWT_ISSUER", "NestFin"),
			Audience:   getEnv("JWT_AUDIENCE", "NestFinUsers"),
			Expiration: time.Duration(expMinutes) * time.Minute,
		},
		TLS: TLSConfig{
			Enabled:      getBoolEnv("TLS_ENABLED", false),
			CertPath:     getEnv("TLS_CERT_FILE", ""),
			KeyPath:      getEnv("TLS_KEY_FILE", ""),
			RedirectHTTP: getBoolEnv("TLS_REDIRECT_HTTP", false),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "nestfin-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9090"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "nestfin.email"),
			Queue:    getEnv("AMQP_QUEUE", "nestfin.email.outbound"),
		},
		Messages: MessagesConfig{
			File: getEnv("MESSAGES_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.JWT.Secret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case len(c.JWT.Secret) < minSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}
	if c.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINUTES must be positive"))
	}

	if c.TLS.Enabled {
		if c.TLS.CertPath == "" {
			errs = append(errs, errors.New("TLS_CERT_FILE is required when TLS_ENABLED=true"))
		}
		if c.TLS.KeyPath == "" {
			errs = append(errs, errors.New("TLS_KEY_FILE is required when TLS_ENABLED=true"))
		}
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
