package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SecretKey    string
	CORSOrigins  []string
	LogFile      string
	LogFormat    string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var cors string

	fs := flag.NewFlagSet("agroconnect", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cors, "cors", "", "Comma-separated allowed CORS origins")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretKey, "secret", "", "Token signing key (prefer env)")

	// Logging
	fs.StringVar(&cfg.LogFile, "log-file", "", "Also write logs to this rotating file")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8001 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DatabaseSQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "agroconnect.db"
	}

	if cors == "" {
		cors = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitList(cors)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("LOG_FILE")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	// Secrets - MUST be provided
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv("SECRET_KEY")
	}
	if cfg.SecretKey == "" {
		return Config{}, errors.New("SECRET_KEY required")
	}

	return cfg, nil
}

// LoadEnv loads variables from .env files into the process environment.
// Missing files are skipped; variables already set are left alone.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ClientConfig configures the terminal client
type ClientConfig struct {
	BackendURL  string
	SessionFile string
	Timeout     time.Duration
}

// ClientFromEnv reads client settings from AGROCONNECT_* variables
func ClientFromEnv() (ClientConfig, error) {
	cfg := ClientConfig{
		BackendURL:  os.Getenv("AGROCONNECT_BACKEND_URL"),
		SessionFile: os.Getenv("AGROCONNECT_SESSION_FILE"),
		Timeout:     30 * time.Second,
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:8001"
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("failed to locate config dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "agroconnect", "session.json")
	}

	if t := os.Getenv("AGROCONNECT_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return ClientConfig{}, errors.New("invalid AGROCONNECT_TIMEOUT env variable")
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
