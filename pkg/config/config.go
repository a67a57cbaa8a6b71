// Package config provides configuration management for the SPPD manager.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig
	Archive ArchiveConfig
	Server  ServerConfig
	Printer PrinterConfig
	Debug   bool
}

// StorageConfig represents the key-value store configuration.
type StorageConfig struct {
	DataDir  string
	Backend  string // bolt, sqlite or memory
	DBPath   string
	MaxBytes int64 // 0 for no limit
}

// ArchiveConfig represents the document archive configuration.
type ArchiveConfig struct {
	Dir string
}

// ServerConfig represents the local HTTP API configuration.
type ServerConfig struct {
	ListenAddr string
}

// PrinterConfig represents the PDF output configuration.
type PrinterConfig struct {
	Engine string // fpdf or chrome
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	maxBytes, err := parseInt64Env("SPPD_MAX_BYTES", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid SPPD_MAX_BYTES: %w", err)
	}

	config := &Config{
		Storage: StorageConfig{
			DataDir:  getEnvOrDefault("SPPD_DATA_DIR", "./sppd-data"),
			Backend:  getEnvOrDefault("SPPD_STORE", "bolt"),
			DBPath:   os.Getenv("SPPD_DB_PATH"),
			MaxBytes: maxBytes,
		},
		Archive: ArchiveConfig{
			Dir: os.Getenv("SPPD_ARCHIVE_DIR"),
		},
		Server: ServerConfig{
			ListenAddr: getEnvOrDefault("SPPD_LISTEN_ADDR", "127.0.0.1:8080"),
		},
		Printer: PrinterConfig{
			Engine: getEnvOrDefault("SPPD_PDF_ENGINE", "fpdf"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "storage":
			switch path[1] {
			case "dataDir":
				value = c.Storage.DataDir
			case "backend":
				value = c.Storage.Backend
			case "dbPath":
				value = c.Storage.DBPath
			}
		case "archive":
			if path[1] == "dir" {
				value = c.Archive.Dir
			}
		case "server":
			if path[1] == "listenAddr" {
				value = c.Server.ListenAddr
			}
		case "printer":
			if path[1] == "engine" {
				value = c.Printer.Engine
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// Profile is an institution profile kept in a YAML file, e.g.
//
//	settings:
//	  instansi: DINAS PERHUBUNGAN
//	  kota: Bandung
//	  ttdNama: Ir. Ahmad Yani
type Profile struct {
	Settings models.Settings `yaml:"settings"`
}

// LoadProfile reads an institution profile. Fields missing from the file keep
// their default values.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := &Profile{Settings: models.DefaultSettings()}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return profile, nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt64Env parses an int64 from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseInt64Env(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
