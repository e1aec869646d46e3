package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file path.
const EnvConfigPath = "FRONTLINE_CONFIG"

// Zone sources.
const (
	ZoneSourceFile     = "file"
	ZoneSourceDatabase = "database"
)

// Server holds all configuration for the frontline server.
type Server struct {
	LogLevel string `yaml:"log_level"`

	HTTP HTTPConfig `yaml:"http"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	Zones ZonesConfig `yaml:"zones"`

	Gamemode Gamemode `yaml:"gamemode"`
}

// HTTPConfig is the read-only API and websocket listener.
type HTTPConfig struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// ZonesConfig says where zone models come from.
type ZonesConfig struct {
	Source string `yaml:"source"` // file | database
	File   string `yaml:"file"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel: "info",
		HTTP: HTTPConfig{
			BindAddress: "0.0.0.0",
			Port:        8080,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "frontline",
			Password: "frontline",
			DBName:   "frontline",
			SSLMode:  "disable",
		},
		Zones: ZonesConfig{
			Source: ZoneSourceFile,
			File:   "data/zones.yaml",
		},
		Gamemode: DefaultGamemode(),
	}
}

// Validate checks the whole config.
func (s Server) Validate() error {
	switch s.Zones.Source {
	case ZoneSourceFile:
		if s.Zones.File == "" {
			return errors.New("zones.file is required when zones.source is file")
		}
	case ZoneSourceDatabase:
	default:
		return fmt.Errorf("zones.source %q: want %q or %q", s.Zones.Source, ZoneSourceFile, ZoneSourceDatabase)
	}
	if s.HTTP.Port < 0 || s.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", s.HTTP.Port)
	}
	if err := s.Gamemode.Validate(); err != nil {
		return fmt.Errorf("gamemode: %w", err)
	}
	return nil
}

// ResolvePath returns the FRONTLINE_CONFIG override if set, else def.
func ResolvePath(def string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return def
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
