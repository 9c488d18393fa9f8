package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string    `mapstructure:"env"`          // current application environment (local, dev, prod etc)
	CatalogPath string    `mapstructure:"catalog_path"` // path to the bundled JSON flashcard dataset
	HTTP        HTTP      `mapstructure:"http"`         // HTTP server section
	DB          DB        `mapstructure:"database"`     // database configuration section
	Reminders   Reminders `mapstructure:"reminders"`    // due-reminder job section
}

// HTTP contains server-related configuration parameters.
type HTTP struct {
	Addr           string   `mapstructure:"addr"`            // listen address
	AllowedOrigins []string `mapstructure:"allowed_origins"` // CORS origins of the web client
}

// DB contains database-related configuration parameters.
type DB struct {
	Type string `mapstructure:"type"` // "sqlite" or "postgres"
	Path string `mapstructure:"path"` // sqlite file path
	URL  string `mapstructure:"-"`    // postgres connection string loaded from environment
}

// Reminders configures the hourly due-card reminder job.
type Reminders struct {
	Enabled   bool `mapstructure:"enabled"`
	StartHour int  `mapstructure:"start_hour"` // first hour of day reminders may fire
	EndHour   int  `mapstructure:"end_hour"`   // last hour of day reminders may fire
}

// DSN returns the connection string for the configured database type.
func (db DB) DSN() (string, error) {
	if db.Type == "postgres" {
		if db.URL == "" {
			return "", ErrMissingEnvironmentVariables
		}
		return db.URL, nil
	}
	return db.Path, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("catalog_path", "assets/data/fichas.json")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "data/fichas.db")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.start_hour", 8)
	v.SetDefault("reminders.end_hour", 22)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database.type", "DB_TYPE")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.Type == "postgres" && cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
