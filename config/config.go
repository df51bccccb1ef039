package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultSQLiteFile = "agrichain.db"
)

// Config holds all configuration for an AgriChain node
type Config struct {
	HTTPPort  string          `mapstructure:"http_port"`
	LogLevel  string          `mapstructure:"log_level"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	I18n      I18nConfig      `mapstructure:"i18n"`
}

// DatabaseConfig selects the registration database
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// StorageConfig points at the badger directory used for sessions.
// An empty path keeps badger in memory.
type StorageConfig struct {
	BadgerPath string `mapstructure:"badger_path"`
}

// WorkspaceConfig sizes the per-session dashboard cache
type WorkspaceConfig struct {
	CacheSize int           `mapstructure:"cache_size"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// I18nConfig holds localization settings
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "5000")
	v.SetDefault("log_level", "info")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgrespassword")
	v.SetDefault("database.name", "agrichain")

	v.SetDefault("storage.badger_path", "")

	v.SetDefault("workspace.cache_size", 1024)
	v.SetDefault("workspace.ttl", 24*time.Hour)

	v.SetDefault("i18n.default_language", "en")
}

// LoadConfig reads defaults, then the optional config file, then AGRICHAIN_* environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AGRICHAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// GetDSN returns the connection string for the configured driver.
// An explicit dsn wins; otherwise postgres is assembled from its parts.
func (c *Config) GetDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Database.Driver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.Name,
		)
	}
	return DefaultSQLiteFile
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http_port is required")
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Workspace.CacheSize <= 0 {
		return fmt.Errorf("workspace.cache_size must be positive")
	}
	if c.Workspace.TTL <= 0 {
		return fmt.Errorf("workspace.ttl must be positive")
	}
	if c.I18n.DefaultLanguage == "" {
		return fmt.Errorf("i18n.default_language is required")
	}
	return nil
}
