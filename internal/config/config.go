package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Static  StaticConfig  `mapstructure:"static"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string    `mapstructure:"port"`
	TLS  TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS settings.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database settings.
type DBConfig struct {
	DSN            string `mapstructure:"dsn"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// SessionConfig holds session management settings.
type SessionConfig struct {
	// Lifetime is the session lifetime in hours.
	Lifetime int `mapstructure:"lifetime"`
}

// CacheConfig holds settings for the sqlite-backed cache.
type CacheConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// StaticConfig holds settings for the image directory served by the front office.
type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

// AdminConfig holds the bootstrap administrator credentials. The account is
// created on startup only when the users table is empty.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Email    string `mapstructure:"email"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "3001")
	viper.SetDefault("db.dsn", "cms.db")
	viper.SetDefault("db.migrations_path", "migrations")
	viper.SetDefault("session.lifetime", 24)
	viper.SetDefault("cache.file_path", "cache.db")
	viper.SetDefault("static.dir", "static")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.email", "admin@localhost")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/go-cms-app/")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("CMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
