package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	SessionSecretKey string `mapstructure:"session_secret_key"`

	// Optional HTTP settings
	HTTPHost string `mapstructure:"http_host"`
	HTTPPort int    `mapstructure:"http_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional storage settings
	DBPath string `mapstructure:"db_path"`

	// Optional session settings
	SessionAlgorithm string `mapstructure:"session_algorithm"`

	ConfigPath string
}

const (
	DefaultConfigPath       = "/etc/taskdeck/config.yml"
	DefaultDBPath           = "/var/lib/taskdeck/db.sqlite3"
	DefaultHTTPHost         = "0.0.0.0"
	DefaultHTTPPort         = 8000
	DefaultSessionAlgorithm = "HS256"
)

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("http_host", DefaultHTTPHost)
	viper.SetDefault("http_port", DefaultHTTPPort)
	viper.SetDefault("db_path", DefaultDBPath)
	viper.SetDefault("session_algorithm", DefaultSessionAlgorithm)

	// Allow environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKDECK")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	// The session signing secret must come from configuration; there is no
	// built-in fallback value.
	if c.SessionSecretKey == "" {
		return fmt.Errorf("session_secret_key is required")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("TASKDECK_DEV_MODE") == "1"
}
