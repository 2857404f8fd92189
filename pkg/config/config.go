package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	SessionSecret string `mapstructure:"session_secret"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional storage settings
	DBPath string `mapstructure:"db_path"`

	// Optional session settings
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SessionCookieName string        `mapstructure:"session_cookie_name"`
	CookieSecure      bool          `mapstructure:"cookie_secure"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	DevMode bool `mapstructure:"dev_mode"`

	ConfigPath string
}

const (
	EnvPrefix                = "RECIPEBOX"
	DefaultAPIHost           = "0.0.0.0"
	DefaultAPIPort           = 5555
	DefaultDBPath            = "recipebox.sqlite3"
	DefaultSessionTTL        = 14 * 24 * time.Hour
	DefaultSessionCookieName = "session"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
	MinSessionSecretLength   = 16
)

// Load reads configuration from the optional YAML file at configPath, a .env
// file in the working directory and RECIPEBOX_* environment variables, in
// increasing order of precedence.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("session_cookie_name", DefaultSessionCookieName)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("dev_mode", false)
	v.SetDefault("session_secret", "")

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session_secret is required")
	}

	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("session_secret must be at least %d characters", MinSessionSecretLength)
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port out of range: %d", c.APIPort)
	}

	if c.DBPath == "" {
		return errors.New("db_path is required")
	}

	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}

	if c.SessionCookieName == "" {
		return errors.New("session_cookie_name is required")
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be 'json' or 'text'")
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return c.DevMode
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}
