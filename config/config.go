package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	StaticDir      string
	AllowedOrigins []string
}

// MailConfig describes the SMTP relay the service submits through.
// Recipient and User are fixed here so caller input can never redirect
// where mail is delivered or who it appears to come from.
type MailConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	Recipient          string
	ConnectTimeout     time.Duration
	GreetingTimeout    time.Duration
	SocketTimeout      time.Duration
	InsecureSkipVerify bool
}

type RateLimitConfig struct {
	ContactLimit  int
	ContactWindow time.Duration
}

type LoggingConfig struct {
	Level string
	Dir   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("STATIC_DIR", "./static")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_CONNECT_TIMEOUT_SECONDS", 60)
	v.SetDefault("SMTP_GREETING_TIMEOUT_SECONDS", 30)
	v.SetDefault("SMTP_SOCKET_TIMEOUT_SECONDS", 60)
	// Relay compatibility trade-off carried over from the previous deployment.
	// Set to false to enforce certificate validation against the relay.
	v.SetDefault("SMTP_INSECURE_SKIP_VERIFY", true)
	v.SetDefault("CONTACT_RATE_LIMIT", 5)
	v.SetDefault("CONTACT_RATE_WINDOW_MINUTES", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed CORS origins (comma-separated)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_CORS_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			StaticDir:      v.GetString("STATIC_DIR"),
			AllowedOrigins: allowedOrigins,
		},
		Mail: MailConfig{
			Host:               v.GetString("SMTP_HOST"),
			Port:               v.GetInt("SMTP_PORT"),
			User:               v.GetString("EMAIL_USER"),
			Password:           v.GetString("EMAIL_PASS"),
			Recipient:          v.GetString("CONTACT_RECIPIENT"),
			ConnectTimeout:     time.Duration(v.GetInt("SMTP_CONNECT_TIMEOUT_SECONDS")) * time.Second,
			GreetingTimeout:    time.Duration(v.GetInt("SMTP_GREETING_TIMEOUT_SECONDS")) * time.Second,
			SocketTimeout:      time.Duration(v.GetInt("SMTP_SOCKET_TIMEOUT_SECONDS")) * time.Second,
			InsecureSkipVerify: v.GetBool("SMTP_INSECURE_SKIP_VERIFY"),
		},
		RateLimit: RateLimitConfig{
			ContactLimit:  v.GetInt("CONTACT_RATE_LIMIT"),
			ContactWindow: time.Duration(v.GetInt("CONTACT_RATE_WINDOW_MINUTES")) * time.Minute,
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	// Mail relay configuration
	if c.Mail.User == "" {
		return fmt.Errorf("EMAIL_USER is required")
	}
	if c.Mail.Password == "" {
		return fmt.Errorf("EMAIL_PASS is required")
	}
	if c.Mail.Recipient == "" {
		return fmt.Errorf("CONTACT_RECIPIENT is required")
	}
	if c.Mail.Port <= 0 {
		return fmt.Errorf("SMTP_PORT must be positive")
	}

	if c.RateLimit.ContactLimit <= 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be positive")
	}
	if c.RateLimit.ContactWindow <= 0 {
		return fmt.Errorf("CONTACT_RATE_WINDOW_MINUTES must be positive")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
