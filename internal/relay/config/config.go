package config

import (
	"fmt"
	"time"

	"github.com/gosidekick/goconfig"
)

type Configs struct {
	ApplicationConfig ApplicationConfig
	ServerConfig      ServerConfig
}

type ApplicationConfig struct {
	Version           string `cfg:"version" cfgDefault:"dev"`
	Environment       string `cfg:"environment" cfgDefault:"production"`
	LogLevel          string `cfg:"log_level" cfgDefault:"info"`
	TelegramBaseURL   string `cfg:"telegram_base_url" cfgDefault:"https://api.telegram.org"`
	TelegramBotToken  string `cfg:"telegram_bot_token"`
	TelegramChatID    string `cfg:"telegram_chat_id"`
	Timezone          string `cfg:"timezone"`
	CORSAllowedOrigin string `cfg:"cors_allowed_origin"`
	MetricsDBPath     string `cfg:"metrics_db_path"`
}

// ServerConfig holds server configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port                   int `cfg:"port" cfgDefault:"3000"`
	ReadTimeoutSeconds     int `cfg:"read_timeout" cfgDefault:"10"`
	WriteTimeoutSeconds    int `cfg:"write_timeout" cfgDefault:"15"`
	ShutdownTimeoutSeconds int `cfg:"shutdown_timeout" cfgDefault:"10"`
}

// LoadConfig loads configuration from environment variables.
// Telegram credentials are optional here, the service rejects
// submissions per request while they are missing.
func LoadConfig() (*Configs, error) {
	var (
		appCfg    ApplicationConfig
		serverCfg ServerConfig
	)
	err := goconfig.Parse(&appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse application config: %w", err)
	}
	err = goconfig.Parse(&serverCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	return &Configs{
		ApplicationConfig: appCfg,
		ServerConfig:      serverCfg,
	}, nil
}

// IsDevelopment reports whether the service runs in development mode
func (c ApplicationConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// TelegramConfigured reports whether both Telegram credentials are present
func (c ApplicationConfig) TelegramConfigured() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// Location resolves the zone used for message timestamps. An empty
// Timezone means the process local zone.
func (c ApplicationConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Address returns the listen address for the HTTP server
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
