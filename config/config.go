package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Image Calendar Generator specifics
	Vision         VisionConfig
	GoogleCalendar GoogleCalendarConfig
	Pipeline       PipelineConfig

	// HTTP surface
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// VisionConfig points at the OpenAI-compatible vision endpoint.
type VisionConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

// PipelineConfig tunes validation, normalization and provider retries.
type PipelineConfig struct {
	DefaultTimezone      string
	DefaultEventDuration time.Duration
	MaxImageBytes        int64
	AllowedImageTypes    []string
	RetryAttempts        int
	RetryDelay           time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Vision provider
	cfg.Vision.APIKey = viper.GetString("vision.api_key")
	cfg.Vision.APIURL = viper.GetString("vision.api_url")
	cfg.Vision.Model = viper.GetString("vision.model")
	cfg.Vision.Timeout = viper.GetDuration("vision.timeout")
	if key := viper.GetString("openai_api_key"); key != "" {
		cfg.Vision.APIKey = key
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if creds := viper.GetString("google_calendar_credentials"); creds != "" {
		cfg.GoogleCalendar.CredentialsPath = creds
	}
	if token := viper.GetString("google_calendar_token"); token != "" {
		cfg.GoogleCalendar.TokenPath = token
	}

	// Pipeline
	cfg.Pipeline.DefaultTimezone = viper.GetString("pipeline.default_timezone")
	cfg.Pipeline.DefaultEventDuration = viper.GetDuration("pipeline.default_event_duration")
	cfg.Pipeline.MaxImageBytes = viper.GetInt64("pipeline.max_image_bytes")
	cfg.Pipeline.RetryAttempts = viper.GetInt("pipeline.retry_attempts")
	cfg.Pipeline.RetryDelay = viper.GetDuration("pipeline.retry_delay")
	cfg.Pipeline.AllowedImageTypes = splitAndTrim(viper.GetString("pipeline.allowed_image_types"))

	// CORS allowed origins come as a comma-separated string so env vars
	// can set them too.
	cfg.CORS.AllowedOrigins = splitAndTrim(viper.GetString("cors.allowed_origins"))

	// Rate limiting
	cfg.RateLimit.PerMinute = viper.GetInt("rate_limit.per_minute")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")

	if cfg.Vision.APIKey == "" {
		return nil, fmt.Errorf("vision API key is not configured - set OPENAI_API_KEY or vision.api_key")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Vision defaults
	viper.SetDefault("vision.api_url", "https://api.openai.com/v1")
	viper.SetDefault("vision.model", "gpt-4o")
	viper.SetDefault("vision.timeout", "60s")

	// Google Calendar defaults
	viper.SetDefault("google_calendar.credentials_path", "credentials.json")
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")

	// Pipeline defaults
	viper.SetDefault("pipeline.default_timezone", "Europe/Madrid")
	viper.SetDefault("pipeline.default_event_duration", "1h")
	viper.SetDefault("pipeline.max_image_bytes", 10<<20)
	viper.SetDefault("pipeline.allowed_image_types", "image/jpeg,image/png,image/gif,image/webp")
	viper.SetDefault("pipeline.retry_attempts", 3)
	viper.SetDefault("pipeline.retry_delay", "1s")

	// HTTP surface defaults match the local frontend dev servers.
	viper.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost:3001")
	viper.SetDefault("rate_limit.per_minute", 30)
	viper.SetDefault("rate_limit.burst", 5)
}

// splitAndTrim splits a comma-separated list, dropping empty entries.
func splitAndTrim(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
