package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube    YouTubeConfig    `yaml:"youtube"`
	AI         AIConfig         `yaml:"ai"`
	Email      EmailConfig      `yaml:"email"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Watch      WatchConfig      `yaml:"watch"`
}

type YouTubeConfig struct {
	APIKey string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	// Endpoint overrides the Data API base URL (used against local fakes).
	Endpoint          string  `yaml:"endpoint"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type AIConfig struct {
	GeminiAPIKey   string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model          string `yaml:"model"`
	OpenAIAPIKey   string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel    string `yaml:"openai_model"`
	EnableFallback bool   `yaml:"enable_fallback"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Enabled reports whether enough settings are present to send reports.
func (e EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.ToEmail != ""
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

// WatchConfig drives the scheduled mode.
type WatchConfig struct {
	Playlists    []string `yaml:"playlists"`
	Schedule     string   `yaml:"schedule"`
	DailyHours   string   `yaml:"daily_hours"`
	DailyMinutes string   `yaml:"daily_minutes"`
	Insights     []string `yaml:"insights"`
	// StateDir enables skipping playlists whose content was already
	// emailed. Empty disables it.
	StateDir         string `yaml:"state_dir"`
	ResendAfterHours int    `yaml:"resend_after_hours"`
}

// Load reads CONFIG_FILE (default config.yaml) and fills the gaps from the
// environment. A missing default file is not an error since every setting
// has an environment variable or a default; a missing explicit file is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.AI.OpenAIAPIKey == "" {
		c.AI.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = os.Getenv("LOG_LEVEL")
	}
	if c.Logging.File == "" {
		c.Logging.File = os.Getenv("LOG_FILE")
	}
}

func (c *Config) applyDefaults() {
	// One Google key serves both the Data API and Gemini unless set apart.
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = c.YouTube.APIKey
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.0-flash"
	}
	if c.AI.OpenAIModel == "" {
		c.AI.OpenAIModel = "gpt-4o-mini"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = "0 0 9 * * *" // Daily at 9 AM
	}
}

func (c *Config) validate() error {
	if c.YouTube.RequestsPerSecond < 0 {
		return fmt.Errorf("youtube.requests_per_second must not be negative")
	}
	if c.Monitoring.HealthPort < 0 || c.Monitoring.HealthPort > 65535 {
		return fmt.Errorf("monitoring.health_port %d is out of range", c.Monitoring.HealthPort)
	}
	if c.Watch.ResendAfterHours < 0 {
		return fmt.Errorf("watch.resend_after_hours must not be negative")
	}
	if c.Email.SMTPServer != "" && c.Email.ToEmail != "" && c.Email.FromEmail == "" {
		return fmt.Errorf("email.from_email is required when email reports are enabled")
	}
	return nil
}

// ValidateWatch checks the settings only watch mode needs.
func (c *Config) ValidateWatch() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	if len(c.Watch.Playlists) == 0 {
		return fmt.Errorf("at least one playlist is required in watch.playlists")
	}
	return nil
}
