package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmlester/the-ai-brief/internal/model"
)

const (
	minWindowHours     = 6
	maxWindowHours     = 72
	defaultWindowHours = 24
)

type Config struct {
	Brief struct {
		Provider    string
		Model       string
		Tone        string
		FocusTopics string
		WindowHours int
		Endpoint    string
	}
	API struct {
		OpenAIKey    string
		AnthropicKey string
	}
	Database struct {
		URL string
	}
	Redis struct {
		URL string
	}
	Server struct {
		Port        string
		FrontendURL string
	}
	Sources []model.Source
}

// Load reads the optional config.yaml, applies defaults, and pulls secrets
// and connection strings from the environment. A missing config file is not
// an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	cfg := &Config{}

	cfg.Brief.Provider = v.GetString("brief.provider")
	cfg.Brief.Model = v.GetString("brief.model")
	cfg.Brief.Tone = v.GetString("brief.tone")
	cfg.Brief.FocusTopics = v.GetString("brief.focus_topics")
	cfg.Brief.WindowHours = ClampWindow(v.GetInt("brief.window_hours"))
	cfg.Brief.Endpoint = v.GetString("brief.endpoint")

	cfg.API.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.API.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Redis.URL = os.Getenv("REDIS_URL")
	cfg.Server.FrontendURL = os.Getenv("FRONTEND_URL")
	cfg.Server.Port = os.Getenv("PORT")
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	if v.IsSet("sources") {
		if err := v.UnmarshalKey("sources", &cfg.Sources); err != nil {
			return nil, fmt.Errorf("error parsing sources config: %w", err)
		}
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// APIKey returns the key matching the configured provider.
func (c *Config) APIKey() string {
	if strings.HasPrefix(c.Brief.Provider, "anthropic") {
		return c.API.AnthropicKey
	}
	return c.API.OpenAIKey
}

// ClampWindow bounds a requested time window to the supported range. Zero and
// negative values fall back to the default.
func ClampWindow(hours int) int {
	if hours <= 0 {
		return defaultWindowHours
	}
	if hours < minWindowHours {
		return minWindowHours
	}
	if hours > maxWindowHours {
		return maxWindowHours
	}
	return hours
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("brief.provider", "responses")
	v.SetDefault("brief.model", "gpt-4o-mini")
	v.SetDefault("brief.tone", "practical")
	v.SetDefault("brief.window_hours", defaultWindowHours)
}

func validate(cfg *Config) error {
	if cfg.Brief.Model == "" {
		return fmt.Errorf("brief.model is required")
	}
	switch cfg.Brief.Tone {
	case "executive", "practical", "builder":
	default:
		return fmt.Errorf("brief.tone must be executive, practical, or builder")
	}
	for _, src := range cfg.Sources {
		if src.ID == "" || src.Name == "" {
			return fmt.Errorf("every source needs an id and a name")
		}
	}
	return nil
}
