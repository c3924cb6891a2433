// Package config handles configuration loading for pitchside.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"      yaml:"llm"`
	Trends   TrendsConfig   `mapstructure:"trends"   yaml:"trends"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Sheets   SheetsConfig   `mapstructure:"sheets"   yaml:"sheets"`
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// LLMConfig holds language model provider configuration.
type LLMConfig struct {
	Primary     string  `mapstructure:"primary"      yaml:"primary"` // "gemini" or "openai"
	GeminiKey   string  `mapstructure:"gemini_key"   yaml:"gemini_key"`
	OpenAIKey   string  `mapstructure:"openai_key"   yaml:"openai_key"`
	Model       string  `mapstructure:"model"        yaml:"model"`
	Temperature float64 `mapstructure:"temperature"  yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"   yaml:"max_tokens"`
}

// TrendsConfig holds the tweet search API settings.
type TrendsConfig struct {
	APIKey     string   `mapstructure:"api_key"     yaml:"api_key"`
	Queries    []string `mapstructure:"queries"     yaml:"queries"`
	MaxResults int      `mapstructure:"max_results" yaml:"max_results"`
}

// NewsConfig holds the news aggregator settings.
type NewsConfig struct {
	RapidAPIKey string   `mapstructure:"rapidapi_key" yaml:"rapidapi_key"`
	Feeds       []string `mapstructure:"feeds"        yaml:"feeds"`
	MaxResults  int      `mapstructure:"max_results"  yaml:"max_results"`
}

// SheetsConfig holds the Google Sheets output settings.
type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"   yaml:"spreadsheet_id"`
	SheetName       string `mapstructure:"sheet_name"       yaml:"sheet_name"`
}

// TelegramConfig holds the bot settings.
type TelegramConfig struct {
	BotToken  string  `mapstructure:"bot_token"  yaml:"bot_token"`
	ChatIDs   []int64 `mapstructure:"chat_ids"   yaml:"chat_ids"`
	ChatsFile string  `mapstructure:"chats_file" yaml:"chats_file"`
}

// ScheduleConfig holds the cron trigger settings.
type ScheduleConfig struct {
	Cron     string `mapstructure:"cron"     yaml:"cron"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.pitchside/config.yaml (home directory)
//  3. /etc/pitchside/config.yaml (system)
//
// Environment variables override config file values.
// Format: PITCHSIDE_<SECTION>_<KEY>, e.g., PITCHSIDE_LLM_GEMINI_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".pitchside"))
	v.AddConfigPath("/etc/pitchside")

	v.SetEnvPrefix("PITCHSIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("PITCHSIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// LLM defaults
	v.SetDefault("llm.primary", "gemini")
	v.SetDefault("llm.model", "gemini-3-pro-preview")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2048)

	// Trends defaults
	v.SetDefault("trends.queries", []string{
		"Premier League news lang:en",
		"Premier League lang:en",
		"EPL lang:en",
	})
	v.SetDefault("trends.max_results", 40)

	// News defaults
	v.SetDefault("news.feeds", []string{
		"https://feeds.bbci.co.uk/sport/football/rss.xml",
		"https://www.skysports.com/rss/12040",
	})
	v.SetDefault("news.max_results", 30)

	// Sheets defaults
	v.SetDefault("sheets.credentials_file", "credentials.json")
	v.SetDefault("sheets.sheet_name", "Scripts")

	// Telegram defaults
	v.SetDefault("telegram.chats_file", "registered_chats.json")

	// Schedule defaults: daily run at 8 AM UK time
	v.SetDefault("schedule.cron", "0 8 * * *")
	v.SetDefault("schedule.timezone", "Europe/London")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("PITCHSIDE_LLM_GEMINI_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	if key := os.Getenv("PITCHSIDE_LLM_OPENAI_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	}
	if key := os.Getenv("PITCHSIDE_TRENDS_API_KEY"); key != "" {
		cfg.Trends.APIKey = key
	}
	if key := os.Getenv("PITCHSIDE_NEWS_RAPIDAPI_KEY"); key != "" {
		cfg.News.RapidAPIKey = key
	}
	if key := os.Getenv("PITCHSIDE_TELEGRAM_BOT_TOKEN"); key != "" {
		cfg.Telegram.BotToken = key
	}
	if id := os.Getenv("PITCHSIDE_SHEETS_SPREADSHEET_ID"); id != "" {
		cfg.Sheets.SpreadsheetID = id
	}
}

// Validate returns the names of required settings that are missing.
// The trends key and the Gemini key are hard requirements; everything
// else degrades gracefully.
func (c *Config) Validate() []string {
	var missing []string
	if c.LLM.GeminiKey == "" && c.LLM.OpenAIKey == "" {
		missing = append(missing, "llm.gemini_key or llm.openai_key")
	}
	if c.Trends.APIKey == "" {
		missing = append(missing, "trends.api_key")
	}
	if c.Sheets.SpreadsheetID == "" {
		missing = append(missing, "sheets.spreadsheet_id")
	}
	return missing
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
