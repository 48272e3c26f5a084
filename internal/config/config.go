package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment
// variables. The terminal game only needs the content and progress paths; the
// Telegram bot additionally needs the token and a database.
type Config struct {
	Env              string `mapstructure:"env"`           // current application environment (local, dev, production)
	ContentPath      string `mapstructure:"content_path"`  // path to the JSON content table (levels, vocabulary, grammar)
	ProgressPath     string `mapstructure:"progress_path"` // path to the local progress file (terminal game)
	Quiz             Quiz   `mapstructure:"quiz"`          // quiz tuning section
	DB               DB     `mapstructure:"database"`      // database configuration section (bot only)
	TelegramAPIToken string `mapstructure:"-"`             // Telegram API token loaded from environment
	TTSAPIKey        string `mapstructure:"-"`             // Google TTS API key loaded from environment, optional
}

// Quiz contains the tunable parts of question generation and scoring.
type Quiz struct {
	OptionCount   int     `mapstructure:"option_count"`   // options per question, correct answer included
	PassThreshold float64 `mapstructure:"pass_threshold"` // accuracy required to pass a level
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
// Secrets (Telegram token, database URL, TTS key) come from the environment
// only; their absence is not an error here, since the terminal game needs
// none of them — each entrypoint validates what it requires.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("content_path", "assets/data/levels.json")
	v.SetDefault("progress_path", "progress.json")
	v.SetDefault("quiz.option_count", 4)
	v.SetDefault("quiz.pass_threshold", 0.8)
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("tts_api_key", "GOOGLE_TTS_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.TTSAPIKey = v.GetString("tts_api_key")

	return &cfg, nil
}
