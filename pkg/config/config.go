package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
)

type Config struct {
	Database    DatabaseConfig    `json:"database"`
	Telegram    TelegramConfig    `json:"telegram"`
	Logging     LoggingConfig     `json:"logging"`
	OpenAI      OpenAIConfig      `json:"openai"`
	Translation TranslationConfig `json:"translation"`
	Phrases     PhrasesConfig     `json:"phrases"`
	Reminders   RemindersConfig   `json:"reminders"`
}

type DatabaseConfig struct {
	Host     string `json:"host"     env:"DB_HOST"     env-default:"localhost"`
	User     string `json:"user"     env:"DB_USER"`
	Password string `json:"password" env:"DB_PASSWORD"`
	DBName   string `json:"dbname"   env:"DB_NAME"`
	Port     int    `json:"port"     env:"DB_PORT"     env-default:"5432"`
	SSLMode  string `json:"sslmode"  env:"DB_SSLMODE"  env-default:"disable"`
}

type TelegramConfig struct {
	Token string `json:"token" env:"TELEGRAM_TOKEN"`
}

type LoggingConfig struct {
	Level     string `json:"level"      env:"LOG_LEVEL"      env-default:"info"`
	File      string `json:"file"       env:"LOG_FILE"`
	GormLevel string `json:"gorm_level" env:"LOG_GORM_LEVEL" env-default:"warn"`
}

type OpenAIConfig struct {
	APIKey         string `json:"api_key"         env:"OPENAI_API_KEY"`
	BaseURL        string `json:"base_url"        env:"OPENAI_BASE_URL"        env-default:"https://api.openai.com/v1"`
	Model          string `json:"model"           env:"OPENAI_MODEL"           env-default:"gpt-4o-mini"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"OPENAI_TIMEOUT_SECONDS" env-default:"15"`
}

type TranslationConfig struct {
	TargetLanguage  string `json:"target_language"   env:"TRANSLATION_TARGET_LANGUAGE"   env-default:"Russian"`
	CacheSize       int64  `json:"cache_size"        env:"TRANSLATION_CACHE_SIZE"        env-default:"10000"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes" env:"TRANSLATION_CACHE_TTL_MINUTES" env-default:"1440"`
}

type PhrasesConfig struct {
	// Fallback is one of "none", "category" or "any".
	Fallback string `json:"fallback" env:"PHRASES_FALLBACK" env-default:"category"`
	Generate bool   `json:"generate" env:"PHRASES_GENERATE"`
}

type RemindersConfig struct {
	Timezone               string `json:"timezone"                 env:"REMINDERS_TIMEZONE"                 env-default:"UTC"`
	CatchUpWindowMinutes   int    `json:"catch_up_window_minutes"  env:"REMINDERS_CATCH_UP_WINDOW_MINUTES"  env-default:"30"`
	DispatchTimeoutSeconds int    `json:"dispatch_timeout_seconds" env:"REMINDERS_DISPATCH_TIMEOUT_SECONDS" env-default:"120"`
	DispatchConcurrency    int    `json:"dispatch_concurrency"     env:"REMINDERS_DISPATCH_CONCURRENCY"     env-default:"8"`
	LogRetentionDays       int    `json:"log_retention_days"       env:"REMINDERS_LOG_RETENTION_DAYS"       env-default:"30"`
}

var AppConfig Config

// LoadConfig reads the JSON config file into AppConfig. A .env file next to
// the config file, if present, is loaded first; environment variables take
// precedence over the file and env-default tags fill whatever is left unset.
func LoadConfig(filename string) error {
	if err := loadDotEnv(filepath.Join(filepath.Dir(filename), ".env")); err != nil {
		logger.Error("failed to load .env file", "error", err)
		return err
	}

	var cfg Config
	if err := cleanenv.ReadConfig(filename, &cfg); err != nil {
		logger.Error("failed to read config file", "file", filename, "error", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "file", filename, "error", err)
		return err
	}

	AppConfig = cfg
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Telegram.Token) == "" {
		errs = append(errs, errors.New("telegram token is required"))
	}
	if _, err := time.LoadLocation(c.Reminders.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("reminders timezone: %w", err))
	}
	switch strings.ToLower(strings.TrimSpace(c.Phrases.Fallback)) {
	case "none", "category", "any":
	default:
		errs = append(errs, fmt.Errorf("phrases fallback %q must be none, category or any", c.Phrases.Fallback))
	}
	if c.Reminders.DispatchConcurrency <= 0 {
		errs = append(errs, errors.New("reminders dispatch concurrency must be positive"))
	}
	return errors.Join(errs...)
}

func (c RemindersConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c RemindersConfig) CatchUpWindow() time.Duration {
	return time.Duration(c.CatchUpWindowMinutes) * time.Minute
}

func (c RemindersConfig) DispatchTimeout() time.Duration {
	return time.Duration(c.DispatchTimeoutSeconds) * time.Second
}

func (c RemindersConfig) LogRetention() time.Duration {
	return time.Duration(c.LogRetentionDays) * 24 * time.Hour
}

func (c OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c TranslationConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
