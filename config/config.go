package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	BackendGoogle = "google"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Scheduling policy.
	Timezone          string `mapstructure:"TIMEZONE"`
	SearchHorizonDays int    `mapstructure:"SEARCH_HORIZON_DAYS"`

	// Language model.
	LLMProvider     string        `mapstructure:"LLM_PROVIDER"`
	LLMTimeout      time.Duration `mapstructure:"LLM_TIMEOUT"`
	GeminiAPIKey    string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string        `mapstructure:"GEMINI_MODEL"`
	AnthropicAPIKey string        `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `mapstructure:"ANTHROPIC_MODEL"`
	OpenAIAPIKey    string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string        `mapstructure:"OPENAI_MODEL"`

	// Calendar backend.
	CalendarBackend   string `mapstructure:"CALENDAR_BACKEND"`
	GoogleCalendarID  string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleCredentials string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	SQLitePath        string `mapstructure:"SQLITE_PATH"`

	// Redis intent cache.
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB       int           `mapstructure:"REDIS_CACHE_DB"`
	IntentCacheEnabled bool          `mapstructure:"INTENT_CACHE_ENABLED"`
	IntentCacheTTL     time.Duration `mapstructure:"INTENT_CACHE_TTL"`

	// NATS request/reply transport.
	NATSEnabled bool   `mapstructure:"NATS_ENABLED"`
	NATSURL     string `mapstructure:"NATS_URL"`
	NATSSubject string `mapstructure:"NATS_SUBJECT"`
}

var defaults = map[string]any{
	"APP_PORT":                       "8080",
	"ENV":                            "development",
	"LOG_LEVEL":                      "info",
	"MAX_REQUESTS_PER_MIN":           100,
	"TIMEZONE":                       "UTC",
	"SEARCH_HORIZON_DAYS":            14,
	"LLM_PROVIDER":                   ProviderGemini,
	"LLM_TIMEOUT":                    "30s",
	"GEMINI_API_KEY":                 "",
	"GEMINI_MODEL":                   "gemini-1.5-flash",
	"ANTHROPIC_API_KEY":              "",
	"ANTHROPIC_MODEL":                "claude-3-5-sonnet-20241022",
	"OPENAI_API_KEY":                 "",
	"OPENAI_MODEL":                   "gpt-4o-mini",
	"CALENDAR_BACKEND":               BackendGoogle,
	"GOOGLE_CALENDAR_ID":             "primary",
	"GOOGLE_APPLICATION_CREDENTIALS": "",
	"DATABASE_URL":                   "mongodb://localhost:27017",
	"DATABASE_NAME":                  "slotwise",
	"SQLITE_PATH":                    "./data/appointments.db",
	"REDIS_ADDR":                     "localhost:6379",
	"REDIS_PASSWORD":                 "",
	"REDIS_CACHE_DB":                 0,
	"INTENT_CACHE_ENABLED":           false,
	"INTENT_CACHE_TTL":               "6h",
	"NATS_ENABLED":                   false,
	"NATS_URL":                       "nats://localhost:4222",
	"NATS_SUBJECT":                   "scheduling.chat",
}

// LoadConfig reads config.yaml from the working directory or ./config when
// present, then lets environment variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(cfg.LLMProvider)
	cfg.CalendarBackend = strings.ToLower(cfg.CalendarBackend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected provider and backend are usable.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider"))
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	switch c.CalendarBackend {
	case BackendGoogle:
		if c.GoogleCalendarID == "" {
			errs = append(errs, errors.New("GOOGLE_CALENDAR_ID is required for the google backend"))
		}
	case BackendMongo:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the mongo backend"))
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CALENDAR_BACKEND %q", c.CalendarBackend))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err))
	}
	if c.SearchHorizonDays <= 0 {
		errs = append(errs, errors.New("SEARCH_HORIZON_DAYS must be positive"))
	}
	if c.MaxRequestsPerMin <= 0 {
		errs = append(errs, errors.New("MAX_REQUESTS_PER_MIN must be positive"))
	}
	if c.NATSEnabled && c.NATSSubject == "" {
		errs = append(errs, errors.New("NATS_SUBJECT is required when NATS is enabled"))
	}
	return errors.Join(errs...)
}

// Location resolves the scheduling time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
