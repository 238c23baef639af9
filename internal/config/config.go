package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                  string        `mapstructure:"ENV"`
	Port                 string        `mapstructure:"PORT"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	CORSAllowed          string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout       time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	FeedbackDefaultLimit int           `mapstructure:"FEEDBACK_DEFAULT_LIMIT"`
	InsightsDefaultLimit int           `mapstructure:"INSIGHTS_DEFAULT_LIMIT"`
	SeedOnStart          bool          `mapstructure:"SEED_ON_START"`
	InsightModel         string        `mapstructure:"INSIGHT_MODEL"`
}

// Load reads .env (if present) and the environment. An empty DATABASE_URL
// selects the in-memory store.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("FEEDBACK_DEFAULT_LIMIT", 10)
	v.SetDefault("INSIGHTS_DEFAULT_LIMIT", 20)
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("INSIGHT_MODEL", "mock-v1")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
