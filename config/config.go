package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `mapstructure:"PORT"`
	Env         string        `mapstructure:"ENV"`
	DatabaseURL string        `mapstructure:"DATABASE_URL"` // Postgres connection string
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTTTL      time.Duration `mapstructure:"JWT_TTL"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	LogFormat   string        `mapstructure:"LOG_FORMAT"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Public opt-in endpoint, requests per minute per client IP.
	OptInRatePerMin  int      `mapstructure:"OPT_IN_RATE_PER_MIN"`
	CORSAllowOrigins []string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// Proxies whose X-Forwarded-For is honored. Empty means the socket address is the client IP.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

var defaults = map[string]interface{}{
	"PORT":                "8080",
	"ENV":                 "development",
	"DATABASE_URL":        "",
	"JWT_SECRET":          "",
	"JWT_TTL":             "24h",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "console",
	"GEMINI_API_KEY":      "",
	"GEMINI_MODEL":        "gemini-2.5-pro",
	"OPT_IN_RATE_PER_MIN": 30,
	"CORS_ALLOW_ORIGINS":  "*",
	"TRUSTED_PROXIES":     "",
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.CORSAllowOrigins = cleanList(cfg.CORSAllowOrigins)
	cfg.TrustedProxies = cleanList(cfg.TrustedProxies)
	return cfg, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate reports the settings the API server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env: DATABASE_URL"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("missing required env: JWT_SECRET"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.OptInRatePerMin <= 0 {
		errs = append(errs, errors.New("OPT_IN_RATE_PER_MIN must be positive"))
	}
	if len(c.CORSAllowOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOW_ORIGINS must list at least one origin"))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
