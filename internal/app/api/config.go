package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/henri-storefront/internal/clients/http/chatcompletion"
	advisorapp "github.com/Apurer/henri-storefront/internal/domains/advisor/application"
	ordersworkflows "github.com/Apurer/henri-storefront/internal/domains/orders/adapters/workflows"
	sessionsapp "github.com/Apurer/henri-storefront/internal/domains/sessions/application"
)

// DefaultSecretKey signs session cookies when SECRET_KEY is unset.
const DefaultSecretKey = "henri-secret-key-change-in-production"

// Config carries environment-driven settings for the API, worker and storectl processes.
type Config struct {
	Port        string
	PostgresDSN string

	SecretKey           string
	SessionTTL          time.Duration
	SessionCookieSecure bool

	GroqAPIKey  string
	ChatAPIURL  string
	ChatModel   string
	ChatTimeout time.Duration
	StoreName   string

	AllowBackorders    bool
	CORSAllowedOrigins []string
	SeedOnStart        bool

	TemporalAddress            string
	TemporalNamespace          string
	TemporalDisabled           bool
	TemporalPlacementTimeout   time.Duration
	SessionPurgeIntervalMinute int
}

// UsesDefaultSecret reports whether cookies are signed with the built-in key.
func (c Config) UsesDefaultSecret() bool { return c.SecretKey == DefaultSecretKey }

// LoadDotEnv reads .env into the environment when the file exists. Variables
// already set win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SecretKey:           envDefault("SECRET_KEY", DefaultSecretKey),
		SessionTTL:          sessionsapp.DefaultTTL,
		SessionCookieSecure: isTruthy(os.Getenv("SESSION_COOKIE_SECURE")),
		GroqAPIKey:          strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		ChatAPIURL:          envDefault("CHAT_API_URL", chatcompletion.DefaultURL),
		ChatModel:           strings.TrimSpace(os.Getenv("CHAT_MODEL")),
		ChatTimeout:         30 * time.Second,
		StoreName:           envDefault("STORE_NAME", advisorapp.DefaultStoreName),
		AllowBackorders:     isTruthy(os.Getenv("ALLOW_BACKORDERS")),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SeedOnStart:         isTruthy(os.Getenv("SEED_ON_START")),
		TemporalAddress:     envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:   envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:    isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	cfg.TemporalPlacementTimeout = ordersworkflows.DefaultPlacementTimeout
	if hours, ok, err := positiveInt("SESSION_TTL_HOURS"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	if seconds, ok, err := positiveInt("CHAT_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.ChatTimeout = time.Duration(seconds) * time.Second
	}
	if seconds, ok, err := positiveInt("TEMPORAL_PLACEMENT_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.TemporalPlacementTimeout = time.Duration(seconds) * time.Second
	}
	if minutes, ok, err := positiveInt("SESSION_PURGE_INTERVAL_MINUTES"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.SessionPurgeIntervalMinute = minutes
	}
	return cfg, nil
}

func positiveInt(key string) (int, bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, true, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
