package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "MilkChain"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultTokenTTL      = 24 * time.Hour
	defaultOnboardingFee = 500

	tokenTTLEnvVar         = "TOKEN_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	onboardingFeeEnvVar    = "ONBOARDING_FEE"
)

// Server captures dev server runtime configuration loaded from environment
// variables. DATABASE_URL and REDIS_URL are optional; without them the server
// falls back to in-memory accounts and an unlimited PIN attempt budget.
type Server struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	TokenSecret    string
	TokenTTL       time.Duration
	ShutdownPeriod time.Duration
	OnboardingFee  int
}

// LoadServer reads dev server configuration from the environment.
func LoadServer() (Server, error) {
	cfg := Server{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		TokenSecret:    os.Getenv("TOKEN_SECRET"),
		TokenTTL:       defaultTokenTTL,
		ShutdownPeriod: defaultShutdownDelay,
		OnboardingFee:  defaultOnboardingFee,
	}

	if v := os.Getenv(tokenTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", tokenTTLEnvVar, err)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(onboardingFeeEnvVar); v != "" {
		fee, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s: %w", onboardingFeeEnvVar, err)
		}
		cfg.OnboardingFee = fee
	}

	if cfg.TokenSecret == "" {
		if !isDev(cfg.AppEnv) {
			return Server{}, fmt.Errorf("TOKEN_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.TokenSecret = "milkchain-dev-secret"
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Server) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
