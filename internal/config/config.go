// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Junio-R-org/J-Bank/internal/currency"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Storage
	DBPath string

	// JWT / Auth
	JWTSecret string
	JWTTTL    time.Duration

	// Currency table. The catalog is built once from these values at startup
	// and treated as immutable for the process lifetime.
	Currency currency.Config
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBPath: getEnv("DB_PATH", "./data/jbank.db"),

		JWTSecret: getEnv("JWT_SECRET", "jbank-default-dev-secret-change-me"),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		Currency: loadCurrencyConfig(),
	}
}

// loadCurrencyConfig builds the currency table from env vars, starting from
// the stock camp defaults so partial overrides work.
func loadCurrencyConfig() currency.Config {
	cfg := currency.DefaultConfig()

	cfg.BaseCode = getEnv("BASE_CURRENCY", cfg.BaseCode)

	if rates := parseRates(os.Getenv("CURRENCY_RATES")); len(rates) > 0 {
		cfg.Rates = rates
	}
	if symbols := parsePairs(os.Getenv("CURRENCY_SYMBOLS")); len(symbols) > 0 {
		cfg.Symbols = symbols
	}
	if v := os.Getenv("SYMBOL_CURRENCIES"); v != "" {
		cfg.SymbolStyle = splitList(v)
	}

	return cfg
}

// parseRates parses "EUR=2.65,USD=2.45" into a rate map. Malformed entries
// are skipped.
func parseRates(s string) map[string]float64 {
	pairs := parsePairs(s)
	if len(pairs) == 0 {
		return nil
	}
	rates := make(map[string]float64, len(pairs))
	for code, raw := range pairs {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil {
			rates[code] = rate
		}
	}
	return rates
}

// parsePairs parses "EUR=€,USD=$" into a map. Malformed entries are skipped.
func parsePairs(s string) map[string]string {
	if s == "" {
		return nil
	}
	pairs := make(map[string]string)
	for _, entry := range splitList(s) {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return pairs
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
