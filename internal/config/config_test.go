package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
	if cfg.Currency.BaseCode != "GEL" {
		t.Errorf("BaseCode = %s, want GEL", cfg.Currency.BaseCode)
	}
	if cfg.Currency.Rates["EUR"] != 2.65 {
		t.Errorf("EUR rate = %v, want 2.65", cfg.Currency.Rates["EUR"])
	}
}

func TestLoadCurrencyOverrides(t *testing.T) {
	t.Setenv("BASE_CURRENCY", "USD")
	t.Setenv("CURRENCY_RATES", "GEL=0.41, EUR=1.08")
	t.Setenv("SYMBOL_CURRENCIES", "EUR")

	cfg := Load()

	if cfg.Currency.BaseCode != "USD" {
		t.Errorf("BaseCode = %s, want USD", cfg.Currency.BaseCode)
	}
	if cfg.Currency.Rates["GEL"] != 0.41 || cfg.Currency.Rates["EUR"] != 1.08 {
		t.Errorf("rates = %v", cfg.Currency.Rates)
	}
	if len(cfg.Currency.Rates) != 2 {
		t.Errorf("rate override should replace the default table, got %v", cfg.Currency.Rates)
	}
	if len(cfg.Currency.SymbolStyle) != 1 || cfg.Currency.SymbolStyle[0] != "EUR" {
		t.Errorf("SymbolStyle = %v, want [EUR]", cfg.Currency.SymbolStyle)
	}
}

func TestParseRatesSkipsMalformed(t *testing.T) {
	t.Setenv("CURRENCY_RATES", "EUR=abc,USD=2.45,=1.0")

	cfg := Load()

	if _, ok := cfg.Currency.Rates["EUR"]; ok {
		t.Error("malformed EUR rate should be skipped")
	}
	if cfg.Currency.Rates["USD"] != 2.45 {
		t.Errorf("USD rate = %v, want 2.45", cfg.Currency.Rates["USD"])
	}
}
