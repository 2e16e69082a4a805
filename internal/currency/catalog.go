// Package currency provides the static currency catalog: display symbols and
// fixed conversion rates into the camp's base currency.
//
// The catalog is configuration, not market data. Rates are supplied once at
// process start and never change for the process lifetime; historical
// transactions snapshot the rate they were created with and are unaffected by
// catalog changes across restarts.
package currency

import (
	"fmt"
	"sort"
)

// ErrUnknownCurrency is returned when a rate lookup targets a code that is not
// in the catalog. Symbol lookups never fail; they fall back to the code itself.
type ErrUnknownCurrency struct {
	Code string
}

func (e *ErrUnknownCurrency) Error() string {
	return fmt.Sprintf("unknown currency: %s", e.Code)
}

// Config describes the currency table supplied at startup.
type Config struct {
	// BaseCode is the currency every balance converts into for ranking and
	// aggregation (e.g. "GEL").
	BaseCode string

	// Rates maps currency code to its fixed conversion rate into BaseCode.
	// BaseCode itself is implicit with rate 1 and need not be listed.
	Rates map[string]float64

	// Symbols maps currency code to its display symbol (e.g. "EUR" -> "€").
	Symbols map[string]string

	// SymbolStyle lists the codes that render with their symbol attached to
	// the amount ("150€"); all other codes render code-suffixed ("59 GEL").
	SymbolStyle []string
}

// DefaultConfig returns the camp's stock currency table: GEL base with EUR,
// USD and RUB convertible at fixed rates.
func DefaultConfig() Config {
	return Config{
		BaseCode: "GEL",
		Rates: map[string]float64{
			"EUR": 2.65,
			"USD": 2.45,
			"RUB": 0.027,
		},
		Symbols: map[string]string{
			"EUR": "€",
			"USD": "$",
			"GEL": "₾",
			"RUB": "₽",
		},
		SymbolStyle: []string{"EUR", "USD"},
	}
}

// Catalog answers symbol, rate and base-currency queries. It is immutable
// after construction and safe for concurrent readers.
type Catalog struct {
	baseCode    string
	rates       map[string]float64
	symbols     map[string]string
	symbolStyle map[string]bool
}

// NewCatalog builds a catalog from cfg. It fails if the base code is empty or
// any configured rate is not positive.
func NewCatalog(cfg Config) (*Catalog, error) {
	if cfg.BaseCode == "" {
		return nil, fmt.Errorf("currency catalog: base code is required")
	}

	rates := make(map[string]float64, len(cfg.Rates)+1)
	for code, rate := range cfg.Rates {
		if rate <= 0 {
			return nil, fmt.Errorf("currency catalog: rate for %s must be positive, got %v", code, rate)
		}
		rates[code] = rate
	}
	// The base currency converts to itself.
	rates[cfg.BaseCode] = 1

	symbols := make(map[string]string, len(cfg.Symbols))
	for code, symbol := range cfg.Symbols {
		symbols[code] = symbol
	}

	symbolStyle := make(map[string]bool, len(cfg.SymbolStyle))
	for _, code := range cfg.SymbolStyle {
		symbolStyle[code] = true
	}

	return &Catalog{
		baseCode:    cfg.BaseCode,
		rates:       rates,
		symbols:     symbols,
		symbolStyle: symbolStyle,
	}, nil
}

// BaseCode returns the configured base currency code.
func (c *Catalog) BaseCode() string {
	return c.baseCode
}

// IsBase reports whether code is the base currency.
func (c *Catalog) IsBase(code string) bool {
	return code == c.baseCode
}

// Symbol returns the display symbol for code, falling back to the code itself
// for anything not configured. It never fails.
func (c *Catalog) Symbol(code string) string {
	if symbol, ok := c.symbols[code]; ok {
		return symbol
	}
	return code
}

// RateToBase returns the fixed conversion rate from code into the base
// currency. The base currency itself always has rate 1.
func (c *Catalog) RateToBase(code string) (float64, error) {
	rate, ok := c.rates[code]
	if !ok {
		return 0, &ErrUnknownCurrency{Code: code}
	}
	return rate, nil
}

// SymbolStyle reports whether code renders with its symbol attached to the
// amount ("150€") rather than code-suffixed ("59 GEL").
func (c *Catalog) SymbolStyle(code string) bool {
	return c.symbolStyle[code]
}

// Codes returns all configured currency codes in sorted order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
