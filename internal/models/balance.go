package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/currency"
)

// Balance is a single currency-denominated account held by a participant.
//
// A participant holds at most one Balance per currency code, and a Balance is
// never recoded to a different currency. Amount and TotalSpent change only
// through transaction application; InitialDeposit is set once at creation.
type Balance struct {
	// ID is the unique identifier for the balance (UUID format).
	ID string

	// CurrencyCode identifies the currency this balance is denominated in
	// (e.g., "GEL", "EUR"). One of the catalog-configured set.
	CurrencyCode string

	// Amount is the current balance. Negative means the participant owes
	// the camp.
	Amount float64

	// InitialDeposit is the non-negative amount the balance was opened with.
	InitialDeposit float64

	// TotalSpent is the cumulative amount spent from this balance. It is
	// non-negative and only ever grows as expenses are applied.
	TotalSpent float64
}

// NewBalance creates a balance with a generated ID.
func NewBalance(currencyCode string, amount, initialDeposit float64) Balance {
	return Balance{
		ID:             uuid.New().String(),
		CurrencyCode:   currencyCode,
		Amount:         amount,
		InitialDeposit: initialDeposit,
	}
}

// IsPositive reports whether the balance holds money. Zero is neither
// positive nor negative.
func (b *Balance) IsPositive() bool {
	return b.Amount > 0
}

// IsNegative reports whether the participant owes the camp.
func (b *Balance) IsNegative() bool {
	return b.Amount < 0
}

// ConvertToBase projects the current amount into the base currency using the
// catalog's live rate. This is a pure recomputation on every call, unlike the
// frozen snapshot a Transaction may carry.
func (b *Balance) ConvertToBase(cat *currency.Catalog) (float64, error) {
	rate, err := cat.RateToBase(b.CurrencyCode)
	if err != nil {
		return 0, err
	}
	return b.Amount * rate, nil
}

// Display formats the amount with zero decimal places: symbol-prefixed for
// symbol-style currencies ("150€"), code-suffixed for all others ("59 GEL").
func (b *Balance) Display(cat *currency.Catalog) string {
	if cat.SymbolStyle(b.CurrencyCode) {
		return fmt.Sprintf("%.0f%s", b.Amount, cat.Symbol(b.CurrencyCode))
	}
	return fmt.Sprintf("%.0f %s", b.Amount, b.CurrencyCode)
}

// Equal reports structural equality over all fields.
func (b *Balance) Equal(other *Balance) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.ID == other.ID &&
		b.CurrencyCode == other.CurrencyCode &&
		b.Amount == other.Amount &&
		b.InitialDeposit == other.InitialDeposit &&
		b.TotalSpent == other.TotalSpent
}
