package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/currency"
)

// TransactionType classifies the effect of a transaction on a balance.
type TransactionType string

const (
	// TransactionDeposit credits the balance.
	TransactionDeposit TransactionType = "deposit"
	// TransactionExpense debits the balance and grows its cumulative spend.
	TransactionExpense TransactionType = "expense"
	// TransactionRefund credits the balance (a correcting entry).
	TransactionRefund TransactionType = "refund"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionExpense, TransactionRefund:
		return true
	}
	return false
}

// Transaction is an immutable, append-only ledger entry recording one
// monetary event against a participant.
//
// Amount is positive for every type; the sign of the effect on the balance
// comes from Type, never from the stored amount. Transactions are never
// edited or deleted: corrections are new offsetting entries (e.g. a refund).
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// ParticipantID is the participant the event is recorded against.
	ParticipantID string

	// Type is the kind of event: deposit, expense or refund.
	Type TransactionType

	// Amount is the magnitude of the event. Invariant: Amount > 0.
	Amount float64

	// CurrencyCode is the currency the event occurred in.
	CurrencyCode string

	// Description is free text shown in statements.
	Description string

	// GroupExpenseID links expense entries generated by a group expense back
	// to it. Empty for standalone transactions.
	GroupExpenseID string

	// ExchangeRate and BaseEquivalent are optional snapshots captured at
	// creation time. They are historical facts and are never recomputed,
	// even if the catalog rate later changes.
	ExchangeRate   *float64
	BaseEquivalent *float64

	// CreatedAt is the Unix timestamp when the entry was recorded.
	CreatedAt int64
}

// NewTransaction creates a ledger entry with a generated ID, stamping the
// current catalog rate and base equivalent as a frozen snapshot. It fails if
// the type is unknown or the amount is not positive; unknown currencies carry
// no snapshot but are not rejected here (balance lookup rejects them later).
func NewTransaction(cat *currency.Catalog, participantID string, txnType TransactionType, amount float64, currencyCode, description string) (*Transaction, error) {
	if !txnType.IsValid() {
		return nil, fmt.Errorf("transaction: unknown type %q", txnType)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("transaction: amount must be positive, got %v", amount)
	}

	txn := &Transaction{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		Type:          txnType,
		Amount:        amount,
		CurrencyCode:  currencyCode,
		Description:   description,
		CreatedAt:     time.Now().Unix(),
	}
	if rate, err := cat.RateToBase(currencyCode); err == nil {
		equivalent := amount * rate
		txn.ExchangeRate = &rate
		txn.BaseEquivalent = &equivalent
	}
	return txn, nil
}

// Display formats the entry for statements: expenses render with a leading
// minus, credits without, followed by the currency symbol ("-30 ₾", "150 €").
func (t *Transaction) Display(cat *currency.Catalog) string {
	sign := ""
	if t.Type == TransactionExpense {
		sign = "-"
	}
	return fmt.Sprintf("%s%.0f %s", sign, math.Abs(t.Amount), cat.Symbol(t.CurrencyCode))
}

// DateString formats the creation instant as "dd.MM" for compact history rows.
func (t *Transaction) DateString() string {
	return time.Unix(t.CreatedAt, 0).Format("02.01")
}

// Equal reports structural equality over all fields.
func (t *Transaction) Equal(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID &&
		t.ParticipantID == other.ParticipantID &&
		t.Type == other.Type &&
		t.Amount == other.Amount &&
		t.CurrencyCode == other.CurrencyCode &&
		t.Description == other.Description &&
		t.GroupExpenseID == other.GroupExpenseID &&
		equalFloatPtr(t.ExchangeRate, other.ExchangeRate) &&
		equalFloatPtr(t.BaseEquivalent, other.BaseEquivalent) &&
		t.CreatedAt == other.CreatedAt
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
