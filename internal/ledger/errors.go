package ledger

import (
	"errors"
	"fmt"
)

// ErrEmptyParticipantSet rejects a group expense with no participants. Zero
// participants is an error, never a zero share.
var ErrEmptyParticipantSet = errors.New("group expense requires at least one participant")

// ErrNoSuchBalance indicates a transaction targets a currency the participant
// does not hold. Applying is fail-fast: balances are never auto-created.
type ErrNoSuchBalance struct {
	ParticipantID string
	CurrencyCode  string
}

func (e *ErrNoSuchBalance) Error() string {
	return fmt.Sprintf("participant %s holds no %s balance", e.ParticipantID, e.CurrencyCode)
}

// ErrInvalidAmount indicates a non-positive amount where a positive one is
// required (transaction amounts, group expense totals).
type ErrInvalidAmount struct {
	Amount float64
}

func (e *ErrInvalidAmount) Error() string {
	return fmt.Sprintf("amount must be positive, got %v", e.Amount)
}

// ErrDuplicateBalance indicates an attempt to insert, rather than replace, a
// second balance for a currency the participant already holds. Surfaced by
// the storage layer's raw insert path; UpsertBalance replaces instead.
type ErrDuplicateBalance struct {
	ParticipantID string
	CurrencyCode  string
}

func (e *ErrDuplicateBalance) Error() string {
	return fmt.Sprintf("participant %s already holds a %s balance", e.ParticipantID, e.CurrencyCode)
}
