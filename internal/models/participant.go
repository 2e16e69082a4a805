package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/currency"
)

// Participant represents an enrolled camper and the balances they hold.
//
// Participants reference their session by ID only (lookup, not ownership) but
// exclusively own their balances: removing a participant removes the
// balances with them. Ledger history (transactions, group expenses) lives
// outside the participant and survives profile edits.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// SessionID is the enrollment session this participant belongs to.
	SessionID string

	// FirstName and LastName are required, non-empty.
	FirstName string
	LastName  string

	// Optional contact fields. Empty string means unset.
	Email       string
	Phone       string
	PhotoPath   string
	ParentEmail string

	// Notes is optional free text kept by the counselors.
	Notes string

	// Balances are the per-currency accounts held by this participant, in
	// insertion order. At most one balance per currency code.
	Balances []Balance
}

// NewParticipant creates a participant with a generated ID. First and last
// name must be non-empty.
func NewParticipant(sessionID, firstName, lastName string) (*Participant, error) {
	p := &Participant{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the participant invariants: non-empty names and at most one
// balance per currency code.
func (p *Participant) Validate() error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("participant: first and last name are required")
	}
	seen := make(map[string]bool, len(p.Balances))
	for _, b := range p.Balances {
		if seen[b.CurrencyCode] {
			return fmt.Errorf("participant %s: duplicate balance for currency %s", p.ID, b.CurrencyCode)
		}
		seen[b.CurrencyCode] = true
	}
	return nil
}

// FullName returns the canonical sort/display form: "LASTNAME First".
func (p *Participant) FullName() string {
	return fmt.Sprintf("%s %s", strings.ToUpper(p.LastName), p.FirstName)
}

// DisplayName returns the UI label form: "First Last".
func (p *Participant) DisplayName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// Balance returns the balance held in the given currency, or nil.
func (p *Participant) Balance(currencyCode string) *Balance {
	for i := range p.Balances {
		if p.Balances[i].CurrencyCode == currencyCode {
			return &p.Balances[i]
		}
	}
	return nil
}

// UpsertBalance inserts or replaces the balance for b's currency code. An
// existing balance for that currency is replaced wholesale at its original
// position; otherwise b is appended. This preserves the one-balance-per-
// currency invariant and the insertion order of the set.
func (p *Participant) UpsertBalance(b Balance) {
	for i := range p.Balances {
		if p.Balances[i].CurrencyCode == b.CurrencyCode {
			p.Balances[i] = b
			return
		}
	}
	p.Balances = append(p.Balances, b)
}

// PrimaryBalance selects the balance shown in list rows: the base-currency
// balance if the participant holds one, otherwise the balance with the
// numerically largest amount (not the largest base equivalent). Ties keep the
// first balance in insertion order. Returns nil when no balances are held.
func (p *Participant) PrimaryBalance(cat *currency.Catalog) *Balance {
	var best *Balance
	for i := range p.Balances {
		b := &p.Balances[i]
		if cat.IsBase(b.CurrencyCode) {
			return b
		}
		if best == nil || b.Amount > best.Amount {
			best = b
		}
	}
	return best
}

// TotalBalanceInBase sums every balance converted into the base currency.
// Used for ranking and aggregate display only, not as an accounting total.
func (p *Participant) TotalBalanceInBase(cat *currency.Catalog) (float64, error) {
	var total float64
	for i := range p.Balances {
		converted, err := p.Balances[i].ConvertToBase(cat)
		if err != nil {
			return 0, err
		}
		total += converted
	}
	return total, nil
}

// Equal reports structural equality over all fields. Balances compare as a
// set keyed by currency code, since their order carries no meaning.
func (p *Participant) Equal(other *Participant) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.ID != other.ID ||
		p.SessionID != other.SessionID ||
		p.FirstName != other.FirstName ||
		p.LastName != other.LastName ||
		p.Email != other.Email ||
		p.Phone != other.Phone ||
		p.PhotoPath != other.PhotoPath ||
		p.ParentEmail != other.ParentEmail ||
		p.Notes != other.Notes ||
		len(p.Balances) != len(other.Balances) {
		return false
	}
	for i := range p.Balances {
		match := other.Balance(p.Balances[i].CurrencyCode)
		if match == nil || !p.Balances[i].Equal(match) {
			return false
		}
	}
	return true
}
