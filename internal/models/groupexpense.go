package models

// GroupExpense is a shared cost split evenly across a set of participants.
//
// The per-person share is computed once at creation (real division, no
// remainder redistribution) and stored; it is never recomputed on demand.
// Creating a group expense emits one expense Transaction per participant,
// each linking back here via GroupExpenseID.
type GroupExpense struct {
	// ID is the unique identifier for the group expense (UUID format).
	ID string

	// SessionID is the enrollment session the expense belongs to.
	SessionID string

	// Name describes the expense (e.g., "Water park trip").
	Name string

	// TotalAmount is the full cost being shared. Invariant: TotalAmount > 0.
	TotalAmount float64

	// CurrencyCode is the currency the expense occurred in.
	CurrencyCode string

	// ParticipantIDs are the participants sharing the cost.
	// Invariant: at least one.
	ParticipantIDs []string

	// AmountPerPerson is TotalAmount / len(ParticipantIDs), fixed at creation.
	AmountPerPerson float64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ParticipantCount returns the number of participants sharing the cost.
func (g *GroupExpense) ParticipantCount() int {
	return len(g.ParticipantIDs)
}

// Equal reports structural equality over all fields, including participant
// ID order.
func (g *GroupExpense) Equal(other *GroupExpense) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.ID != other.ID ||
		g.SessionID != other.SessionID ||
		g.Name != other.Name ||
		g.TotalAmount != other.TotalAmount ||
		g.CurrencyCode != other.CurrencyCode ||
		g.AmountPerPerson != other.AmountPerPerson ||
		g.CreatedAt != other.CreatedAt ||
		len(g.ParticipantIDs) != len(other.ParticipantIDs) {
		return false
	}
	for i := range g.ParticipantIDs {
		if g.ParticipantIDs[i] != other.ParticipantIDs[i] {
			return false
		}
	}
	return true
}
