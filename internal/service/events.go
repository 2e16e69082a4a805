package service

// EventKind classifies a ledger change notification.
type EventKind string

const (
	EventParticipantAdded   EventKind = "participant_added"
	EventParticipantUpdated EventKind = "participant_updated"
	EventParticipantRemoved EventKind = "participant_removed"
	EventTransactionApplied EventKind = "transaction_applied"
	EventGroupExpenseCreate EventKind = "group_expense_created"
)

// Event describes one committed ledger mutation. The presentation layer
// subscribes explicitly (see LedgerService.Subscribe) and re-reads whatever
// it displays; the core pushes no entity data and assumes no reactivity
// framework.
type Event struct {
	Kind          EventKind
	SessionID     string
	ParticipantID string
	EntityID      string
}
