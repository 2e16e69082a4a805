// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Junio-R-org/J-Bank/internal/models"
)

// ErrNotFound is wrapped by store methods when the requested record does
// not exist. Callers check it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// The ledger core computes; the store only persists. Multi-row operations
// (transaction application, group expenses) are atomic: either every row
// lands or none does.
type Store interface {
	// CreateSession persists a new enrollment session.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// UpdateSession updates a session's administrative fields (name, active
	// flag and dates). Sessions are never deleted.
	UpdateSession(ctx context.Context, session *models.Session) error

	// ListSessions returns all sessions in creation order.
	ListSessions(ctx context.Context) ([]models.Session, error)

	// CreateParticipant persists a participant together with their balances.
	CreateParticipant(ctx context.Context, p *models.Participant) error

	// GetParticipant retrieves a participant with balances by ID.
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)

	// UpdateParticipant rewrites a participant's profile fields and balance
	// set wholesale.
	UpdateParticipant(ctx context.Context, p *models.Participant) error

	// DeleteParticipant removes a participant and cascades their balances.
	// Ledger history (transactions, group expenses) is kept.
	DeleteParticipant(ctx context.Context, id string) error

	// ListParticipants returns the participants of a session in insertion
	// order, balances included. Empty sessionID returns every participant.
	ListParticipants(ctx context.Context, sessionID string) ([]models.Participant, error)

	// AddBalance inserts a new balance for a participant. Fails with
	// ledger.ErrDuplicateBalance when the participant already holds a
	// balance in that currency.
	AddBalance(ctx context.Context, participantID string, balance models.Balance) error

	// AppendTransaction persists a ledger entry and the already-applied
	// state of the balance it touched in one atomic step.
	AppendTransaction(ctx context.Context, txn *models.Transaction, balance *models.Balance) error

	// ListTransactions returns a participant's ledger entries, newest first.
	ListTransactions(ctx context.Context, participantID string) ([]models.Transaction, error)

	// CreateGroupExpense persists a group expense, its per-participant
	// expense transactions and the already-applied balances, all or nothing.
	CreateGroupExpense(ctx context.Context, expense *models.GroupExpense, txns []models.Transaction, balances []models.Balance) error

	// GetGroupExpense retrieves a group expense by ID.
	GetGroupExpense(ctx context.Context, id string) (*models.GroupExpense, error)

	// ListGroupExpenses returns a session's group expenses, newest first.
	ListGroupExpenses(ctx context.Context, sessionID string) ([]models.GroupExpense, error)

	// CreateUser persists a staff account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a staff account by email.
	// Returns (nil, nil) when no account exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a staff account by ID.
	// Returns (nil, nil) when no account exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
