// Package service composes the ledger core, the currency catalog and the
// storage layer into the operations the API exposes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/ledger"
	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/storage"
)

// LedgerService is the external-facing surface of the camp ledger.
//
// None of the underlying operations tolerates interleaved execution, so every
// mutating call is serialized behind a single mutex. Reads go straight to the
// store.
type LedgerService struct {
	mu    sync.Mutex
	store storage.Store
	cat   *currency.Catalog

	subMu       sync.Mutex
	subscribers []func(Event)
}

// NewLedgerService creates a LedgerService over the given store and catalog.
func NewLedgerService(store storage.Store, cat *currency.Catalog) *LedgerService {
	return &LedgerService{store: store, cat: cat}
}

// Catalog returns the process-wide currency catalog.
func (s *LedgerService) Catalog() *currency.Catalog {
	return s.cat
}

// Subscribe registers a callback invoked after every committed mutation.
// Callbacks run synchronously on the mutating goroutine; subscribers that
// need to re-read state should do so outside the callback.
func (s *LedgerService) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *LedgerService) notify(event Event) {
	s.subMu.Lock()
	subscribers := append(([]func(Event))(nil), s.subscribers...)
	s.subMu.Unlock()
	for _, fn := range subscribers {
		fn(event)
	}
}

// CreateSession persists a new enrollment session.
func (s *LedgerService) CreateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return err
	}
	slog.Info("Session created", "session_id", session.ID, "name", session.Name)
	return nil
}

// GetSession retrieves a session by ID.
func (s *LedgerService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return s.store.GetSession(ctx, id)
}

// UpdateSession applies administrative edits to a session.
func (s *LedgerService) UpdateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.UpdateSession(ctx, session)
}

// ListSessions returns all sessions in creation order.
func (s *LedgerService) ListSessions(ctx context.Context) ([]models.Session, error) {
	return s.store.ListSessions(ctx)
}

// AddParticipant enrolls a participant.
func (s *LedgerService) AddParticipant(ctx context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.CreateParticipant(ctx, p); err != nil {
		slog.Error("AddParticipant failed", "error", err)
		return err
	}
	slog.Info("Participant added", "participant_id", p.ID, "name", p.DisplayName())
	s.notify(Event{Kind: EventParticipantAdded, SessionID: p.SessionID, ParticipantID: p.ID})
	return nil
}

// GetParticipant retrieves a participant with balances by ID.
func (s *LedgerService) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	return s.store.GetParticipant(ctx, id)
}

// UpdateParticipant rewrites a participant's profile and balance set.
func (s *LedgerService) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdateParticipant(ctx, p); err != nil {
		slog.Error("UpdateParticipant failed", "participant_id", p.ID, "error", err)
		return err
	}
	slog.Info("Participant updated", "participant_id", p.ID, "name", p.DisplayName())
	s.notify(Event{Kind: EventParticipantUpdated, SessionID: p.SessionID, ParticipantID: p.ID})
	return nil
}

// RemoveParticipant withdraws a participant; their balances go with them,
// ledger history stays.
func (s *LedgerService) RemoveParticipant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteParticipant(ctx, id); err != nil {
		slog.Error("RemoveParticipant failed", "participant_id", id, "error", err)
		return err
	}
	slog.Info("Participant removed", "participant_id", id)
	s.notify(Event{Kind: EventParticipantRemoved, ParticipantID: id})
	return nil
}

// ListParticipants returns the filtered, ordered roster for a session (or
// all sessions when sessionID is empty). See ledger.Filter for the rules.
func (s *LedgerService) ListParticipants(ctx context.Context, sessionID, filterText string) ([]models.Participant, error) {
	participants, err := s.store.ListParticipants(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ledger.Filter(participants, filterText), nil
}

// PrimaryBalance returns the balance list rows show for a participant, or
// nil when they hold none.
func (s *LedgerService) PrimaryBalance(ctx context.Context, participantID string) (*models.Balance, error) {
	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return p.PrimaryBalance(s.cat), nil
}

// TotalBalanceInBase returns the participant's holdings converted into the
// base currency.
func (s *LedgerService) TotalBalanceInBase(ctx context.Context, participantID string) (float64, error) {
	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return 0, err
	}
	return p.TotalBalanceInBase(s.cat)
}

// ApplyTransaction records a deposit, expense or refund against a
// participant's balance in that currency. The ledger entry and the balance
// update are persisted atomically.
func (s *LedgerService) ApplyTransaction(ctx context.Context, participantID string, txnType models.TransactionType, amount float64, currencyCode, description string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	txn, err := models.NewTransaction(s.cat, participantID, txnType, amount, currencyCode, description)
	if err != nil {
		return nil, err
	}
	if err := ledger.Apply(p, txn); err != nil {
		slog.Warn("ApplyTransaction rejected",
			"participant_id", participantID,
			"type", txnType,
			"currency", currencyCode,
			"error", err,
		)
		return nil, err
	}
	if err := s.store.AppendTransaction(ctx, txn, p.Balance(currencyCode)); err != nil {
		slog.Error("ApplyTransaction persist failed", "participant_id", participantID, "error", err)
		return nil, err
	}

	slog.Info("Transaction applied",
		"transaction_id", txn.ID,
		"participant_id", participantID,
		"type", txnType,
		"amount", amount,
		"currency", currencyCode,
	)
	s.notify(Event{Kind: EventTransactionApplied, SessionID: p.SessionID, ParticipantID: participantID, EntityID: txn.ID})
	return txn, nil
}

// ListTransactions returns a participant's ledger entries, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, participantID string) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, participantID)
}

// CreateGroupExpense splits a shared cost evenly across the given
// participants and charges each share as an expense transaction. The whole
// batch is all-or-nothing: if any participant cannot be charged (e.g. they
// hold no balance in the expense currency), nothing is recorded.
func (s *LedgerService) CreateGroupExpense(ctx context.Context, sessionID, name string, totalAmount float64, currencyCode string, participantIDs []string) (*models.GroupExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, txns, err := ledger.SplitGroupExpense(s.cat, sessionID, name, totalAmount, currencyCode, participantIDs)
	if err != nil {
		slog.Warn("CreateGroupExpense rejected", "name", name, "error", err)
		return nil, err
	}

	// Charge every share in memory first so validation failures surface
	// before anything is written.
	balances := make([]models.Balance, len(txns))
	for i := range txns {
		p, err := s.store.GetParticipant(ctx, txns[i].ParticipantID)
		if err != nil {
			return nil, fmt.Errorf("group expense %q: %w", name, err)
		}
		if err := ledger.Apply(p, &txns[i]); err != nil {
			slog.Warn("CreateGroupExpense rejected",
				"name", name,
				"participant_id", txns[i].ParticipantID,
				"error", err,
			)
			return nil, err
		}
		balances[i] = *p.Balance(currencyCode)
	}

	if err := s.store.CreateGroupExpense(ctx, expense, txns, balances); err != nil {
		slog.Error("CreateGroupExpense persist failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Group expense created",
		"group_expense_id", expense.ID,
		"name", name,
		"total", totalAmount,
		"currency", currencyCode,
		"participants", len(participantIDs),
		"share", expense.AmountPerPerson,
	)
	s.notify(Event{Kind: EventGroupExpenseCreate, SessionID: sessionID, EntityID: expense.ID})
	return expense, nil
}

// GetGroupExpense retrieves a group expense by ID.
func (s *LedgerService) GetGroupExpense(ctx context.Context, id string) (*models.GroupExpense, error) {
	return s.store.GetGroupExpense(ctx, id)
}

// ListGroupExpenses returns a session's group expenses, newest first.
func (s *LedgerService) ListGroupExpenses(ctx context.Context, sessionID string) ([]models.GroupExpense, error) {
	return s.store.ListGroupExpenses(ctx, sessionID)
}
