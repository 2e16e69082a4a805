package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/ledger"
	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/storage"
)

// CreateParticipant persists a participant together with their balances.
// Generates IDs where missing.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO participants (id, session_id, first_name, last_name, email, phone, photo_path, parent_email, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SessionID, p.FirstName, p.LastName,
		p.Email, p.Phone, p.PhotoPath, p.ParentEmail, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := insertBalances(ctx, tx, p.ID, p.Balances); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant with balances by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	p := &models.Participant{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, first_name, last_name, email, phone, photo_path, parent_email, notes
		 FROM participants WHERE id = ?`, id,
	).Scan(&p.ID, &p.SessionID, &p.FirstName, &p.LastName,
		&p.Email, &p.Phone, &p.PhotoPath, &p.ParentEmail, &p.Notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("participant not found: %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	balances, err := s.balancesFor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Balances = balances
	return p, nil
}

// UpdateParticipant rewrites profile fields and the balance set wholesale.
// Balance rows are replaced inside one transaction so a failed update leaves
// the stored participant untouched.
func (s *SQLiteStore) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE participants SET session_id = ?, first_name = ?, last_name = ?, email = ?, phone = ?, photo_path = ?, parent_email = ?, notes = ?
		 WHERE id = ?`,
		p.SessionID, p.FirstName, p.LastName,
		p.Email, p.Phone, p.PhotoPath, p.ParentEmail, p.Notes, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("participant not found: %s: %w", p.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM balances WHERE participant_id = ?", p.ID); err != nil {
		return fmt.Errorf("failed to clear balances: %w", err)
	}
	if err := insertBalances(ctx, tx, p.ID, p.Balances); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteParticipant removes a participant; their balances cascade with them.
// Ledger history rows are kept.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("participant not found: %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListParticipants returns the participants of a session in insertion order.
// Empty sessionID returns every participant.
func (s *SQLiteStore) ListParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	query := `SELECT id, session_id, first_name, last_name, email, phone, photo_path, parent_email, notes
	          FROM participants`
	args := []any{}
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.SessionID, &p.FirstName, &p.LastName,
			&p.Email, &p.Phone, &p.PhotoPath, &p.ParentEmail, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	for i := range participants {
		balances, err := s.balancesFor(ctx, participants[i].ID)
		if err != nil {
			return nil, err
		}
		participants[i].Balances = balances
	}
	return participants, nil
}

// AddBalance inserts a new balance for a participant. The unique index on
// (participant_id, currency_code) backs the one-balance-per-currency
// invariant; a conflict surfaces as ledger.ErrDuplicateBalance.
func (s *SQLiteStore) AddBalance(ctx context.Context, participantID string, balance models.Balance) error {
	if balance.ID == "" {
		balance.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO balances (id, participant_id, currency_code, amount, initial_deposit, total_spent)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		balance.ID, participantID, balance.CurrencyCode,
		balance.Amount, balance.InitialDeposit, balance.TotalSpent,
	)
	if isUniqueViolation(err) {
		return &ledger.ErrDuplicateBalance{ParticipantID: participantID, CurrencyCode: balance.CurrencyCode}
	}
	if err != nil {
		return fmt.Errorf("failed to insert balance: %w", err)
	}
	return nil
}

// balancesFor loads a participant's balances in insertion order.
func (s *SQLiteStore) balancesFor(ctx context.Context, participantID string) ([]models.Balance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, currency_code, amount, initial_deposit, total_spent
		 FROM balances WHERE participant_id = ? ORDER BY rowid`, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	var balances []models.Balance
	for rows.Next() {
		var b models.Balance
		if err := rows.Scan(&b.ID, &b.CurrencyCode, &b.Amount, &b.InitialDeposit, &b.TotalSpent); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}
	return balances, nil
}

// insertBalances writes balance rows inside an open transaction, generating
// IDs where missing.
func insertBalances(ctx context.Context, tx *sql.Tx, participantID string, balances []models.Balance) error {
	for i := range balances {
		b := &balances[i]
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO balances (id, participant_id, currency_code, amount, initial_deposit, total_spent)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, participantID, b.CurrencyCode, b.Amount, b.InitialDeposit, b.TotalSpent,
		)
		if isUniqueViolation(err) {
			return &ledger.ErrDuplicateBalance{ParticipantID: participantID, CurrencyCode: b.CurrencyCode}
		}
		if err != nil {
			return fmt.Errorf("failed to insert balance: %w", err)
		}
	}
	return nil
}
