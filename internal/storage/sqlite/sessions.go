package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/storage"
)

// CreateSession persists a new enrollment session.
// Generates the ID and default dates if not set.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartDate == 0 {
		session.StartDate = time.Now().Unix()
	}
	if session.EndDate == 0 {
		session.EndDate = session.StartDate
	}
	if err := session.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, year, session_number, name, start_date, end_date, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Year, session.SessionNumber, session.Name,
		session.StartDate, session.EndDate, session.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, year, session_number, name, start_date, end_date, is_active
		 FROM sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.Year, &session.SessionNumber, &session.Name,
		&session.StartDate, &session.EndDate, &session.IsActive)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// UpdateSession updates a session's administrative fields.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET year = ?, session_number = ?, name = ?, start_date = ?, end_date = ?, is_active = ?
		 WHERE id = ?`,
		session.Year, session.SessionNumber, session.Name,
		session.StartDate, session.EndDate, session.IsActive, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session not found: %s: %w", session.ID, storage.ErrNotFound)
	}
	return nil
}

// ListSessions returns all sessions in creation order.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, year, session_number, name, start_date, end_date, is_active
		 FROM sessions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(&session.ID, &session.Year, &session.SessionNumber, &session.Name,
			&session.StartDate, &session.EndDate, &session.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
