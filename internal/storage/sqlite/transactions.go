package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/ledger"
	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/storage"
)

// AppendTransaction persists a ledger entry together with the already-applied
// state of the balance it touched. Both writes happen in one transaction so a
// failure leaves neither.
func (s *SQLiteStore) AppendTransaction(ctx context.Context, txn *models.Transaction, balance *models.Balance) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	if err := updateBalance(ctx, tx, txn.ParticipantID, balance); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListTransactions returns a participant's ledger entries, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, participantID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, participant_id, type, amount, currency_code, description, group_expense_id, exchange_rate, base_equivalent, created_at
		 FROM transactions WHERE participant_id = ? ORDER BY created_at DESC, rowid DESC`, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// CreateGroupExpense persists a group expense, its per-participant expense
// transactions and the already-applied balances. All rows land in one
// database transaction: if charging any participant fails, nothing is kept.
func (s *SQLiteStore) CreateGroupExpense(ctx context.Context, expense *models.GroupExpense, txns []models.Transaction, balances []models.Balance) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_expenses (id, session_id, name, total_amount, currency_code, amount_per_person, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.SessionID, expense.Name, expense.TotalAmount,
		expense.CurrencyCode, expense.AmountPerPerson, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group expense: %w", err)
	}

	for i, participantID := range expense.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO group_expense_participants (group_expense_id, participant_id, position)
			 VALUES (?, ?, ?)`,
			expense.ID, participantID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group expense participant: %w", err)
		}
	}

	for i := range txns {
		if err := insertTransaction(ctx, tx, &txns[i]); err != nil {
			return err
		}
		if err := updateBalance(ctx, tx, txns[i].ParticipantID, &balances[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroupExpense retrieves a group expense by ID.
func (s *SQLiteStore) GetGroupExpense(ctx context.Context, id string) (*models.GroupExpense, error) {
	expense := &models.GroupExpense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, name, total_amount, currency_code, amount_per_person, created_at
		 FROM group_expenses WHERE id = ?`, id,
	).Scan(&expense.ID, &expense.SessionID, &expense.Name, &expense.TotalAmount,
		&expense.CurrencyCode, &expense.AmountPerPerson, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group expense not found: %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group expense: %w", err)
	}

	ids, err := s.groupExpenseParticipants(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.ParticipantIDs = ids
	return expense, nil
}

// ListGroupExpenses returns a session's group expenses, newest first.
func (s *SQLiteStore) ListGroupExpenses(ctx context.Context, sessionID string) ([]models.GroupExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, name, total_amount, currency_code, amount_per_person, created_at
		 FROM group_expenses WHERE session_id = ? ORDER BY created_at DESC, rowid DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.GroupExpense
	for rows.Next() {
		var expense models.GroupExpense
		if err := rows.Scan(&expense.ID, &expense.SessionID, &expense.Name, &expense.TotalAmount,
			&expense.CurrencyCode, &expense.AmountPerPerson, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group expenses: %w", err)
	}

	for i := range expenses {
		ids, err := s.groupExpenseParticipants(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].ParticipantIDs = ids
	}
	return expenses, nil
}

func (s *SQLiteStore) groupExpenseParticipants(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id FROM group_expense_participants
		 WHERE group_expense_id = ? ORDER BY position`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group expense participants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group expense participant: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group expense participants: %w", err)
	}
	return ids, nil
}

// insertTransaction writes one ledger entry inside an open transaction.
func insertTransaction(ctx context.Context, tx *sql.Tx, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	groupExpenseID := sql.NullString{String: txn.GroupExpenseID, Valid: txn.GroupExpenseID != ""}
	exchangeRate := nullFloat(txn.ExchangeRate)
	baseEquivalent := nullFloat(txn.BaseEquivalent)

	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, participant_id, type, amount, currency_code, description, group_expense_id, exchange_rate, base_equivalent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.ParticipantID, string(txn.Type), txn.Amount, txn.CurrencyCode,
		txn.Description, groupExpenseID, exchangeRate, baseEquivalent, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// updateBalance writes the applied balance state inside an open transaction.
// The balance row must already exist: transaction application never creates
// balances.
func updateBalance(ctx context.Context, tx *sql.Tx, participantID string, balance *models.Balance) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE balances SET amount = ?, total_spent = ?
		 WHERE participant_id = ? AND currency_code = ?`,
		balance.Amount, balance.TotalSpent, participantID, balance.CurrencyCode,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &ledger.ErrNoSuchBalance{ParticipantID: participantID, CurrencyCode: balance.CurrencyCode}
	}
	return nil
}

// scanTransaction reads one transaction row.
func scanTransaction(rows *sql.Rows) (*models.Transaction, error) {
	var (
		txn            models.Transaction
		txnType        string
		groupExpenseID sql.NullString
		exchangeRate   sql.NullFloat64
		baseEquivalent sql.NullFloat64
	)
	if err := rows.Scan(&txn.ID, &txn.ParticipantID, &txnType, &txn.Amount, &txn.CurrencyCode,
		&txn.Description, &groupExpenseID, &exchangeRate, &baseEquivalent, &txn.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.Type = models.TransactionType(txnType)
	if groupExpenseID.Valid {
		txn.GroupExpenseID = groupExpenseID.String
	}
	if exchangeRate.Valid {
		rate := exchangeRate.Float64
		txn.ExchangeRate = &rate
	}
	if baseEquivalent.Valid {
		equivalent := baseEquivalent.Float64
		txn.BaseEquivalent = &equivalent
	}
	return &txn, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
