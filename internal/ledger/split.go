package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/models"
)

// SplitGroupExpense builds a group expense shared evenly across the given
// participants, together with the per-participant expense transactions that
// charge each share.
//
// The per-person share is totalAmount divided by the participant count using
// real division; no remainder redistribution is performed, so a total that
// does not divide evenly leaves residual rounding to the caller. Each emitted
// transaction carries the stored share, a description referencing the expense
// name, and a link back to the expense.
//
// Fails with ErrEmptyParticipantSet when participantIDs is empty and
// ErrInvalidAmount when totalAmount is not positive. The transactions are
// returned unapplied; callers apply them (see Apply) or persist the whole set
// atomically through the storage layer.
func SplitGroupExpense(cat *currency.Catalog, sessionID, name string, totalAmount float64, currencyCode string, participantIDs []string) (*models.GroupExpense, []models.Transaction, error) {
	if len(participantIDs) == 0 {
		return nil, nil, ErrEmptyParticipantSet
	}
	if totalAmount <= 0 {
		return nil, nil, &ErrInvalidAmount{Amount: totalAmount}
	}

	expense := &models.GroupExpense{
		ID:              uuid.New().String(),
		SessionID:       sessionID,
		Name:            name,
		TotalAmount:     totalAmount,
		CurrencyCode:    currencyCode,
		ParticipantIDs:  append([]string(nil), participantIDs...),
		AmountPerPerson: totalAmount / float64(len(participantIDs)),
		CreatedAt:       time.Now().Unix(),
	}

	transactions := make([]models.Transaction, 0, len(participantIDs))
	for _, participantID := range participantIDs {
		txn, err := models.NewTransaction(cat, participantID, models.TransactionExpense,
			expense.AmountPerPerson, currencyCode, fmt.Sprintf("Group expense: %s", name))
		if err != nil {
			return nil, nil, err
		}
		txn.GroupExpenseID = expense.ID
		txn.CreatedAt = expense.CreatedAt
		transactions = append(transactions, *txn)
	}

	return expense, transactions, nil
}
