// Package ledger implements the camp finance core: transaction application,
// group-expense splitting, and the roster query used by list views.
//
// Everything here is pure, synchronous, in-memory computation over the model
// entities. The package performs no I/O and carries no logging dependency;
// persistence and presentation are external collaborators.
package ledger

import (
	"fmt"

	"github.com/Junio-R-org/J-Bank/internal/models"
)

// Apply records a transaction against the matching balance of p.
//
// Deposits and refunds credit the balance; expenses debit it and grow the
// cumulative spend, both updated together or not at all. A negative resulting
// amount is a debt the participant owes the camp, not an error.
//
// Fails with ErrNoSuchBalance when p holds no balance in the transaction's
// currency, and with ErrInvalidAmount when the amount is not positive.
func Apply(p *models.Participant, txn *models.Transaction) error {
	if txn.Amount <= 0 {
		return &ErrInvalidAmount{Amount: txn.Amount}
	}

	balance := p.Balance(txn.CurrencyCode)
	if balance == nil {
		return &ErrNoSuchBalance{ParticipantID: p.ID, CurrencyCode: txn.CurrencyCode}
	}

	switch txn.Type {
	case models.TransactionDeposit, models.TransactionRefund:
		balance.Amount += txn.Amount
	case models.TransactionExpense:
		balance.Amount -= txn.Amount
		balance.TotalSpent += txn.Amount
	default:
		return fmt.Errorf("unknown transaction type %q", txn.Type)
	}
	return nil
}
