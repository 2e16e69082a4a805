package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/models"
)

func testCatalog(t *testing.T) *currency.Catalog {
	t.Helper()
	cat, err := currency.NewCatalog(currency.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return cat
}

func TestSplitGroupExpense(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name           string
		total          float64
		currencyCode   string
		participantIDs []string
		wantErr        error
		wantShare      float64
	}{
		{
			name:           "90 GEL across three people",
			total:          90,
			currencyCode:   "GEL",
			participantIDs: []string{"p1", "p2", "p3"},
			wantShare:      30,
		},
		{
			name:           "single participant carries the whole cost",
			total:          45.5,
			currencyCode:   "EUR",
			participantIDs: []string{"p1"},
			wantShare:      45.5,
		},
		{
			name:           "uneven division does not fail",
			total:          100,
			currencyCode:   "GEL",
			participantIDs: []string{"p1", "p2", "p3"},
			wantShare:      100.0 / 3.0,
		},
		{
			name:           "empty participant set rejected",
			total:          90,
			currencyCode:   "GEL",
			participantIDs: nil,
			wantErr:        ErrEmptyParticipantSet,
		},
		{
			name:           "zero total rejected",
			total:          0,
			currencyCode:   "GEL",
			participantIDs: []string{"p1"},
			wantErr:        &ErrInvalidAmount{},
		},
		{
			name:           "negative total rejected",
			total:          -10,
			currencyCode:   "GEL",
			participantIDs: []string{"p1"},
			wantErr:        &ErrInvalidAmount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, transactions, err := SplitGroupExpense(cat, "s1", "Water park", tt.total, tt.currencyCode, tt.participantIDs)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.Is(tt.wantErr, ErrEmptyParticipantSet) && !errors.Is(err, ErrEmptyParticipantSet) {
					t.Errorf("error = %v, want ErrEmptyParticipantSet", err)
				}
				var invalid *ErrInvalidAmount
				if _, isInvalid := tt.wantErr.(*ErrInvalidAmount); isInvalid && !errors.As(err, &invalid) {
					t.Errorf("error = %v, want ErrInvalidAmount", err)
				}
				if expense != nil || transactions != nil {
					t.Error("failed split must create no expense and no transactions")
				}
				return
			}

			if err != nil {
				t.Fatalf("SplitGroupExpense failed: %v", err)
			}
			if math.Abs(expense.AmountPerPerson-tt.wantShare) > 1e-9 {
				t.Errorf("AmountPerPerson = %v, want %v", expense.AmountPerPerson, tt.wantShare)
			}
			if len(transactions) != len(tt.participantIDs) {
				t.Fatalf("emitted %d transactions, want %d", len(transactions), len(tt.participantIDs))
			}

			// share * count recovers the total within floating point tolerance.
			recovered := expense.AmountPerPerson * float64(expense.ParticipantCount())
			if math.Abs(recovered-tt.total) > 0.01 {
				t.Errorf("share*count = %v, want ~%v", recovered, tt.total)
			}
		})
	}
}

func TestSplitGroupExpenseTransactions(t *testing.T) {
	cat := testCatalog(t)

	expense, transactions, err := SplitGroupExpense(cat, "s1", "Excursion", 90, "GEL", []string{"p1", "p2", "p3"})
	if err != nil {
		t.Fatalf("SplitGroupExpense failed: %v", err)
	}

	for i, txn := range transactions {
		if txn.Type != models.TransactionExpense {
			t.Errorf("transaction %d type = %s, want expense", i, txn.Type)
		}
		if txn.Amount != expense.AmountPerPerson {
			t.Errorf("transaction %d amount = %v, want the stored share %v", i, txn.Amount, expense.AmountPerPerson)
		}
		if txn.GroupExpenseID != expense.ID {
			t.Errorf("transaction %d does not link back to the expense", i)
		}
		if txn.ParticipantID != expense.ParticipantIDs[i] {
			t.Errorf("transaction %d participant = %s, want %s", i, txn.ParticipantID, expense.ParticipantIDs[i])
		}
		if txn.Description != "Group expense: Excursion" {
			t.Errorf("transaction %d description = %q", i, txn.Description)
		}
	}
}

func TestSplitThenApplyScenario(t *testing.T) {
	// A 90 GEL group expense across three participants charges 30 each;
	// applied to a 59 GEL balance it leaves 29 with 30 recorded as spent.
	cat := testCatalog(t)

	p := &models.Participant{ID: "p1", Balances: []models.Balance{{CurrencyCode: "GEL", Amount: 59}}}

	_, transactions, err := SplitGroupExpense(cat, "s1", "Water park", 90, "GEL", []string{"p1", "p2", "p3"})
	if err != nil {
		t.Fatalf("SplitGroupExpense failed: %v", err)
	}
	if err := Apply(p, &transactions[0]); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	b := p.Balance("GEL")
	if b.Amount != 29 {
		t.Errorf("amount = %v, want 29", b.Amount)
	}
	if b.TotalSpent != 30 {
		t.Errorf("totalSpent = %v, want 30", b.TotalSpent)
	}
}

func TestSplitToParticipantWithoutBalanceFails(t *testing.T) {
	cat := testCatalog(t)

	p := &models.Participant{ID: "p2", Balances: []models.Balance{{CurrencyCode: "EUR", Amount: 100}}}

	_, transactions, err := SplitGroupExpense(cat, "s1", "Dinner", 30, "GEL", []string{"p2"})
	if err != nil {
		t.Fatalf("SplitGroupExpense failed: %v", err)
	}

	err = Apply(p, &transactions[0])
	var noBalance *ErrNoSuchBalance
	if !errors.As(err, &noBalance) {
		t.Fatalf("Apply error = %v, want ErrNoSuchBalance", err)
	}
	if got := p.Balance("EUR").Amount; got != 100 {
		t.Errorf("unrelated balance mutated: %v", got)
	}
}
