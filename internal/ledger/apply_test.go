package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/Junio-R-org/J-Bank/internal/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name         string
		balances     []models.Balance
		txn          models.Transaction
		wantErr      bool
		validateFunc func(t *testing.T, p *models.Participant)
	}{
		{
			name:     "deposit credits the balance",
			balances: []models.Balance{{CurrencyCode: "GEL", Amount: 59}},
			txn:      models.Transaction{Type: models.TransactionDeposit, Amount: 41, CurrencyCode: "GEL"},
			validateFunc: func(t *testing.T, p *models.Participant) {
				b := p.Balance("GEL")
				if b.Amount != 100 {
					t.Errorf("amount = %v, want 100", b.Amount)
				}
				if b.TotalSpent != 0 {
					t.Errorf("deposit must not touch TotalSpent, got %v", b.TotalSpent)
				}
			},
		},
		{
			name:     "refund credits the balance",
			balances: []models.Balance{{CurrencyCode: "EUR", Amount: 150}},
			txn:      models.Transaction{Type: models.TransactionRefund, Amount: 25, CurrencyCode: "EUR"},
			validateFunc: func(t *testing.T, p *models.Participant) {
				if got := p.Balance("EUR").Amount; got != 175 {
					t.Errorf("amount = %v, want 175", got)
				}
			},
		},
		{
			name:     "expense debits and grows cumulative spend together",
			balances: []models.Balance{{CurrencyCode: "GEL", Amount: 59, TotalSpent: 11}},
			txn:      models.Transaction{Type: models.TransactionExpense, Amount: 30, CurrencyCode: "GEL"},
			validateFunc: func(t *testing.T, p *models.Participant) {
				b := p.Balance("GEL")
				if b.Amount != 29 {
					t.Errorf("amount = %v, want 29", b.Amount)
				}
				if b.TotalSpent != 41 {
					t.Errorf("totalSpent = %v, want 41", b.TotalSpent)
				}
			},
		},
		{
			name:     "overspending yields a debt, not an error",
			balances: []models.Balance{{CurrencyCode: "GEL", Amount: 20}},
			txn:      models.Transaction{Type: models.TransactionExpense, Amount: 50, CurrencyCode: "GEL"},
			validateFunc: func(t *testing.T, p *models.Participant) {
				b := p.Balance("GEL")
				if b.Amount != -30 {
					t.Errorf("amount = %v, want -30", b.Amount)
				}
				if !b.IsNegative() {
					t.Error("resulting balance should report negative")
				}
			},
		},
		{
			name:     "missing balance fails, no auto-create",
			balances: []models.Balance{{CurrencyCode: "EUR", Amount: 100}},
			txn:      models.Transaction{Type: models.TransactionDeposit, Amount: 10, CurrencyCode: "USD"},
			wantErr:  true,
		},
		{
			name:     "zero amount rejected",
			balances: []models.Balance{{CurrencyCode: "GEL", Amount: 10}},
			txn:      models.Transaction{Type: models.TransactionDeposit, Amount: 0, CurrencyCode: "GEL"},
			wantErr:  true,
		},
		{
			name:     "negative amount rejected even for expenses",
			balances: []models.Balance{{CurrencyCode: "GEL", Amount: 10}},
			txn:      models.Transaction{Type: models.TransactionExpense, Amount: -5, CurrencyCode: "GEL"},
			wantErr:  true,
		},
		{
			name:     "unknown type rejected",
			balances: []models.Balance{{CurrencyCode: "GEL", Amount: 10}},
			txn:      models.Transaction{Type: "withdrawal", Amount: 5, CurrencyCode: "GEL"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Participant{ID: "p1", Balances: tt.balances}
			err := Apply(p, &tt.txn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, p)
			}
		})
	}
}

func TestApplyErrorTypes(t *testing.T) {
	p := &models.Participant{ID: "p1", Balances: []models.Balance{{CurrencyCode: "GEL", Amount: 10}}}

	t.Run("no such balance", func(t *testing.T) {
		err := Apply(p, &models.Transaction{Type: models.TransactionExpense, Amount: 5, CurrencyCode: "USD"})
		var noBalance *ErrNoSuchBalance
		if !errors.As(err, &noBalance) {
			t.Fatalf("error = %v, want ErrNoSuchBalance", err)
		}
		if noBalance.CurrencyCode != "USD" || noBalance.ParticipantID != "p1" {
			t.Errorf("error fields = %+v", noBalance)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		err := Apply(p, &models.Transaction{Type: models.TransactionDeposit, Amount: -1, CurrencyCode: "GEL"})
		var invalid *ErrInvalidAmount
		if !errors.As(err, &invalid) {
			t.Fatalf("error = %v, want ErrInvalidAmount", err)
		}
	})
}

func TestApplyFailureLeavesBalanceUntouched(t *testing.T) {
	p := &models.Participant{ID: "p1", Balances: []models.Balance{{CurrencyCode: "GEL", Amount: 59, TotalSpent: 10}}}

	_ = Apply(p, &models.Transaction{Type: "withdrawal", Amount: 5, CurrencyCode: "GEL"})

	b := p.Balance("GEL")
	if b.Amount != 59 || math.Abs(b.TotalSpent-10) > 0 {
		t.Errorf("failed apply must not mutate the balance, got %+v", b)
	}
}
