package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/ledger"
	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/storage/sqlite"
)

// newTestService creates a LedgerService over a temp SQLite database with one
// active session.
func newTestService(t *testing.T) (*LedgerService, *models.Session) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "jbank-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cat, err := currency.NewCatalog(currency.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	svc := NewLedgerService(store, cat)
	session := &models.Session{Year: 2025, SessionNumber: 3, Name: "Session 3", StartDate: 100, EndDate: 200, IsActive: true}
	if err := svc.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return svc, session
}

func enroll(t *testing.T, svc *LedgerService, sessionID, firstName, lastName string, balances ...models.Balance) *models.Participant {
	t.Helper()
	p := &models.Participant{SessionID: sessionID, FirstName: firstName, LastName: lastName, Balances: balances}
	if err := svc.AddParticipant(context.Background(), p); err != nil {
		t.Fatalf("AddParticipant(%s %s) failed: %v", firstName, lastName, err)
	}
	return p
}

func TestRosterListAndFilter(t *testing.T) {
	svc, session := newTestService(t)
	ctx := context.Background()

	enroll(t, svc, session.ID, "Mark", "Volkov")
	enroll(t, svc, session.ID, "Alisa", "Volkova")
	enroll(t, svc, session.ID, "Ivan", "Garkusha")

	t.Run("empty filter returns all sorted by last name", func(t *testing.T) {
		participants, err := svc.ListParticipants(ctx, session.ID, "")
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		want := []string{"Garkusha", "Volkov", "Volkova"}
		if len(participants) != len(want) {
			t.Fatalf("got %d participants, want %d", len(participants), len(want))
		}
		for i, lastName := range want {
			if participants[i].LastName != lastName {
				t.Errorf("position %d = %s, want %s", i, participants[i].LastName, lastName)
			}
		}
	})

	t.Run("vol filter matches the Volkov siblings", func(t *testing.T) {
		participants, err := svc.ListParticipants(ctx, session.ID, "vol")
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		if len(participants) != 2 ||
			participants[0].LastName != "Volkov" ||
			participants[1].LastName != "Volkova" {
			t.Errorf("filter result = %+v", participants)
		}
	})
}

func TestParticipantCRUD(t *testing.T) {
	svc, session := newTestService(t)
	ctx := context.Background()

	p := enroll(t, svc, session.ID, "Yakov", "Butenko",
		models.NewBalance("EUR", 84, 150),
		models.NewBalance("GEL", 10, 0),
	)

	t.Run("update profile and balances", func(t *testing.T) {
		p.Notes = "left early"
		p.UpsertBalance(models.NewBalance("USD", 5, 5))
		if err := svc.UpdateParticipant(ctx, p); err != nil {
			t.Fatalf("UpdateParticipant failed: %v", err)
		}

		stored, err := svc.GetParticipant(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		if !stored.Equal(p) {
			t.Errorf("stored participant differs:\n got  %+v\n want %+v", stored, p)
		}
	})

	t.Run("remove withdraws the participant", func(t *testing.T) {
		if err := svc.RemoveParticipant(ctx, p.ID); err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		if _, err := svc.GetParticipant(ctx, p.ID); err == nil {
			t.Error("expected error for removed participant")
		}
	})
}

func TestPrimaryBalanceAndTotal(t *testing.T) {
	svc, session := newTestService(t)
	ctx := context.Background()

	p := enroll(t, svc, session.ID, "Nadezhda", "Baban",
		models.NewBalance("EUR", 150, 200),
		models.NewBalance("GEL", 59, 0),
	)

	primary, err := svc.PrimaryBalance(ctx, p.ID)
	if err != nil {
		t.Fatalf("PrimaryBalance failed: %v", err)
	}
	if primary == nil || primary.CurrencyCode != "GEL" {
		t.Errorf("PrimaryBalance = %+v, want the GEL balance", primary)
	}

	total, err := svc.TotalBalanceInBase(ctx, p.ID)
	if err != nil {
		t.Fatalf("TotalBalanceInBase failed: %v", err)
	}
	if math.Abs(total-456.5) > 0.0001 {
		t.Errorf("TotalBalanceInBase = %v, want 456.5", total)
	}
}

func TestApplyTransactionService(t *testing.T) {
	svc, session := newTestService(t)
	ctx := context.Background()

	p := enroll(t, svc, session.ID, "Aleksandr", "Abramov", models.NewBalance("GEL", 20, 20))

	t.Run("expense beyond the balance becomes a debt", func(t *testing.T) {
		txn, err := svc.ApplyTransaction(ctx, p.ID, models.TransactionExpense, 50, "GEL", "excursion")
		if err != nil {
			t.Fatalf("ApplyTransaction failed: %v", err)
		}
		if txn.ExchangeRate == nil || *txn.ExchangeRate != 1 {
			t.Errorf("base-currency snapshot rate = %v, want 1", txn.ExchangeRate)
		}

		stored, err := svc.GetParticipant(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		b := stored.Balance("GEL")
		if b.Amount != -30 || b.TotalSpent != 70 {
			t.Errorf("balance = %+v, want amount -30, totalSpent 70", b)
		}
	})

	t.Run("deposit into an unheld currency fails", func(t *testing.T) {
		_, err := svc.ApplyTransaction(ctx, p.ID, models.TransactionDeposit, 10, "EUR", "euros")
		var noBalance *ledger.ErrNoSuchBalance
		if !errors.As(err, &noBalance) {
			t.Fatalf("error = %v, want ErrNoSuchBalance", err)
		}
	})

	t.Run("refund restores the balance", func(t *testing.T) {
		if _, err := svc.ApplyTransaction(ctx, p.ID, models.TransactionRefund, 30, "GEL", "excursion cancelled"); err != nil {
			t.Fatalf("ApplyTransaction failed: %v", err)
		}
		stored, _ := svc.GetParticipant(ctx, p.ID)
		if b := stored.Balance("GEL"); b.Amount != 0 {
			t.Errorf("amount after refund = %v, want 0", b.Amount)
		}
	})

	t.Run("history is newest first", func(t *testing.T) {
		transactions, err := svc.ListTransactions(ctx, p.ID)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(transactions))
		}
		if transactions[0].Type != models.TransactionRefund {
			t.Errorf("first entry = %s, want the refund", transactions[0].Type)
		}
	})
}

func TestCreateGroupExpenseService(t *testing.T) {
	svc, session := newTestService(t)
	ctx := context.Background()

	a := enroll(t, svc, session.ID, "Mark", "Volkov", models.NewBalance("GEL", 80, 100))
	b := enroll(t, svc, session.ID, "Alisa", "Volkova", models.NewBalance("GEL", 250, 300))
	c := enroll(t, svc, session.ID, "Polina", "Brink", models.NewBalance("GEL", 59, 0))

	t.Run("even split charges every share", func(t *testing.T) {
		expense, err := svc.CreateGroupExpense(ctx, session.ID, "Water park", 90, "GEL", []string{a.ID, b.ID, c.ID})
		if err != nil {
			t.Fatalf("CreateGroupExpense failed: %v", err)
		}
		if expense.AmountPerPerson != 30 {
			t.Errorf("AmountPerPerson = %v, want 30", expense.AmountPerPerson)
		}

		stored, err := svc.GetParticipant(ctx, c.ID)
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		bal := stored.Balance("GEL")
		if bal.Amount != 29 || bal.TotalSpent != 30 {
			t.Errorf("balance = %+v, want amount 29, totalSpent 30", bal)
		}
	})

	t.Run("empty participant set creates nothing", func(t *testing.T) {
		_, err := svc.CreateGroupExpense(ctx, session.ID, "Ghost trip", 90, "GEL", nil)
		if !errors.Is(err, ledger.ErrEmptyParticipantSet) {
			t.Fatalf("error = %v, want ErrEmptyParticipantSet", err)
		}
		expenses, err := svc.ListGroupExpenses(ctx, session.ID)
		if err != nil {
			t.Fatalf("ListGroupExpenses failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Errorf("expected only the earlier expense, got %d", len(expenses))
		}
	})

	t.Run("one uncharged participant rolls back everyone", func(t *testing.T) {
		d := enroll(t, svc, session.ID, "Elizabet", "Geld", models.NewBalance("EUR", 430, 500))

		_, err := svc.CreateGroupExpense(ctx, session.ID, "Dinner", 60, "GEL", []string{a.ID, d.ID})
		var noBalance *ledger.ErrNoSuchBalance
		if !errors.As(err, &noBalance) {
			t.Fatalf("error = %v, want ErrNoSuchBalance", err)
		}

		stored, _ := svc.GetParticipant(ctx, a.ID)
		if bal := stored.Balance("GEL"); bal.Amount != 50 {
			t.Errorf("balance after rollback = %v, want 50 (only the water park charge)", bal.Amount)
		}
		transactions, _ := svc.ListTransactions(ctx, a.ID)
		if len(transactions) != 1 {
			t.Errorf("expected 1 ledger entry after rollback, got %d", len(transactions))
		}
	})
}

func TestSubscribe(t *testing.T) {
	svc, session := newTestService(t)
	ctx := context.Background()

	var events []Event
	svc.Subscribe(func(e Event) { events = append(events, e) })

	p := enroll(t, svc, session.ID, "Anna", "Belousova", models.NewBalance("USD", 106, 150))
	if _, err := svc.ApplyTransaction(ctx, p.ID, models.TransactionExpense, 6, "USD", "snacks"); err != nil {
		t.Fatalf("ApplyTransaction failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != EventParticipantAdded || events[0].ParticipantID != p.ID {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Kind != EventTransactionApplied {
		t.Errorf("event 1 = %+v", events[1])
	}

	t.Run("rejected mutations emit nothing", func(t *testing.T) {
		before := len(events)
		if _, err := svc.ApplyTransaction(ctx, p.ID, models.TransactionExpense, -1, "USD", "bad"); err == nil {
			t.Fatal("expected error")
		}
		if len(events) != before {
			t.Error("failed mutation must not notify subscribers")
		}
	})
}
