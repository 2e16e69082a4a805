// Package seed loads a demo session with a known roster into an empty
// database. Used by the -seed flag on the server and by local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/storage"
)

type seedParticipant struct {
	firstName string
	lastName  string
	balances  []models.Balance
}

func demoRoster() []seedParticipant {
	return []seedParticipant{
		{"Aleksandr", "Abramov", []models.Balance{
			models.NewBalance("GEL", -28, 0),
		}},
		{"Nadezhda", "Baban", []models.Balance{
			models.NewBalance("EUR", 150, 200),
			models.NewBalance("GEL", 59, 0),
		}},
		{"Fedor", "Barshak", []models.Balance{
			models.NewBalance("USD", 80, 100),
			models.NewBalance("GEL", -28, 0),
		}},
		{"Mark", "Volkov", []models.Balance{
			models.NewBalance("EUR", 175, 200),
			models.NewBalance("USD", 20, 50),
			models.NewBalance("GEL", 80, 100),
		}},
		{"Alisa", "Volkova", []models.Balance{
			models.NewBalance("EUR", 183, 200),
			models.NewBalance("GEL", 250, 300),
		}},
		{"Ivan", "Garkusha", []models.Balance{
			models.NewBalance("GEL", -3, 0),
		}},
		{"Elizabet", "Geld", []models.Balance{
			models.NewBalance("EUR", 430, 500),
		}},
		{"Anna", "Belousova", []models.Balance{
			models.NewBalance("USD", 106, 150),
		}},
		{"Polina", "Brink", []models.Balance{
			models.NewBalance("EUR", 130, 200),
			models.NewBalance("USD", 50, 50),
		}},
		{"Yakov", "Butenko", []models.Balance{
			models.NewBalance("EUR", 84, 150),
			models.NewBalance("GEL", 10, 0),
		}},
	}
}

// Run creates the demo session and roster. It is idempotent at the session
// level: if any session already exists the store is left untouched.
func Run(ctx context.Context, store storage.Store) error {
	sessions, err := store.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing sessions: %w", err)
	}
	if len(sessions) > 0 {
		slog.Info("seed skipped, database already has sessions", "count", len(sessions))
		return nil
	}

	now := time.Now()
	session := &models.Session{
		Year:          2025,
		SessionNumber: 3,
		Name:          "Session 3",
		StartDate:     now.Unix(),
		EndDate:       now.AddDate(0, 0, 14).Unix(),
		IsActive:      true,
	}
	if err := store.CreateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to create demo session: %w", err)
	}

	for _, sp := range demoRoster() {
		p := &models.Participant{
			SessionID:   session.ID,
			FirstName:   sp.firstName,
			LastName:    sp.lastName,
			ParentEmail: parentEmail(sp.firstName, sp.lastName),
			Balances:    sp.balances,
		}
		if err := store.CreateParticipant(ctx, p); err != nil {
			return fmt.Errorf("failed to create participant %s %s: %w", sp.firstName, sp.lastName, err)
		}
	}

	slog.Info("seeded demo data", "session", session.DisplayName(), "participants", len(demoRoster()))
	return nil
}

func parentEmail(firstName, lastName string) string {
	return fmt.Sprintf("%s.%s@parent.com", strings.ToLower(firstName), strings.ToLower(lastName))
}
