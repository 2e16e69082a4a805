package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Session represents one camp enrollment period.
//
// A session is created once per period and never destroyed during normal
// operation; retiring a session is done by clearing IsActive. Name and
// IsActive are the only fields edited after creation.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Year is the calendar year the session runs in.
	Year int

	// SessionNumber is the sequence number of the session within the year.
	SessionNumber int

	// Name is the administrative display name (e.g., "Session 3").
	Name string

	// StartDate is the Unix timestamp when the session begins.
	StartDate int64

	// EndDate is the Unix timestamp when the session ends.
	// Invariant: EndDate >= StartDate.
	EndDate int64

	// IsActive marks the session as currently running. Soft-retire flag;
	// sessions are never hard-deleted.
	IsActive bool
}

// NewSession creates a session with a generated ID. It fails if the end date
// precedes the start date.
func NewSession(year, sessionNumber int, name string, startDate, endDate int64) (*Session, error) {
	s := &Session{
		ID:            uuid.New().String(),
		Year:          year,
		SessionNumber: sessionNumber,
		Name:          name,
		StartDate:     startDate,
		EndDate:       endDate,
		IsActive:      true,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the session invariants.
func (s *Session) Validate() error {
	if s.EndDate < s.StartDate {
		return fmt.Errorf("session %q: end date precedes start date", s.Name)
	}
	return nil
}

// DisplayName returns the session label used in headers, e.g. "3 session, 2025".
func (s *Session) DisplayName() string {
	return fmt.Sprintf("%d session, %d", s.SessionNumber, s.Year)
}

// Equal reports structural equality over all fields.
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID &&
		s.Year == other.Year &&
		s.SessionNumber == other.SessionNumber &&
		s.Name == other.Name &&
		s.StartDate == other.StartDate &&
		s.EndDate == other.EndDate &&
		s.IsActive == other.IsActive
}
