package api

import (
	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/models"
)

// Request and response bodies for the JSON API. The domain models stay
// wire-agnostic; this package owns the JSON shapes.

type sessionRequest struct {
	Year          int    `json:"year"`
	SessionNumber int    `json:"session_number"`
	Name          string `json:"name"`
	StartDate     int64  `json:"start_date"`
	EndDate       int64  `json:"end_date"`
	IsActive      bool   `json:"is_active"`
}

type sessionResponse struct {
	ID            string `json:"id"`
	Year          int    `json:"year"`
	SessionNumber int    `json:"session_number"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	StartDate     int64  `json:"start_date"`
	EndDate       int64  `json:"end_date"`
	IsActive      bool   `json:"is_active"`
}

func toSessionResponse(s *models.Session) sessionResponse {
	return sessionResponse{
		ID:            s.ID,
		Year:          s.Year,
		SessionNumber: s.SessionNumber,
		Name:          s.Name,
		DisplayName:   s.DisplayName(),
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		IsActive:      s.IsActive,
	}
}

type balanceRequest struct {
	CurrencyCode   string  `json:"currency_code"`
	Amount         float64 `json:"amount"`
	InitialDeposit float64 `json:"initial_deposit"`
}

type balanceResponse struct {
	ID             string  `json:"id"`
	CurrencyCode   string  `json:"currency_code"`
	Amount         float64 `json:"amount"`
	InitialDeposit float64 `json:"initial_deposit"`
	TotalSpent     float64 `json:"total_spent"`
	Display        string  `json:"display"`
}

func toBalanceResponse(b *models.Balance, cat *currency.Catalog) balanceResponse {
	return balanceResponse{
		ID:             b.ID,
		CurrencyCode:   b.CurrencyCode,
		Amount:         b.Amount,
		InitialDeposit: b.InitialDeposit,
		TotalSpent:     b.TotalSpent,
		Display:        b.Display(cat),
	}
}

type participantRequest struct {
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	PhotoPath   string           `json:"photo_path,omitempty"`
	ParentEmail string           `json:"parent_email,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Balances    []balanceRequest `json:"balances,omitempty"`
}

func (req *participantRequest) toModel(sessionID string) *models.Participant {
	p := &models.Participant{
		SessionID:   sessionID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		PhotoPath:   req.PhotoPath,
		ParentEmail: req.ParentEmail,
		Notes:       req.Notes,
	}
	for _, b := range req.Balances {
		p.Balances = append(p.Balances, models.NewBalance(b.CurrencyCode, b.Amount, b.InitialDeposit))
	}
	return p
}

type participantResponse struct {
	ID             string            `json:"id"`
	SessionID      string            `json:"session_id"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	FullName       string            `json:"full_name"`
	DisplayName    string            `json:"display_name"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	PhotoPath      string            `json:"photo_path,omitempty"`
	ParentEmail    string            `json:"parent_email,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Balances       []balanceResponse `json:"balances"`
	PrimaryBalance *balanceResponse  `json:"primary_balance,omitempty"`
}

func toParticipantResponse(p *models.Participant, cat *currency.Catalog) participantResponse {
	resp := participantResponse{
		ID:          p.ID,
		SessionID:   p.SessionID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		DisplayName: p.DisplayName(),
		Email:       p.Email,
		Phone:       p.Phone,
		PhotoPath:   p.PhotoPath,
		ParentEmail: p.ParentEmail,
		Notes:       p.Notes,
		Balances:    make([]balanceResponse, 0, len(p.Balances)),
	}
	for i := range p.Balances {
		resp.Balances = append(resp.Balances, toBalanceResponse(&p.Balances[i], cat))
	}
	if primary := p.PrimaryBalance(cat); primary != nil {
		b := toBalanceResponse(primary, cat)
		resp.PrimaryBalance = &b
	}
	return resp
}

type transactionRequest struct {
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
	Description  string  `json:"description,omitempty"`
}

type transactionResponse struct {
	ID             string   `json:"id"`
	ParticipantID  string   `json:"participant_id"`
	Type           string   `json:"type"`
	Amount         float64  `json:"amount"`
	CurrencyCode   string   `json:"currency_code"`
	Description    string   `json:"description,omitempty"`
	GroupExpenseID string   `json:"group_expense_id,omitempty"`
	ExchangeRate   *float64 `json:"exchange_rate,omitempty"`
	BaseEquivalent *float64 `json:"base_equivalent,omitempty"`
	Display        string   `json:"display"`
	Date           string   `json:"date"`
	CreatedAt      int64    `json:"created_at"`
}

func toTransactionResponse(t *models.Transaction, cat *currency.Catalog) transactionResponse {
	return transactionResponse{
		ID:             t.ID,
		ParticipantID:  t.ParticipantID,
		Type:           string(t.Type),
		Amount:         t.Amount,
		CurrencyCode:   t.CurrencyCode,
		Description:    t.Description,
		GroupExpenseID: t.GroupExpenseID,
		ExchangeRate:   t.ExchangeRate,
		BaseEquivalent: t.BaseEquivalent,
		Display:        t.Display(cat),
		Date:           t.DateString(),
		CreatedAt:      t.CreatedAt,
	}
}

type groupExpenseRequest struct {
	Name           string   `json:"name"`
	TotalAmount    float64  `json:"total_amount"`
	CurrencyCode   string   `json:"currency_code"`
	ParticipantIDs []string `json:"participant_ids"`
}

type groupExpenseResponse struct {
	ID              string   `json:"id"`
	SessionID       string   `json:"session_id"`
	Name            string   `json:"name"`
	TotalAmount     float64  `json:"total_amount"`
	CurrencyCode    string   `json:"currency_code"`
	ParticipantIDs  []string `json:"participant_ids"`
	AmountPerPerson float64  `json:"amount_per_person"`
	CreatedAt       int64    `json:"created_at"`
}

func toGroupExpenseResponse(e *models.GroupExpense) groupExpenseResponse {
	return groupExpenseResponse{
		ID:              e.ID,
		SessionID:       e.SessionID,
		Name:            e.Name,
		TotalAmount:     e.TotalAmount,
		CurrencyCode:    e.CurrencyCode,
		ParticipantIDs:  e.ParticipantIDs,
		AmountPerPerson: e.AmountPerPerson,
		CreatedAt:       e.CreatedAt,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
