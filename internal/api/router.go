// Package api exposes the ledger over a JSON HTTP interface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Junio-R-org/J-Bank/internal/auth"
	"github.com/Junio-R-org/J-Bank/internal/models"
	"github.com/Junio-R-org/J-Bank/internal/service"
)

// NewRouter creates the HTTP router with all routes and middleware.
// Auth endpoints are public; everything under /v1 requires a staff JWT.
func NewRouter(ledgerSvc *service.LedgerService, authSvc *service.AuthService, jwtManager *auth.JWTManager) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Get("/healthz", healthzHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", registerHandler(authSvc))
	r.Post("/auth/login", loginHandler(authSvc))

	r.Route("/v1", func(r chi.Router) {
		r.Use(RequireAuth(jwtManager))

		r.Get("/currencies", listCurrenciesHandler(ledgerSvc))

		r.Post("/sessions", createSessionHandler(ledgerSvc))
		r.Get("/sessions", listSessionsHandler(ledgerSvc))
		r.Get("/sessions/{sessionID}", getSessionHandler(ledgerSvc))
		r.Put("/sessions/{sessionID}", updateSessionHandler(ledgerSvc))

		r.Post("/sessions/{sessionID}/participants", createParticipantHandler(ledgerSvc))
		r.Get("/sessions/{sessionID}/participants", listParticipantsHandler(ledgerSvc))
		r.Get("/participants/{participantID}", getParticipantHandler(ledgerSvc))
		r.Put("/participants/{participantID}", updateParticipantHandler(ledgerSvc))
		r.Delete("/participants/{participantID}", deleteParticipantHandler(ledgerSvc))
		r.Get("/participants/{participantID}/total", totalBalanceHandler(ledgerSvc))

		r.Post("/participants/{participantID}/transactions", applyTransactionHandler(ledgerSvc))
		r.Get("/participants/{participantID}/transactions", listTransactionsHandler(ledgerSvc))

		r.Post("/sessions/{sessionID}/group-expenses", createGroupExpenseHandler(ledgerSvc))
		r.Get("/sessions/{sessionID}/group-expenses", listGroupExpensesHandler(ledgerSvc))
		r.Get("/group-expenses/{expenseID}", getGroupExpenseHandler(ledgerSvc))
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func registerHandler(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, token, err := authSvc.Register(r.Context(), req.Email, req.DisplayName, req.Password)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{
			Token:       token,
			UserID:      user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		})
	}
}

func loginHandler(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, token, err := authSvc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse{
			Token:       token,
			UserID:      user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		})
	}
}

func listCurrenciesHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := svc.Catalog()
		type currencyInfo struct {
			Code   string  `json:"code"`
			Symbol string  `json:"symbol"`
			Rate   float64 `json:"rate_to_base"`
			IsBase bool    `json:"is_base"`
		}
		codes := cat.Codes()
		infos := make([]currencyInfo, 0, len(codes))
		for _, code := range codes {
			rate, _ := cat.RateToBase(code)
			infos = append(infos, currencyInfo{
				Code:   code,
				Symbol: cat.Symbol(code),
				Rate:   rate,
				IsBase: cat.IsBase(code),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"base_code":  cat.BaseCode(),
			"currencies": infos,
		})
	}
}

func createSessionHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := &models.Session{
			Year:          req.Year,
			SessionNumber: req.SessionNumber,
			Name:          req.Name,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			IsActive:      req.IsActive,
		}
		if err := svc.CreateSession(r.Context(), session); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(session))
	}
}

func listSessionsHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := svc.ListSessions(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		resp := make([]sessionResponse, 0, len(sessions))
		for i := range sessions {
			resp = append(resp, toSessionResponse(&sessions[i]))
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": resp})
	}
}

func getSessionHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(session))
	}
}

func updateSessionHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := &models.Session{
			ID:            chi.URLParam(r, "sessionID"),
			Year:          req.Year,
			SessionNumber: req.SessionNumber,
			Name:          req.Name,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			IsActive:      req.IsActive,
		}
		if err := svc.UpdateSession(r.Context(), session); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(session))
	}
}

func createParticipantHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req participantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p := req.toModel(chi.URLParam(r, "sessionID"))
		if err := p.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.AddParticipant(r.Context(), p); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toParticipantResponse(p, svc.Catalog()))
	}
}

func listParticipantsHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		filter := r.URL.Query().Get("filter")

		participants, err := svc.ListParticipants(r.Context(), sessionID, filter)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		resp := make([]participantResponse, 0, len(participants))
		for i := range participants {
			resp = append(resp, toParticipantResponse(&participants[i], svc.Catalog()))
		}
		writeJSON(w, http.StatusOK, map[string]any{"participants": resp})
	}
}

func getParticipantHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetParticipant(r.Context(), chi.URLParam(r, "participantID"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toParticipantResponse(p, svc.Catalog()))
	}
}

func updateParticipantHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID := chi.URLParam(r, "participantID")

		existing, err := svc.GetParticipant(r.Context(), participantID)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		var req participantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p := req.toModel(existing.SessionID)
		p.ID = participantID
		if err := p.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.UpdateParticipant(r.Context(), p); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toParticipantResponse(p, svc.Catalog()))
	}
}

func deleteParticipantHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveParticipant(r.Context(), chi.URLParam(r, "participantID")); err != nil {
			handleServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func totalBalanceHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantID := chi.URLParam(r, "participantID")

		total, err := svc.TotalBalanceInBase(r.Context(), participantID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"participant_id": participantID,
			"currency_code":  svc.Catalog().BaseCode(),
			"total":          total,
		})
	}
}

func applyTransactionHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		txnType := models.TransactionType(req.Type)
		if !txnType.IsValid() {
			writeError(w, http.StatusBadRequest, "type must be deposit, expense or refund")
			return
		}

		txn, err := svc.ApplyTransaction(r.Context(), chi.URLParam(r, "participantID"),
			txnType, req.Amount, req.CurrencyCode, req.Description)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		transactionsAppliedTotal.WithLabelValues(string(txn.Type)).Inc()
		writeJSON(w, http.StatusCreated, toTransactionResponse(txn, svc.Catalog()))
	}
}

func listTransactionsHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transactions, err := svc.ListTransactions(r.Context(), chi.URLParam(r, "participantID"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		resp := make([]transactionResponse, 0, len(transactions))
		for i := range transactions {
			resp = append(resp, toTransactionResponse(&transactions[i], svc.Catalog()))
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": resp})
	}
}

func createGroupExpenseHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req groupExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		expense, err := svc.CreateGroupExpense(r.Context(), chi.URLParam(r, "sessionID"),
			req.Name, req.TotalAmount, req.CurrencyCode, req.ParticipantIDs)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		groupExpensesCreatedTotal.Inc()
		writeJSON(w, http.StatusCreated, toGroupExpenseResponse(expense))
	}
}

func listGroupExpensesHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := svc.ListGroupExpenses(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		resp := make([]groupExpenseResponse, 0, len(expenses))
		for i := range expenses {
			resp = append(resp, toGroupExpenseResponse(&expenses[i]))
		}
		writeJSON(w, http.StatusOK, map[string]any{"group_expenses": resp})
	}
}

func getGroupExpenseHandler(svc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expense, err := svc.GetGroupExpense(r.Context(), chi.URLParam(r, "expenseID"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toGroupExpenseResponse(expense))
	}
}
