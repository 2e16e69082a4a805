package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Junio-R-org/J-Bank/internal/auth"
	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/ledger"
	"github.com/Junio-R-org/J-Bank/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps ledger and storage errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error) {
	var noBalance *ledger.ErrNoSuchBalance
	var invalidAmount *ledger.ErrInvalidAmount
	var duplicateBalance *ledger.ErrDuplicateBalance
	var unknownCurrency *currency.ErrUnknownCurrency

	switch {
	case errors.Is(err, storage.ErrNotFound):
		slog.Debug("not found", "error", err)
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &noBalance):
		slog.Warn("no balance in currency",
			"participant_id", noBalance.ParticipantID,
			"currency", noBalance.CurrencyCode,
		)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &invalidAmount):
		slog.Debug("invalid amount", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &duplicateBalance):
		slog.Debug("duplicate balance", "error", err)
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &unknownCurrency):
		slog.Debug("unknown currency", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrEmptyParticipantSet):
		slog.Debug("empty participant set", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Warn("invalid credentials")
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		slog.Debug("email already registered", "error", err)
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrWeakPassword):
		slog.Debug("weak password", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
