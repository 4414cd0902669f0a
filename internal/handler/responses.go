package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent, so an encode
	// failure can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped HTTP
// error response
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, message := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(action+" failed", "error", err)
	} else {
		log.Warn(action+" rejected", "error", err)
	}

	respondError(w, status, message)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and intentionally hide
// internal detail
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnavailableError   = "Service is temporarily unavailable. Please try again later."

	// Account messages
	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgUserAlreadyExistsError  = "Username or email already registered"
	ErrMsgInvalidCredentialsError = "Invalid username or password"
	ErrMsgInvalidTokenError       = "Invalid or expired token"

	// Wallet messages
	ErrMsgNotEnoughFundsError      = "Insufficient funds"
	ErrMsgInvalidAmountError       = "Amount must be positive"
	ErrMsgWalletNotFoundError      = "Wallet not found"
	ErrMsgUnsupportedCurrencyError = "Unsupported currency"

	// Casino messages
	ErrMsgInvalidStakeError  = "Invalid stake amount"
	ErrMsgInvalidTargetError = "Invalid game options"
	ErrMsgUnknownGameError   = "Unknown game"
	ErrMsgRoundNotFoundError = "Round not found"

	// Bet messages
	ErrMsgInvalidOddsError   = "Odds must be greater than 1.0"
	ErrMsgInvalidResultError = "Result must be won, lost or void"
	ErrMsgBetNotPendingError = "Bet has already been resolved"
	ErrMsgBetNotFoundError   = "Bet not found"

	// Settlement and concurrency messages
	ErrMsgAlreadySettledError = "Already settled"
	ErrMsgConflictError       = "Concurrent update, please retry"

	// Price feed messages
	ErrMsgRateUnavailableError = "Exchange rate temporarily unavailable"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act upon
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgInvalidCredentialsError
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, ErrMsgInvalidTokenError
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, ErrMsgUserAlreadyExistsError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrWalletNotFound):
		return http.StatusNotFound, ErrMsgWalletNotFoundError
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound, ErrMsgRoundNotFoundError
	case errors.Is(err, domain.ErrBetNotFound):
		return http.StatusNotFound, ErrMsgBetNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughFundsError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return http.StatusBadRequest, ErrMsgUnsupportedCurrencyError
	case errors.Is(err, domain.ErrInvalidStake):
		return http.StatusBadRequest, ErrMsgInvalidStakeError
	case errors.Is(err, domain.ErrInvalidTarget):
		return http.StatusBadRequest, ErrMsgInvalidTargetError
	case errors.Is(err, domain.ErrUnknownGame):
		return http.StatusBadRequest, ErrMsgUnknownGameError
	case errors.Is(err, domain.ErrInvalidOdds):
		return http.StatusBadRequest, ErrMsgInvalidOddsError
	case errors.Is(err, domain.ErrInvalidResult):
		return http.StatusBadRequest, ErrMsgInvalidResultError
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, ErrMsgBetNotPendingError
	case errors.Is(err, domain.ErrAlreadySettled):
		return http.StatusConflict, ErrMsgAlreadySettledError
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgConflictError
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusServiceUnavailable, ErrMsgRateUnavailableError
	case errors.Is(err, domain.ErrPersistenceFailure):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
