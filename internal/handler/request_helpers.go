package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ibcplay/ibcplay/internal/auth"
	"github.com/ibcplay/ibcplay/internal/logger"
)

// Pagination defaults shared by the list endpoints
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body, validates it against
// its struct tags, and writes the error response on failure. If it returns an
// error the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// RequireOwnerID extracts the authenticated owner ID placed in the context by
// the auth middleware. A missing ID means the route was wired outside the
// middleware; the request is rejected rather than trusted.
func RequireOwnerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Error("Authenticated route reached without owner ID")
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return uuid.Nil, false
	}
	return ownerID, true
}

// GetQueryParam retrieves a required query parameter, writing the error
// response if it is missing
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter, falling back
// to defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// ParsePagination reads limit and offset query parameters, applying the
// defaults and cap. On malformed input the error response is written and ok
// is false.
func ParsePagination(r *http.Request, w http.ResponseWriter) (limit, offset int, ok bool) {
	limit = DefaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return 0, 0, false
		}
		limit = parsed
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidOffset)
			return 0, 0, false
		}
		offset = parsed
	}

	return limit, offset, true
}
