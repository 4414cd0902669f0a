package handler

import (
	"net/http"
	"time"

	"github.com/ibcplay/ibcplay/internal/auth"
	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/user"
)

// RegisterUserRequest represents the registration request body
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a fresh access token and the account it belongs to
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// HandleRegisterUser creates a new account and logs it in
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func HandleRegisterUser(svc user.Service, tokens *auth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, err := svc.Register(r.Context(), user.RegisterRequest{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			Password: req.Password,
		})
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		token, expiresAt, err := tokens.IssueToken(u)
		if err != nil {
			respondServiceError(w, r, "Issue token", err)
			return
		}

		respondJSON(w, http.StatusCreated, AuthResponse{Token: token, ExpiresAt: expiresAt, User: u})
	}
}

// HandleLogin authenticates credentials and issues an access token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func HandleLogin(svc user.Service, tokens *auth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		token, expiresAt, err := tokens.IssueToken(u)
		if err != nil {
			respondServiceError(w, r, "Issue token", err)
			return
		}

		logger.FromContext(r.Context()).Info("User logged in", "user_id", u.ID)
		respondJSON(w, http.StatusOK, AuthResponse{Token: token, ExpiresAt: expiresAt, User: u})
	}
}

// HandleGetMe returns the authenticated account
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/me [get]
func HandleGetMe(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := RequireOwnerID(w, r)
		if !ok {
			return
		}

		u, err := svc.GetByID(r.Context(), ownerID)
		if err != nil {
			respondServiceError(w, r, "Get user", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: u})
	}
}
