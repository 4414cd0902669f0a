package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/ledger"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/prices"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// RegisterRequest carries new account parameters
type RegisterRequest struct {
	Username string
	Email    string
	FullName string
	Password string
}

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type service struct {
	users  repository.Users
	ledger ledger.Service
}

// NewService creates a new user service
func NewService(users repository.Users, ledgerService ledger.Service) Service {
	return &service{users: users, ledger: ledgerService}
}

// Register creates an account and credits the demo welcome balance
func (s *service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &domain.User{
		Username:     strings.ToLower(req.Username),
		Email:        strings.ToLower(req.Email),
		FullName:     req.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.users.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	// The welcome credit is a convenience, not part of the account
	// invariant; a failure here leaves a working zero-balance account
	_, err = s.ledger.Deposit(ctx, newUser.ID, prices.USD, decimal.NewFromInt(WelcomeDepositUSD))
	if err != nil {
		logger.FromContext(ctx).Error("Welcome deposit failed",
			"user_id", newUser.ID, "error", err)
	}

	logger.FromContext(ctx).Info("User registered",
		"user_id", newUser.ID, "username", newUser.Username)
	return newUser, nil
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// are indistinguishable to the caller.
func (s *service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.users.GetUserByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// GetByID fetches one account
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func validateRegistration(req RegisterRequest) error {
	if len(req.Username) < MinUsernameLength || len(req.Username) > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters",
			domain.ErrInvalidCredentials, MinUsernameLength, MaxUsernameLength)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: invalid email", domain.ErrInvalidCredentials)
	}
	if len(req.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters",
			domain.ErrInvalidCredentials, MinPasswordLength)
	}
	return nil
}
