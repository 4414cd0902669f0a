package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound       = "user not found"
	ErrMsgUserAlreadyExists  = "username or email already registered"
	ErrMsgInvalidCredentials = "invalid username or password"
	ErrMsgInvalidToken       = "invalid or expired token"

	// Ledger errors
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgInvalidAmount       = "amount must be positive"
	ErrMsgWalletNotFound      = "wallet not found"
	ErrMsgUnsupportedCurrency = "unsupported currency"

	// Game/round errors
	ErrMsgInvalidStake   = "invalid stake"
	ErrMsgInvalidTarget  = "invalid target"
	ErrMsgUnknownGame    = "unknown game"
	ErrMsgAlreadySettled = "round already settled"
	ErrMsgRoundNotFound  = "round not found"

	// Bet errors
	ErrMsgInvalidOdds   = "odds must be greater than 1.0"
	ErrMsgInvalidResult = "invalid result"
	ErrMsgInvalidState  = "bet is not pending"
	ErrMsgBetNotFound   = "bet not found"

	// Price feed errors
	ErrMsgRateUnavailable = "rate unavailable"

	// Concurrency/system errors
	ErrMsgConflict           = "concurrent update conflict"
	ErrMsgPersistenceFailure = "persistence failure"
	ErrMsgTxClosed           = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists  = errors.New(ErrMsgUserAlreadyExists)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrInvalidToken       = errors.New(ErrMsgInvalidToken)

	// Ledger errors
	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount       = errors.New(ErrMsgInvalidAmount)
	ErrWalletNotFound      = errors.New(ErrMsgWalletNotFound)
	ErrUnsupportedCurrency = errors.New(ErrMsgUnsupportedCurrency)

	// Game/round errors
	ErrInvalidStake   = errors.New(ErrMsgInvalidStake)
	ErrInvalidTarget  = errors.New(ErrMsgInvalidTarget)
	ErrUnknownGame    = errors.New(ErrMsgUnknownGame)
	ErrAlreadySettled = errors.New(ErrMsgAlreadySettled)
	ErrRoundNotFound  = errors.New(ErrMsgRoundNotFound)

	// Bet errors
	ErrInvalidOdds   = errors.New(ErrMsgInvalidOdds)
	ErrInvalidResult = errors.New(ErrMsgInvalidResult)
	ErrInvalidState  = errors.New(ErrMsgInvalidState)
	ErrBetNotFound   = errors.New(ErrMsgBetNotFound)

	// Price feed errors
	ErrRateUnavailable = errors.New(ErrMsgRateUnavailable)

	// Concurrency/system errors
	ErrConflict           = errors.New(ErrMsgConflict)
	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)
)
