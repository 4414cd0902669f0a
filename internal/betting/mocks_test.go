package betting

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// MockBets implements [repository.Bets]
type MockBets struct {
	mock.Mock
}

func (m *MockBets) CreateBet(ctx context.Context, bet *domain.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBets) GetBet(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

func (m *MockBets) SettleBetIfPending(ctx context.Context, id uuid.UUID, status domain.BetStatus, settledAmount decimal.Decimal) (int64, error) {
	args := m.Called(ctx, id, status, settledAmount)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockBets) ListBets(ctx context.Context, filter repository.BetFilter) ([]domain.Bet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

// MockLedger implements [ledger.Service]
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Deposit(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedger) Withdraw(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedger) Convert(ctx context.Context, ownerID uuid.UUID, fromCurrency, toCurrency string, amount decimal.Decimal) (*domain.Conversion, error) {
	args := m.Called(ctx, ownerID, fromCurrency, toCurrency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockLedger) LockStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID, description string) error {
	args := m.Called(ctx, ownerID, currency, amount, referenceID, description)
	return args.Error(0)
}

func (m *MockLedger) ReleaseStake(ctx context.Context, ownerID uuid.UUID, currency string, amount decimal.Decimal, referenceID uuid.UUID) error {
	args := m.Called(ctx, ownerID, currency, amount, referenceID)
	return args.Error(0)
}

func (m *MockLedger) Settle(ctx context.Context, ownerID uuid.UUID, currency string, stake, payout decimal.Decimal, referenceID uuid.UUID, description string) error {
	args := m.Called(ctx, ownerID, currency, stake, payout, referenceID, description)
	return args.Error(0)
}

func (m *MockLedger) Wallets(ctx context.Context, ownerID uuid.UUID) ([]domain.WalletBalance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletBalance), args.Error(1)
}

func (m *MockLedger) Transactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
